package requests

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChatMessageRequest is one user turn.
type ChatMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// MoodLogRequest is one self-reported mood sample.
type MoodLogRequest struct {
	Score int     `json:"score" binding:"required"`
	Note  *string `json:"note"`
}

// JournalEntryRequest creates or updates a journal entry.
type JournalEntryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}
