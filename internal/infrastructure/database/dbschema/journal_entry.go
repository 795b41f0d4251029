package dbschema

import (
	"time"

	"aramesh-server/services/therapy-api/internal/domain/journal"
)

type JournalEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PublicID  string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID    uint      `gorm:"not null;index"`
	Title     string    `gorm:"type:varchar(255)"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

func NewSchemaJournalEntry(d *journal.Entry) *JournalEntry {
	if d == nil {
		return nil
	}

	return &JournalEntry{
		ID:        d.ID,
		PublicID:  d.PublicID,
		UserID:    d.UserID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (s *JournalEntry) EtoD() *journal.Entry {
	if s == nil {
		return nil
	}

	return &journal.Entry{
		ID:        s.ID,
		PublicID:  s.PublicID,
		UserID:    s.UserID,
		Title:     s.Title,
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
