package user

import (
	"context"
	"time"

	"aramesh-server/services/therapy-api/internal/utils/idgen"
)

// Role distinguishes the two account types of the platform.
type Role string

const (
	RolePatient   Role = "PATIENT"
	RoleTherapist Role = "THERAPIST"
)

// User is a registered account. PasswordHash is a bcrypt digest and never
// leaves the domain layer. Patients may carry a link to their therapist.
type User struct {
	ID           uint      `json:"-"`
	PublicID     string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	TherapistID  *uint     `json:"-"`
	Enabled      bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	// FindByEmail returns a NOT_FOUND platform error when no account
	// matches.
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

// NewUser creates an enabled account with a fresh public ID. The password
// hash is set by the service.
func NewUser(email, name string, role Role) *User {
	now := time.Now()
	return &User{
		PublicID:  idgen.MustGenerateSecureID("user", 16),
		Email:     email,
		Name:      name,
		Role:      role,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
