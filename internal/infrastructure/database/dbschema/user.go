package dbschema

import (
	"time"

	"aramesh-server/services/therapy-api/internal/domain/user"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	PublicID     string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(128);not null"`
	Role         string    `gorm:"type:varchar(16);not null;default:'PATIENT'"`
	TherapistID  *uint     `gorm:"index"`
	Enabled      bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func NewSchemaUser(d *user.User) *User {
	if d == nil {
		return nil
	}

	return &User{
		ID:           d.ID,
		PublicID:     d.PublicID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		TherapistID:  d.TherapistID,
		Enabled:      d.Enabled,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (s *User) EtoD() *user.User {
	if s == nil {
		return nil
	}

	return &user.User{
		ID:           s.ID,
		PublicID:     s.PublicID,
		Email:        s.Email,
		Name:         s.Name,
		PasswordHash: s.PasswordHash,
		Role:         user.Role(s.Role),
		TherapistID:  s.TherapistID,
		Enabled:      s.Enabled,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
