package user

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

const bcryptCost = 10

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// Service handles registration, authentication and token issuance.
type Service struct {
	repo          Repository
	jwtSecret     []byte
	tokenLifetime time.Duration
}

func NewService(repo Repository, jwtSecret string, tokenLifetime time.Duration) *Service {
	return &Service{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenLifetime: tokenLifetime,
	}
}

// Register creates a new account. Email conflicts surface as CONFLICT so the
// handler can answer 409 without leaking which field collided elsewhere.
func (s *Service) Register(ctx context.Context, email, name, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "invalid email address", err, "7b1e3f60-2d4a-4c8b-b5f9-0e6a1d2c3b4a")
	}
	if len(password) < 8 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "password must be at least 8 characters", nil, "a4d2c1b0-9e8f-4a7b-8c6d-5e4f3a2b1c0d")
	}
	if role != RolePatient && role != RoleTherapist {
		role = RolePatient
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeConflict, "email already registered", nil, "3c5b7d9e-1f2a-4b6c-8d0e-2f4a6b8c0d1e")
	} else if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to hash password", err, "")
	}

	u := NewUser(email, strings.TrimSpace(name), role)
	u.PasswordHash = string(hash)

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a signed token. A missing account
// and a wrong password produce the same opaque UNAUTHORIZED error.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	invalid := func() error {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "invalid credentials", nil, "e8f0a2b4-6c8d-4e0f-a1b3-c5d7e9f1a3b5")
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, "", invalid()
		}
		return nil, "", err
	}
	if !u.Enabled {
		return nil, "", invalid()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", invalid()
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to sign token", err, "")
	}
	return u, token, nil
}

// GetByID loads an account for the authenticated-profile endpoint.
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// VerifyToken parses and validates a token string, returning its claims.
func (s *Service) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "invalid or expired token", err, "f1a3b5c7-d9e1-4f2a-b4c6-d8e0f2a4b6c8")
	}
	return claims, nil
}

func (s *Service) issueToken(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.PublicID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
