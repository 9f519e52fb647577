package services

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
)

// authService checks the owner password against a bcrypt hash.
type authService struct {
	passwordHash []byte
}

// NewAuthService creates a new AuthServicer. An empty hash disables login.
func NewAuthService(passwordHash string) AuthServicer {
	return &authService{passwordHash: []byte(passwordHash)}
}

func (s *authService) Enabled() bool {
	return len(s.passwordHash) > 0
}

// AttemptLogin verifies password.
func (s *authService) AttemptLogin(password string) error {
	if !s.Enabled() {
		return apperrors.ErrAuthDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}
