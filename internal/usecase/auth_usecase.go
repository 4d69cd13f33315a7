package usecase

import (
	"context"
	"errors"
	"strings"

	"cfresh_inventory/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AuthUseCase interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

type authUseCase struct {
	userRepo domain.UserRepository
	log      *logrus.Logger
}

func NewAuthUseCase(repo domain.UserRepository, logger *logrus.Logger) AuthUseCase {
	return &authUseCase{
		userRepo: repo,
		log:      logger,
	}
}

// Authenticate checks the password against the stored bcrypt hash. Every
// credential failure returns ErrInvalidCredentials so callers cannot tell
// an unknown user from a wrong password.
func (uc *authUseCase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < minPasswordLength {
		uc.log.Warn("Use Case: Login rejected, missing username or short password")
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Login failed for unknown user '%s'", username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, storeError(uc.log, "get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.log.Warnf("Use Case: Login failed for user '%s': password mismatch", username)
		return nil, domain.ErrInvalidCredentials
	}

	uc.log.WithFields(logrus.Fields{"user_id": user.ID, "access": user.Access}).Info("Use Case: User authenticated")
	return user, nil
}
