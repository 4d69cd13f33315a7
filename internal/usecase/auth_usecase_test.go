package usecase

import (
	"context"
	"errors"
	"testing"

	"cfresh_inventory/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &MockUserRepo{Users: map[string]*domain.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: string(hash), Access: domain.AccessAdministrator},
	}}
	uc := NewAuthUseCase(repo, quietLogger())

	testCases := []struct {
		name      string
		username  string
		password  string
		expectErr error
	}{
		{name: "Valid credentials", username: "admin", password: "admin123"},
		{name: "Username with spaces", username: " admin ", password: "admin123"},
		{name: "Wrong password", username: "admin", password: "admin124", expectErr: domain.ErrInvalidCredentials},
		{name: "Unknown user", username: "ghost", password: "admin123", expectErr: domain.ErrInvalidCredentials},
		{name: "Short password", username: "admin", password: "adm", expectErr: domain.ErrInvalidCredentials},
		{name: "Empty username", username: "", password: "admin123", expectErr: domain.ErrInvalidCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := uc.Authenticate(context.Background(), tc.username, tc.password)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.AccessAdministrator, user.Access)
		})
	}
}

func TestAuthenticateStoreFailure(t *testing.T) {
	uc := NewAuthUseCase(&MockUserRepo{Err: errors.New("connection refused")}, quietLogger())

	_, err := uc.Authenticate(context.Background(), "admin", "admin123")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCategoryUseCase(t *testing.T) {
	uc := NewCategoryUseCase(&MockCategoryRepo{Categories: testCategories}, quietLogger())

	categories, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	c, err := uc.GetCategory(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Produce", c.Name)

	_, err = uc.GetCategory(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
