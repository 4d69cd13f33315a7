package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cfresh_inventory/internal/domain"

	"github.com/sirupsen/logrus"
)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, access FROM users WHERE username = $1`

	u := &domain.User{}
	var access string
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &access)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: User '%s' not found", username)
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get user '%s': %v", username, err)
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	u.Access = domain.AccessLevel(access)
	return u, nil
}
