package domain

import "context"

type AccessLevel string

const (
	AccessAdministrator AccessLevel = "administrator"
	AccessUser          AccessLevel = "user"
)

func (a AccessLevel) Valid() bool {
	return a == AccessAdministrator || a == AccessUser
}

func (a AccessLevel) IsAdmin() bool {
	return a == AccessAdministrator
}

type User struct {
	ID           int         `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Access       AccessLevel `json:"access"`
}

type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}
