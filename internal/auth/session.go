package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"cfresh_inventory/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "cfresh_session"
	issuer     = "cfresh-inventory"
)

var ErrInvalidSession = errors.New("invalid session")

// Claims identify the signed-in user and the access level the dashboard
// enforces.
type Claims struct {
	Username string             `json:"username"`
	Access   domain.AccessLevel `json:"access"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() int {
	id, _ := strconv.Atoi(c.Subject)
	return id
}

func (c *Claims) IsAdmin() bool {
	return c.Access.IsAdmin()
}

type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func (m *SessionManager) Issue(user *domain.User) (string, error) {
	now := m.now()
	claims := Claims{
		Username: user.Username,
		Access:   user.Access,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign session: %w", err)
	}
	return token, nil
}

func (m *SessionManager) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !claims.Access.Valid() {
		return nil, fmt.Errorf("%w: unknown access level %q", ErrInvalidSession, claims.Access)
	}
	return claims, nil
}
