package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = "Admin"
	RoleClient = "Client"
)

// Claims carries the caller's email and roles.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issue creates an HS256 token for email valid for ttl.
func Issue(secret []byte, email string, roles []string, ttl time.Duration) (string, error) {
	if email == "" {
		return "", errors.New("email is required")
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Parse validates an HS256 token and returns its claims.
func Parse(secret []byte, token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Email == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	Email string
	Roles []string
}

func (c *Claims) Identity() Identity {
	return Identity{Email: c.Email, Roles: c.Roles}
}

func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func (i Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}

// Owns reports whether the identity's email matches email, ignoring case.
func (i Identity) Owns(email string) bool {
	return i.Email != "" && strings.EqualFold(strings.TrimSpace(i.Email), strings.TrimSpace(email))
}
