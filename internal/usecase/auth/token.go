package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"protrack-backend/internal/domain/user"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID string    `json:"uid"`
	Role   user.Role `json:"role"`
	jwt.RegisteredClaims
}

// CreateAccessToken signs an HS256 session token carrying the principal.
func CreateAccessToken(u *user.User, secret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: u.UserID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParsePrincipal verifies a token and extracts the principal. Any parse or
// claim failure reads uniformly as ErrInvalidToken — callers treat it as
// "unauthenticated", never anything more specific.
func ParsePrincipal(tokenString, secret string) (*user.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return &user.Principal{UserID: claims.UserID, Role: claims.Role}, nil
}
