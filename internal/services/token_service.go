package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("token signing secret not configured")
)

// TokenClaims is the payload of a bearer token: the user id plus the
// issue time. There is deliberately no expiry claim; tokens stay valid
// until the signing secret changes.
type TokenClaims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HS256 tokens. Nothing is
// persisted server-side; a token is valid iff its signature checks out
// against the process-wide secret.
type TokenService struct {
	jwtSecret string
}

func NewTokenService(jwtSecret string) *TokenService {
	return &TokenService{jwtSecret: jwtSecret}
}

func (s *TokenService) Issue(userID uint) (string, error) {
	if s.jwtSecret == "" {
		return "", ErrMissingSecret
	}

	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Issuer:   "finbook",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// Verify parses and checks a token string. Every failure mode, whether a
// bad signature, a foreign signing method, or a malformed token,
// collapses to ErrInvalidToken so callers cannot distinguish them.
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	if s.jwtSecret == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
