package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

//go:generate mockgen -source=jwt.go -destination=mock_jwt.go -package=auth

const issuer = "elevatex"

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
)

type JWTServiceInterface interface {
	GenerateJWT(userID int, expirationTime time.Time) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

var (
	secretMu  sync.RWMutex
	secretKey = []byte("elevatex-dev-secret")
)

// SetSecret replaces the HMAC key used to sign and verify tokens.
func SetSecret(secret string) {
	if secret == "" {
		return
	}
	secretMu.Lock()
	secretKey = []byte(secret)
	secretMu.Unlock()
}

func secret() []byte {
	secretMu.RLock()
	defer secretMu.RUnlock()
	return secretKey
}

type Claims struct {
	UserID int `json:"user_id"`
	jwt.StandardClaims
}

// ExpiresAtTime is the token expiry as a time.
func (c *Claims) ExpiresAtTime() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

type JWTService struct{}

func (s *JWTService) GenerateJWT(userID int, expirationTime time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 || claims.Issuer != issuer {
		return nil, ErrInvalidTokenClaims
	}

	return claims, nil
}
