package utils

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie the signed session token travels in.
// The token is signed, not encrypted: tamper-proof, not secret.
const SessionCookieName = "session"

const sessionTTL = 24 * time.Hour

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

// jwtKey reads JWT_SECRET on first use, after godotenv has had its chance
// to populate the environment from .env.
func jwtKey() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			// Development fallback only.
			secret = "BookingDevSecret1945"
		}
		jwtSecret = []byte(secret)
	})
	return jwtSecret
}

// SessionClaims is the typed session payload carried in the cookie.
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(userID uint, username, role string) (string, error) {
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "restaurant-booking",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// ParseSessionToken validates the cookie value on every read. Anything
// invalid or expired is treated as an anonymous session by callers.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired session")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Username == "" {
		return nil, errors.New("invalid session claims")
	}
	return claims, nil
}
