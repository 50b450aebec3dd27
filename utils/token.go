package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Secret untuk sign & verify JWT. Ambil dari .env, ada fallback buat dev.
func ApiSecret() []byte {
	secret := os.Getenv("API_SECRET")
	if secret == "" {
		secret = "huniankita_rahasia_dev"
	}
	return []byte(secret)
}

// GenerateToken bikin JWT berisi user_id + role, berlaku 7 hari
func GenerateToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ApiSecret())
}
