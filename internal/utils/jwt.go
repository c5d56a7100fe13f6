package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/playtone/prizeplay-backend/internal/config"
)

// GenerateJWT generates a signed token carrying the user's identity and role
func GenerateJWT(userID, email, role string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}
