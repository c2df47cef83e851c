package httpkit

import (
	"errors"
	"time"

	"funnel_backend/platform/config"

	"github.com/golang-jwt/jwt/v5"
)

// SignAccessToken issues an HS256 access token that AuthRequired accepts.
func SignAccessToken(cfg config.JWTConfig, subject string, roles []string, ttl time.Duration) (string, error) {
	secret := cfg.GetJWTAccessSecret()
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"type":  "access",
		"roles": roles,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
