// Package auth issues and verifies the bearer tokens handed to API clients.
// Tokens are HS256 JWTs whose subject claim is the user id.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mzhadan/pomotrack/internal/common"
)

// GenerateToken signs an access token for userID valid for validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString and returns its subject.
// Expired, malformed or wrongly-signed tokens yield ErrorInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrorInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrorInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrorInvalidToken
	}

	return claims.Subject, nil
}
