package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var secretKey = []byte("rahasia-super-kuat")

// SetJWTSecret override secret dari config (panggil sekali di main).
func SetJWTSecret(s string) {
	if s != "" {
		secretKey = []byte(s)
	}
}

func GenerateToken(userID uint, nama string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"nama":    nama,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(secretKey)
}

func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, errors.New("token tidak valid")
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("token tidak valid")
}
