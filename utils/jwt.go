package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs an HS256 token for the user and returns it together
// with its jti, which the caller persists for revocation.
func GenerateJWT(userID uint) (string, string, error) {
	jti, err := RandomTokenID()
	if err != nil {
		return "", "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"jti":    jti,
		"exp":    time.Now().Add(time.Hour * 72).Unix(),
	})

	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ParseJWT validates the signature and expiry and returns userId and jti.
func ParseJWT(tokenString string) (uint, string, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return 0, "", errors.New("JWT_SECRET not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}

	id, ok := claims["userId"].(float64)
	if !ok {
		return 0, "", errors.New("userId claim missing")
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return 0, "", errors.New("jti claim missing")
	}

	return uint(id), jti, nil
}
