// Package session issues and verifies the signed tokens that gate inventory
// commands behind a successful login.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// NewToken signs an HS256 session token for username, valid for ttl.
func NewToken(username string, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = username
	claims["exp"] = time.Now().Add(ttl).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify parses tokenString and returns the username it was issued for.
// Expired tokens and tokens signed with a different secret are rejected.
func Verify(tokenString string, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return "", fmt.Errorf("token has no username claim")
	}

	return username, nil
}
