package services

import (
	"fmt"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
}

// GenerateToken signs a JWT carrying the user info, valid for ttlMinutes.
func GenerateToken(userInfo UserInfo, ttlMinutes int, isAccess bool) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}

	claims := jwt.MapClaims{
		"userinfo": map[string]interface{}{
			"userid": userInfo.UserId,
			"role":   userInfo.Role,
		},
		"access": isAccess,
		"exp":    time.Now().Add(time.Duration(ttlMinutes) * time.Minute).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
