package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"noitru_backend/internals/configs"
	userModel "noitru_backend/internals/features/users/user/model"
)

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// buildClaims gói user_id, user_name, roles và class_id (GVCN) vào claims.
func buildClaims(user userModel.UserModel, ttl time.Duration) jwt.MapClaims {
	claims := jwt.MapClaims{
		"user_id":   user.ID.String(),
		"user_name": user.UserName,
		"roles":     []string(user.Roles),
		"exp":       time.Now().Add(ttl).Unix(),
		"iat":       time.Now().Unix(),
	}
	if user.ClassID != nil {
		claims["class_id"] = user.ClassID.String()
	}
	return claims
}

func GenerateAccessToken(user userModel.UserModel) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, buildClaims(user, accessTokenTTL))
	return token.SignedString([]byte(configs.JWTSecret))
}

func GenerateRefreshToken(user userModel.UserModel) (string, error) {
	claims := buildClaims(user, refreshTokenTTL)
	claims["type"] = "refresh"
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTRefreshSecret))
}
