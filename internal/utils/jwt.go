package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gamestore_bff/internal/config"
)

func jwtSecret() []byte {
	return []byte(config.Getenv("JWT_SECRET", "super_secret"))
}

// GenerateJWT emite el token de sesión del BFF. El token del backend nunca
// viaja al cliente móvil; solo el id de sesión que lo referencia.
func GenerateJWT(sessionID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"email":      email,
		"role":       role,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseJWT valida firma y expiración y devuelve los claims.
func ParseJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("token inválido")
	}
	return claims, nil
}
