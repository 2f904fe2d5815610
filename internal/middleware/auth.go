package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gamestore_bff/internal/session"
	"gamestore_bff/internal/utils"
)

// AuthRequired valida el JWT del BFF, resuelve la sesión en Redis y deja en
// el contexto el token del backend, el email y el rol del usuario.
func AuthRequired(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token faltante"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Formato de Authorization inválido"})
			c.Abort()
			return
		}

		claims, err := utils.ParseJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		sessionID, ok := claims["session_id"].(string)
		if !ok || sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sesión expirada"})
			c.Abort()
			return
		}

		c.Set("session_id", sessionID)
		c.Set("token", sess.AuthToken)
		c.Set("email", sess.Email)
		c.Set("role", sess.Role)
		c.Next()
	}
}
