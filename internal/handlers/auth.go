package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"gamestore_bff/internal/models"
	"gamestore_bff/internal/session"
	"gamestore_bff/internal/utils"
	"gamestore_bff/internal/xano"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthHandler struct {
	gateway  *xano.Client
	sessions *session.Store
}

func NewAuthHandler(gateway *xano.Client, sessions *session.Store) *AuthHandler {
	return &AuthHandler{gateway: gateway, sessions: sessions}
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	h.authenticate(c, h.gateway.Login)
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	h.authenticate(c, h.gateway.Signup)
}

func (h *AuthHandler) authenticate(c *gin.Context, call func(context.Context, models.Credentials) (*models.AuthResponse, error)) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	// Validación local antes de tocar la red.
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Correo y contraseña no pueden estar vacíos."})
		return
	}
	if !emailRegexp.MatchString(creds.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de correo electrónico inválido."})
		return
	}

	resp, err := call(c.Request.Context(), creds)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Error: Verifica tus datos o conexión."})
		return
	}

	sessionID, err := h.sessions.Create(c.Request.Context(), models.Session{
		AuthToken: resp.AuthToken,
		Email:     resp.Email,
		Role:      resp.Role,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la sesión"})
		return
	}

	token, err := utils.GenerateJWT(sessionID, resp.Email, resp.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo emitir el token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"email": resp.Email,
		"role":  resp.Role,
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cerrar la sesión"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"email": c.GetString("email"),
		"role":  c.GetString("role"),
	})
}
