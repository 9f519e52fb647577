package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
	"github.com/Kola-Kola/personal-finance/internal/middleware"
	"github.com/Kola-Kola/personal-finance/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService services.AuthServicer
	jwtSecret   string
	tokenTTL    time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Password string `json:"password" binding:"required,max=128"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Login handles owner login
// @Summary     Login
// @Description Exchange the configured owner password for an access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Owner password"
// @Success     200 {object} AuthResponse "Token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     404 {object} ErrorResponse "Authentication not configured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.authService.AttemptLogin(req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(h.jwtSecret, h.tokenTTL)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:     token,
		ExpiresIn: int64(h.tokenTTL.Seconds()),
	})
}
