package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"gera-relatorio-backend/internal/config"
	"gera-relatorio-backend/internal/utils"
)

// AuthHandler exchanges the configured API key for a short-lived bearer
// token. Only mounted when auth is enabled.
type AuthHandler struct {
	Cfg config.Config
}

type tokenRequest struct {
	ApiKey string `json:"apiKey" binding:"required"`
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.ApiKey), []byte(h.Cfg.ApiKey)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	token, err := utils.GenerateAccessToken("api-client", h.Cfg.JwtSecret, h.Cfg.JwtAccessMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":      token,
		"expiresInMinutes": h.Cfg.JwtAccessMinutes,
	})
}
