package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gera-relatorio-backend/internal/cep"
)

type CepHandler struct {
	Client *cep.Client
}

func NewCepHandler(client *cep.Client) *CepHandler {
	return &CepHandler{Client: client}
}

func (h *CepHandler) Lookup(c *gin.Context) {
	address, err := h.Client.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, cep.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid postal code"})
		case errors.Is(err, cep.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "postal code not found"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "postal code lookup failed"})
		}
		return
	}
	c.JSON(http.StatusOK, address)
}
