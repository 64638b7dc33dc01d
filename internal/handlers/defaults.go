package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gera-relatorio-backend/internal/flavor"
	"gera-relatorio-backend/internal/store"
)

// DefaultsHandler serves the cached header defaults each form preloads
// (emitter details, requester details and the like).
type DefaultsHandler struct {
	Store store.Documents
}

func NewDefaultsHandler(st store.Documents) *DefaultsHandler {
	return &DefaultsHandler{Store: st}
}

func (h *DefaultsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if !knownDefaultsKey(key) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown defaults key"})
		return
	}

	raw, err := h.Store.ReadDefaults(key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load defaults"})
		return
	}
	if len(raw) == 0 {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *DefaultsHandler) Put(c *gin.Context) {
	key := c.Param("key")
	if !knownDefaultsKey(key) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown defaults key"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if err := h.Store.WriteDefaults(key, json.RawMessage(body)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}

func knownDefaultsKey(key string) bool {
	for _, f := range flavor.All() {
		for _, k := range f.DefaultsKeys {
			if k == key {
				return true
			}
		}
	}
	return false
}
