package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"gera-relatorio-backend/internal/config"
)

func TestTokenExchange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{JwtSecret: "secret", ApiKey: "the-key", JwtAccessMinutes: 60}
	handler := NewAuthHandler(cfg)

	router := gin.New()
	router.POST("/api/auth/token", handler.Token)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token",
		bytes.NewReader([]byte(`{"apiKey": "the-key"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("missing access token")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/token",
		bytes.NewReader([]byte(`{"apiKey": "wrong"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", w.Code)
	}
}
