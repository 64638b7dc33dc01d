package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gera-relatorio-backend/internal/config"
	"gera-relatorio-backend/internal/models"
	"gera-relatorio-backend/internal/storage"
	"gera-relatorio-backend/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	documents := store.NewFileStore(st)
	handler := NewDocumentsHandler(documents, config.Config{}, zerolog.Nop())
	defaults := NewDefaultsHandler(documents)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/documents/:slug", handler.List)
	api.POST("/documents/:slug", handler.Create)
	api.GET("/documents/:slug/:id", handler.Get)
	api.PUT("/documents/:slug/:id", handler.Update)
	api.DELETE("/documents/:slug/:id", handler.Delete)
	api.GET("/documents/:slug/:id/pdf", handler.PDF)
	api.GET("/documents/:slug/:id/share", handler.Share)
	api.GET("/documents/:slug/:id/share.txt", handler.ShareTxt)
	api.GET("/defaults/:key", defaults.Get)
	api.PUT("/defaults/:key", defaults.Put)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const shoppingBody = `{
	"header": {"listName": "Feira", "supermarket": "Central"},
	"items": [
		{"description": "Arroz", "quantity": "2", "unitPrice": "5"},
		{"description": "Carne", "weight": "1.5", "unitPrice": "40"}
	]
}`

func createShopping(t *testing.T, router *gin.Engine) models.Document {
	t.Helper()
	w := do(t, router, http.MethodPost, "/api/documents/shopping-list", shoppingBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", w.Code, w.Body.String())
	}
	var doc models.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func TestCreateComputesTotals(t *testing.T) {
	router := newTestRouter(t)
	doc := createShopping(t, router)

	if doc.Type != "LISTA_COMPRAS" {
		t.Errorf("type = %q", doc.Type)
	}
	if doc.ID == "" || doc.CreatedAt == "" {
		t.Error("id and createdAt must be filled")
	}
	if got := doc.Totals[models.TotalGrand].StringFixed(2); got != "70.00" {
		t.Errorf("grand total = %s, want 70.00", got)
	}
	if got := doc.Items[0].Subtotal.StringFixed(2); got != "10.00" {
		t.Errorf("first subtotal = %s, want 10.00", got)
	}
}

func TestCreateRejectsInvalidItem(t *testing.T) {
	router := newTestRouter(t)
	w := do(t, router, http.MethodPost, "/api/documents/shopping-list",
		`{"items": [{"description": "Arroz", "quantity": "1", "unitPrice": "0"}]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	// Nothing may be persisted after a rejected save.
	list := do(t, router, http.MethodGet, "/api/documents/shopping-list", "")
	var resp struct {
		Documents []models.Document `json:"documents"`
		Message   string            `json:"message"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Documents) != 0 {
		t.Errorf("rejected save leaked into storage: %d documents", len(resp.Documents))
	}
	if resp.Message == "" {
		t.Error("empty list must carry its placeholder message")
	}
}

func TestEmptyItemsPolicy(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/documents/shopping-list", `{"items": []}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("shopping list with no items: status = %d, want 400", w.Code)
	}

	w = do(t, router, http.MethodPost, "/api/documents/budget",
		`{"header": {"providerName": "Oficina", "validityDays": "10"}, "items": []}`)
	if w.Code != http.StatusCreated {
		t.Errorf("budget with no items: status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	var doc models.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Header["issuedAt"] == "" || doc.Header["validUntil"] == "" {
		t.Errorf("budget must get computed dates, header: %v", doc.Header)
	}
}

func TestUpdateKeepsIDAndPosition(t *testing.T) {
	router := newTestRouter(t)
	first := createShopping(t, router)
	createShopping(t, router)

	w := do(t, router, http.MethodPut, "/api/documents/shopping-list/"+first.ID,
		`{"header": {"listName": "Mensal"}, "items": [{"description": "Feijão", "quantity": "1", "unitPrice": "8"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", w.Code, w.Body.String())
	}

	list := do(t, router, http.MethodGet, "/api/documents/shopping-list", "")
	var resp struct {
		Documents []models.Document `json:"documents"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Documents) != 2 {
		t.Fatalf("len = %d, want 2", len(resp.Documents))
	}
	if resp.Documents[0].ID != first.ID {
		t.Error("update must keep the document's position")
	}
	if resp.Documents[0].Header["listName"] != "Mensal" {
		t.Errorf("update lost header change: %v", resp.Documents[0].Header)
	}
}

func TestUpdateMissingDocument(t *testing.T) {
	router := newTestRouter(t)
	w := do(t, router, http.MethodPut, "/api/documents/shopping-list/missing", shoppingBody)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteDocument(t *testing.T) {
	router := newTestRouter(t)
	doc := createShopping(t, router)

	w := do(t, router, http.MethodDelete, "/api/documents/shopping-list/"+doc.ID, "")
	if w.Code != http.StatusOK {
		t.Errorf("delete: status %d", w.Code)
	}
	w = do(t, router, http.MethodDelete, "/api/documents/shopping-list/"+doc.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d, want 404", w.Code)
	}
}

func TestUnknownSlug(t *testing.T) {
	router := newTestRouter(t)
	w := do(t, router, http.MethodGet, "/api/documents/nota-fiscal", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPDFDownload(t *testing.T) {
	router := newTestRouter(t)
	doc := createShopping(t, router)

	w := do(t, router, http.MethodGet, "/api/documents/shopping-list/"+doc.ID+"/pdf", "")
	if w.Code != http.StatusOK {
		t.Fatalf("pdf: status %d, body %s", w.Code, w.Body.String())
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
	disposition := w.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "LISTA_COMPRAS_"+doc.ShortID()+".pdf") {
		t.Errorf("unexpected disposition %q", disposition)
	}
}

func TestShareEndpoints(t *testing.T) {
	router := newTestRouter(t)
	doc := createShopping(t, router)

	w := do(t, router, http.MethodGet, "/api/documents/shopping-list/"+doc.ID+"/share", "")
	if w.Code != http.StatusOK {
		t.Fatalf("share: status %d", w.Code)
	}
	var resp struct {
		Text        string `json:"text"`
		Subject     string `json:"subject"`
		WhatsappURL string `json:"whatsappUrl"`
		MailtoURL   string `json:"mailtoUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Text, "LISTA DE COMPRAS") {
		t.Errorf("share text wrong:\n%s", resp.Text)
	}
	if !strings.HasPrefix(resp.WhatsappURL, "https://api.whatsapp.com/send?text=") {
		t.Errorf("whatsapp url wrong: %s", resp.WhatsappURL)
	}

	w = do(t, router, http.MethodGet, "/api/documents/shopping-list/"+doc.ID+"/share.txt", "")
	if w.Code != http.StatusOK {
		t.Fatalf("share.txt: status %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "*") {
		t.Error("txt download must strip markers")
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), ".txt") {
		t.Error("txt download must be an attachment")
	}
}

func TestDefaults(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/defaults/unknown_key", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown key: status %d, want 404", w.Code)
	}

	w = do(t, router, http.MethodPut, "/api/defaults/shopping_list_details",
		`{"listName": "Feira", "supermarket": "Central"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put defaults: status %d", w.Code)
	}

	w = do(t, router, http.MethodGet, "/api/defaults/shopping_list_details", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get defaults: status %d", w.Code)
	}
	var decoded map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["supermarket"] != "Central" {
		t.Errorf("defaults round trip lost data: %v", decoded)
	}

	w = do(t, router, http.MethodPut, "/api/defaults/shopping_list_details", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid json: status %d, want 400", w.Code)
	}
}
