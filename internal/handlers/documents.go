package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"gera-relatorio-backend/internal/config"
	"gera-relatorio-backend/internal/email"
	"gera-relatorio-backend/internal/flavor"
	"gera-relatorio-backend/internal/ledger"
	"gera-relatorio-backend/internal/models"
	"gera-relatorio-backend/internal/pdf"
	"gera-relatorio-backend/internal/share"
	"gera-relatorio-backend/internal/store"
)

type DocumentsHandler struct {
	Store store.Documents
	Cfg   config.Config
	Log   zerolog.Logger
}

func NewDocumentsHandler(st store.Documents, cfg config.Config, log zerolog.Logger) *DocumentsHandler {
	return &DocumentsHandler{Store: st, Cfg: cfg, Log: log}
}

type itemRequest struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Weight      decimal.Decimal `json:"weight"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type documentRequest struct {
	Header map[string]string `json:"header"`
	Items  []itemRequest     `json:"items"`
}

type shareEmailRequest struct {
	To string `json:"to" binding:"required,email"`
}

func (h *DocumentsHandler) Flavors(c *gin.Context) {
	out := make([]gin.H, 0, len(flavor.All()))
	for _, f := range flavor.All() {
		out = append(out, gin.H{
			"slug":            f.Slug,
			"type":            f.Type,
			"title":           f.Title,
			"allowEmptyItems": f.AllowEmptyItems,
			"sectors":         f.Sectors,
			"defaultsKeys":    f.DefaultsKeys,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *DocumentsHandler) List(c *gin.Context) {
	f, ok := h.flavorParam(c)
	if !ok {
		return
	}

	docs, err := h.Store.List(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load documents"})
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}

	resp := gin.H{"documents": docs}
	if len(docs) == 0 {
		resp["message"] = f.EmptyListMessage
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DocumentsHandler) Create(c *gin.Context) {
	f, ok := h.flavorParam(c)
	if !ok {
		return
	}

	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	doc, err := buildDocument(f, req, models.NewID())
	if err != nil {
		var verr *flavor.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	if err := h.Store.Upsert(f, doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentsHandler) Update(c *gin.Context) {
	f, ok := h.flavorParam(c)
	if !ok {
		return
	}

	if _, err := h.Store.Get(f, c.Param("id")); err != nil {
		h.notFoundOrFail(c, err)
		return
	}

	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	// A re-save reissues the document: CreatedAt moves to today, same as
	// the previous generation of these forms.
	doc, err := buildDocument(f, req, c.Param("id"))
	if err != nil {
		var verr *flavor.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	if err := h.Store.Upsert(f, doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) Get(c *gin.Context) {
	f, ok := h.flavorParam(c)
	if !ok {
		return
	}
	doc, err := h.Store.Get(f, c.Param("id"))
	if err != nil {
		h.notFoundOrFail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) Delete(c *gin.Context) {
	f, ok := h.flavorParam(c)
	if !ok {
		return
	}
	if err := h.Store.Remove(f, c.Param("id")); err != nil {
		h.notFoundOrFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *DocumentsHandler) PDF(c *gin.Context) {
	f, ok := h.flavorParam(c)
	if !ok {
		return
	}
	doc, err := h.Store.Get(f, c.Param("id"))
	if err != nil {
		h.notFoundOrFail(c, err)
		return
	}

	result, err := pdf.Render(&doc, h.Log)
	if err != nil {
		h.Log.Error().Err(err).Str("document", doc.ID).Msg("pdf render failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "pdf generation failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Data(http.StatusOK, "application/pdf", result.Bytes)
}

func (h *DocumentsHandler) Share(c *gin.Context) {
	f, ok := h.flavorParam(c)
	if !ok {
		return
	}
	doc, err := h.Store.Get(f, c.Param("id"))
	if err != nil {
		h.notFoundOrFail(c, err)
		return
	}

	text := share.Text(&doc, f)
	subject := share.Subject(&doc)
	c.JSON(http.StatusOK, gin.H{
		"text":        text,
		"subject":     subject,
		"whatsappUrl": share.WhatsAppURL(text),
		"mailtoUrl":   share.MailtoURL(subject, text),
	})
}

func (h *DocumentsHandler) ShareTxt(c *gin.Context) {
	f, ok := h.flavorParam(c)
	if !ok {
		return
	}
	doc, err := h.Store.Get(f, c.Param("id"))
	if err != nil {
		h.notFoundOrFail(c, err)
		return
	}

	filename := share.TxtFilename(&doc, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(share.PlainText(&doc, f)))
}

func (h *DocumentsHandler) ShareEmail(c *gin.Context) {
	f, ok := h.flavorParam(c)
	if !ok {
		return
	}
	if !h.Cfg.SmtpEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email delivery not configured"})
		return
	}

	doc, err := h.Store.Get(f, c.Param("id"))
	if err != nil {
		h.notFoundOrFail(c, err)
		return
	}

	var req shareEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	cfg := email.Config{
		Host:     h.Cfg.SmtpHost,
		Port:     h.Cfg.SmtpPort,
		Username: h.Cfg.SmtpUser,
		Password: h.Cfg.SmtpPass,
		From:     h.Cfg.SmtpFrom,
	}
	if err := email.SendDocument(cfg, req.To, share.Subject(&doc), share.PlainText(&doc, f)); err != nil {
		h.Log.Error().Err(err).Str("document", doc.ID).Msg("share email failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "email delivery failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sent"})
}

func (h *DocumentsHandler) flavorParam(c *gin.Context) (*flavor.Flavor, bool) {
	f, ok := flavor.BySlug(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown document type"})
		return nil, false
	}
	return f, true
}

func (h *DocumentsHandler) notFoundOrFail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
}

// buildDocument runs the full save pipeline: per-item validation through
// an editing session, the empty-items policy, computed header fields and
// the totals snapshot.
func buildDocument(f *flavor.Flavor, req documentRequest, id string) (models.Document, error) {
	session := ledger.NewSession(f)
	for _, item := range req.Items {
		if _, err := session.AddItem(flavor.ItemInput{
			ID:          item.ID,
			Kind:        item.Kind,
			Description: item.Description,
			Quantity:    item.Quantity,
			Weight:      item.Weight,
			UnitPrice:   item.UnitPrice,
		}); err != nil {
			return models.Document{}, err
		}
	}
	if session.Len() == 0 && !f.AllowEmptyItems {
		return models.Document{}, &flavor.ValidationError{Msg: "at least one item is required"}
	}

	header := map[string]string{}
	for k, v := range req.Header {
		header[k] = v
	}
	if f.Finalize != nil {
		f.Finalize(header)
	}

	return models.Document{
		ID:        id,
		Type:      f.Type,
		CreatedAt: models.Today(),
		Header:    header,
		Items:     session.Items(),
		Totals:    session.Totals(header),
	}, nil
}
