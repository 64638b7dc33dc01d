package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line item kinds. Receivables notes use CREDIT/DEBIT; purchase
// requisitions carry the sector name in the same field.
const (
	KindCredit = "CREDIT"
	KindDebit  = "DEBIT"
)

// Totals keys stored on a document. Which keys are present depends on the
// document type.
const (
	TotalGrand  = "grandTotal"
	TotalCredit = "creditTotal"
	TotalDebit  = "debitTotal"
	TotalLiquid = "liquidTotal"
	TotalGross  = "grossTotal"
	TotalNet    = "netTotal"
)

// LineItem is one row of a document's item ledger. Money fields are
// rounded to 2 digits when the item is added; Subtotal is always derived
// from the other fields at that point and never edited on its own.
type LineItem struct {
	ID          string          `json:"id,omitempty"`
	Kind        string          `json:"kind,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Weight      decimal.Decimal `json:"weight"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Document is a finalized, persisted record. Header holds the flavor's
// form fields as entered; Totals are snapshots computed at save time from
// the embedded items and are not recomputed on read.
type Document struct {
	ID        string                     `json:"id"`
	Type      string                     `json:"type"`
	CreatedAt string                     `json:"createdAt"`
	Header    map[string]string          `json:"header,omitempty"`
	Items     []LineItem                 `json:"items"`
	Totals    map[string]decimal.Decimal `json:"totals,omitempty"`
}

// ShortID is the truncated identifier used in filenames and display
// ("#a1b2c3d4").
func (d *Document) ShortID() string {
	if len(d.ID) <= 8 {
		return d.ID
	}
	return d.ID[:8]
}

// HeaderValue returns a header field, tolerating documents saved before
// the field existed.
func (d *Document) HeaderValue(key string) string {
	if d.Header == nil {
		return ""
	}
	return d.Header[key]
}

// Total returns a totals snapshot value, zero when absent.
func (d *Document) Total(key string) decimal.Decimal {
	if d.Totals == nil {
		return decimal.Zero
	}
	return d.Totals[key]
}

// NewID generates a stable unique identifier. The previous generation of
// this system used millisecond timestamps, which collide under rapid
// successive saves.
func NewID() string {
	return uuid.New().String()
}

// Today returns the ISO date used for CreatedAt.
func Today() string {
	return time.Now().Format("2006-01-02")
}
