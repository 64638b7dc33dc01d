// Package flavor describes the five document templates supported by the
// service. Every template shares the same CRUD + export mechanics; a
// Flavor carries only what actually differs between them: field labels,
// item validation, the subtotal formula and the totals fold.
package flavor

import (
	"github.com/shopspring/decimal"

	"gera-relatorio-backend/internal/models"
)

// ValidationError marks user input rejected before any state mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// ItemInput is the raw form input for one line item, before validation
// and subtotal computation.
type ItemInput struct {
	ID          string
	Kind        string
	Description string
	Quantity    decimal.Decimal
	Weight      decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Field pairs a header or totals key with its user-facing label.
type Field struct {
	Key   string
	Label string
}

// Flavor is one document template descriptor.
type Flavor struct {
	Slug       string
	Type       string
	Title      string
	StorageKey string

	// Secondary storage buckets for cached header defaults.
	DefaultsKeys []string

	// Whether a document may be saved with zero line items. The source
	// behavior was inconsistent between templates; each entry below picks
	// its policy explicitly.
	AllowEmptyItems bool

	EmptyListMessage string

	// Fixed sector ordering for templates that group items (purchase
	// requisition). Unknown sectors fall back to the last entry.
	Sectors []string

	ValidateItem func(ItemInput) error
	Subtotal     func(ItemInput) decimal.Decimal
	Totals       func(items []models.LineItem, header map[string]string) map[string]decimal.Decimal

	// Finalize fills computed header fields at save time (issue and
	// validity dates for the budget).
	Finalize func(header map[string]string)

	// Share-text layout: header fields and ordered totals rows.
	ShareFields []Field
	TotalRows   []Field
}

var flavors = []*Flavor{
	shoppingList,
	receivablesNote,
	budget,
	deliveryReceipt,
	purchaseRequisition,
}

// All returns the registered flavors in presentation order.
func All() []*Flavor {
	out := make([]*Flavor, len(flavors))
	copy(out, flavors)
	return out
}

// BySlug resolves the URL slug used by the API.
func BySlug(slug string) (*Flavor, bool) {
	for _, f := range flavors {
		if f.Slug == slug {
			return f, true
		}
	}
	return nil, false
}

// ByType resolves the type tag stored on documents.
func ByType(t string) (*Flavor, bool) {
	for _, f := range flavors {
		if f.Type == t {
			return f, true
		}
	}
	return nil, false
}

func sumSubtotals(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}
	return total
}
