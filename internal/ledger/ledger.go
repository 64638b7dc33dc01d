// Package ledger holds the editing-session item list built up before a
// document is saved. The session replaces the page-global item array of
// the previous generation so that concurrent edits and tests don't share
// state.
package ledger

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"gera-relatorio-backend/internal/flavor"
	"gera-relatorio-backend/internal/models"
)

var ErrItemNotFound = errors.New("item not found")

// Session is the in-memory ledger for one document being edited.
type Session struct {
	flavor *flavor.Flavor
	items  []models.LineItem
}

func NewSession(f *flavor.Flavor) *Session {
	return &Session{flavor: f}
}

// AddItem validates the input against the session's flavor, computes the
// subtotal and appends. Existing entries are never mutated. Items keep a
// caller-provided id (edit round-trips) or get a generated one.
func (s *Session) AddItem(in flavor.ItemInput) (models.LineItem, error) {
	in.Description = strings.TrimSpace(in.Description)

	// Money precision is applied before validation and the subtotal
	// formula, so the subtotal is always derived from exactly the values
	// the item stores. Computing from the raw input would drift on
	// re-save when a price arrives with more than 2 decimals.
	in.Weight = models.Round2(in.Weight)
	in.UnitPrice = models.Round2(in.UnitPrice)

	if err := s.flavor.ValidateItem(in); err != nil {
		return models.LineItem{}, err
	}

	id := in.ID
	if id == "" {
		id = models.NewID()
	}
	item := models.LineItem{
		ID:          id,
		Kind:        in.Kind,
		Description: in.Description,
		Quantity:    in.Quantity,
		Weight:      in.Weight,
		UnitPrice:   in.UnitPrice,
		Subtotal:    models.Round2(s.flavor.Subtotal(in)),
	}
	s.items = append(s.items, item)
	return item, nil
}

// RemoveItem removes by generated id. Index-based removal is gone: it
// invalidated later indices when deleting from the middle of the list.
func (s *Session) RemoveItem(id string) error {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Items returns a copy of the ledger in insertion order.
func (s *Session) Items() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Session) Len() int { return len(s.items) }

// Totals folds the current ledger with the flavor's formula. Header
// fields participate for flavors whose totals depend on them (discount
// percentage on budgets).
func (s *Session) Totals(header map[string]string) map[string]decimal.Decimal {
	return s.flavor.Totals(s.items, header)
}

// Load replaces the ledger with a stored document's items, for editing.
func (s *Session) Load(items []models.LineItem) {
	s.items = make([]models.LineItem, len(items))
	copy(s.items, items)
}

// Clear resets the session after a save or form reset.
func (s *Session) Clear() {
	s.items = nil
}
