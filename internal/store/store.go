// Package store is the Document Store: the persisted collection of
// finalized documents for each flavor, plus the secondary buckets that
// cache header-field defaults between sessions.
package store

import (
	"encoding/json"
	"errors"

	"gera-relatorio-backend/internal/flavor"
	"gera-relatorio-backend/internal/models"
)

var ErrNotFound = errors.New("document not found")

// Documents is implemented by the file driver (default) and the MySQL
// driver. List order is insertion order as persisted; Upsert replaces in
// place when the id already exists, keeping the record's position.
type Documents interface {
	List(f *flavor.Flavor) ([]models.Document, error)
	Get(f *flavor.Flavor, id string) (models.Document, error)
	Upsert(f *flavor.Flavor, doc models.Document) error
	Remove(f *flavor.Flavor, id string) error

	// Header defaults are schema-free blobs keyed like their previous
	// local-storage counterparts.
	ReadDefaults(key string) (json.RawMessage, error)
	WriteDefaults(key string, value json.RawMessage) error
}
