package store

import (
	"encoding/json"

	"gera-relatorio-backend/internal/flavor"
	"gera-relatorio-backend/internal/models"
	"gera-relatorio-backend/internal/storage"
)

// FileStore keeps each flavor's documents as one JSON array under the
// flavor's storage key, mirroring the original per-flavor buckets.
type FileStore struct {
	st *storage.Store
}

func NewFileStore(st *storage.Store) *FileStore {
	return &FileStore{st: st}
}

func (s *FileStore) List(f *flavor.Flavor) ([]models.Document, error) {
	var docs []models.Document
	if err := s.st.Read(f.StorageKey, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *FileStore) Get(f *flavor.Flavor, id string) (models.Document, error) {
	docs, err := s.List(f)
	if err != nil {
		return models.Document{}, err
	}
	for _, doc := range docs {
		if doc.ID == id {
			return doc, nil
		}
	}
	return models.Document{}, ErrNotFound
}

func (s *FileStore) Upsert(f *flavor.Flavor, doc models.Document) error {
	docs, err := s.List(f)
	if err != nil {
		return err
	}
	replaced := false
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, doc)
	}
	return s.st.Write(f.StorageKey, docs)
}

func (s *FileStore) Remove(f *flavor.Flavor, id string) error {
	docs, err := s.List(f)
	if err != nil {
		return err
	}
	kept := docs[:0]
	for _, doc := range docs {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	if len(kept) == len(docs) {
		return ErrNotFound
	}
	return s.st.Write(f.StorageKey, kept)
}

func (s *FileStore) ReadDefaults(key string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.st.Read(key, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *FileStore) WriteDefaults(key string, value json.RawMessage) error {
	return s.st.Write(key, value)
}
