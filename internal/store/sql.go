package store

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"gera-relatorio-backend/internal/flavor"
	"gera-relatorio-backend/internal/models"
)

// DocumentRow is the relational shape of one stored document. The body
// stays an opaque JSON blob so both drivers persist the exact same
// record; Seq preserves insertion order.
type DocumentRow struct {
	Bucket    string    `gorm:"size:64;primaryKey"`
	ID        string    `gorm:"size:36;primaryKey"`
	Seq       int       `gorm:"index;not null"`
	Body      string    `gorm:"type:longtext;not null"`
	UpdatedAt time.Time
}

// DefaultRow holds one cached header-defaults blob.
type DefaultRow struct {
	Key       string `gorm:"size:64;primaryKey"`
	Value     string `gorm:"type:longtext"`
	UpdatedAt time.Time
}

// SQLStore implements Documents on MySQL via gorm.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) List(f *flavor.Flavor) ([]models.Document, error) {
	var rows []DocumentRow
	if err := s.db.Where("bucket = ?", f.StorageKey).Order("seq asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	var docs []models.Document
	for _, row := range rows {
		var doc models.Document
		if err := json.Unmarshal([]byte(row.Body), &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *SQLStore) Get(f *flavor.Flavor, id string) (models.Document, error) {
	var row DocumentRow
	err := s.db.Where("bucket = ? AND id = ?", f.StorageKey, id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Document{}, ErrNotFound
		}
		return models.Document{}, err
	}
	var doc models.Document
	if err := json.Unmarshal([]byte(row.Body), &doc); err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

func (s *SQLStore) Upsert(f *flavor.Flavor, doc models.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var row DocumentRow
		err := tx.Where("bucket = ? AND id = ?", f.StorageKey, doc.ID).Take(&row).Error
		if err == nil {
			row.Body = string(body)
			return tx.Save(&row).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var maxSeq int
		if err := tx.Model(&DocumentRow{}).
			Where("bucket = ?", f.StorageKey).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}
		return tx.Create(&DocumentRow{
			Bucket: f.StorageKey,
			ID:     doc.ID,
			Seq:    maxSeq + 1,
			Body:   string(body),
		}).Error
	})
}

func (s *SQLStore) Remove(f *flavor.Flavor, id string) error {
	res := s.db.Where("bucket = ? AND id = ?", f.StorageKey, id).Delete(&DocumentRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) ReadDefaults(key string) (json.RawMessage, error) {
	var row DefaultRow
	err := s.db.Where("`key` = ?", key).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return json.RawMessage(row.Value), nil
}

func (s *SQLStore) WriteDefaults(key string, value json.RawMessage) error {
	row := DefaultRow{Key: key, Value: string(value)}
	var existing DefaultRow
	err := s.db.Where("`key` = ?", key).Take(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.db.Create(&row).Error
		}
		return err
	}
	existing.Value = row.Value
	return s.db.Save(&existing).Error
}
