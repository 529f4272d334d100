package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Adapter is the durable key-value home of every collection: each named
// collection is one opaque JSON document. Load returns nil for a key that was
// never written.
type Adapter interface {
	Load(name string) ([]byte, error)
	Save(name string, data []byte) error
}

type collectionRow struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Doc       []byte    `gorm:"column:doc"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (collectionRow) TableName() string { return "collections" }

// GormAdapter persists collections in a single blob table.
type GormAdapter struct {
	db *gorm.DB
}

func NewGormAdapter(db *gorm.DB) (*GormAdapter, error) {
	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, err
	}
	return &GormAdapter{db: db}, nil
}

func (a *GormAdapter) Load(name string) ([]byte, error) {
	var row collectionRow
	tx := a.db.First(&row, "name = ?", name)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return row.Doc, nil
}

func (a *GormAdapter) Save(name string, data []byte) error {
	row := collectionRow{Name: name, Doc: data, UpdatedAt: time.Now()}
	return a.db.Save(&row).Error
}

// MemoryAdapter keeps collections in a map. Tests construct isolated stores
// with it.
type MemoryAdapter struct {
	docs map[string][]byte
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{docs: make(map[string][]byte)}
}

func (a *MemoryAdapter) Load(name string) ([]byte, error) {
	doc, ok := a.docs[name]
	if !ok {
		return nil, nil
	}
	return doc, nil
}

func (a *MemoryAdapter) Save(name string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	a.docs[name] = cp
	return nil
}
