package store

import (
	"errors"

	"gorm.io/gorm"

	"clinic-agenda-server/internal/models"
)

// GormKV is the durable KV implementation backing the local mirror in
// production, one row per key in the mirror_entries table.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV creates a KV over an initialized gorm connection.
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (g *GormKV) Get(key string) (string, bool, error) {
	var entry models.MirrorEntry
	err := g.db.First(&entry, "`key` = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (g *GormKV) Set(key, value string) error {
	entry := models.MirrorEntry{Key: key, Value: value}
	return g.db.Save(&entry).Error
}

func (g *GormKV) Delete(key string) error {
	return g.db.Delete(&models.MirrorEntry{}, "`key` = ?", key).Error
}
