package models

import (
	"time"
)

// MirrorEntry is one key/value row of the local fallback mirror. The store
// writes the serialized appointment collection under a well-known key plus a
// last-modified companion key.
type MirrorEntry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:longtext" json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}
