package models

import "time"

// KVEntry is the model for one value in the key-value store.
type KVEntry struct {
	Namespace string `gorm:"primaryKey;size:128"`
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name used by the key-value store.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// Change describes a successful write to the key-value store.
type Change struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Deleted   bool   `json:"deleted"`
}
