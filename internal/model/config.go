package model

import (
	"fmt"
	"time"
)

// StorageType selects the task store backend.
type StorageType string

const (
	StorageTypeJSON   StorageType = "json"
	StorageTypeSQLite StorageType = "sqlite"
)

// Validate checks the storage type is known.
func (s StorageType) Validate() error {
	switch s {
	case StorageTypeJSON, StorageTypeSQLite:
		return nil
	}
	return fmt.Errorf("invalid storage %q (must be: json, sqlite): %w", string(s), ErrNotValid)
}

// Config is the user configuration file content. Zero values mean "not set".
type Config struct {
	StorePath   string
	Storage     StorageType
	LockTimeout time.Duration
	ListFormat  string
}
