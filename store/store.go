// Package store implements the persistence backends of a spend ledger.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/spend"
)

// Type is the kind of backend.
type Type string

const (
	// JSON keeps the ledger in a single, indented JSON document.
	JSON Type = "json"
	// SQLite keeps the ledger in a SQLite database.
	SQLite Type = "sqlite"
)

// IsValid reports whether t is a known backend type.
func (t Type) IsValid() bool {
	switch t {
	case JSON, SQLite:
		return true
	}
	return false
}

// DefaultPath is the ledger location used when none is configured.
const DefaultPath = "expenses.json"

// Store is a spend.Store that owns resources.
type Store interface {
	spend.Store
	io.Closer
	fmt.Stringer
}

// Config selects and configures a backend.
type Config struct {
	Type Type
	Path string
}

// Validate returns all configuration errors at once.
func (c Config) Validate() error {
	var errs error
	if !c.Type.IsValid() {
		errs = errors.Join(errs, fmt.Errorf("invalid backend %q: must be one of %s, %s", c.Type, JSON, SQLite))
	}
	if strings.TrimSpace(c.Path) == "" {
		errs = errors.Join(errs, errors.New("ledger path cannot be empty"))
	}
	return errs
}

// Open returns the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Type {
	case SQLite:
		return OpenSQLite(ctx, cfg.Path)
	default:
		return NewFile(cfg.Path), nil
	}
}
