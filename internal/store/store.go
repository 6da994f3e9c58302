// Package store provides the register table and the definition journal.
package store

import (
	"time"

	"nickandperla.net/regcalc/internal/expr"
)

// Journal records committed register definitions.
type Journal interface {
	// Record appends a new version of name holding v.
	Record(name string, v *expr.Value) error
	// Close releases resources.
	Close() error
}

// VersionEntry represents a single recorded definition of a register.
type VersionEntry struct {
	Version int
	Value   string
	Session string
	Ts      time.Time
}

// HistoryStore extends Journal with version history queries.
type HistoryStore interface {
	Journal
	// GetHistory returns recorded definitions of name, newest first.
	// A limit of 0 returns all of them.
	GetHistory(name string, limit int) ([]VersionEntry, error)
}
