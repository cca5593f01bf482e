// Package entity provides the common base embedded by all persisted records.
package entity

import (
	"mochini/internal/core/id"
)

// Base contains the fields shared by every record in every collection.
//
// Version backs optimistic concurrency detection: the repository bumps it on
// each update and rejects writes against a stale copy.
type Base struct {
	ID      id.ID `json:"id"`
	Version int   `json:"version"`
}

// NewBase creates a Base with a generated ID.
func NewBase() Base {
	return Base{
		ID:      id.New(),
		Version: 1,
	}
}

// GetID returns the record id.
func (b *Base) GetID() id.ID { return b.ID }

// SetID assigns the record id (used by the repository on add).
func (b *Base) SetID(v id.ID) { b.ID = v }

// GetVersion returns the record version.
func (b *Base) GetVersion() int { return b.Version }

// SetVersion updates the record version (used by the repository).
func (b *Base) SetVersion(v int) { b.Version = v }

// Touch increments the record version.
func (b *Base) Touch() { b.Version++ }
