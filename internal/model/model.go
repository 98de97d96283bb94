// Package model defines the domain models for Crewboard.
package model

import "github.com/google/uuid"

// Model is the interface that all database models must implement.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// KeyPrefix constants for database key generation.
const (
	KeyProject    = "project"
	KeyUndo       = "undo"
	PrefixWeekly  = "weekly"
	PrefixWebhook = "webhook"
)

// NewID returns a fresh opaque identifier for members, tasks and reports.
func NewID() string {
	return uuid.NewString()
}
