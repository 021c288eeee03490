package models

import (
	"time"

	"github.com/google/uuid"
)

// Canonical lifecycle state names. States act as a soft lifecycle flag
// referenced by almost every entity, not a validated state machine.
const (
	StateActive   = "Active"
	StateComplete = "Complete"
	StateFailed   = "Failed"
	StateDisabled = "Disabled"
)

// State is a row of the shared lifecycle enumeration.
type State struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
