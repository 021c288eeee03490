package models

import (
	"time"

	"github.com/google/uuid"
)

// ActionType names a distinct auditable operation. One row per name,
// provisioned once and immutable afterwards.
type ActionType struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StateID   uuid.UUID `json:"state_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Action is one audit-trail row: a single logged operation attempt from
// open to terminal outcome. Rows are never deleted.
//
// Reference is globally unique and derived from the previous row's
// reference; (action_type_id, reference) is additionally unique as
// defense-in-depth.
type Action struct {
	ID               uuid.UUID              `json:"id"`
	UserID           *uuid.UUID             `json:"user_id,omitempty"`
	ActionTypeID     uuid.UUID              `json:"action_type_id"`
	Reference        string                 `json:"reference"`
	SourceIP         *string                `json:"source_ip,omitempty"`
	Request          map[string]interface{} `json:"request,omitempty"`
	StatusCode       string                 `json:"status_code"`
	Trace            string                 `json:"trace"`
	Description      string                 `json:"description,omitempty"`
	IsClientViewable bool                   `json:"is_client_viewable"`
	StateID          uuid.UUID              `json:"state_id"`
	Synced           bool                   `json:"-"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ActionDetail is an Action joined with the names callers actually want to
// read in an audit listing.
type ActionDetail struct {
	Action

	ActionTypeName string  `json:"action_type"`
	StateName      string  `json:"state"`
	Username       *string `json:"user,omitempty"`
}
