package dtos

import "time"

// ActionData is the API view of one audit row.
type ActionData struct {
	ID          string         `json:"id"`
	Reference   string         `json:"reference"`
	SourceIP    *string        `json:"source_ip"`
	Request     map[string]any `json:"request,omitempty"`
	Code        string         `json:"code"`
	Trace       string         `json:"trace"`
	Description string         `json:"description"`
	User        *string        `json:"user"`
	ActionType  string         `json:"action_type"`
	State       string         `json:"state"`
	CreatedAt   time.Time      `json:"date_created"`
	UpdatedAt   time.Time      `json:"date_modified"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
