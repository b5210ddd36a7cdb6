package models

import "time"

// FormMode tags what a form session was opened for.
type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeEdit   FormMode = "edit"
	ModeView   FormMode = "view"
)

// Valid reports whether m is a recognized mode.
func (m FormMode) Valid() bool {
	return m == ModeCreate || m == ModeEdit || m == ModeView
}

// FormSession is a transient editable copy of one entity's fields. It is
// created fresh on every open, never shares storage with the registry's
// cached entities, and is discarded on close or successful submit.
type FormSession struct {
	ID        string                 `json:"id"`
	Mode      FormMode               `json:"mode"`
	Kind      string                 `json:"kind"`
	Fields    map[string]interface{} `json:"fields"`
	CreatedAt time.Time              `json:"createdAt"`
	TouchedAt time.Time              `json:"touchedAt"`
}

// OpenSessionRequest is the console payload for opening a form session.
type OpenSessionRequest struct {
	Mode     FormMode `json:"mode" binding:"required" validate:"required"`
	Kind     string   `json:"kind" binding:"required" validate:"required"`
	EntityID string   `json:"entityId,omitempty"`
}

// StateChangeRequest carries a cascading state selection change.
type StateChangeRequest struct {
	StateID int `json:"stateId"`
}
