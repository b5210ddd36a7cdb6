package services

import "errors"

var (
	// ErrConfirmationRequired gates destructive actions behind an
	// explicit user confirmation step.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrNotFound means the entity is not in the current base list.
	ErrNotFound = errors.New("entity not found")

	// ErrNotPending means a reject was attempted on a non-pending row.
	ErrNotPending = errors.New("entity is not pending")

	// ErrSessionNotFound means the form session was closed or expired.
	ErrSessionNotFound = errors.New("form session not found")

	// ErrViewOnlySession means a view-mode session refused a submit.
	ErrViewOnlySession = errors.New("view sessions cannot be submitted")

	// ErrUnknownKind means the console path named no entity collection.
	ErrUnknownKind = errors.New("unknown entity kind")
)
