package app

import "errors"

// Sentinel error kinds for the service facade.
var (
	// ErrNoData means no pipeline run has completed yet.
	ErrNoData = errors.New("no data loaded")

	// ErrMemberNotFound means the requested email has no merged rows.
	ErrMemberNotFound = errors.New("member not found")

	// ErrValidation means a source table is missing required columns.
	ErrValidation = errors.New("validation failed")
)
