package types

import "errors"

var (
	// ErrMalformedEntry marks a 7-line group that did not close cleanly. Never returned to callers.
	ErrMalformedEntry = errors.New("malformed timesheet entry")

	ErrInvalidFormat     = errors.New("invalid date or time format")
	ErrUnmappedLocation  = errors.New("location has no branch code")
	ErrDistanceLookup    = errors.New("branch code missing from mileage chart")
	ErrEmptyInput        = errors.New("timesheet text is empty")
	ErrUnsupportedFormat = errors.New("unsupported export format")

	ErrInvalidChart    = errors.New("invalid mileage chart")
	ErrInvalidBranches = errors.New("invalid branch directory")

	ErrReportNotFound = errors.New("report not found")
	ErrReportExists   = errors.New("report already archived")
	ErrDatabaseFailed = errors.New("database operation failed")
	ErrNotFound       = errors.New("requested item not found")

	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
