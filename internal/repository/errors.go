package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when the caller has no board yet
	ErrBoardNotFound = errors.New("board not found")

	// ErrColumnNotFound is returned when a column is absent or belongs to another board
	ErrColumnNotFound = errors.New("column not found")

	// ErrIssueNotFound is returned when an issue is absent or belongs to another board
	ErrIssueNotFound = errors.New("issue not found")

	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")
)
