// Package api defines the JSON bodies exchanged between the board server and
// its clients.
package api

import "time"

type Board struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Column struct {
	ID      int64  `json:"id"`
	BoardID int64  `json:"boardId"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
}

type Issue struct {
	ID          int64     `json:"id"`
	ColumnID    int64     `json:"columnId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BoardSnapshot is the whole board as returned by GET /board. Columns are
// ascending by order.
type BoardSnapshot struct {
	Board   Board    `json:"board"`
	Columns []Column `json:"columns"`
	Issues  []Issue  `json:"issues"`
}

type CreateColumnRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

type RenameColumnRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

type CreateIssueRequest struct {
	Title       string  `json:"title" binding:"required,notblank"`
	Description *string `json:"description"`
	ColumnID    int64   `json:"columnId" binding:"required"`
}

// UpdateIssueRequest is a partial update; nil fields are left unchanged. An
// empty description clears it.
type UpdateIssueRequest struct {
	ColumnID    *int64  `json:"columnId,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type MoveIssueRequest struct {
	TargetColumnID int64 `json:"targetColumnId" binding:"required"`
	SourceColumnID int64 `json:"sourceColumnId"`
}

type MoveIssueResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Issue   Issue  `json:"issue"`
}

type DeleteColumnResponse struct {
	Message       string `json:"message"`
	DeletedIssues int64  `json:"deletedIssues"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
