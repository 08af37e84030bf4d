package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"issueboard/internal/api"
	"issueboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnHandler_Create(t *testing.T) {
	// Arrange
	env := newBoardEnv(t)
	board := env.snapshot(t)

	// Act
	resp := env.do(http.MethodPost, "/columns", api.CreateColumnRequest{Name: "Review"})

	// Assert
	require.Equal(t, http.StatusCreated, resp.Code)
	var column api.Column
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &column))
	assert.Equal(t, "Review", column.Name)
	assert.Equal(t, 4, column.Order)
	assert.Equal(t, board.Board.ID, column.BoardID)
}

func TestColumnHandler_Create_WithoutBoard(t *testing.T) {
	// Arrange
	env := newBoardEnv(t)

	// Act
	resp := env.do(http.MethodPost, "/columns", api.CreateColumnRequest{Name: "Review"})

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Board not found", decodeError(t, resp))
}

func TestColumnHandler_Create_BlankName(t *testing.T) {
	// Arrange
	env := newBoardEnv(t)
	env.snapshot(t)

	// Act
	resp := env.do(http.MethodPost, "/columns", map[string]string{"name": "   "})

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Column name is required", decodeError(t, resp))
}

func TestColumnHandler_Rename(t *testing.T) {
	// Arrange
	env := newBoardEnv(t)
	board := env.snapshot(t)
	target := board.Columns[1]

	// Act
	resp := env.do(http.MethodPatch, fmt.Sprintf("/columns/%d", target.ID), api.RenameColumnRequest{Name: "Doing"})

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)
	var column api.Column
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &column))
	assert.Equal(t, "Doing", column.Name)
	assert.Equal(t, target.Order, column.Order)
	assert.Equal(t, "Doing", env.snapshot(t).Columns[1].Name)
}

func TestColumnHandler_Rename_Errors(t *testing.T) {
	env := newBoardEnv(t)
	board := env.snapshot(t)

	tests := []struct {
		name    string
		path    string
		body    any
		status  int
		message string
	}{
		{"non-numeric id", "/columns/abc", api.RenameColumnRequest{Name: "x"}, http.StatusBadRequest, "Invalid column ID"},
		{"unknown column", "/columns/9999", api.RenameColumnRequest{Name: "x"}, http.StatusNotFound, "Column not found"},
		{"empty name", fmt.Sprintf("/columns/%d", board.Columns[0].ID), map[string]string{"name": ""}, http.StatusBadRequest, "Column name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			resp := env.do(http.MethodPatch, tt.path, tt.body)

			// Assert
			assert.Equal(t, tt.status, resp.Code)
			assert.Equal(t, tt.message, decodeError(t, resp))
		})
	}
}

func TestColumnHandler_Delete_Cascades(t *testing.T) {
	// Arrange
	env := newBoardEnv(t)
	board := env.snapshot(t)
	doomed := board.Columns[0]
	for _, title := range []string{"a", "b"} {
		resp := env.do(http.MethodPost, "/issues", api.CreateIssueRequest{Title: title, ColumnID: doomed.ID})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	// Act
	resp := env.do(http.MethodDelete, fmt.Sprintf("/columns/%d", doomed.ID), nil)

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)
	var body api.DeleteColumnResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.DeletedIssues)

	after := env.snapshot(t)
	assert.Len(t, after.Columns, 2)
	assert.Empty(t, after.Issues)

	var orphans int64
	require.NoError(t, env.db.Model(&model.Issue{}).Count(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestColumnHandler_Delete_Unknown(t *testing.T) {
	// Arrange
	env := newBoardEnv(t)
	env.snapshot(t)

	// Act
	resp := env.do(http.MethodDelete, "/columns/9999", nil)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Len(t, env.snapshot(t).Columns, 3)
}
