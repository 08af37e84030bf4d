package handler

import (
	"net/http"
	"strings"

	"issueboard/internal/api"
	"issueboard/internal/apierror"

	"github.com/gin-gonic/gin"
)

type ColumnHandler struct {
	boards  BoardStore
	columns ColumnStore
}

func NewColumnHandler(boards BoardStore, columns ColumnStore) *ColumnHandler {
	return &ColumnHandler{boards: boards, columns: columns}
}

// Create appends a column to the caller's board.
//
// @Summary  Create a column
// @Tags     Columns
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body api.CreateColumnRequest true "Column"
// @Success  201 {object} api.Column
// @Failure  400 {object} api.ErrorResponse
// @Failure  404 {object} api.ErrorResponse
// @Router   /columns [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	board, ok := ownedBoard(c, h.boards)
	if !ok {
		return
	}

	var req api.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.Wrap(apierror.Validation, "Column name is required", err))
		return
	}

	column, err := h.columns.Create(c.Request.Context(), board.ID, strings.TrimSpace(req.Name))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toColumnResponse(column))
}

// Rename changes a column's display name.
//
// @Summary  Rename a column
// @Tags     Columns
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id      path int                     true "Column ID"
// @Param    request body api.RenameColumnRequest true "New name"
// @Success  200 {object} api.Column
// @Failure  400 {object} api.ErrorResponse
// @Failure  404 {object} api.ErrorResponse
// @Router   /columns/{id} [patch]
func (h *ColumnHandler) Rename(c *gin.Context) {
	columnID, ok := parseID(c, "column")
	if !ok {
		return
	}
	board, ok := ownedBoard(c, h.boards)
	if !ok {
		return
	}

	var req api.RenameColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.Wrap(apierror.Validation, "Column name is required", err))
		return
	}

	column, err := h.columns.Rename(c.Request.Context(), board.ID, columnID, strings.TrimSpace(req.Name))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toColumnResponse(column))
}

// Delete removes a column together with every issue in it.
//
// @Summary  Delete a column
// @Tags     Columns
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Column ID"
// @Success  200 {object} api.DeleteColumnResponse
// @Failure  404 {object} api.ErrorResponse
// @Router   /columns/{id} [delete]
func (h *ColumnHandler) Delete(c *gin.Context) {
	columnID, ok := parseID(c, "column")
	if !ok {
		return
	}
	board, ok := ownedBoard(c, h.boards)
	if !ok {
		return
	}

	removed, err := h.columns.Delete(c.Request.Context(), board.ID, columnID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.DeleteColumnResponse{
		Message:       "Column deleted successfully",
		DeletedIssues: removed,
	})
}
