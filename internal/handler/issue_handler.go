package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"issueboard/internal/api"
	"issueboard/internal/apierror"
	"issueboard/internal/model"
	"issueboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	boards BoardStore
	issues IssueStore
	logger *slog.Logger
}

func NewIssueHandler(boards BoardStore, issues IssueStore, logger *slog.Logger) *IssueHandler {
	return &IssueHandler{boards: boards, issues: issues, logger: logger}
}

// Create adds an issue at the end of a column.
//
// @Summary  Create an issue
// @Tags     Issues
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body api.CreateIssueRequest true "Issue"
// @Success  201 {object} api.Issue
// @Failure  400 {object} api.ErrorResponse
// @Failure  404 {object} api.ErrorResponse
// @Router   /issues [post]
func (h *IssueHandler) Create(c *gin.Context) {
	board, ok := ownedBoard(c, h.boards)
	if !ok {
		return
	}

	var req api.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.Wrap(apierror.Validation, "Title and columnId are required", err))
		return
	}

	issue := &model.Issue{
		ColumnID:    req.ColumnID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}
	if err := h.issues.Create(c.Request.Context(), board.ID, issue); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toIssueResponse(issue))
}

// Update applies a partial update to an issue.
//
// @Summary  Update an issue
// @Tags     Issues
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id      path int                    true "Issue ID"
// @Param    request body api.UpdateIssueRequest true "Fields to change"
// @Success  200 {object} api.Issue
// @Failure  400 {object} api.ErrorResponse
// @Failure  404 {object} api.ErrorResponse
// @Router   /issues/{id} [patch]
func (h *IssueHandler) Update(c *gin.Context) {
	issueID, ok := parseID(c, "issue")
	if !ok {
		return
	}
	board, ok := ownedBoard(c, h.boards)
	if !ok {
		return
	}

	var req api.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.Wrap(apierror.Validation, "Invalid request", err))
		return
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			respondError(c, apierror.New(apierror.Validation, "Title cannot be empty"))
			return
		}
		req.Title = &title
	}

	issue, err := h.issues.Update(c.Request.Context(), board.ID, issueID, repository.IssueUpdate{
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toIssueResponse(issue))
}

// Move reassigns an issue to another column.
//
// @Summary  Move an issue
// @Tags     Issues
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id      path int                  true "Issue ID"
// @Param    request body api.MoveIssueRequest true "Target column"
// @Success  200 {object} api.MoveIssueResponse
// @Failure  400 {object} api.ErrorResponse
// @Failure  404 {object} api.ErrorResponse
// @Router   /issues/{id}/move [patch]
func (h *IssueHandler) Move(c *gin.Context) {
	issueID, ok := parseID(c, "issue")
	if !ok {
		return
	}
	board, ok := ownedBoard(c, h.boards)
	if !ok {
		return
	}

	var req api.MoveIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.Wrap(apierror.Validation, "Target column ID is required", err))
		return
	}

	log := h.logger.With(
		"issue_id", issueID,
		"source_column_id", req.SourceColumnID,
		"target_column_id", req.TargetColumnID,
	)
	log.Info("🔄 moving issue")

	issue, err := h.issues.Move(c.Request.Context(), board.ID, issueID, req.TargetColumnID)
	if err != nil {
		log.Warn("❌ move failed", "error", err)
		respondError(c, err)
		return
	}
	log.Info("✅ issue moved")

	c.JSON(http.StatusOK, api.MoveIssueResponse{
		Success: true,
		Message: fmt.Sprintf("Issue moved from column %d to column %d", req.SourceColumnID, req.TargetColumnID),
		Issue:   toIssueResponse(issue),
	})
}

// Delete removes an issue.
//
// @Summary  Delete an issue
// @Tags     Issues
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Issue ID"
// @Success  200 {object} api.MessageResponse
// @Failure  404 {object} api.ErrorResponse
// @Router   /issues/{id} [delete]
func (h *IssueHandler) Delete(c *gin.Context) {
	issueID, ok := parseID(c, "issue")
	if !ok {
		return
	}
	board, ok := ownedBoard(c, h.boards)
	if !ok {
		return
	}

	if err := h.issues.Delete(c.Request.Context(), board.ID, issueID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Issue deleted successfully"})
}
