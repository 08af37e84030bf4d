package handler

import (
	"log/slog"
	"net/http"

	"issueboard/internal/api"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards BoardStore
	logger *slog.Logger
}

func NewBoardHandler(boards BoardStore, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{boards: boards, logger: logger}
}

// Get returns the caller's whole board, creating and seeding it on first access.
//
// @Summary  Get the board
// @Tags     Board
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} api.BoardSnapshot
// @Failure  401 {object} api.ErrorResponse
// @Router   /board [get]
func (h *BoardHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	board, created, err := h.boards.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if created {
		h.logger.Info("board created", "board_id", board.ID, "owner_id", userID.String())
	}

	columns, issues, err := h.boards.LoadContents(c.Request.Context(), board.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	snapshot := api.BoardSnapshot{
		Board:   toBoardResponse(board),
		Columns: make([]api.Column, len(columns)),
		Issues:  make([]api.Issue, len(issues)),
	}
	for i := range columns {
		snapshot.Columns[i] = toColumnResponse(&columns[i])
	}
	for i := range issues {
		snapshot.Issues[i] = toIssueResponse(&issues[i])
	}

	c.JSON(http.StatusOK, snapshot)
}
