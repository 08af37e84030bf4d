package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"issueboard/internal/api"
	"issueboard/internal/apierror"
	"issueboard/internal/middleware"
	"issueboard/internal/model"
	"issueboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

// BoardStore is the board persistence the handlers rely on.
type BoardStore interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Board, error)
	GetOrCreate(ctx context.Context, ownerID uuid.UUID) (*model.Board, bool, error)
	LoadContents(ctx context.Context, boardID int64) ([]model.Column, []model.Issue, error)
}

type ColumnStore interface {
	Create(ctx context.Context, boardID int64, name string) (*model.Column, error)
	Rename(ctx context.Context, boardID, id int64, name string) (*model.Column, error)
	Delete(ctx context.Context, boardID, id int64) (int64, error)
}

type IssueStore interface {
	Create(ctx context.Context, boardID int64, issue *model.Issue) error
	Update(ctx context.Context, boardID, id int64, upd repository.IssueUpdate) (*model.Issue, error)
	Move(ctx context.Context, boardID, id, targetColumnID int64) (*model.Issue, error)
	Delete(ctx context.Context, boardID, id int64) error
}

var (
	_ BoardStore  = (*repository.BoardRepository)(nil)
	_ ColumnStore = (*repository.ColumnRepository)(nil)
	_ IssueStore  = (*repository.IssueRepository)(nil)
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by the request
// types in package api on gin's validator. It panics if a tag cannot be
// registered.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("handler: gin binding engine is not a *validator.Validate")
		}
		if err := RegisterValidations(v); err != nil {
			panic(fmt.Sprintf("handler: %v", err))
		}
	})
}

// RegisterValidations adds the custom tags to v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	return nil
}

// toAPIError maps repository sentinels onto the public taxonomy.
func toAPIError(err error) *apierror.Error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, repository.ErrBoardNotFound):
		return apierror.Wrap(apierror.NotFound, "Board not found", err)
	case errors.Is(err, repository.ErrColumnNotFound):
		return apierror.Wrap(apierror.NotFound, "Column not found", err)
	case errors.Is(err, repository.ErrIssueNotFound):
		return apierror.Wrap(apierror.NotFound, "Issue not found", err)
	default:
		return apierror.Wrap(apierror.Internal, "Internal server error", err)
	}
}

func respondError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	if apiErr.Kind == apierror.Internal {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(apiErr.Kind.Status(), api.ErrorResponse{Error: apiErr.Message})
}

// currentUser answers 401 itself when the request carries no identity.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, apierror.New(apierror.Unauthorized, "Unauthorized"))
		return uuid.Nil, false
	}
	return userID, true
}

// ownedBoard loads the caller's board; it never creates one.
func ownedBoard(c *gin.Context, boards BoardStore) (*model.Board, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	board, err := boards.GetByOwner(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return board, true
}

func parseID(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, apierror.New(apierror.Validation, "Invalid "+what+" ID"))
		return 0, false
	}
	return id, true
}

func toBoardResponse(board *model.Board) api.Board {
	return api.Board{
		ID:        board.ID,
		OwnerID:   board.OwnerID.String(),
		Name:      board.Name,
		CreatedAt: board.CreatedAt,
	}
}

func toColumnResponse(column *model.Column) api.Column {
	return api.Column{
		ID:      column.ID,
		BoardID: column.BoardID,
		Name:    column.Name,
		Order:   column.Position,
	}
}

func toIssueResponse(issue *model.Issue) api.Issue {
	return api.Issue{
		ID:          issue.ID,
		ColumnID:    issue.ColumnID,
		Title:       issue.Title,
		Description: issue.Description,
		Order:       issue.Position,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
}
