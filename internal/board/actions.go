package board

import (
	"context"
	"log/slog"
	"strings"

	"issueboard/internal/api"
	"issueboard/internal/apierror"
)

// Remote is the part of the API the direct edit actions call.
type Remote interface {
	Fetcher
	CreateColumn(ctx context.Context, name string) (*api.Column, error)
	RenameColumn(ctx context.Context, id int64, name string) (*api.Column, error)
	DeleteColumn(ctx context.Context, id int64) (*api.DeleteColumnResponse, error)
	CreateIssue(ctx context.Context, req api.CreateIssueRequest) (*api.Issue, error)
	UpdateIssue(ctx context.Context, id int64, req api.UpdateIssueRequest) (*api.Issue, error)
	DeleteIssue(ctx context.Context, id int64) error
}

// Actions performs direct edits. Each successful edit is followed by a full
// refresh of the store; failures are returned as is and never retried.
type Actions struct {
	store  *Store
	remote Remote
	logger *slog.Logger
}

func NewActions(store *Store, remote Remote, logger *slog.Logger) *Actions {
	return &Actions{store: store, remote: remote, logger: logger}
}

// Refresh reloads the whole board from the server.
func (a *Actions) Refresh(ctx context.Context) error {
	return a.store.Refresh(ctx, a.remote)
}

func (a *Actions) AddColumn(ctx context.Context, name string) (*api.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierror.New(apierror.Validation, "Column name is required")
	}
	column, err := a.remote.CreateColumn(ctx, name)
	if err != nil {
		return nil, err
	}
	return column, a.refresh(ctx, "add column")
}

func (a *Actions) RenameColumn(ctx context.Context, id int64, name string) (*api.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierror.New(apierror.Validation, "Column name is required")
	}
	column, err := a.remote.RenameColumn(ctx, id, name)
	if err != nil {
		return nil, err
	}
	return column, a.refresh(ctx, "rename column")
}

// CanDeleteColumn reports whether a column may be removed: the board must
// keep at least one.
func (a *Actions) CanDeleteColumn() bool {
	return a.store.ColumnCount() > 1
}

// DeleteColumn removes a column with all of its issues.
func (a *Actions) DeleteColumn(ctx context.Context, id int64) (*api.DeleteColumnResponse, error) {
	if a.store.Loaded() && a.store.HasColumn(id) && !a.CanDeleteColumn() {
		return nil, apierror.New(apierror.Validation, "A board needs at least one column")
	}
	resp, err := a.remote.DeleteColumn(ctx, id)
	if err != nil {
		return nil, err
	}
	return resp, a.refresh(ctx, "delete column")
}

func (a *Actions) AddIssue(ctx context.Context, columnID int64, title string, description *string) (*api.Issue, error) {
	title = strings.TrimSpace(title)
	if title == "" || columnID == 0 {
		return nil, apierror.New(apierror.Validation, "Title and columnId are required")
	}
	issue, err := a.remote.CreateIssue(ctx, api.CreateIssueRequest{
		Title:       title,
		Description: description,
		ColumnID:    columnID,
	})
	if err != nil {
		return nil, err
	}
	return issue, a.refresh(ctx, "add issue")
}

func (a *Actions) EditIssue(ctx context.Context, id int64, req api.UpdateIssueRequest) (*api.Issue, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apierror.New(apierror.Validation, "Title cannot be empty")
		}
		req.Title = &title
	}
	issue, err := a.remote.UpdateIssue(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return issue, a.refresh(ctx, "edit issue")
}

func (a *Actions) DeleteIssue(ctx context.Context, id int64) error {
	if err := a.remote.DeleteIssue(ctx, id); err != nil {
		return err
	}
	return a.refresh(ctx, "delete issue")
}

func (a *Actions) refresh(ctx context.Context, action string) error {
	if err := a.store.Refresh(ctx, a.remote); err != nil {
		a.logger.Warn("board refresh failed", "action", action, "error", err)
		return err
	}
	return nil
}
