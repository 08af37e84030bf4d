package dnd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"issueboard/internal/board"
)

// Remote is the server side of a move.
type Remote interface {
	board.Fetcher
	MoveIssue(ctx context.Context, issueID, targetColumnID, sourceColumnID int64) error
}

type Outcome string

const (
	OutcomeMoved    Outcome = "moved"
	OutcomeFailed   Outcome = "failed"
	OutcomeRejected Outcome = "rejected"
	OutcomeSkipped  Outcome = "skipped"
)

var (
	ErrMoveInFlight = errors.New("issue already has a move in flight")
	ErrSameColumn   = errors.New("issue is already in the target column")
)

// MoveRequest asks for an issue to be reassigned. A zero Origin means the
// issue's current placement in the store.
type MoveRequest struct {
	IssueID        int64
	TargetColumnID int64
	Origin         board.Placement
}

type MoveResult struct {
	Outcome        Outcome
	SourceColumnID int64
	// Err is the move failure, if any. Refresh failures are only logged.
	Err error
}

// Engine applies moves optimistically and always finishes with an
// authoritative refresh of the store.
type Engine struct {
	store  *board.Store
	remote Remote
	logger *slog.Logger

	mu       sync.Mutex
	inflight map[int64]struct{}
}

func NewEngine(store *board.Store, remote Remote, logger *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		remote:   remote,
		logger:   logger,
		inflight: make(map[int64]struct{}),
	}
}

// Move runs one move to completion. Once the remote call is issued neither it
// nor the refresh that follows observe ctx cancellation.
func (e *Engine) Move(ctx context.Context, req MoveRequest) MoveResult {
	origin := req.Origin
	if origin.ColumnID == 0 {
		current, ok := e.store.Placement(req.IssueID)
		if !ok {
			return e.record(req, MoveResult{Outcome: OutcomeSkipped, Err: board.ErrUnknownIssue})
		}
		origin = current
	}
	result := MoveResult{SourceColumnID: origin.ColumnID}

	if req.TargetColumnID == origin.ColumnID {
		result.Outcome, result.Err = OutcomeSkipped, ErrSameColumn
		return e.record(req, result)
	}
	if !e.acquire(req.IssueID) {
		result.Outcome, result.Err = OutcomeRejected, ErrMoveInFlight
		return e.record(req, result)
	}
	defer e.release(req.IssueID)

	// Phase one: local guess. A target unknown to the store is left to the
	// server to judge.
	if _, err := e.store.MoveToEnd(req.IssueID, req.TargetColumnID); err != nil {
		e.logger.Debug("optimistic move skipped", "issue_id", req.IssueID, "error", err)
	}

	detached := context.WithoutCancel(ctx)
	moveErr := e.remote.MoveIssue(detached, req.IssueID, req.TargetColumnID, origin.ColumnID)

	// Phase two: the server's board replaces the guess either way.
	if err := e.store.Refresh(detached, e.remote); err != nil {
		e.logger.Warn("board refresh after move failed", "issue_id", req.IssueID, "error", err)
		if moveErr != nil {
			e.revert(req, origin)
		}
	}

	if moveErr != nil {
		result.Outcome, result.Err = OutcomeFailed, fmt.Errorf("move issue %d: %w", req.IssueID, moveErr)
	} else {
		result.Outcome = OutcomeMoved
	}
	return e.record(req, result)
}

// revert restores the cached placement when the server rejected the move and
// no refresh could replace the guess. An issue a later refresh already moved
// elsewhere is left alone.
func (e *Engine) revert(req MoveRequest, origin board.Placement) {
	current, ok := e.store.Placement(req.IssueID)
	if !ok || current.ColumnID != req.TargetColumnID {
		return
	}
	_ = e.store.Place(req.IssueID, origin)
}

func (e *Engine) acquire(issueID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inflight[issueID]; busy {
		return false
	}
	e.inflight[issueID] = struct{}{}
	return true
}

func (e *Engine) release(issueID int64) {
	e.mu.Lock()
	delete(e.inflight, issueID)
	e.mu.Unlock()
}

func (e *Engine) record(req MoveRequest, result MoveResult) MoveResult {
	attrs := []any{
		"issue_id", req.IssueID,
		"source_column_id", result.SourceColumnID,
		"target_column_id", req.TargetColumnID,
		"outcome", string(result.Outcome),
	}
	switch result.Outcome {
	case OutcomeMoved:
		e.logger.Info("issue move", attrs...)
	case OutcomeSkipped:
		e.logger.Info("issue move", append(attrs, "reason", result.Err)...)
	default:
		e.logger.Warn("issue move", append(attrs, "error", result.Err)...)
	}
	return result
}
