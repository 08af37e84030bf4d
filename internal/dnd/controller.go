package dnd

import (
	"context"
	"log/slog"

	"issueboard/internal/board"
)

// Controller wires a gesture session to the resolver and the engine.
type Controller struct {
	store    *board.Store
	session  *Session
	resolver *Resolver
	engine   *Engine
	logger   *slog.Logger
}

func NewController(store *board.Store, engine *Engine, logger *slog.Logger, opts ...SessionOption) *Controller {
	return &Controller{
		store:    store,
		session:  NewSession(store.Placement, opts...),
		resolver: NewResolver(store),
		engine:   engine,
		logger:   logger,
	}
}

func (c *Controller) Session() *Session { return c.session }

// DraggedOver returns the column the hovered target resolves to while an
// issue is being dragged.
func (c *Controller) DraggedOver() (int64, bool) {
	if c.session.State() != Dragging {
		return 0, false
	}
	target, ok := c.session.Target()
	if !ok {
		return 0, false
	}
	return c.resolver.Resolve(target)
}

// Release ends the gesture and, for a drop onto another column, performs the
// move. The returned MoveResult is nil when no move was attempted.
func (c *Controller) Release(ctx context.Context) (Result, *MoveResult) {
	result := c.session.Release()
	return result, c.Drop(ctx, result)
}

// Drop acts on a finished gesture.
func (c *Controller) Drop(ctx context.Context, result Result) *MoveResult {
	if result.Kind != Drop {
		return nil
	}
	targetColumnID, ok := c.resolver.Resolve(result.Target)
	if !ok {
		c.logger.Debug("drop target not resolved", "issue_id", result.IssueID, "target", result.Target.ID)
		return nil
	}
	if targetColumnID == result.Origin.ColumnID {
		return nil
	}

	move := c.engine.Move(ctx, MoveRequest{
		IssueID:        result.IssueID,
		TargetColumnID: targetColumnID,
		Origin:         result.Origin,
	})
	return &move
}
