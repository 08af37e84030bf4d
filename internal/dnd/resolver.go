package dnd

import (
	"strconv"
	"strings"
)

type HintType string

const (
	HintColumn HintType = "column"
	HintIssue  HintType = "issue"
)

// Hint is optional data attached to a drop target. A zero ColumnID means
// unset.
type Hint struct {
	Type     HintType
	ColumnID int64
}

// Target is what the pointer is over: an identifier that may name a column
// or an issue, plus an optional hint.
type Target struct {
	ID   string
	Hint *Hint
}

// Lookup answers questions about the current board.
type Lookup interface {
	HasColumn(id int64) bool
	IssueColumn(id int64) (int64, bool)
}

// ResolveFunc maps a target to a column id, reporting false when it does not
// apply.
type ResolveFunc func(board Lookup, target Target) (int64, bool)

// ByColumnID matches an identifier naming a known column.
func ByColumnID(board Lookup, target Target) (int64, bool) {
	id, ok := parseID(target.ID)
	if !ok || !board.HasColumn(id) {
		return 0, false
	}
	return id, true
}

// ByIssueID matches an identifier naming a known issue and answers with that
// issue's column.
func ByIssueID(board Lookup, target Target) (int64, bool) {
	id, ok := parseID(target.ID)
	if !ok {
		return 0, false
	}
	return board.IssueColumn(id)
}

// ByHintType trusts a hint declaring the target a column and reads the
// identifier as its id.
func ByHintType(_ Lookup, target Target) (int64, bool) {
	if target.Hint == nil || target.Hint.Type != HintColumn {
		return 0, false
	}
	return parseID(target.ID)
}

// ByHintColumn uses the column id carried by the hint.
func ByHintColumn(_ Lookup, target Target) (int64, bool) {
	if target.Hint == nil || target.Hint.ColumnID <= 0 {
		return 0, false
	}
	return target.Hint.ColumnID, true
}

// DefaultChain is the resolution order: column, issue, hint type, hint column.
func DefaultChain() []ResolveFunc {
	return []ResolveFunc{ByColumnID, ByIssueID, ByHintType, ByHintColumn}
}

type Resolver struct {
	board Lookup
	chain []ResolveFunc
}

// NewResolver uses DefaultChain when no functions are given.
func NewResolver(board Lookup, chain ...ResolveFunc) *Resolver {
	if len(chain) == 0 {
		chain = DefaultChain()
	}
	return &Resolver{board: board, chain: chain}
}

// Resolve returns the column of the first function in the chain that
// matches. Malformed identifiers match nothing.
func (r *Resolver) Resolve(target Target) (int64, bool) {
	for _, fn := range r.chain {
		if id, ok := fn(r.board, target); ok {
			return id, true
		}
	}
	return 0, false
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
