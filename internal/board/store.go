// Package board keeps the client's in-memory copy of the board and the
// direct edit actions that change it.
package board

import (
	"context"
	"errors"
	"sort"
	"sync"

	"issueboard/internal/api"
)

var (
	ErrUnknownIssue  = errors.New("issue not in board snapshot")
	ErrUnknownColumn = errors.New("column not in board snapshot")
)

// Placement is where an issue sits: its column and its order inside it.
type Placement struct {
	ColumnID int64
	Order    int
}

// Fetcher returns the authoritative board.
type Fetcher interface {
	FetchBoard(ctx context.Context) (api.BoardSnapshot, error)
}

// Store holds the current board snapshot. It is replaced wholesale by
// Refresh; the only partial write is Place, used for optimistic moves.
type Store struct {
	mu       sync.RWMutex
	snapshot api.BoardSnapshot
	loaded   bool
	version  uint64
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new snapshot. Columns are kept sorted by order.
func (s *Store) Replace(snapshot api.BoardSnapshot) {
	snapshot = clone(snapshot)
	sort.SliceStable(snapshot.Columns, func(i, j int) bool {
		return snapshot.Columns[i].Order < snapshot.Columns[j].Order
	})

	s.mu.Lock()
	s.snapshot = snapshot
	s.loaded = true
	s.version++
	s.mu.Unlock()
}

// Refresh fetches the board and replaces the snapshot with it. On error the
// snapshot is left untouched.
func (s *Store) Refresh(ctx context.Context, f Fetcher) error {
	snapshot, err := f.FetchBoard(ctx)
	if err != nil {
		return err
	}
	s.Replace(snapshot)
	return nil
}

// Snapshot returns a copy of the current board.
func (s *Store) Snapshot() api.BoardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.snapshot)
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Version increases by one on every Replace.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Column(id int64) (api.Column, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, column := range s.snapshot.Columns {
		if column.ID == id {
			return column, true
		}
	}
	return api.Column{}, false
}

func (s *Store) Issue(id int64) (api.Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.issueIndex(id); i >= 0 {
		return s.snapshot.Issues[i], true
	}
	return api.Issue{}, false
}

func (s *Store) HasColumn(id int64) bool {
	_, ok := s.Column(id)
	return ok
}

// IssueColumn returns the column the issue currently sits in.
func (s *Store) IssueColumn(id int64) (int64, bool) {
	issue, ok := s.Issue(id)
	return issue.ColumnID, ok
}

func (s *Store) Placement(issueID int64) (Placement, bool) {
	issue, ok := s.Issue(issueID)
	if !ok {
		return Placement{}, false
	}
	return Placement{ColumnID: issue.ColumnID, Order: issue.Order}, true
}

// IssuesIn returns the column's issues sorted by order.
func (s *Store) IssuesIn(columnID int64) []api.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return issuesIn(s.snapshot.Issues, columnID)
}

// ColumnCount reports how many columns the board has.
func (s *Store) ColumnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshot.Columns)
}

// MoveToEnd reassigns an issue to the end of columnID and returns where it
// was before.
func (s *Store) MoveToEnd(issueID, columnID int64) (Placement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.issueIndex(issueID)
	if i < 0 {
		return Placement{}, ErrUnknownIssue
	}
	if !s.hasColumn(columnID) {
		return Placement{}, ErrUnknownColumn
	}

	issue := &s.snapshot.Issues[i]
	prev := Placement{ColumnID: issue.ColumnID, Order: issue.Order}
	if issue.ColumnID == columnID {
		return prev, nil
	}

	next := 1
	for _, other := range s.snapshot.Issues {
		if other.ColumnID == columnID && other.Order >= next {
			next = other.Order + 1
		}
	}
	issue.ColumnID = columnID
	issue.Order = next
	return prev, nil
}

// Place puts an issue back at an exact placement.
func (s *Store) Place(issueID int64, p Placement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.issueIndex(issueID)
	if i < 0 {
		return ErrUnknownIssue
	}
	s.snapshot.Issues[i].ColumnID = p.ColumnID
	s.snapshot.Issues[i].Order = p.Order
	return nil
}

func (s *Store) issueIndex(id int64) int {
	for i, issue := range s.snapshot.Issues {
		if issue.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) hasColumn(id int64) bool {
	for _, column := range s.snapshot.Columns {
		if column.ID == id {
			return true
		}
	}
	return false
}

func issuesIn(issues []api.Issue, columnID int64) []api.Issue {
	var out []api.Issue
	for _, issue := range issues {
		if issue.ColumnID == columnID {
			out = append(out, issue)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// IssuesByColumn groups a snapshot's issues by column, each group sorted by
// order.
func IssuesByColumn(snapshot api.BoardSnapshot) map[int64][]api.Issue {
	grouped := make(map[int64][]api.Issue, len(snapshot.Columns))
	for _, column := range snapshot.Columns {
		grouped[column.ID] = issuesIn(snapshot.Issues, column.ID)
	}
	return grouped
}

func clone(snapshot api.BoardSnapshot) api.BoardSnapshot {
	out := snapshot
	out.Columns = append([]api.Column(nil), snapshot.Columns...)
	out.Issues = append([]api.Issue(nil), snapshot.Issues...)
	return out
}
