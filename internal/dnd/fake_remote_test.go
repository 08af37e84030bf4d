package dnd_test

import (
	"context"
	"sync"

	"issueboard/internal/api"
	"issueboard/internal/apierror"
)

type moveCall struct {
	IssueID        int64
	TargetColumnID int64
	SourceColumnID int64
	CtxErr         error
}

// fakeRemote keeps a server-side board and applies moves to it.
type fakeRemote struct {
	mu       sync.Mutex
	server   api.BoardSnapshot
	moveErr  error
	fetchErr error
	moves    []moveCall
	fetches  int

	// entered and proceed, when set, hold MoveIssue until the test lets it go.
	entered chan struct{}
	proceed chan struct{}
}

func newFakeRemote(server api.BoardSnapshot) *fakeRemote {
	return &fakeRemote{server: server}
}

func (f *fakeRemote) FetchBoard(context.Context) (api.BoardSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return api.BoardSnapshot{}, f.fetchErr
	}
	out := f.server
	out.Columns = append([]api.Column(nil), f.server.Columns...)
	out.Issues = append([]api.Issue(nil), f.server.Issues...)
	return out, nil
}

func (f *fakeRemote) MoveIssue(ctx context.Context, issueID, targetColumnID, sourceColumnID int64) error {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.proceed
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, moveCall{issueID, targetColumnID, sourceColumnID, ctx.Err()})
	if f.moveErr != nil {
		return f.moveErr
	}
	for i := range f.server.Issues {
		if f.server.Issues[i].ID == issueID {
			f.server.Issues[i].ColumnID = targetColumnID
			return nil
		}
	}
	return apierror.New(apierror.NotFound, "Issue not found")
}

func (f *fakeRemote) Moves() []moveCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]moveCall(nil), f.moves...)
}

func (f *fakeRemote) Fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeRemote) setFetchErr(err error) {
	f.mu.Lock()
	f.fetchErr = err
	f.mu.Unlock()
}

const (
	todoID       int64 = 10
	inProgressID int64 = 20
	doneID       int64 = 30
)

// threeColumnBoard is To Do, In Progress, Done with issue 5 in To Do and
// issue 6 in In Progress.
func threeColumnBoard() api.BoardSnapshot {
	return api.BoardSnapshot{
		Board: api.Board{ID: 1, Name: "My Board"},
		Columns: []api.Column{
			{ID: todoID, BoardID: 1, Name: "To Do", Order: 1},
			{ID: inProgressID, BoardID: 1, Name: "In Progress", Order: 2},
			{ID: doneID, BoardID: 1, Name: "Done", Order: 3},
		},
		Issues: []api.Issue{
			{ID: 5, ColumnID: todoID, Title: "five", Order: 1},
			{ID: 6, ColumnID: inProgressID, Title: "six", Order: 1},
		},
	}
}
