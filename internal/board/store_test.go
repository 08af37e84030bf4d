package board_test

import (
	"context"
	"testing"

	"issueboard/internal/api"
	"issueboard/internal/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() api.BoardSnapshot {
	return api.BoardSnapshot{
		Board: api.Board{ID: 1, Name: "My Board"},
		Columns: []api.Column{
			{ID: 30, BoardID: 1, Name: "Done", Order: 3},
			{ID: 10, BoardID: 1, Name: "To Do", Order: 1},
			{ID: 20, BoardID: 1, Name: "In Progress", Order: 2},
		},
		Issues: []api.Issue{
			{ID: 5, ColumnID: 10, Title: "five", Order: 2},
			{ID: 6, ColumnID: 10, Title: "six", Order: 1},
			{ID: 7, ColumnID: 30, Title: "seven", Order: 4},
		},
	}
}

type staticFetcher struct {
	snapshot api.BoardSnapshot
	err      error
}

func (f staticFetcher) FetchBoard(context.Context) (api.BoardSnapshot, error) {
	return f.snapshot, f.err
}

func TestStore_Replace_SortsColumns(t *testing.T) {
	// Arrange
	store := board.NewStore()

	// Act
	store.Replace(sampleSnapshot())

	// Assert
	snapshot := store.Snapshot()
	require.Len(t, snapshot.Columns, 3)
	assert.Equal(t, []int64{10, 20, 30}, []int64{snapshot.Columns[0].ID, snapshot.Columns[1].ID, snapshot.Columns[2].ID})
	assert.True(t, store.Loaded())
	assert.Equal(t, uint64(1), store.Version())
}

func TestStore_Snapshot_IsACopy(t *testing.T) {
	// Arrange
	store := board.NewStore()
	store.Replace(sampleSnapshot())

	// Act
	snapshot := store.Snapshot()
	snapshot.Issues[0].ColumnID = 999

	// Assert
	columnID, ok := store.IssueColumn(snapshot.Issues[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, int64(999), columnID)
}

func TestStore_Lookups(t *testing.T) {
	// Arrange
	store := board.NewStore()
	store.Replace(sampleSnapshot())

	// Act
	columnID, ok := store.IssueColumn(7)
	_, missing := store.IssueColumn(99)
	inTodo := store.IssuesIn(10)

	// Assert
	assert.True(t, ok)
	assert.Equal(t, int64(30), columnID)
	assert.False(t, missing)
	assert.True(t, store.HasColumn(20))
	assert.False(t, store.HasColumn(5))
	require.Len(t, inTodo, 2)
	assert.Equal(t, int64(6), inTodo[0].ID)
	assert.Equal(t, int64(5), inTodo[1].ID)
	assert.Equal(t, 3, store.ColumnCount())
}

func TestStore_MoveToEnd(t *testing.T) {
	// Arrange
	store := board.NewStore()
	store.Replace(sampleSnapshot())

	// Act
	prev, err := store.MoveToEnd(5, 30)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, board.Placement{ColumnID: 10, Order: 2}, prev)
	placement, ok := store.Placement(5)
	require.True(t, ok)
	assert.Equal(t, board.Placement{ColumnID: 30, Order: 5}, placement)
	assert.Equal(t, uint64(1), store.Version())
}

func TestStore_MoveToEnd_Unknown(t *testing.T) {
	// Arrange
	store := board.NewStore()
	store.Replace(sampleSnapshot())

	// Act
	_, issueErr := store.MoveToEnd(99, 30)
	_, columnErr := store.MoveToEnd(5, 99)

	// Assert
	assert.ErrorIs(t, issueErr, board.ErrUnknownIssue)
	assert.ErrorIs(t, columnErr, board.ErrUnknownColumn)
	columnID, _ := store.IssueColumn(5)
	assert.Equal(t, int64(10), columnID)
}

func TestStore_Place(t *testing.T) {
	// Arrange
	store := board.NewStore()
	store.Replace(sampleSnapshot())
	prev, err := store.MoveToEnd(5, 20)
	require.NoError(t, err)

	// Act
	err = store.Place(5, prev)

	// Assert
	require.NoError(t, err)
	placement, _ := store.Placement(5)
	assert.Equal(t, prev, placement)
	assert.ErrorIs(t, store.Place(99, prev), board.ErrUnknownIssue)
}

func TestStore_Refresh(t *testing.T) {
	// Arrange
	store := board.NewStore()
	store.Replace(sampleSnapshot())
	fresh := sampleSnapshot()
	fresh.Issues = fresh.Issues[:1]

	// Act
	failed := store.Refresh(context.Background(), staticFetcher{err: assert.AnError})
	issuesAfterFailure := len(store.Snapshot().Issues)
	err := store.Refresh(context.Background(), staticFetcher{snapshot: fresh})

	// Assert
	assert.ErrorIs(t, failed, assert.AnError)
	assert.Equal(t, 3, issuesAfterFailure)
	require.NoError(t, err)
	assert.Len(t, store.Snapshot().Issues, 1)
	assert.Equal(t, uint64(2), store.Version())
}

func TestIssuesByColumn(t *testing.T) {
	// Act
	grouped := board.IssuesByColumn(sampleSnapshot())

	// Assert
	assert.Len(t, grouped, 3)
	assert.Len(t, grouped[10], 2)
	assert.Empty(t, grouped[20])
	assert.Len(t, grouped[30], 1)
}
