package repository_test

import (
	"context"
	"testing"

	"issueboard/internal/model"
	"issueboard/internal/repository"
	"issueboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueRepository_Create_OrdersStrictlyIncrease(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	ctx := context.Background()
	board, columns := seedBoard(t, db, "owner@example.com")
	repo := repository.NewIssueRepository(db)

	// Act
	var created []*model.Issue
	for _, title := range []string{"one", "two", "three"} {
		issue := &model.Issue{ColumnID: columns[0].ID, Title: title}
		require.NoError(t, repo.Create(ctx, board.ID, issue))
		created = append(created, issue)
	}
	require.NoError(t, repo.Delete(ctx, board.ID, created[1].ID))
	last := &model.Issue{ColumnID: columns[0].ID, Title: "four"}
	require.NoError(t, repo.Create(ctx, board.ID, last))

	// Assert
	assert.Equal(t, 1, created[0].Position)
	assert.Equal(t, 2, created[1].Position)
	assert.Equal(t, 3, created[2].Position)
	assert.Equal(t, 4, last.Position)

	_, issues, err := repository.NewBoardRepository(db).LoadContents(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, issues, 3)
	for i := 1; i < len(issues); i++ {
		assert.Greater(t, issues[i].Position, issues[i-1].Position)
	}
}

func TestIssueRepository_Create_PositionsArePerColumn(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	ctx := context.Background()
	board, columns := seedBoard(t, db, "owner@example.com")
	repo := repository.NewIssueRepository(db)
	require.NoError(t, repo.Create(ctx, board.ID, &model.Issue{ColumnID: columns[0].ID, Title: "a"}))

	// Act
	issue := &model.Issue{ColumnID: columns[1].ID, Title: "b"}
	err := repo.Create(ctx, board.ID, issue)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, issue.Position)
}

func TestIssueRepository_Create_ColumnOnOtherBoard(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	board, _ := seedBoard(t, db, "alice@example.com")
	_, otherColumns := seedBoard(t, db, "bob@example.com")
	repo := repository.NewIssueRepository(db)

	// Act
	err := repo.Create(context.Background(), board.ID, &model.Issue{ColumnID: otherColumns[0].ID, Title: "sneaky"})

	// Assert
	assert.ErrorIs(t, err, repository.ErrColumnNotFound)
}

func TestIssueRepository_Move(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	ctx := context.Background()
	board, columns := seedBoard(t, db, "owner@example.com")
	repo := repository.NewIssueRepository(db)

	occupant := &model.Issue{ColumnID: columns[1].ID, Title: "already there"}
	require.NoError(t, repo.Create(ctx, board.ID, occupant))
	issue := &model.Issue{ColumnID: columns[0].ID, Title: "mover"}
	require.NoError(t, repo.Create(ctx, board.ID, issue))

	// Act
	moved, err := repo.Move(ctx, board.ID, issue.ID, columns[1].ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, columns[1].ID, moved.ColumnID)
	assert.Equal(t, 2, moved.Position)
	assert.Equal(t, "mover", moved.Title)

	stored, err := repo.GetOnBoard(ctx, board.ID, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, columns[1].ID, stored.ColumnID)
}

func TestIssueRepository_Move_UnknownColumnLeavesIssue(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	ctx := context.Background()
	board, columns := seedBoard(t, db, "owner@example.com")
	repo := repository.NewIssueRepository(db)
	issue := &model.Issue{ColumnID: columns[0].ID, Title: "stay"}
	require.NoError(t, repo.Create(ctx, board.ID, issue))

	// Act
	moved, err := repo.Move(ctx, board.ID, issue.ID, 999)

	// Assert
	assert.ErrorIs(t, err, repository.ErrColumnNotFound)
	assert.Nil(t, moved)

	stored, err := repo.GetOnBoard(ctx, board.ID, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, columns[0].ID, stored.ColumnID)
}

func TestIssueRepository_Move_UnknownIssue(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	board, columns := seedBoard(t, db, "owner@example.com")
	repo := repository.NewIssueRepository(db)

	// Act
	_, err := repo.Move(context.Background(), board.ID, 999, columns[1].ID)

	// Assert
	assert.ErrorIs(t, err, repository.ErrIssueNotFound)
}

func TestIssueRepository_Update_Partial(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	ctx := context.Background()
	board, columns := seedBoard(t, db, "owner@example.com")
	repo := repository.NewIssueRepository(db)
	description := "original"
	issue := &model.Issue{ColumnID: columns[0].ID, Title: "before", Description: &description}
	require.NoError(t, repo.Create(ctx, board.ID, issue))

	// Act
	title := "after"
	updated, err := repo.Update(ctx, board.ID, issue.ID, repository.IssueUpdate{Title: &title})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, columns[0].ID, updated.ColumnID)
	assert.Equal(t, issue.Position, updated.Position)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "original", *updated.Description)
	assert.False(t, updated.UpdatedAt.Before(issue.UpdatedAt))
}

func TestIssueRepository_Update_BlankDescriptionClears(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	ctx := context.Background()
	board, columns := seedBoard(t, db, "owner@example.com")
	repo := repository.NewIssueRepository(db)
	description := "stale notes"
	issue := &model.Issue{ColumnID: columns[0].ID, Title: "x", Description: &description}
	require.NoError(t, repo.Create(ctx, board.ID, issue))

	// Act
	blank := "  "
	updated, err := repo.Update(ctx, board.ID, issue.ID, repository.IssueUpdate{Description: &blank})

	// Assert
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	stored, err := repo.GetOnBoard(ctx, board.ID, issue.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Description)
	assert.Equal(t, "x", stored.Title)
}

func TestIssueRepository_Update_SameColumnKeepsPosition(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	ctx := context.Background()
	board, columns := seedBoard(t, db, "owner@example.com")
	repo := repository.NewIssueRepository(db)
	issue := &model.Issue{ColumnID: columns[0].ID, Title: "x"}
	require.NoError(t, repo.Create(ctx, board.ID, issue))

	// Act
	updated, err := repo.Update(ctx, board.ID, issue.ID, repository.IssueUpdate{ColumnID: &columns[0].ID})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Position)
}

func TestIssueRepository_Delete_OtherBoard(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	ctx := context.Background()
	board, _ := seedBoard(t, db, "alice@example.com")
	otherBoard, otherColumns := seedBoard(t, db, "bob@example.com")
	repo := repository.NewIssueRepository(db)
	issue := &model.Issue{ColumnID: otherColumns[0].ID, Title: "bob's"}
	require.NoError(t, repo.Create(ctx, otherBoard.ID, issue))

	// Act
	err := repo.Delete(ctx, board.ID, issue.ID)

	// Assert
	assert.ErrorIs(t, err, repository.ErrIssueNotFound)
	_, err = repo.GetOnBoard(ctx, otherBoard.ID, issue.ID)
	assert.NoError(t, err)
}
