package repository_test

import (
	"context"
	"testing"

	"issueboard/internal/model"
	"issueboard/internal/repository"
	"issueboard/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepository_GetOrCreate_SeedsDefaultColumns(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	user := testutil.CreateUser(t, db, "owner@example.com")
	repo := repository.NewBoardRepository(db)

	// Act
	board, created, err := repo.GetOrCreate(context.Background(), user.ID)

	// Assert
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, user.ID, board.OwnerID)
	assert.Equal(t, model.DefaultBoardName, board.Name)

	columns, issues, err := repo.LoadContents(context.Background(), board.ID)
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, columns, 3)
	for i, name := range []string{"To Do", "In Progress", "Done"} {
		assert.Equal(t, name, columns[i].Name)
		assert.Equal(t, i+1, columns[i].Position)
	}
}

func TestBoardRepository_GetOrCreate_IsIdempotent(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	user := testutil.CreateUser(t, db, "owner@example.com")
	repo := repository.NewBoardRepository(db)
	first, _, err := repo.GetOrCreate(context.Background(), user.ID)
	require.NoError(t, err)

	// Act
	second, created, err := repo.GetOrCreate(context.Background(), user.ID)

	// Assert
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var boards, columns int64
	require.NoError(t, db.Model(&model.Board{}).Count(&boards).Error)
	require.NoError(t, db.Model(&model.Column{}).Count(&columns).Error)
	assert.Equal(t, int64(1), boards)
	assert.Equal(t, int64(3), columns)
}

func TestBoardRepository_GetByOwner_NotFound(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	repo := repository.NewBoardRepository(db)

	// Act
	board, err := repo.GetByOwner(context.Background(), uuid.New())

	// Assert
	assert.ErrorIs(t, err, repository.ErrBoardNotFound)
	assert.Nil(t, board)
}

func TestBoardRepository_LoadContents_OnlyOwnBoard(t *testing.T) {
	// Arrange
	db := testutil.OpenDB(t)
	ctx := context.Background()
	boards := repository.NewBoardRepository(db)
	issues := repository.NewIssueRepository(db)

	alice, _, err := boards.GetOrCreate(ctx, testutil.CreateUser(t, db, "alice@example.com").ID)
	require.NoError(t, err)
	bob, _, err := boards.GetOrCreate(ctx, testutil.CreateUser(t, db, "bob@example.com").ID)
	require.NoError(t, err)

	aliceColumns, _, err := boards.LoadContents(ctx, alice.ID)
	require.NoError(t, err)
	bobColumns, _, err := boards.LoadContents(ctx, bob.ID)
	require.NoError(t, err)

	require.NoError(t, issues.Create(ctx, alice.ID, &model.Issue{ColumnID: aliceColumns[2].ID, Title: "second"}))
	require.NoError(t, issues.Create(ctx, alice.ID, &model.Issue{ColumnID: aliceColumns[0].ID, Title: "first"}))
	require.NoError(t, issues.Create(ctx, bob.ID, &model.Issue{ColumnID: bobColumns[0].ID, Title: "not mine"}))

	// Act
	columns, loaded, err := boards.LoadContents(ctx, alice.ID)

	// Assert
	require.NoError(t, err)
	assert.Len(t, columns, 3)
	require.Len(t, loaded, 2)
	for _, issue := range loaded {
		assert.NotEqual(t, "not mine", issue.Title)
	}
}
