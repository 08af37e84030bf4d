package repository

import (
	"context"
	"errors"
	"fmt"

	"issueboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// GetByOwner returns the board owned by ownerID or ErrBoardNotFound.
func (r *BoardRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

// GetOrCreate returns the owner's board, creating it with the default columns
// on first access. created reports whether this call seeded the board.
func (r *BoardRepository) GetOrCreate(ctx context.Context, ownerID uuid.UUID) (board *model.Board, created bool, err error) {
	board, err = r.GetByOwner(ctx, ownerID)
	if err == nil {
		return board, false, nil
	}
	if !errors.Is(err, ErrBoardNotFound) {
		return nil, false, err
	}

	board = &model.Board{OwnerID: ownerID, Name: model.DefaultBoardName}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		columns := make([]model.Column, len(model.DefaultColumnNames))
		for i, name := range model.DefaultColumnNames {
			columns[i] = model.Column{BoardID: board.ID, Name: name, Position: i + 1}
		}
		return tx.Create(&columns).Error
	})
	if err != nil {
		// A concurrent first access may have won the unique owner index.
		if existing, getErr := r.GetByOwner(ctx, ownerID); getErr == nil {
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create board: %w", err)
	}
	return board, true, nil
}

// LoadContents returns the board's columns ordered by position and every
// issue assigned to them.
func (r *BoardRepository) LoadContents(ctx context.Context, boardID int64) ([]model.Column, []model.Issue, error) {
	var columns []model.Column
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position").Order("id").
		Find(&columns).Error; err != nil {
		return nil, nil, err
	}

	var issues []model.Issue
	if err := r.db.WithContext(ctx).
		Select("issues.*").
		Joins("JOIN columns ON columns.id = issues.column_id").
		Where("columns.board_id = ?", boardID).
		Order("issues.position").Order("issues.id").
		Find(&issues).Error; err != nil {
		return nil, nil, err
	}
	return columns, issues, nil
}
