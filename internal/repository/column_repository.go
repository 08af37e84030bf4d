package repository

import (
	"context"
	"errors"

	"issueboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

// Create appends a column to the board, one past the current highest position.
func (r *ColumnRepository) Create(ctx context.Context, boardID int64, name string) (*model.Column, error) {
	column := &model.Column{BoardID: boardID, Name: name}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize position allocation per board.
		var board model.Board
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&board, boardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoardNotFound
			}
			return err
		}
		maxPosition, err := maxColumnPosition(tx, boardID)
		if err != nil {
			return err
		}
		column.Position = maxPosition + 1
		return tx.Create(column).Error
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

// GetOnBoard returns the column only if it belongs to boardID.
func (r *ColumnRepository) GetOnBoard(ctx context.Context, boardID, id int64) (*model.Column, error) {
	return findColumnOnBoard(r.db.WithContext(ctx), boardID, id)
}

func (r *ColumnRepository) Rename(ctx context.Context, boardID, id int64, name string) (*model.Column, error) {
	column, err := r.GetOnBoard(ctx, boardID, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(column).Update("name", name).Error; err != nil {
		return nil, err
	}
	column.Name = name
	return column, nil
}

// Delete removes the column and every issue assigned to it in one
// transaction. It returns how many issues went with it.
func (r *ColumnRepository) Delete(ctx context.Context, boardID, id int64) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findColumnOnBoard(tx, boardID, id); err != nil {
			return err
		}
		result := tx.Where("column_id = ?", id).Delete(&model.Issue{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		result = tx.Delete(&model.Column{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrColumnNotFound
		}
		return nil
	})
	return removed, err
}

func findColumnOnBoard(db *gorm.DB, boardID, id int64) (*model.Column, error) {
	var column model.Column
	if err := db.Where("id = ? AND board_id = ?", id, boardID).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}

func maxColumnPosition(db *gorm.DB, boardID int64) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := db.Model(&model.Column{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("board_id = ?", boardID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}
