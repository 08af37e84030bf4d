package repository

import (
	"context"
	"errors"
	"strings"

	"issueboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// IssueUpdate carries the fields of a partial update; nil means unchanged.
// A blank Description clears the stored one.
type IssueUpdate struct {
	ColumnID    *int64
	Title       *string
	Description *string
}

// Create adds the issue at the end of its column. The column must belong to boardID.
func (r *IssueRepository) Create(ctx context.Context, boardID int64, issue *model.Issue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		position, err := nextIssuePosition(tx, boardID, issue.ColumnID)
		if err != nil {
			return err
		}
		issue.Position = position
		return tx.Create(issue).Error
	})
}

// GetOnBoard retrieves an issue only if its column belongs to boardID
func (r *IssueRepository) GetOnBoard(ctx context.Context, boardID, id int64) (*model.Issue, error) {
	return findIssueOnBoard(r.db.WithContext(ctx), boardID, id)
}

// Update applies a partial update and always refreshes UpdatedAt. A column
// change appends the issue to the end of the target column.
func (r *IssueRepository) Update(ctx context.Context, boardID, id int64, upd IssueUpdate) (*model.Issue, error) {
	var issue *model.Issue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		issue, err = findIssueOnBoard(tx, boardID, id)
		if err != nil {
			return err
		}

		if upd.ColumnID != nil && *upd.ColumnID != issue.ColumnID {
			position, err := nextIssuePosition(tx, boardID, *upd.ColumnID)
			if err != nil {
				return err
			}
			issue.ColumnID = *upd.ColumnID
			issue.Position = position
		}
		if upd.Title != nil {
			issue.Title = *upd.Title
		}
		if upd.Description != nil {
			if strings.TrimSpace(*upd.Description) == "" {
				issue.Description = nil
			} else {
				issue.Description = upd.Description
			}
		}
		return tx.Save(issue).Error
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// Move reassigns the issue to targetColumnID.
func (r *IssueRepository) Move(ctx context.Context, boardID, id, targetColumnID int64) (*model.Issue, error) {
	return r.Update(ctx, boardID, id, IssueUpdate{ColumnID: &targetColumnID})
}

// Delete removes an issue by its ID
func (r *IssueRepository) Delete(ctx context.Context, boardID, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findIssueOnBoard(tx, boardID, id); err != nil {
			return err
		}
		result := tx.Delete(&model.Issue{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrIssueNotFound
		}
		return nil
	})
}

func findIssueOnBoard(db *gorm.DB, boardID, id int64) (*model.Issue, error) {
	var issue model.Issue
	err := db.Select("issues.*").
		Joins("JOIN columns ON columns.id = issues.column_id").
		Where("issues.id = ? AND columns.board_id = ?", id, boardID).
		First(&issue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// nextIssuePosition locks the column row so concurrent creations in the same
// column observe each other's positions.
func nextIssuePosition(tx *gorm.DB, boardID, columnID int64) (int, error) {
	var column model.Column
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND board_id = ?", columnID, boardID).
		First(&column).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrColumnNotFound
		}
		return 0, err
	}
	maxPosition, err := maxIssuePosition(tx, columnID)
	if err != nil {
		return 0, err
	}
	return maxPosition + 1, nil
}

func maxIssuePosition(db *gorm.DB, columnID int64) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := db.Model(&model.Issue{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("column_id = ?", columnID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}
