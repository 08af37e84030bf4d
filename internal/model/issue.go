package model

import "time"

// Issue is a work item. Position orders issues inside their column using the
// same max+1 allocation as columns.
type Issue struct {
	ID          int64  `gorm:"primaryKey"`
	ColumnID    int64  `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description *string
	Position    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// All lists the persisted models in dependency order.
func All() []any {
	return []any{&User{}, &Board{}, &Column{}, &Issue{}}
}
