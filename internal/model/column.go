package model

// Column is an ordered lane of a board. Position is the advisory sort key:
// unique within the board, ascending, gaps allowed.
type Column struct {
	ID       int64  `gorm:"primaryKey"`
	BoardID  int64  `gorm:"not null;index"`
	Name     string `gorm:"not null"`
	Position int    `gorm:"not null"`

	Issues []Issue `gorm:"foreignKey:ColumnID"`
}
