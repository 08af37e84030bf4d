package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultBoardName is the name given to a board created on first access.
const DefaultBoardName = "My Board"

// DefaultColumnNames are seeded, in order, into every new board.
var DefaultColumnNames = []string{"To Do", "In Progress", "Done"}

// Board is the single board owned by one identity.
type Board struct {
	ID        int64     `gorm:"primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Columns []Column `gorm:"foreignKey:BoardID"`
}
