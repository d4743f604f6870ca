package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section is a named grouping that owns zero or more Items.
// Deleting a section deletes its items (see Item.Section).
type Section struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns an ID to sections inserted without one.
func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
