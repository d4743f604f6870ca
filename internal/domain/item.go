package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority orders items within a section; lower values sort first.
type Priority int16

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Priorities lists every valid priority, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("Priority(%d)", int16(p))
	}
}

// ParsePriority accepts a priority name ("high", "medium", "low") or its
// numeric value ("1" to "3").
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return PriorityHigh, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "low", "l":
		return PriorityLow, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !Priority(n).Valid() {
		return 0, fmt.Errorf("invalid priority %q: must be high, medium, low or 1-3", s)
	}
	return Priority(n), nil
}

// Item is a single task. It belongs to exactly one section for its whole
// lifetime. CreatedAt is set once when the item is created.
type Item struct {
	ID          string   `gorm:"type:uuid;primaryKey"`
	SectionID   string   `gorm:"type:uuid;not null;index"`
	Name        string   `gorm:"not null"`
	Description string   `gorm:"not null;default:''"`
	Priority    Priority `gorm:"type:smallint;not null;check:chk_items_priority,priority BETWEEN 1 AND 3"`
	IsCompleted bool     `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Section exists to declare the cascading foreign key; it is never loaded.
	Section *Section `gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an ID to items inserted without one.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
