package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Tomlord1122/todoey/internal/domain"
)

var (
	// ErrNotFound is returned when a record addressed by ID does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConstraint is returned when the store rejects a write that would
	// violate an integrity rule (unknown section, invalid priority, ...).
	ErrConstraint = errors.New("constraint violation")
)

// ItemPredicate is a conjunction of conditions on items. Zero-valued optional
// fields add no condition.
type ItemPredicate struct {
	// SectionID is always required; items of other sections never match.
	SectionID string
	// NameContains matches item names containing the text, ignoring case.
	NameContains string
	// ExcludeCompleted drops items with IsCompleted set.
	ExcludeCompleted bool
}

// Match reports whether item satisfies every condition of p.
func (p ItemPredicate) Match(item domain.Item) bool {
	if item.SectionID != p.SectionID {
		return false
	}
	if p.NameContains != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(p.NameContains)) {
		return false
	}
	if p.ExcludeCompleted && item.IsCompleted {
		return false
	}
	return true
}

// SortField names an item attribute a query can be ordered by.
type SortField string

const (
	SortByPriority  SortField = "priority"
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "created_at"
)

// SortDescriptor is one key of a multi-key sort. Names compare byte-wise,
// so ordering is case-sensitive.
type SortDescriptor struct {
	Field     SortField
	Ascending bool
}

// ItemStore persists items. Each mutation commits on return.
// Records that tie on every sort key come back in creation order.
type ItemStore interface {
	Fetch(ctx context.Context, pred ItemPredicate, order []SortDescriptor) ([]domain.Item, error)
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	Insert(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, item *domain.Item) error
}

// SectionStore persists sections. Deleting a section deletes its items.
type SectionStore interface {
	List(ctx context.Context) ([]domain.Section, error)
	FindByID(ctx context.Context, id string) (*domain.Section, error)
	Insert(ctx context.Context, section *domain.Section) error
	Update(ctx context.Context, section *domain.Section) error
	Delete(ctx context.Context, section *domain.Section) error
}
