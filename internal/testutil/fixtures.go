package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Tomlord1122/todoey/internal/domain"
	"github.com/Tomlord1122/todoey/internal/repository"
)

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustSection inserts a section named name into store.
func MustSection(t *testing.T, store repository.SectionStore, name string) *domain.Section {
	t.Helper()
	section := &domain.Section{Name: name}
	if err := store.Insert(context.Background(), section); err != nil {
		t.Fatalf("failed to insert section %q: %v", name, err)
	}
	return section
}

// ItemOption customizes an item built by MustItem.
type ItemOption func(*domain.Item)

func WithPriority(p domain.Priority) ItemOption {
	return func(i *domain.Item) { i.Priority = p }
}

func WithCompleted() ItemOption {
	return func(i *domain.Item) { i.IsCompleted = true }
}

func WithDescription(d string) ItemOption {
	return func(i *domain.Item) { i.Description = d }
}

// MustItem inserts an item named name into section. Priority defaults to
// medium.
func MustItem(t *testing.T, store repository.ItemStore, section *domain.Section, name string, opts ...ItemOption) *domain.Item {
	t.Helper()
	item := &domain.Item{
		SectionID: section.ID,
		Name:      name,
		Priority:  domain.PriorityMedium,
	}
	for _, opt := range opts {
		opt(item)
	}
	if err := store.Insert(context.Background(), item); err != nil {
		t.Fatalf("failed to insert item %q: %v", name, err)
	}
	return item
}

// Names maps items to their names, preserving order.
func Names(items []domain.Item) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}
