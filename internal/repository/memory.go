package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Tomlord1122/todoey/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore keeps sections and items in process memory. It is safe for
// concurrent use and enforces the same integrity rules as the Postgres
// schema: items need an existing section, priorities must be valid, and
// deleting a section deletes its items.
type MemoryStore struct {
	mu       sync.RWMutex
	seq      int64
	sections map[string]memoryRecord[domain.Section]
	items    map[string]memoryRecord[domain.Item]
	now      func() time.Time
}

// memoryRecord pairs a value with its insertion sequence, which serves as
// the final tie-breaker when ordering.
type memoryRecord[T any] struct {
	seq int64
	val T
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sections: make(map[string]memoryRecord[domain.Section]),
		items:    make(map[string]memoryRecord[domain.Item]),
		now:      time.Now,
	}
}

// Items returns an ItemStore view of the store.
func (m *MemoryStore) Items() ItemStore { return memoryItems{m} }

// Sections returns a SectionStore view of the store.
func (m *MemoryStore) Sections() SectionStore { return memorySections{m} }

type memoryItems struct{ m *MemoryStore }

func (s memoryItems) Fetch(ctx context.Context, pred ItemPredicate, order []SortDescriptor) ([]domain.Item, error) {
	for _, desc := range order {
		if _, err := orderExpr(desc); err != nil {
			return nil, err
		}
	}

	s.m.mu.RLock()
	matched := make([]memoryRecord[domain.Item], 0, len(s.m.items))
	for _, rec := range s.m.items {
		if pred.Match(rec.val) {
			matched = append(matched, rec)
		}
	}
	s.m.mu.RUnlock()

	slices.SortFunc(matched, func(a, b memoryRecord[domain.Item]) int {
		for _, desc := range order {
			c := compareItems(a.val, b.val, desc.Field)
			if !desc.Ascending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(a.seq, b.seq)
	})

	items := make([]domain.Item, 0, len(matched))
	for _, rec := range matched {
		items = append(items, rec.val)
	}
	return items, nil
}

func compareItems(a, b domain.Item, field SortField) int {
	switch field {
	case SortByPriority:
		return cmp.Compare(a.Priority, b.Priority)
	case SortByName:
		return cmp.Compare(a.Name, b.Name)
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return 0
}

func (s memoryItems) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	rec, ok := s.m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: item %q", ErrNotFound, id)
	}
	item := rec.val
	return &item, nil
}

func (s memoryItems) Insert(ctx context.Context, item *domain.Item) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.sections[item.SectionID]; !ok {
		return fmt.Errorf("%w: section %q does not exist", ErrConstraint, item.SectionID)
	}
	if !item.Priority.Valid() {
		return fmt.Errorf("%w: %v", ErrConstraint, item.Priority)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if _, ok := s.m.items[item.ID]; ok {
		return fmt.Errorf("%w: duplicate item id %q", ErrConstraint, item.ID)
	}
	now := s.m.now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	stored := *item
	stored.Section = nil
	s.m.seq++
	s.m.items[item.ID] = memoryRecord[domain.Item]{seq: s.m.seq, val: stored}
	return nil
}

func (s memoryItems) Update(ctx context.Context, item *domain.Item) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	rec, ok := s.m.items[item.ID]
	if !ok {
		return fmt.Errorf("%w: item %q", ErrNotFound, item.ID)
	}
	if !item.Priority.Valid() {
		return fmt.Errorf("%w: %v", ErrConstraint, item.Priority)
	}
	rec.val.Name = item.Name
	rec.val.Description = item.Description
	rec.val.Priority = item.Priority
	rec.val.IsCompleted = item.IsCompleted
	rec.val.UpdatedAt = s.m.now()
	s.m.items[item.ID] = rec

	item.UpdatedAt = rec.val.UpdatedAt
	return nil
}

func (s memoryItems) Delete(ctx context.Context, item *domain.Item) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.items[item.ID]; !ok {
		return fmt.Errorf("%w: item %q", ErrNotFound, item.ID)
	}
	delete(s.m.items, item.ID)
	return nil
}

type memorySections struct{ m *MemoryStore }

func (s memorySections) List(ctx context.Context) ([]domain.Section, error) {
	s.m.mu.RLock()
	recs := make([]memoryRecord[domain.Section], 0, len(s.m.sections))
	for _, rec := range s.m.sections {
		recs = append(recs, rec)
	}
	s.m.mu.RUnlock()

	slices.SortFunc(recs, func(a, b memoryRecord[domain.Section]) int {
		if c := cmp.Compare(a.val.Name, b.val.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	sections := make([]domain.Section, 0, len(recs))
	for _, rec := range recs {
		sections = append(sections, rec.val)
	}
	return sections, nil
}

func (s memorySections) FindByID(ctx context.Context, id string) (*domain.Section, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	rec, ok := s.m.sections[id]
	if !ok {
		return nil, fmt.Errorf("%w: section %q", ErrNotFound, id)
	}
	section := rec.val
	return &section, nil
}

func (s memorySections) Insert(ctx context.Context, section *domain.Section) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	if _, ok := s.m.sections[section.ID]; ok {
		return fmt.Errorf("%w: duplicate section id %q", ErrConstraint, section.ID)
	}
	now := s.m.now()
	if section.CreatedAt.IsZero() {
		section.CreatedAt = now
	}
	section.UpdatedAt = now

	s.m.seq++
	s.m.sections[section.ID] = memoryRecord[domain.Section]{seq: s.m.seq, val: *section}
	return nil
}

func (s memorySections) Update(ctx context.Context, section *domain.Section) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	rec, ok := s.m.sections[section.ID]
	if !ok {
		return fmt.Errorf("%w: section %q", ErrNotFound, section.ID)
	}
	rec.val.Name = section.Name
	rec.val.UpdatedAt = s.m.now()
	s.m.sections[section.ID] = rec

	section.UpdatedAt = rec.val.UpdatedAt
	return nil
}

func (s memorySections) Delete(ctx context.Context, section *domain.Section) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.sections[section.ID]; !ok {
		return fmt.Errorf("%w: section %q", ErrNotFound, section.ID)
	}
	delete(s.m.sections, section.ID)
	for id, rec := range s.m.items {
		if rec.val.SectionID == section.ID {
			delete(s.m.items, id)
		}
	}
	return nil
}
