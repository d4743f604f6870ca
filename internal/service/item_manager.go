package service

import (
	"context"
	"time"

	"github.com/Tomlord1122/todoey/internal/domain"
	"github.com/Tomlord1122/todoey/internal/repository"
)

// ItemQuery selects the items of one section.
type ItemQuery struct {
	// SearchText filters by case-insensitive substring of the name when non-empty.
	SearchText string
	SectionID  string
	// ShowCompleted includes completed items when set.
	ShowCompleted bool
}

// itemOrder sorts by priority (high first), then by name.
var itemOrder = []repository.SortDescriptor{
	{Field: repository.SortByPriority, Ascending: true},
	{Field: repository.SortByName, Ascending: true},
}

// ItemManager mediates all reads and writes of items and reports every
// outcome to its observer. Each write ends by re-running the section's
// default query (completed items hidden), so the observer always sees a
// view consistent with the filter and sort rules.
//
// An ItemManager holds no records and is safe for concurrent use as long as
// its store and observer are.
type ItemManager struct {
	store    repository.ItemStore
	observer Observer[domain.Item]
	now      func() time.Time
}

// NewItemManager creates a manager bound to one observer. A nil observer
// discards updates and logs failures.
func NewItemManager(store repository.ItemStore, observer Observer[domain.Item]) *ItemManager {
	if observer == nil {
		observer = ObserverFuncs[domain.Item]{}
	}
	return &ItemManager{
		store:    store,
		observer: observer,
		now:      time.Now,
	}
}

// WithObserver returns a manager sharing m's store that reports to observer.
// m itself is unchanged.
func (m *ItemManager) WithObserver(observer Observer[domain.Item]) *ItemManager {
	scoped := NewItemManager(m.store, observer)
	scoped.now = m.now
	return scoped
}

// WithClock returns a copy of m that stamps new items using now.
func (m *ItemManager) WithClock(now func() time.Time) *ItemManager {
	clocked := *m
	clocked.now = now
	return &clocked
}

// FetchItems queries the store and emits the matching items.
func (m *ItemManager) FetchItems(ctx context.Context, q ItemQuery) {
	items, err := m.store.Fetch(ctx, itemPredicate(q), itemOrder)
	if err != nil {
		m.observer.Failed(persistenceError("fetch items", err))
		return
	}
	m.observer.Updated(items)
}

// CreateItem persists a new, incomplete item in section and emits the
// section's refreshed list.
func (m *ItemManager) CreateItem(ctx context.Context, name, description string, priority domain.Priority, section *domain.Section) {
	item := &domain.Item{
		SectionID:   section.ID,
		Name:        name,
		Description: description,
		Priority:    priority,
		IsCompleted: false,
		CreatedAt:   m.now(),
	}
	if err := m.store.Insert(ctx, item); err != nil {
		m.observer.Failed(persistenceError("create item", err))
		return
	}
	m.refresh(ctx, section.ID)
}

// CompleteItem marks item completed. Completion is terminal; completing an
// already completed item writes nothing but still refreshes. item is only
// modified once the store accepts the change.
func (m *ItemManager) CompleteItem(ctx context.Context, item *domain.Item) {
	if !item.IsCompleted {
		updated := *item
		updated.IsCompleted = true
		if err := m.store.Update(ctx, &updated); err != nil {
			m.observer.Failed(persistenceError("complete item", err))
			return
		}
		*item = updated
	}
	m.refresh(ctx, item.SectionID)
}

// DeleteItem removes item and emits section's refreshed list.
func (m *ItemManager) DeleteItem(ctx context.Context, item *domain.Item, section *domain.Section) {
	if err := m.store.Delete(ctx, item); err != nil {
		m.observer.Failed(persistenceError("delete item", err))
		return
	}
	m.refresh(ctx, section.ID)
}

// EditItem overwrites the mutable fields of item. As with CompleteItem,
// item is left untouched if the store rejects the write.
func (m *ItemManager) EditItem(ctx context.Context, item *domain.Item, name, description string, priority domain.Priority) {
	updated := *item
	updated.Name = name
	updated.Description = description
	updated.Priority = priority
	if err := m.store.Update(ctx, &updated); err != nil {
		m.observer.Failed(persistenceError("edit item", err))
		return
	}
	*item = updated
	m.refresh(ctx, item.SectionID)
}

// FindItem looks an item up by ID. Unlike the other operations it returns
// its result directly and does not notify the observer.
func (m *ItemManager) FindItem(ctx context.Context, id string) (*domain.Item, error) {
	item, err := m.store.FindByID(ctx, id)
	if err != nil {
		return nil, persistenceError("find item", err)
	}
	return item, nil
}

func (m *ItemManager) refresh(ctx context.Context, sectionID string) {
	m.FetchItems(ctx, ItemQuery{SectionID: sectionID, ShowCompleted: false})
}

func itemPredicate(q ItemQuery) repository.ItemPredicate {
	return repository.ItemPredicate{
		SectionID:        q.SectionID,
		NameContains:     q.SearchText,
		ExcludeCompleted: !q.ShowCompleted,
	}
}
