package service

import (
	"context"

	"github.com/Tomlord1122/todoey/internal/domain"
	"github.com/Tomlord1122/todoey/internal/repository"
)

// SectionManager is the section counterpart of ItemManager: every write is
// followed by a fresh listing sent to the observer.
type SectionManager struct {
	store    repository.SectionStore
	observer Observer[domain.Section]
}

func NewSectionManager(store repository.SectionStore, observer Observer[domain.Section]) *SectionManager {
	if observer == nil {
		observer = ObserverFuncs[domain.Section]{}
	}
	return &SectionManager{store: store, observer: observer}
}

// WithObserver returns a manager sharing m's store that reports to observer.
func (m *SectionManager) WithObserver(observer Observer[domain.Section]) *SectionManager {
	return NewSectionManager(m.store, observer)
}

// FetchSections emits every section, ordered by name.
func (m *SectionManager) FetchSections(ctx context.Context) {
	sections, err := m.store.List(ctx)
	if err != nil {
		m.observer.Failed(persistenceError("fetch sections", err))
		return
	}
	m.observer.Updated(sections)
}

func (m *SectionManager) CreateSection(ctx context.Context, name string) {
	section := &domain.Section{Name: name}
	if err := m.store.Insert(ctx, section); err != nil {
		m.observer.Failed(persistenceError("create section", err))
		return
	}
	m.FetchSections(ctx)
}

// EditSection renames section. section is only modified once the store
// accepts the change.
func (m *SectionManager) EditSection(ctx context.Context, section *domain.Section, name string) {
	updated := *section
	updated.Name = name
	if err := m.store.Update(ctx, &updated); err != nil {
		m.observer.Failed(persistenceError("edit section", err))
		return
	}
	*section = updated
	m.FetchSections(ctx)
}

// DeleteSection removes section together with all of its items.
func (m *SectionManager) DeleteSection(ctx context.Context, section *domain.Section) {
	if err := m.store.Delete(ctx, section); err != nil {
		m.observer.Failed(persistenceError("delete section", err))
		return
	}
	m.FetchSections(ctx)
}

// FindSection looks a section up by ID without notifying the observer.
func (m *SectionManager) FindSection(ctx context.Context, id string) (*domain.Section, error) {
	section, err := m.store.FindByID(ctx, id)
	if err != nil {
		return nil, persistenceError("find section", err)
	}
	return section, nil
}
