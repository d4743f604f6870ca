package testutil

import (
	"context"
	"sync/atomic"

	"github.com/Tomlord1122/todoey/internal/domain"
	"github.com/Tomlord1122/todoey/internal/repository"
)

// FailingItemStore wraps an ItemStore and returns the configured error from
// any operation whose field is set. Unset operations pass through.
type FailingItemStore struct {
	repository.ItemStore

	FetchErr  error
	InsertErr error
	UpdateErr error
	DeleteErr error

	fetches atomic.Int32
}

func (s *FailingItemStore) Fetch(ctx context.Context, pred repository.ItemPredicate, order []repository.SortDescriptor) ([]domain.Item, error) {
	s.fetches.Add(1)
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return s.ItemStore.Fetch(ctx, pred, order)
}

func (s *FailingItemStore) Insert(ctx context.Context, item *domain.Item) error {
	if s.InsertErr != nil {
		return s.InsertErr
	}
	return s.ItemStore.Insert(ctx, item)
}

func (s *FailingItemStore) Update(ctx context.Context, item *domain.Item) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	return s.ItemStore.Update(ctx, item)
}

func (s *FailingItemStore) Delete(ctx context.Context, item *domain.Item) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	return s.ItemStore.Delete(ctx, item)
}

// Fetches reports how many Fetch calls reached the wrapper.
func (s *FailingItemStore) Fetches() int {
	return int(s.fetches.Load())
}

// FailingSectionStore is the SectionStore counterpart of FailingItemStore.
type FailingSectionStore struct {
	repository.SectionStore

	ListErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error
}

func (s *FailingSectionStore) List(ctx context.Context) ([]domain.Section, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.SectionStore.List(ctx)
}

func (s *FailingSectionStore) Insert(ctx context.Context, section *domain.Section) error {
	if s.InsertErr != nil {
		return s.InsertErr
	}
	return s.SectionStore.Insert(ctx, section)
}

func (s *FailingSectionStore) Update(ctx context.Context, section *domain.Section) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	return s.SectionStore.Update(ctx, section)
}

func (s *FailingSectionStore) Delete(ctx context.Context, section *domain.Section) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	return s.SectionStore.Delete(ctx, section)
}

// CompletingItemStore marks every inserted item completed before storing
// it, simulating a store that changes records on write.
type CompletingItemStore struct {
	repository.ItemStore
}

func (s CompletingItemStore) Insert(ctx context.Context, item *domain.Item) error {
	item.IsCompleted = true
	return s.ItemStore.Insert(ctx, item)
}
