package repository

import (
	"context"
	"fmt"

	"github.com/Tomlord1122/todoey/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormItemRepository implements ItemStore using GORM
type gormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GORM item repository
func NewGormItemRepository(db *gorm.DB) ItemStore {
	return &gormItemRepository{db: db}
}

// Fetch runs the predicate and sort order as a single SELECT.
func (r *gormItemRepository) Fetch(ctx context.Context, pred ItemPredicate, order []SortDescriptor) ([]domain.Item, error) {
	query := r.db.WithContext(ctx).Where("section_id = ?", pred.SectionID)
	if pred.NameContains != "" {
		query = query.Where("name ILIKE ?", "%"+escapeLike(pred.NameContains)+"%")
	}
	if pred.ExcludeCompleted {
		query = query.Where("is_completed = ?", false)
	}

	for _, desc := range order {
		expr, err := orderExpr(desc)
		if err != nil {
			return nil, err
		}
		query = query.Order(expr)
	}
	// Ties fall back to creation order
	query = query.Order("created_at ASC").Order("id ASC")

	items := []domain.Item{}
	if err := query.Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

// FindByID retrieves an item by its ID
func (r *gormItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: item %q", ErrNotFound, id)
	}
	var item domain.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// Insert adds a new item. The owning section must already exist.
func (r *gormItemRepository) Insert(ctx context.Context, item *domain.Item) error {
	// Omit the association so a populated Section is never upserted
	return translateError(r.db.WithContext(ctx).Omit("Section").Create(item).Error)
}

// Update writes the mutable columns of an existing item.
// SectionID and CreatedAt are never rewritten.
func (r *gormItemRepository) Update(ctx context.Context, item *domain.Item) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Select("name", "description", "priority", "is_completed").
		Updates(item)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: item %q", ErrNotFound, item.ID)
	}
	return nil
}

// Delete permanently removes an item
func (r *gormItemRepository) Delete(ctx context.Context, item *domain.Item) error {
	result := r.db.WithContext(ctx).Delete(&domain.Item{}, "id = ?", item.ID)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: item %q", ErrNotFound, item.ID)
	}
	return nil
}

func orderExpr(desc SortDescriptor) (string, error) {
	var column string
	switch desc.Field {
	case SortByPriority:
		column = "priority"
	case SortByName:
		column = `name COLLATE "C"`
	case SortByCreatedAt:
		column = "created_at"
	default:
		return "", fmt.Errorf("unsupported sort field %q", desc.Field)
	}
	if desc.Ascending {
		return column + " ASC", nil
	}
	return column + " DESC", nil
}
