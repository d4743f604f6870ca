package repository

import (
	"context"
	"fmt"

	"github.com/Tomlord1122/todoey/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormSectionRepository implements SectionStore using GORM
type gormSectionRepository struct {
	db *gorm.DB
}

// NewGormSectionRepository creates a new GORM section repository
func NewGormSectionRepository(db *gorm.DB) SectionStore {
	return &gormSectionRepository{db: db}
}

// List returns every section ordered by name, then creation time.
func (r *gormSectionRepository) List(ctx context.Context) ([]domain.Section, error) {
	sections := []domain.Section{}
	err := r.db.WithContext(ctx).
		Order(`name COLLATE "C" ASC`).
		Order("created_at ASC").
		Order("id ASC").
		Find(&sections).Error
	if err != nil {
		return nil, translateError(err)
	}
	return sections, nil
}

func (r *gormSectionRepository) FindByID(ctx context.Context, id string) (*domain.Section, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: section %q", ErrNotFound, id)
	}
	var section domain.Section
	if err := r.db.WithContext(ctx).First(&section, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &section, nil
}

func (r *gormSectionRepository) Insert(ctx context.Context, section *domain.Section) error {
	return translateError(r.db.WithContext(ctx).Create(section).Error)
}

func (r *gormSectionRepository) Update(ctx context.Context, section *domain.Section) error {
	result := r.db.WithContext(ctx).Model(section).Select("name").Updates(section)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: section %q", ErrNotFound, section.ID)
	}
	return nil
}

// Delete removes the section; the items foreign key cascades.
func (r *gormSectionRepository) Delete(ctx context.Context, section *domain.Section) error {
	result := r.db.WithContext(ctx).Delete(&domain.Section{}, "id = ?", section.ID)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: section %q", ErrNotFound, section.ID)
	}
	return nil
}
