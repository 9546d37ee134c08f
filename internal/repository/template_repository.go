package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"templatesvc/internal/model"
)

// listLimit caps LoadAll; there is no pagination.
const listLimit = 100

// TemplateRepository defines persistence operations for templates.
type TemplateRepository interface {
	LoadAll(ctx context.Context) ([]model.Template, error)
	FindOne(ctx context.Context, id uint) (*model.Template, error)
	Create(ctx context.Context, newTemplate model.NewTemplate) (*model.Template, error)
	Save(ctx context.Context, template model.Template) (*model.Template, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository builds a GORM-backed repository.
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// LoadAll returns at most 100 templates in store order.
func (r *templateRepository) LoadAll(ctx context.Context) ([]model.Template, error) {
	templates := make([]model.Template, 0)
	if err := r.db.WithContext(ctx).Limit(listLimit).Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// FindOne returns gorm.ErrRecordNotFound when no row has the given id.
func (r *templateRepository) FindOne(ctx context.Context, id uint) (*model.Template, error) {
	var template model.Template
	if err := r.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// Create inserts the template and re-reads it using the id the driver
// reported for this insert, so concurrent creates never see each other's rows.
func (r *templateRepository) Create(ctx context.Context, newTemplate model.NewTemplate) (*model.Template, error) {
	row := model.Template{
		Name:    newTemplate.Name,
		Content: newTemplate.Content,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return r.FindOne(ctx, row.ID)
}

// Save updates name and content for template.ID and returns the stored row.
func (r *templateRepository) Save(ctx context.Context, template model.Template) (*model.Template, error) {
	err := r.db.WithContext(ctx).Model(&model.Template{}).
		Where("id = ?", template.ID).
		Updates(map[string]interface{}{
			"name":    template.Name,
			"content": template.Content,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindOne(ctx, template.ID)
}

// Delete reports false without deleting anything when the id is absent.
func (r *templateRepository) Delete(ctx context.Context, id uint) (bool, error) {
	if _, err := r.FindOne(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := r.db.WithContext(ctx).Delete(&model.Template{}, id).Error; err != nil {
		return false, err
	}
	return true, nil
}
