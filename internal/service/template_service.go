package service

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "templatesvc/internal/errors"
	"templatesvc/internal/model"
	"templatesvc/internal/repository"
)

// TemplateService exposes template operations to the HTTP layer.
type TemplateService interface {
	ListTemplates(ctx context.Context) ([]model.Template, error)
	GetTemplate(ctx context.Context, id uint) (*model.Template, error)
	CreateTemplate(ctx context.Context, newTemplate model.NewTemplate) (*model.Template, error)
	UpdateTemplate(ctx context.Context, id uint, template model.Template) (*model.Template, error)
	DeleteTemplate(ctx context.Context, id uint) error
}

type templateService struct {
	repo repository.TemplateRepository
}

// NewTemplateService builds a TemplateService on top of the repository.
func NewTemplateService(repo repository.TemplateRepository) TemplateService {
	return &templateService{repo: repo}
}

func (s *templateService) ListTemplates(ctx context.Context) ([]model.Template, error) {
	templates, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return templates, nil
}

func (s *templateService) GetTemplate(ctx context.Context, id uint) (*model.Template, error) {
	template, err := s.repo.FindOne(ctx, id)
	if err != nil {
		return nil, s.translate("get", id, err)
	}
	return template, nil
}

func (s *templateService) CreateTemplate(ctx context.Context, newTemplate model.NewTemplate) (*model.Template, error) {
	created, err := s.repo.Create(ctx, newTemplate)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	log.WithField("template_id", created.ID).Info("template created")
	return created, nil
}

// UpdateTemplate takes the id from the path when the body omits it and
// rejects a body id that names a different template.
func (s *templateService) UpdateTemplate(ctx context.Context, id uint, template model.Template) (*model.Template, error) {
	if template.ID == 0 {
		template.ID = id
	}
	if template.ID != id {
		return nil, apperrors.ErrIDMismatch
	}

	updated, err := s.repo.Save(ctx, template)
	if err != nil {
		return nil, s.translate("update", id, err)
	}
	return updated, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.translate("delete", id, err)
	}
	if !deleted {
		return apperrors.ErrTemplateNotFound
	}
	log.WithField("template_id", id).Info("template deleted")
	return nil
}

// translate maps a missing row to ErrTemplateNotFound and wraps anything
// else for the HTTP error handler, which logs it once with the request id.
func (s *templateService) translate(op string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrTemplateNotFound
	}
	return fmt.Errorf("%s template %d: %w", op, id, err)
}
