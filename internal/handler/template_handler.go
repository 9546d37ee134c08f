package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"templatesvc/internal/errors"
	"templatesvc/internal/model"
	"templatesvc/internal/service"
)

// TemplateHandler handles template endpoints.
type TemplateHandler struct {
	svc service.TemplateService
}

// NewTemplateHandler creates a new template handler.
func NewTemplateHandler(svc service.TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// ListTemplates godoc
// @Summary List templates
// @Description Returns at most 100 templates.
// @Tags templates
// @Produce json
// @Success 200 {array} model.Template
// @Failure 500 {object} errors.ErrorResponse
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	templates, err := h.svc.ListTemplates(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary Get template by id
// @Tags templates
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} model.Template
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	template, err := h.svc.GetTemplate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, template)
}

// CreateTemplate godoc
// @Summary Create template
// @Tags templates
// @Accept json
// @Produce json
// @Param template body model.TemplateInput true "Template payload"
// @Success 200 {object} model.Template
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c echo.Context) error {
	var input model.TemplateInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}
	created, err := h.svc.CreateTemplate(c.Request().Context(), input.NewTemplate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// UpdateTemplate godoc
// @Summary Update template name and content
// @Description The body id may be omitted; when present it must equal the path id.
// @Tags templates
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Param template body model.TemplateInput true "Template payload"
// @Success 200 {object} model.Template
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input model.TemplateInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}
	updated, err := h.svc.UpdateTemplate(c.Request().Context(), id, input.Template())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteTemplate godoc
// @Summary Delete template
// @Tags templates
// @Param id path int true "Template ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTemplate(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// parseID treats a non-numeric id like an unknown route.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.NotFound()
	}
	return uint(id), nil
}

// bindAndValidate decodes the JSON body into dst. Decode failures and
// absent attributes both answer 422; empty strings are accepted.
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errors.Unprocessable()
	}
	if err := c.Validate(dst); err != nil {
		return errors.Unprocessable()
	}
	return nil
}
