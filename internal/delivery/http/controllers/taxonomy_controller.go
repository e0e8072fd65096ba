package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// LabelRequest is the request body for category and tag creation.
type LabelRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (l LabelRequest) Validate() []string {
	if l.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

// CategorySuccessResponse is the success envelope carrying a single category.
type CategorySuccessResponse struct {
	Data  *domain.Category  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CategoryListSuccessResponse is the success envelope for GET /categories (200).
type CategoryListSuccessResponse struct {
	Data  []*domain.Category `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// TagSuccessResponse is the success envelope carrying a single tag.
type TagSuccessResponse struct {
	Data  *domain.Tag       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TagListSuccessResponse is the success envelope for GET /tags (200).
type TagListSuccessResponse struct {
	Data  []*domain.Tag     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TaxonomyController serves categories and tags. Both are create-and-list
// only; labels are never edited in place.
type TaxonomyController struct {
	Logger  *slog.Logger
	Catalog domain.CatalogService
}

func NewTaxonomyController(logger *slog.Logger, catalog domain.CatalogService) *TaxonomyController {
	return &TaxonomyController{Logger: logger, Catalog: catalog}
}

func (c *TaxonomyController) fail(w http.ResponseWriter, r *http.Request, err error) {
	helpers.WriteDomainError(w, err)
	if !helpers.ClientError(err) {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// CreateCategory godoc
// @Summary Create a category
// @Tags taxonomy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body LabelRequest true "Category name"
// @Success 201 {object} controllers.CategorySuccessResponse "data contains the created category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (includes duplicate name)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [post]
func (c *TaxonomyController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req LabelRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	category, err := c.Catalog.CreateCategory(r.Context(), req.Name)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, category)
}

// ListCategories godoc
// @Summary List categories
// @Tags taxonomy
// @Produce json
// @Success 200 {object} controllers.CategoryListSuccessResponse "data contains all categories"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [get]
func (c *TaxonomyController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Catalog.ListCategories(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, categories)
}

// CreateTag godoc
// @Summary Create a tag
// @Tags taxonomy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tag body LabelRequest true "Tag name"
// @Success 201 {object} controllers.TagSuccessResponse "data contains the created tag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (includes duplicate name)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tags [post]
func (c *TaxonomyController) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req LabelRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tag, err := c.Catalog.CreateTag(r.Context(), req.Name)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, tag)
}

// ListTags godoc
// @Summary List tags
// @Tags taxonomy
// @Produce json
// @Success 200 {object} controllers.TagListSuccessResponse "data contains all tags"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tags [get]
func (c *TaxonomyController) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := c.Catalog.ListTags(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tags)
}
