package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// SponsorRequest is the request body for sponsor create and update.
type SponsorRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	ContactEmail  string `json:"contact_email"`
	PhoneNumber   string `json:"phone_number"`
	LogoURL       string `json:"logo_url"`
	WebsiteURL    string `json:"website_url"`
}

// Validate implements Validator.
func (s SponsorRequest) Validate() []string {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "name is required")
	}
	if s.ContactEmail != "" && !emailRegex.MatchString(s.ContactEmail) {
		errs = append(errs, "contact_email is not a valid address")
	}
	return errs
}

func (s SponsorRequest) toDomain(id string) *domain.Sponsor {
	return &domain.Sponsor{
		ID:            id,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		ContactEmail:  s.ContactEmail,
		PhoneNumber:   s.PhoneNumber,
		LogoURL:       s.LogoURL,
		WebsiteURL:    s.WebsiteURL,
	}
}

// SponsorSuccessResponse is the success envelope carrying a single sponsor.
type SponsorSuccessResponse struct {
	Data  *domain.Sponsor   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SponsorListSuccessResponse is the success envelope for GET /sponsors (200).
type SponsorListSuccessResponse struct {
	Data  []*domain.Sponsor `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SponsorController struct {
	Logger  *slog.Logger
	Catalog domain.CatalogService
}

func NewSponsorController(logger *slog.Logger, catalog domain.CatalogService) *SponsorController {
	return &SponsorController{Logger: logger, Catalog: catalog}
}

func (c *SponsorController) fail(w http.ResponseWriter, r *http.Request, err error) {
	helpers.WriteDomainError(w, err)
	if !helpers.ClientError(err) {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// Create godoc
// @Summary Create a sponsor
// @Tags sponsors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sponsor body SponsorRequest true "Sponsor data"
// @Success 201 {object} controllers.SponsorSuccessResponse "data contains the created sponsor"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsors [post]
func (c *SponsorController) Create(w http.ResponseWriter, r *http.Request) {
	var req SponsorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sponsor := req.toDomain("")
	if err := c.Catalog.CreateSponsor(r.Context(), sponsor); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sponsor)
}

// Get godoc
// @Summary Get a sponsor by ID
// @Tags sponsors
// @Produce json
// @Param id path string true "Sponsor ID"
// @Success 200 {object} controllers.SponsorSuccessResponse "data contains the sponsor"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsors/{id} [get]
func (c *SponsorController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sponsor, err := c.Catalog.GetSponsor(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sponsor)
}

// List godoc
// @Summary List sponsors
// @Tags sponsors
// @Produce json
// @Success 200 {object} controllers.SponsorListSuccessResponse "data contains all sponsors"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsors [get]
func (c *SponsorController) List(w http.ResponseWriter, r *http.Request) {
	sponsors, err := c.Catalog.ListSponsors(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sponsors)
}

// Update godoc
// @Summary Update a sponsor
// @Tags sponsors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sponsor ID"
// @Param sponsor body SponsorRequest true "Sponsor data"
// @Success 200 {object} controllers.SponsorSuccessResponse "data contains the updated sponsor"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsors/{id} [put]
func (c *SponsorController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req SponsorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sponsor := req.toDomain(id)
	if err := c.Catalog.UpdateSponsor(r.Context(), sponsor); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sponsor)
}

// Delete godoc
// @Summary Delete a sponsor
// @Tags sponsors
// @Security BearerAuth
// @Param id path string true "Sponsor ID"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsors/{id} [delete]
func (c *SponsorController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Catalog.DeleteSponsor(r.Context(), id); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
