package controllers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// VenueRequest is the request body for venue create and update.
type VenueRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	Capacity      int    `json:"capacity"`
	ContactPerson string `json:"contact_person"`
	ContactEmail  string `json:"contact_email"`
	PhoneNumber   string `json:"phone_number"`
}

// Validate implements Validator.
func (v VenueRequest) Validate() []string {
	var errs []string
	if v.Name == "" {
		errs = append(errs, "name is required")
	}
	if v.City == "" {
		errs = append(errs, "city is required")
	}
	if v.Capacity < 1 {
		errs = append(errs, "capacity must be at least 1")
	}
	if v.ContactEmail != "" && !emailRegex.MatchString(v.ContactEmail) {
		errs = append(errs, "contact_email is not a valid address")
	}
	return errs
}

func (v VenueRequest) toDomain(id string) *domain.Venue {
	return &domain.Venue{
		ID:            id,
		Name:          v.Name,
		Address:       v.Address,
		City:          v.City,
		State:         v.State,
		ZipCode:       v.ZipCode,
		Capacity:      v.Capacity,
		ContactPerson: v.ContactPerson,
		ContactEmail:  v.ContactEmail,
		PhoneNumber:   v.PhoneNumber,
	}
}

// VenueSuccessResponse is the success envelope carrying a single venue.
type VenueSuccessResponse struct {
	Data  *domain.Venue     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// VenueListSuccessResponse is the success envelope for GET /venues (200).
type VenueListSuccessResponse struct {
	Data  []*domain.Venue   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type VenueController struct {
	Logger  *slog.Logger
	Catalog domain.CatalogService
}

func NewVenueController(logger *slog.Logger, catalog domain.CatalogService) *VenueController {
	return &VenueController{Logger: logger, Catalog: catalog}
}

func (c *VenueController) fail(w http.ResponseWriter, r *http.Request, err error) {
	helpers.WriteDomainError(w, err)
	if !helpers.ClientError(err) {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// pathID validates the {id} path segment as a UUID. Writes a 400 and returns
// false when it is not one.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if uuid.Validate(id) != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return "", false
	}
	return id, true
}

// Create godoc
// @Summary Create a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venue body VenueRequest true "Venue data"
// @Success 201 {object} controllers.VenueSuccessResponse "data contains the created venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [post]
func (c *VenueController) Create(w http.ResponseWriter, r *http.Request) {
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue := req.toDomain("")
	if err := c.Catalog.CreateVenue(r.Context(), venue); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// Get godoc
// @Summary Get a venue by ID
// @Tags venues
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} controllers.VenueSuccessResponse "data contains the venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{id} [get]
func (c *VenueController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	venue, err := c.Catalog.GetVenue(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// List godoc
// @Summary List venues
// @Tags venues
// @Produce json
// @Success 200 {object} controllers.VenueListSuccessResponse "data contains all venues"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *VenueController) List(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Catalog.ListVenues(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}

// Update godoc
// @Summary Update a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Venue ID"
// @Param venue body VenueRequest true "Venue data"
// @Success 200 {object} controllers.VenueSuccessResponse "data contains the updated venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{id} [put]
func (c *VenueController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue := req.toDomain(id)
	if err := c.Catalog.UpdateVenue(r.Context(), venue); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// Delete godoc
// @Summary Delete a venue
// @Tags venues
// @Security BearerAuth
// @Param id path string true "Venue ID"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{id} [delete]
func (c *VenueController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Catalog.DeleteVenue(r.Context(), id); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
