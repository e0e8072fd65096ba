package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// SpeakerRequest is the request body for speaker create and update.
type SpeakerRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Bio          string `json:"bio"`
	Organization string `json:"organization"`
	Title        string `json:"title"`
	PhotoURL     string `json:"photo_url"`
}

// Validate implements Validator.
func (s SpeakerRequest) Validate() []string {
	var errs []string
	if s.FirstName == "" {
		errs = append(errs, "first_name is required")
	}
	if s.LastName == "" {
		errs = append(errs, "last_name is required")
	}
	if s.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(s.Email) {
		errs = append(errs, "email is not a valid address")
	}
	return errs
}

func (s SpeakerRequest) toDomain(id string) *domain.Speaker {
	return &domain.Speaker{
		ID:           id,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Email:        s.Email,
		Bio:          s.Bio,
		Organization: s.Organization,
		Title:        s.Title,
		PhotoURL:     s.PhotoURL,
	}
}

// SpeakerSuccessResponse is the success envelope carrying a single speaker.
type SpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerListSuccessResponse is the success envelope for GET /speakers (200).
type SpeakerListSuccessResponse struct {
	Data  []*domain.Speaker `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SpeakerController struct {
	Logger  *slog.Logger
	Catalog domain.CatalogService
}

func NewSpeakerController(logger *slog.Logger, catalog domain.CatalogService) *SpeakerController {
	return &SpeakerController{Logger: logger, Catalog: catalog}
}

func (c *SpeakerController) fail(w http.ResponseWriter, r *http.Request, err error) {
	helpers.WriteDomainError(w, err)
	if !helpers.ClientError(err) {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// Create godoc
// @Summary Create a speaker
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speaker body SpeakerRequest true "Speaker data"
// @Success 201 {object} controllers.SpeakerSuccessResponse "data contains the created speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (includes duplicate email)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [post]
func (c *SpeakerController) Create(w http.ResponseWriter, r *http.Request) {
	var req SpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker := req.toDomain("")
	if err := c.Catalog.CreateSpeaker(r.Context(), speaker); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, speaker)
}

// Get godoc
// @Summary Get a speaker by ID
// @Tags speakers
// @Produce json
// @Param id path string true "Speaker ID"
// @Success 200 {object} controllers.SpeakerSuccessResponse "data contains the speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id} [get]
func (c *SpeakerController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	speaker, err := c.Catalog.GetSpeaker(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// List godoc
// @Summary List speakers
// @Tags speakers
// @Produce json
// @Success 200 {object} controllers.SpeakerListSuccessResponse "data contains all speakers"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [get]
func (c *SpeakerController) List(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Catalog.ListSpeakers(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// Update godoc
// @Summary Update a speaker
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Speaker ID"
// @Param speaker body SpeakerRequest true "Speaker data"
// @Success 200 {object} controllers.SpeakerSuccessResponse "data contains the updated speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id} [put]
func (c *SpeakerController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req SpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker := req.toDomain(id)
	if err := c.Catalog.UpdateSpeaker(r.Context(), speaker); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// Delete godoc
// @Summary Delete a speaker
// @Tags speakers
// @Security BearerAuth
// @Param id path string true "Speaker ID"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id} [delete]
func (c *SpeakerController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Catalog.DeleteSpeaker(r.Context(), id); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
