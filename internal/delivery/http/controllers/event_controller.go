package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	VenueID      *string   `json:"venue_id"`
	MaxAttendees *int      `json:"max_attendees"`
	TicketPrice  *float64  `json:"ticket_price"`
	IsPrivate    bool      `json:"is_private"`
	CategoryIDs  []string  `json:"category_ids"`
	TagIDs       []string  `json:"tag_ids"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.StartsAt.IsZero() {
		errs = append(errs, "starts_at is required")
	}
	if c.EndsAt.IsZero() {
		errs = append(errs, "ends_at is required")
	}
	if !c.StartsAt.IsZero() && !c.EndsAt.IsZero() && c.EndsAt.Before(c.StartsAt) {
		errs = append(errs, "ends_at must not be before starts_at")
	}
	if c.MaxAttendees != nil && *c.MaxAttendees < 1 {
		errs = append(errs, "max_attendees must be at least 1")
	}
	if c.TicketPrice != nil && *c.TicketPrice < 0 {
		errs = append(errs, "ticket_price must not be negative")
	}
	return errs
}

// UpdateEventRequest is the request body for PUT /events/{slug}. All fields
// optional; omitted fields are unchanged. The slug itself is immutable.
type UpdateEventRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	VenueID      *string    `json:"venue_id"`
	Status       *string    `json:"status"`
	MaxAttendees *int       `json:"max_attendees"`
	TicketPrice  *float64   `json:"ticket_price"`
	IsPrivate    *bool      `json:"is_private"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && *u.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.Status != nil && !domain.ValidEventStatus(domain.EventStatus(*u.Status)) {
		errs = append(errs, "status must be one of upcoming, active, cancelled, completed")
	}
	if u.MaxAttendees != nil && *u.MaxAttendees < 1 {
		errs = append(errs, "max_attendees must be at least 1")
	}
	return errs
}

// RSVPRequest is the request body for POST /events/{slug}/rsvp. Status is
// optional and defaults to going.
type RSVPRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (r RSVPRequest) Validate() []string {
	if r.Status != "" && !domain.ValidRSVPStatus(domain.RSVPStatus(r.Status)) {
		return []string{"status must be one of going, not_going, maybe"}
	}
	return nil
}

// InviteRequest is the request body for POST /events/{slug}/invite.
type InviteRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (i InviteRequest) Validate() []string {
	var errs []string
	if i.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(i.Email) {
		errs = append(errs, "email is not a valid address")
	}
	return errs
}

// EventSuccessResponse is the success envelope carrying a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success envelope for GET /events (200).
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RegistrationSuccessResponse is the success envelope for POST /events/{slug}/rsvp (201).
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// InvitationSuccessResponse is the success envelope for POST /events/{slug}/invite (202).
type InvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// InvitationListSuccessResponse is the success envelope for GET /events/{slug}/invitations (200).
type InvitationListSuccessResponse struct {
	Data  []*domain.Invitation `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type EventController struct {
	Logger        *slog.Logger
	Events        domain.EventService
	Registrations domain.RegistrationService
	Invitations   domain.InvitationService
}

func NewEventController(
	logger *slog.Logger,
	events domain.EventService,
	registrations domain.RegistrationService,
	invitations domain.InvitationService,
) *EventController {
	return &EventController{
		Logger:        logger,
		Events:        events,
		Registrations: registrations,
		Invitations:   invitations,
	}
}

func (c *EventController) fail(w http.ResponseWriter, r *http.Request, err error) {
	helpers.WriteDomainError(w, err)
	if !helpers.ClientError(err) {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// List godoc
// @Summary List events
// @Description Lists events visible to the caller: public events, plus (when authenticated) events they organize and private events they hold an accepted invitation for. Supports filters via query parameters.
// @Tags events
// @Produce json
// @Param search query string false "Substring match on name or description"
// @Param start_date query string false "Earliest start (RFC 3339)"
// @Param end_date query string false "Latest start (RFC 3339)"
// @Param city query string false "Venue city"
// @Param state query string false "Venue state"
// @Param organizer query string false "Organizer user ID"
// @Param category query string false "Category slug"
// @Param tag query string false "Tag slug"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains matching events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseEventFilter(w, r)
	if !ok {
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	events, err := c.Events.List(r.Context(), principal, filter)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

func parseEventFilter(w http.ResponseWriter, r *http.Request) (domain.EventFilter, bool) {
	q := r.URL.Query()
	filter := domain.EventFilter{
		Search:      q.Get("search"),
		City:        q.Get("city"),
		State:       q.Get("state"),
		OrganizerID: q.Get("organizer"),
		Category:    q.Get("category"),
		Tag:         q.Get("tag"),
	}
	for name, dest := range map[string]**time.Time{
		"start_date": &filter.StartDate,
		"end_date":   &filter.EndDate,
	} {
		if s := q.Get(name); s != "" {
			ts, err := time.Parse(time.RFC3339, s)
			if err != nil {
				helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, name+" must be RFC 3339")
				return domain.EventFilter{}, false
			}
			*dest = &ts
		}
	}
	return filter, true
}

// Create godoc
// @Summary Create a new event
// @Description Creates an event. The caller must hold the organizer role; the slug is derived from the name and must be unique.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not an organizer)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate slug)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	event, err := c.Events.Create(r.Context(), principal, domain.EventInput{
		Name:         req.Name,
		Description:  req.Description,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		VenueID:      req.VenueID,
		MaxAttendees: req.MaxAttendees,
		TicketPrice:  req.TicketPrice,
		IsPrivate:    req.IsPrivate,
		CategoryIDs:  req.CategoryIDs,
		TagIDs:       req.TagIDs,
	})
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Get godoc
// @Summary Get an event by slug
// @Description Returns the event. Private events respond 403 to any caller without access, anonymous callers included.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	event, err := c.Events.GetBySlug(r.Context(), principal, slug)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Description Updates event details. Only the organizer of the event can update it. Omitted fields are unchanged; the slug is immutable.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.EventUpdate{
		Name:         req.Name,
		Description:  req.Description,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		VenueID:      req.VenueID,
		MaxAttendees: req.MaxAttendees,
		TicketPrice:  req.TicketPrice,
		IsPrivate:    req.IsPrivate,
	}
	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		upd.Status = &status
	}
	principal := middleware.PrincipalFromContext(r.Context())
	event, err := c.Events.Update(r.Context(), principal, slug, upd)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes an event along with its registrations and invitations. Only the organizer of the event can delete it.
// @Tags events
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	if err := c.Events.Delete(r.Context(), principal, slug); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RSVP godoc
// @Summary Register for an event
// @Description Creates the caller's RSVP for the event. Status defaults to going. At most one registration exists per (event, user).
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param body body RSVPRequest true "RSVP status (optional)"
// @Success 201 {object} controllers.RegistrationSuccessResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (private event without accepted invitation)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/rsvp [post]
func (c *EventController) RSVP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	req := RSVPRequest{}
	if r.ContentLength != 0 {
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}
	}
	principal := middleware.PrincipalFromContext(r.Context())
	reg, err := c.Registrations.Register(r.Context(), principal, slug, domain.RSVPStatus(req.Status))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// Invite godoc
// @Summary Invite an email to a private event
// @Description Creates a pending invitation and enqueues the invitation email. Only the organizer of a private event can invite; inviting to a public event is a 400.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param body body InviteRequest true "Invitee email"
// @Success 202 {object} controllers.InvitationSuccessResponse "data contains the pending invitation; delivery is asynchronous"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid email or event not private)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already invited)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/invite [post]
func (c *EventController) Invite(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	var req InviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	inv, err := c.Invitations.Send(r.Context(), principal, slug, req.Email)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusAccepted, inv)
}

// ListInvitations godoc
// @Summary List invitations for an event
// @Description Lists all invitations, pending and accepted, for the event. Only the organizer of the event can list them.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.InvitationListSuccessResponse "data contains the event's invitations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/invitations [get]
func (c *EventController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	invs, err := c.Invitations.ListForEvent(r.Context(), principal, slug)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invs)
}

// RegistrationListSuccessResponse is the success envelope for GET /me/registrations (200).
type RegistrationListSuccessResponse struct {
	Data  []*domain.Registration `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// MyRegistrations godoc
// @Summary List the caller's registrations
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.RegistrationListSuccessResponse "data contains the caller's registrations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/registrations [get]
func (c *EventController) MyRegistrations(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	regs, err := c.Registrations.ListMine(r.Context(), principal)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}
