package controllers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// NotificationListSuccessResponse is the success envelope for GET /notifications (200).
type NotificationListSuccessResponse struct {
	Data  []*domain.Notification `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type NotificationController struct {
	Logger        *slog.Logger
	Notifications domain.NotificationService
}

func NewNotificationController(logger *slog.Logger, notifications domain.NotificationService) *NotificationController {
	return &NotificationController{Logger: logger, Notifications: notifications}
}

func (c *NotificationController) fail(w http.ResponseWriter, r *http.Request, err error) {
	helpers.WriteDomainError(w, err)
	if !helpers.ClientError(err) {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// List godoc
// @Summary List the caller's notifications
// @Description Returns the caller's in-app notifications, newest first.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.NotificationListSuccessResponse "data contains the caller's notifications"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications [get]
func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	notifs, err := c.Notifications.ListMine(r.Context(), principal)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, notifs)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Description Marks the caller's notification as read. A notification owned by another user responds 404, never 403.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications/{id}/mark-read [post]
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if uuid.Validate(id) != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid notification id")
		return
	}
	principal := middleware.PrincipalFromContext(r.Context())
	if err := c.Notifications.MarkRead(r.Context(), principal, id); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "notification marked as read"})
}
