package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

type InvitationController struct {
	Logger      *slog.Logger
	Invitations domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, invitations domain.InvitationService) *InvitationController {
	return &InvitationController{Logger: logger, Invitations: invitations}
}

// Accept godoc
// @Summary Accept an invitation
// @Description Accepts the pending invitation identified by the token. Tokens are single use; an already accepted or unknown token is a 404.
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} controllers.InvitationSuccessResponse "data contains the accepted invitation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/accept/{token} [get]
func (c *InvitationController) Accept(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing token")
		return
	}
	inv, err := c.Invitations.Accept(r.Context(), token)
	if err != nil {
		helpers.WriteDomainError(w, err)
		if !helpers.ClientError(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}
