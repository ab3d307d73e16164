package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"familyinvitations/internal/delivery/http/helpers"
	"familyinvitations/internal/domain"
)

// ListInvitationsSuccessResponse is the success response envelope for GET /admin/invitations (200).
type ListInvitationsSuccessResponse struct {
	Data  []*domain.Invitation `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List invitation responses
// @Description Returns all persisted responses ordered by family name.
// @Tags invitations-admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListInvitationsSuccessResponse "data contains the response list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/invitations [get]
func (c *InvitationController) List(w http.ResponseWriter, r *http.Request) {
	invitations, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if invitations == nil {
		invitations = []*domain.Invitation{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invitations)
}

// Delete godoc
// @Summary Delete an invitation response
// @Description Deletes a persisted response. If the family still exists, its link becomes answerable again.
// @Tags invitations-admin
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the deleted ID"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/invitations/{invitationID} [delete]
func (c *InvitationController) Delete(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	if !uuidRegex.MatchString(invitationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid invitationID")
		return
	}
	if err := c.Service.Delete(r.Context(), invitationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"id": invitationID})
}

// Watch godoc
// @Summary Stream invitation list changes
// @Description Server-sent events stream. Emits the full response list immediately and again after every change. Closing the connection unsubscribes.
// @Tags invitations-admin
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "SSE stream of invitation list snapshots"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/invitations/watch [get]
func (c *InvitationController) Watch(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "streaming unsupported")
		return
	}
	snapshots, err := c.Service.Watch(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	writeSSEHeaders(w)
	for invitations := range snapshots {
		if err := writeSSEEvent(w, invitations); err != nil {
			return
		}
		flusher.Flush()
	}
}

// Export godoc
// @Summary Export invitation responses as a spreadsheet
// @Description Returns the full response list as an .xlsx download.
// @Tags invitations-admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "xlsx workbook"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/invitations/export [get]
func (c *InvitationController) Export(w http.ResponseWriter, r *http.Request) {
	data, err := c.Service.ExportXLSX(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	writeXLSX(w, "invitations.xlsx", data)
}
