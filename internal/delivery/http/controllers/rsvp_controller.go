package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"familyinvitations/internal/delivery/http/helpers"
	"familyinvitations/internal/domain"
	"familyinvitations/internal/services"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// FlowStateSuccessResponse is the success response envelope carrying a flow state.
type FlowStateSuccessResponse struct {
	Data  services.FlowState `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// RSVPController serves the public invitation endpoints. Each request runs
// a fresh response flow: a GET stops at the invite display, a submit walks
// the flow through to its terminal state.
type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
	Profile domain.NameProfile
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService, profile domain.NameProfile) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
		Profile: profile,
	}
}

// Resolve godoc
// @Summary Resolve an invitation link
// @Description Resolves the family ID from an invitation link. Returns the invite display state, or a terminal state when the link has expired or the family already answered. An unknown or malformed ID reads as expired, never as an error.
// @Tags invitations
// @Produce json
// @Param familyID path string true "Family ID (UUID)"
// @Success 200 {object} controllers.FlowStateSuccessResponse "data contains the flow state"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{familyID} [get]
func (c *RSVPController) Resolve(w http.ResponseWriter, r *http.Request) {
	flow := c.newFlow(r.PathValue("familyID"))
	state, err := flow.Start(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, state)
}

// Accept godoc
// @Summary Accept an invitation
// @Description Records an accepted response for the family. At least one of father_name and mother_name is required; all names must match the name pattern. The response is rejected when the family has already answered or the link expired.
// @Tags invitations
// @Accept json
// @Produce json
// @Param familyID path string true "Family ID (UUID)"
// @Param response body services.AcceptForm true "Attendee names"
// @Success 201 {object} controllers.FlowStateSuccessResponse "data contains the confirmation state"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, field_errors set on validation failure"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{familyID}/accept [post]
func (c *RSVPController) Accept(w http.ResponseWriter, r *http.Request) {
	var form services.AcceptForm
	if !helpers.DecodeAndValidate(w, r, &form) {
		return
	}
	flow, ok := c.flowAtForm(w, r, true)
	if !ok {
		return
	}
	state, fieldErrs, err := flow.SubmitAccept(r.Context(), form)
	c.writeSubmitResult(w, r, state, fieldErrs, err)
}

// Decline godoc
// @Summary Decline an invitation
// @Description Records a declined response for the family, carrying the name of the person declining.
// @Tags invitations
// @Accept json
// @Produce json
// @Param familyID path string true "Family ID (UUID)"
// @Param response body services.DeclineForm true "Canceller name"
// @Success 201 {object} controllers.FlowStateSuccessResponse "data contains the confirmation state"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, field_errors set on validation failure"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{familyID}/decline [post]
func (c *RSVPController) Decline(w http.ResponseWriter, r *http.Request) {
	var form services.DeclineForm
	if !helpers.DecodeAndValidate(w, r, &form) {
		return
	}
	flow, ok := c.flowAtForm(w, r, false)
	if !ok {
		return
	}
	state, fieldErrs, err := flow.SubmitDecline(r.Context(), form)
	c.writeSubmitResult(w, r, state, fieldErrs, err)
}

func (c *RSVPController) newFlow(familyID string) *services.ResponseFlow {
	// A malformed ID never reaches the store; the flow reads it as expired.
	if !uuidRegex.MatchString(familyID) {
		familyID = ""
	}
	return services.NewResponseFlow(c.Service, c.Profile, familyID)
}

// flowAtForm walks a fresh flow up to the requested form. A link that is
// expired or already answered stops here with the matching status.
func (c *RSVPController) flowAtForm(w http.ResponseWriter, r *http.Request, accept bool) (*services.ResponseFlow, bool) {
	flow := c.newFlow(r.PathValue("familyID"))
	state, err := flow.Start(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return nil, false
	}
	switch state.Kind {
	case services.StateExpired:
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, state.Message)
		return nil, false
	case services.StateAlreadyAnswered:
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, state.Message)
		return nil, false
	case services.StateError:
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, state.Message)
		return nil, false
	}
	if _, err := flow.Respond(); err != nil {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return nil, false
	}
	if accept {
		_, err = flow.ChooseAccept()
	} else {
		_, err = flow.ChooseDecline()
	}
	if err != nil {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return nil, false
	}
	return flow, true
}

func (c *RSVPController) writeSubmitResult(w http.ResponseWriter, r *http.Request, state services.FlowState, fieldErrs services.FieldErrors, err error) {
	if len(fieldErrs) > 0 {
		helpers.WriteJSONFieldErrors(w, "validation failed", fieldErrs)
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, state.Message)
		case errors.Is(err, domain.ErrAlreadyAnswered):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, state.Message)
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, state.Message)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, state)
}
