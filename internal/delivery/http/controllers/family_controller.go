package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"familyinvitations/internal/delivery/http/helpers"
	"familyinvitations/internal/domain"
)

// CreateFamilyRequest is the request body for POST /admin/families.
type CreateFamilyRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator. Returns error messages for required rules.
func (c CreateFamilyRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// CreateFamilySuccessResponse is the success response envelope for POST /admin/families (201).
type CreateFamilySuccessResponse struct {
	Data  *domain.Family    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListFamiliesSuccessResponse is the success response envelope for GET /admin/families (200).
type ListFamiliesSuccessResponse struct {
	Data  []*domain.Family  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type FamilyController struct {
	Logger  *slog.Logger
	Service domain.FamilyService
}

func NewFamilyController(logger *slog.Logger, svc domain.FamilyService) *FamilyController {
	return &FamilyController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a family
// @Description Creates a family whose ID becomes its invitation link. The trimmed name must not match an existing family, case-insensitively.
// @Tags families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param family body CreateFamilyRequest true "Family data (name only)"
// @Success 201 {object} controllers.CreateFamilySuccessResponse "data contains the created family"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/families [post]
func (c *FamilyController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFamilyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	family, err := c.Service.Create(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "name is required")
		case errors.Is(err, domain.ErrDuplicateFamily):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "family name already registered")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, family)
}

// List godoc
// @Summary List families
// @Description Returns all families ordered by name.
// @Tags families
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListFamiliesSuccessResponse "data contains the family list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/families [get]
func (c *FamilyController) List(w http.ResponseWriter, r *http.Request) {
	families, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if families == nil {
		families = []*domain.Family{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, families)
}

// Delete godoc
// @Summary Delete a family
// @Description Deletes a family, expiring its invitation link. Any persisted response is kept.
// @Tags families
// @Produce json
// @Security BearerAuth
// @Param familyID path string true "Family ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the deleted ID"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/families/{familyID} [delete]
func (c *FamilyController) Delete(w http.ResponseWriter, r *http.Request) {
	familyID := r.PathValue("familyID")
	if !uuidRegex.MatchString(familyID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid familyID")
		return
	}
	if err := c.Service.Delete(r.Context(), familyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "family not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"id": familyID})
}

// Watch godoc
// @Summary Stream family list changes
// @Description Server-sent events stream. Emits the full family list immediately and again after every change. Closing the connection unsubscribes.
// @Tags families
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "SSE stream of family list snapshots"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/families/watch [get]
func (c *FamilyController) Watch(w http.ResponseWriter, r *http.Request) {
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
	for families := range snapshots {
		if err := writeSSEEvent(w, families); err != nil {
			return
		}
		flusher.Flush()
	}
}

// Export godoc
// @Summary Export families as a spreadsheet
// @Description Returns the full family list as an .xlsx download.
// @Tags families
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "xlsx workbook"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/families/export [get]
func (c *FamilyController) Export(w http.ResponseWriter, r *http.Request) {
	data, err := c.Service.ExportXLSX(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	writeXLSX(w, "families.xlsx", data)
}

func writeSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
}

func writeSSEEvent(w http.ResponseWriter, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n\n"))
	return err
}

func writeXLSX(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
