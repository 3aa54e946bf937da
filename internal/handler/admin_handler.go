package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hemp-kart/internal/model"
	"hemp-kart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminHandler handles discount-code management and analytics requests.
type AdminHandler struct {
	admin     service.AdminService
	analytics service.AnalyticsService
	logger    zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admin service.AdminService, analytics service.AnalyticsService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:     admin,
		analytics: analytics,
		logger:    logger.With().Str("handler", "admin").Logger(),
	}
}

// Codes handles GET and POST /admin/discounts requests.
func (h *AdminHandler) Codes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *AdminHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset parameter", h.logger)
			return
		}
	}

	codes, err := h.admin.List(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "codes": codes})
}

func (h *AdminHandler) create(w http.ResponseWriter, r *http.Request) {
	var req model.CodeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	code, err := h.admin.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "code": code})
}

// CodeByID handles PATCH and DELETE /admin/discounts/{id} requests.
func (h *AdminHandler) CodeByID(w http.ResponseWriter, r *http.Request) {
	// Expecting path: /admin/discounts/{id}
	idStr := r.URL.Path[len("/admin/discounts/"):]
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "discount code ID is required", h.logger)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid discount code ID format", h.logger)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.patch(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *AdminHandler) patch(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req model.CodePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	code, err := h.admin.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "code": code})
}

func (h *AdminHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.admin.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Analytics handles GET /admin/discounts/analytics requests.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	summary, err := h.analytics.Summary(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.AnalyticsResponse{OK: true, Summary: summary})
}

// AnalyticsExport handles POST /admin/discounts/analytics/export requests.
func (h *AdminHandler) AnalyticsExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	key, err := h.analytics.Export(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "key": key})
}
