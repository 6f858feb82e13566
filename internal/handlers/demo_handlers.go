package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"petrocore-backend/internal/auth"
	"petrocore-backend/internal/models"
	"petrocore-backend/internal/services"
	"petrocore-backend/internal/store"
	"petrocore-backend/pkg/httputil"
)

// DemoHandler exposes the public demo-form endpoint and the admin lead
// dashboard endpoints.
type DemoHandler struct {
	demoService *services.DemoService
}

func NewDemoHandler(demoSvc *services.DemoService) *DemoHandler {
	return &DemoHandler{
		demoService: demoSvc,
	}
}

// HandleCreate handles POST /v1/demo-requests (public form submission).
func (h *DemoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDemoRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.demoService.CreateFromForm(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR [DemoHandler] Create failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to submit demo request")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /v1/admin/demo-requests.
func (h *DemoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	filter := store.DemoRequestFilter{Limit: limit, Offset: offset}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.DemoRequestStatus(raw)
		if !status.IsValid() {
			httputil.RespondError(w, http.StatusBadRequest, "Unknown status filter")
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("source"); raw != "" {
		source := models.DemoRequestSource(raw)
		if source != models.DemoSourceForm && source != models.DemoSourceChatbot {
			httputil.RespondError(w, http.StatusBadRequest, "Unknown source filter")
			return
		}
		filter.Source = &source
	}

	resp, err := h.demoService.List(r.Context(), filter)
	if err != nil {
		log.Printf("ERROR [DemoHandler] List failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list demo requests")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /v1/admin/demo-requests/{requestID}.
func (h *DemoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "requestID")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.demoService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Demo request not found")
			return
		}
		log.Printf("ERROR [DemoHandler] Get failed for %s: %v", id, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get demo request")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleUpdateStatus handles PATCH /v1/admin/demo-requests/{requestID}/status.
func (h *DemoHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "requestID")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateDemoStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.demoService.UpdateStatus(r.Context(), id, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Demo request not found")
		case errors.Is(err, store.ErrInvalidTransition):
			httputil.RespondError(w, http.StatusConflict, err.Error())
		default:
			log.Printf("ERROR [DemoHandler] UpdateStatus failed for %s: %v", id, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to update demo request")
		}
		return
	}

	if adminID, ok := auth.GetUserIDFromContext(r.Context()); ok {
		log.Printf("[DemoHandler] Request %s moved to %s by admin %s", id, resp.Status, adminID)
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}
