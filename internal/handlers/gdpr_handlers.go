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

// GDPRHandler exposes the public data-subject-request intake endpoint and the
// admin bookkeeping endpoints.
type GDPRHandler struct {
	gdprService *services.GDPRService
}

func NewGDPRHandler(gdprSvc *services.GDPRService) *GDPRHandler {
	return &GDPRHandler{
		gdprService: gdprSvc,
	}
}

// HandleCreate handles POST /v1/gdpr/requests (public intake).
func (h *GDPRHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGDPRRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.gdprService.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR [GDPRHandler] Create failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to submit request")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /v1/admin/gdpr/requests.
func (h *GDPRHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	filter := store.GDPRRequestFilter{Limit: limit, Offset: offset}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.GDPRRequestStatus(raw)
		if !status.IsValid() {
			httputil.RespondError(w, http.StatusBadRequest, "Unknown status filter")
			return
		}
		filter.Status = &status
	}

	resp, err := h.gdprService.List(r.Context(), filter)
	if err != nil {
		log.Printf("ERROR [GDPRHandler] List failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list requests")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /v1/admin/gdpr/requests/{requestID}.
func (h *GDPRHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "requestID")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.gdprService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Request not found")
			return
		}
		log.Printf("ERROR [GDPRHandler] Get failed for %s: %v", id, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get request")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleUpdateStatus handles PATCH /v1/admin/gdpr/requests/{requestID}/status.
func (h *GDPRHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "requestID")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateGDPRStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.gdprService.UpdateStatus(r.Context(), id, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Request not found")
		default:
			log.Printf("ERROR [GDPRHandler] UpdateStatus failed for %s: %v", id, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to update request")
		}
		return
	}

	if adminID, ok := auth.GetUserIDFromContext(r.Context()); ok {
		log.Printf("[GDPRHandler] Request %s moved to %s by admin %s", id, resp.Status, adminID)
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}
