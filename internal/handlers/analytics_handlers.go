package handlers

import (
	"log"
	"net/http"
	"time"

	"petrocore-backend/internal/analytics"
	"petrocore-backend/pkg/httputil"
)

// AnalyticsHandler exposes the admin reporting endpoint over whichever sink
// backend is configured.
type AnalyticsHandler struct {
	sink analytics.Sink
}

func NewAnalyticsHandler(sink analytics.Sink) *AnalyticsHandler {
	return &AnalyticsHandler{
		sink: sink,
	}
}

// HandleReport handles GET /v1/admin/analytics/report?from=&to= with RFC3339
// bounds. Defaults to the trailing 7 days.
func (h *AnalyticsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid 'from' timestamp; expected RFC3339")
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid 'to' timestamp; expected RFC3339")
			return
		}
		to = parsed
	}
	if !from.Before(to) {
		httputil.RespondError(w, http.StatusBadRequest, "'from' must be before 'to'")
		return
	}

	report, err := h.sink.Report(from, to)
	if err != nil {
		log.Printf("ERROR [AnalyticsHandler] Report failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}
