package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/workpulse/workpulse-backend-go/internal/handler/http/response"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
)

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type HealthHandlerImpl struct {
	db        *database.DB
	startedAt time.Time
}

func NewHealthHandler(db *database.DB) HealthHandler {
	return &HealthHandlerImpl{
		db:        db,
		startedAt: time.Now().UTC(),
	}
}

// Health implements HealthHandler.
func (h *HealthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	dbState := "up"
	if !h.db.Healthy(r.Context()) {
		dbState = "down"
	}

	payload := map[string]interface{}{
		"status":         "ok",
		"database":       dbState,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	}

	if dbState == "down" {
		payload["status"] = "degraded"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(payload)
		return
	}

	response.Success(w, payload)
}
