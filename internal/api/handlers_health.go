package api

import (
	"net/http"
	"time"

	"github.com/clive/milestones/internal/view"
)

type HealthHandler struct {
	reg     *view.Registry
	started time.Time
}

func NewHealthHandler(reg *view.Registry) *HealthHandler {
	return &HealthHandler{reg: reg, started: time.Now()}
}

type healthResponse struct {
	Status        string `json:"status"`
	Views         int    `json:"views"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Views:         h.reg.Len(),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}
