package handler

import "net/http"

// HealthHandler reports liveness plus the degraded-mode flags
type HealthHandler struct {
	KnowledgeDegraded bool
	Generator         string
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	knowledge := "ok"
	if h.KnowledgeDegraded {
		knowledge = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":        "ok",
		"knowledgeBase": knowledge,
		"generator":     h.Generator,
	})
}
