package dashboard

import (
	"net/http"

	"quizapp/internal/auth"
	"quizapp/internal/httputil"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Student serves the caller's dashboard. Student role only, enforced by
// the router.
func (h *Handler) Student(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dash, err := h.service.Dashboard(userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dash)
}

// Performance serves the caller's per-submission stats.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	perf, err := h.service.Performance(userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, perf)
}
