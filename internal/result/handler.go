package result

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quizapp/internal/auth"
	"quizapp/internal/httputil"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Mine lists the caller's own results, newest first.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summaries, err := h.service.ResultsForUser(userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summaries)
}

// GetByID serves one raw result record.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid result ID")
		return
	}

	result, err := h.service.GetResult(id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// Review serves one result joined with its quiz for answer review.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "resultId")
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid result ID")
		return
	}

	review, err := h.service.GetReview(id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, review)
}

// ByEmail lists another user's results. Admin only, enforced by the
// router.
func (h *Handler) ByEmail(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	summaries, err := h.service.ResultsForEmail(email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summaries)
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
