package quiz

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quizapp/internal/auth"
	"quizapp/internal/httputil"
	"quizapp/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type QuizRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	TimeLimit   uint              `json:"timeLimit"`
	Questions   []models.Question `json:"questions"`
}

// CreateQuiz authors a new quiz. Admin only, enforced by the router.
func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	quiz := &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
		Questions:   req.Questions,
		CreatedBy:   userID,
	}
	if err := h.service.CreateQuiz(quiz); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, quiz)
}

// ListQuizzes serves every quiz without correct-answer indexes.
func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListQuizzes()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, quizzes)
}

// GetQuiz serves one quiz without correct-answer indexes.
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	view, err := h.service.GetQuizView(id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// GetQuizAdmin serves the full quiz including the answer key.
func (h *Handler) GetQuizAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	quiz, err := h.service.GetQuiz(id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, quiz)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	quiz, err := h.service.UpdateQuiz(id, &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
		Questions:   req.Questions,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Quiz updated successfully",
		"quiz":    quiz,
	})
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	if err := h.service.DeleteQuiz(id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Quiz deleted successfully")
}

type SubmitRequest struct {
	Answers []*int `json:"answers"`
}

type SubmitResponse struct {
	Message string `json:"message"`
	SubmissionSummary
}

// Submit grades the caller's answers. A null (or missing) entry marks an
// unanswered question.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	quizID, err := pathID(r, "id")
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Answers == nil {
		httputil.WriteError(w, models.ErrInvalidSubmission)
		return
	}

	summary, err := h.service.Submit(quizID, userID, req.Answers)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, SubmitResponse{
		Message:           "Quiz submitted successfully",
		SubmissionSummary: *summary,
	})
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
