package httputil

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quizapp/internal/models"
)

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// WriteMessage writes a {"message": ...} JSON body.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteError maps domain errors onto HTTP status codes. Anything outside
// the known taxonomy is reported as a 500 without leaking details.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrQuizNotFound),
		errors.Is(err, models.ErrResultNotFound),
		errors.Is(err, models.ErrUserNotFound):
		WriteMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidQuiz),
		errors.Is(err, models.ErrInvalidSubmission),
		errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrInvalidAdminKey),
		errors.Is(err, models.ErrMissingFields),
		errors.Is(err, models.ErrInvalidRole):
		WriteMessage(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
