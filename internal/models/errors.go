package models

import "errors"

var (
	// ErrQuizNotFound is returned when the referenced quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrResultNotFound is returned when the referenced result does not exist.
	ErrResultNotFound = errors.New("result not found")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned on signup with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers bad email/password combinations.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidAdminKey is returned when an admin logs in without their key.
	ErrInvalidAdminKey = errors.New("invalid admin key")
	// ErrMissingFields is returned on signup with incomplete input.
	ErrMissingFields = errors.New("all fields are required")
	// ErrInvalidRole is returned on signup with an unknown role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidQuiz wraps quiz-authoring validation failures.
	ErrInvalidQuiz = errors.New("invalid quiz")
	// ErrInvalidSubmission is returned when the answers payload is not an array.
	ErrInvalidSubmission = errors.New("answers must be an array")
)
