package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusCompleted  = "completed"
	StatusIncomplete = "incomplete"
)

// AnswerMap records what the user submitted per question. Keys are
// question indexes rendered as strings; a nil value marks a question
// that was left unanswered.
type AnswerMap = map[string]*int

// Result is an immutable record of one graded submission. Total and
// UserAnswers are snapshotted at submission time and never follow later
// quiz edits; QuizID is a weak reference that may dangle after the quiz
// is deleted.
type Result struct {
	ID           uint                          `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time                     `json:"createdAt"`
	UpdatedAt    time.Time                     `json:"updatedAt"`
	UserID       uint                          `json:"userId" gorm:"not null;index"`
	QuizID       uint                          `json:"quizId" gorm:"not null;index"`
	Score        int                           `json:"score" gorm:"not null"`
	Total        int                           `json:"total" gorm:"not null"`
	CorrectCount int                           `json:"correctCount" gorm:"not null"`
	WrongCount   int                           `json:"wrongCount" gorm:"not null"`
	Percentage   float64                       `json:"percentage" gorm:"not null"`
	Status       string                        `json:"status" gorm:"not null;default:completed"`
	UserAnswers  datatypes.JSONType[AnswerMap] `json:"userAnswers" gorm:"type:jsonb"`
	SubmittedAt  time.Time                     `json:"submittedAt" gorm:"index"`
}
