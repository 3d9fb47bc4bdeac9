package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question is embedded in the quiz document. Its position in the
// Questions slice is its identity; CorrectAnswer indexes into Options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type Quiz struct {
	ID          uint                          `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time                     `json:"createdAt"`
	UpdatedAt   time.Time                     `json:"updatedAt"`
	Title       string                        `json:"title" gorm:"not null"`
	Description string                        `json:"description"`
	TimeLimit   uint                          `json:"timeLimit" gorm:"not null"` // minutes
	Questions   datatypes.JSONSlice[Question] `json:"questions" gorm:"type:jsonb"`
	CreatedBy   uint                          `json:"createdBy"`
}
