package models

import "time"

// QuestionView is the answer-key-free shape served to students.
type QuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuizView struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	TimeLimit   uint           `json:"timeLimit"`
	Questions   []QuestionView `json:"questions"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// View strips the correct-answer indexes from a quiz.
func (q Quiz) View() QuizView {
	questions := make([]QuestionView, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = QuestionView{
			Question: question.Question,
			Options:  question.Options,
		}
	}
	return QuizView{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		TimeLimit:   q.TimeLimit,
		Questions:   questions,
		CreatedAt:   q.CreatedAt,
	}
}

// ResultSummary is one row of a user's result history, with the quiz
// title resolved at read time.
type ResultSummary struct {
	ResultID     uint      `json:"resultId"`
	QuizID       uint      `json:"quizId"`
	QuizTitle    string    `json:"quizTitle"`
	Score        int       `json:"score"`
	Total        int       `json:"total"`
	CorrectCount int       `json:"correctCount"`
	WrongCount   int       `json:"wrongCount"`
	Percentage   float64   `json:"percentage"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// UserView is a user without credential fields, as returned by auth
// endpoints.
type UserView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
