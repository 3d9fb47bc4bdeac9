package result

import (
	"errors"
	"strconv"
	"time"

	"quizapp/internal/models"
)

// DeletedQuizTitle stands in for quizzes that were deleted after results
// referencing them were recorded.
const DeletedQuizTitle = "Deleted Quiz"

type ResultStore interface {
	GetResultByID(id uint) (*models.Result, error)
	GetResultsByUser(userID uint) ([]models.Result, error)
}

type QuizStore interface {
	GetQuizByID(id uint) (*models.Quiz, error)
}

type UserStore interface {
	GetUserByEmail(email string) (*models.User, error)
}

type Service struct {
	results ResultStore
	quizzes QuizStore
	users   UserStore
}

func NewService(results ResultStore, quizzes QuizStore, users UserStore) *Service {
	return &Service{
		results: results,
		quizzes: quizzes,
		users:   users,
	}
}

// ResultsForUser lists a user's results newest first, with quiz titles
// resolved at read time.
func (s *Service) ResultsForUser(userID uint) ([]models.ResultSummary, error) {
	results, err := s.results.GetResultsByUser(userID)
	if err != nil {
		return nil, err
	}

	titles := make(map[uint]string)
	summaries := make([]models.ResultSummary, len(results))
	for i, r := range results {
		title, ok := titles[r.QuizID]
		if !ok {
			title, err = s.quizTitle(r.QuizID)
			if err != nil {
				return nil, err
			}
			titles[r.QuizID] = title
		}

		summaries[i] = models.ResultSummary{
			ResultID:     r.ID,
			QuizID:       r.QuizID,
			QuizTitle:    title,
			Score:        r.Score,
			Total:        r.Total,
			CorrectCount: r.CorrectCount,
			WrongCount:   r.WrongCount,
			Percentage:   r.Percentage,
			Status:       r.Status,
			SubmittedAt:  r.SubmittedAt,
		}
	}
	return summaries, nil
}

// ResultsForEmail lists another user's results, looked up by email.
func (s *Service) ResultsForEmail(email string) ([]models.ResultSummary, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	return s.ResultsForUser(user.ID)
}

func (s *Service) GetResult(id uint) (*models.Result, error) {
	return s.results.GetResultByID(id)
}

type ReviewQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	UserAnswer    *int     `json:"userAnswer"`
}

type ReviewResult struct {
	Score        int       `json:"score"`
	Total        int       `json:"total"`
	Percentage   float64   `json:"percentage"`
	CorrectCount int       `json:"correctCount"`
	WrongCount   int       `json:"wrongCount"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// Review joins a result with its quiz for answer-by-answer review.
type Review struct {
	QuizID      uint             `json:"quizId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	TimeLimit   uint             `json:"timeLimit"`
	Questions   []ReviewQuestion `json:"questions"`
	Result      ReviewResult     `json:"result"`
}

// GetReview returns the full review for one result. The review needs the
// quiz's current questions, so it is unavailable once the quiz is gone.
func (s *Service) GetReview(resultID uint) (*Review, error) {
	result, err := s.results.GetResultByID(resultID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizzes.GetQuizByID(result.QuizID)
	if err != nil {
		return nil, err
	}

	answers := result.UserAnswers.Data()
	questions := make([]ReviewQuestion, len(quiz.Questions))
	for i, question := range quiz.Questions {
		questions[i] = ReviewQuestion{
			Question:      question.Question,
			Options:       question.Options,
			CorrectAnswer: question.CorrectAnswer,
			UserAnswer:    answers[strconv.Itoa(i)],
		}
	}

	return &Review{
		QuizID:      quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		TimeLimit:   quiz.TimeLimit,
		Questions:   questions,
		Result: ReviewResult{
			Score:        result.Score,
			Total:        result.Total,
			Percentage:   result.Percentage,
			CorrectCount: result.CorrectCount,
			WrongCount:   result.WrongCount,
			Status:       result.Status,
			SubmittedAt:  result.SubmittedAt,
		},
	}, nil
}

func (s *Service) quizTitle(quizID uint) (string, error) {
	quiz, err := s.quizzes.GetQuizByID(quizID)
	if err != nil {
		if errors.Is(err, models.ErrQuizNotFound) {
			return DeletedQuizTitle, nil
		}
		return "", err
	}
	return quiz.Title, nil
}
