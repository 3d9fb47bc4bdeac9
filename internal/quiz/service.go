package quiz

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"quizapp/internal/models"
)

// QuizStore is the persistence capability for quiz documents.
type QuizStore interface {
	CreateQuiz(quiz *models.Quiz) error
	GetQuizByID(id uint) (*models.Quiz, error)
	GetAllQuizzes() ([]models.Quiz, error)
	UpdateQuiz(quiz *models.Quiz) error
	DeleteQuiz(id uint) error
}

// ResultStore persists graded submissions. Grading only ever appends.
type ResultStore interface {
	CreateResult(result *models.Result) error
}

// QuizCache fronts quiz reads; a nil cache disables caching.
type QuizCache interface {
	GetQuiz(id uint) (*models.Quiz, error)
	SetQuiz(quiz *models.Quiz) error
	InvalidateQuiz(id uint) error
}

type Service struct {
	store   QuizStore
	results ResultStore
	cache   QuizCache
}

func NewService(store QuizStore, results ResultStore, cache QuizCache) *Service {
	return &Service{
		store:   store,
		results: results,
		cache:   cache,
	}
}

func (s *Service) CreateQuiz(quiz *models.Quiz) error {
	if err := validateQuiz(quiz); err != nil {
		return err
	}
	if err := s.store.CreateQuiz(quiz); err != nil {
		return err
	}
	s.cacheQuiz(quiz)
	return nil
}

// GetQuiz returns the full quiz including the answer key.
func (s *Service) GetQuiz(id uint) (*models.Quiz, error) {
	if s.cache != nil {
		if quiz, err := s.cache.GetQuiz(id); err == nil {
			return quiz, nil
		}
	}

	quiz, err := s.store.GetQuizByID(id)
	if err != nil {
		return nil, err
	}
	s.cacheQuiz(quiz)
	return quiz, nil
}

// GetQuizView returns a quiz with correct-answer indexes stripped.
func (s *Service) GetQuizView(id uint) (models.QuizView, error) {
	quiz, err := s.GetQuiz(id)
	if err != nil {
		return models.QuizView{}, err
	}
	return quiz.View(), nil
}

func (s *Service) ListQuizzes() ([]models.QuizView, error) {
	quizzes, err := s.store.GetAllQuizzes()
	if err != nil {
		return nil, err
	}
	views := make([]models.QuizView, len(quizzes))
	for i, quiz := range quizzes {
		views[i] = quiz.View()
	}
	return views, nil
}

// UpdateQuiz replaces the quiz's authored fields. Existing results keep
// the totals and answer snapshots they were graded with.
func (s *Service) UpdateQuiz(id uint, update *models.Quiz) (*models.Quiz, error) {
	if err := validateQuiz(update); err != nil {
		return nil, err
	}

	quiz, err := s.store.GetQuizByID(id)
	if err != nil {
		return nil, err
	}

	quiz.Title = update.Title
	quiz.Description = update.Description
	quiz.TimeLimit = update.TimeLimit
	quiz.Questions = update.Questions

	if err := s.store.UpdateQuiz(quiz); err != nil {
		return nil, err
	}
	s.cacheQuiz(quiz)
	return quiz, nil
}

func (s *Service) DeleteQuiz(id uint) error {
	if err := s.store.DeleteQuiz(id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateQuiz(id); err != nil {
			log.Printf("Error invalidating quiz %d in cache: %v", id, err)
		}
	}
	return nil
}

// SubmissionSummary is the client-facing outcome of a graded submission.
type SubmissionSummary struct {
	Score        int     `json:"score"`
	Total        int     `json:"total"`
	Percentage   float64 `json:"percentage"`
	CorrectCount int     `json:"correctCount"`
	WrongCount   int     `json:"wrongCount"`
	ResultID     uint    `json:"resultId"`
}

// Submit grades answers against the quiz's answer key and persists one
// immutable result. answers[i] pairs with question i; entries past the
// end of answers are treated as unanswered and count as wrong. The quiz
// itself is never mutated. Submissions are not deduplicated: a retried
// request records a second result.
func (s *Service) Submit(quizID, userID uint, answers []*int) (*SubmissionSummary, error) {
	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	total := len(quiz.Questions)
	if total == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", models.ErrInvalidQuiz)
	}

	userAnswers := make(models.AnswerMap, total)
	correctCount := 0
	for i, question := range quiz.Questions {
		var submitted *int
		if i < len(answers) {
			submitted = answers[i]
		}
		userAnswers[strconv.Itoa(i)] = submitted

		if submitted != nil && *submitted == question.CorrectAnswer {
			correctCount++
		}
	}

	score := correctCount
	wrongCount := total - correctCount
	percentage := float64(score) / float64(total) * 100

	result := &models.Result{
		UserID:       userID,
		QuizID:       quizID,
		Score:        score,
		Total:        total,
		CorrectCount: correctCount,
		WrongCount:   wrongCount,
		Percentage:   percentage,
		Status:       models.StatusCompleted,
		UserAnswers:  datatypes.NewJSONType(userAnswers),
		SubmittedAt:  time.Now(),
	}
	if err := s.results.CreateResult(result); err != nil {
		return nil, err
	}

	return &SubmissionSummary{
		Score:        score,
		Total:        total,
		Percentage:   percentage,
		CorrectCount: correctCount,
		WrongCount:   wrongCount,
		ResultID:     result.ID,
	}, nil
}

func (s *Service) cacheQuiz(quiz *models.Quiz) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetQuiz(quiz); err != nil {
		log.Printf("Error caching quiz %d: %v", quiz.ID, err)
	}
}

func validateQuiz(quiz *models.Quiz) error {
	if strings.TrimSpace(quiz.Title) == "" {
		return fmt.Errorf("%w: title is required", models.ErrInvalidQuiz)
	}
	if quiz.TimeLimit == 0 {
		return fmt.Errorf("%w: time limit is required", models.ErrInvalidQuiz)
	}
	if len(quiz.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", models.ErrInvalidQuiz)
	}
	for i, question := range quiz.Questions {
		if strings.TrimSpace(question.Question) == "" {
			return fmt.Errorf("%w: question %d has no text", models.ErrInvalidQuiz, i)
		}
		if len(question.Options) < 2 {
			return fmt.Errorf("%w: question %d must have at least 2 options", models.ErrInvalidQuiz, i)
		}
		if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
			return fmt.Errorf("%w: question %d correct answer index out of range", models.ErrInvalidQuiz, i)
		}
	}
	return nil
}
