package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"quizapp/internal/models"
)

type fakeQuizStore struct {
	quizzes map[uint]*models.Quiz
	nextID  uint
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{quizzes: make(map[uint]*models.Quiz)}
}

func (s *fakeQuizStore) CreateQuiz(quiz *models.Quiz) error {
	s.nextID++
	quiz.ID = s.nextID
	stored := *quiz
	s.quizzes[quiz.ID] = &stored
	return nil
}

func (s *fakeQuizStore) GetQuizByID(id uint) (*models.Quiz, error) {
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, models.ErrQuizNotFound
	}
	copied := *quiz
	return &copied, nil
}

func (s *fakeQuizStore) GetAllQuizzes() ([]models.Quiz, error) {
	quizzes := make([]models.Quiz, 0, len(s.quizzes))
	for _, quiz := range s.quizzes {
		quizzes = append(quizzes, *quiz)
	}
	return quizzes, nil
}

func (s *fakeQuizStore) UpdateQuiz(quiz *models.Quiz) error {
	if _, ok := s.quizzes[quiz.ID]; !ok {
		return models.ErrQuizNotFound
	}
	stored := *quiz
	s.quizzes[quiz.ID] = &stored
	return nil
}

func (s *fakeQuizStore) DeleteQuiz(id uint) error {
	if _, ok := s.quizzes[id]; !ok {
		return models.ErrQuizNotFound
	}
	delete(s.quizzes, id)
	return nil
}

type fakeResultStore struct {
	created []*models.Result
	err     error
}

func (s *fakeResultStore) CreateResult(result *models.Result) error {
	if s.err != nil {
		return s.err
	}
	result.ID = uint(len(s.created) + 1)
	s.created = append(s.created, result)
	return nil
}

func intPtr(v int) *int { return &v }

func newTestService(t *testing.T) (*Service, *fakeQuizStore, *fakeResultStore) {
	t.Helper()
	quizzes := newFakeQuizStore()
	results := &fakeResultStore{}
	return NewService(quizzes, results, nil), quizzes, results
}

func threeQuestionQuiz() *models.Quiz {
	return &models.Quiz{
		Title:     "Geography",
		TimeLimit: 10,
		Questions: datatypes.JSONSlice[models.Question]{
			{Question: "Capital of France?", Options: []string{"Berlin", "Paris"}, CorrectAnswer: 1},
			{Question: "Largest ocean?", Options: []string{"Pacific", "Atlantic"}, CorrectAnswer: 0},
			{Question: "Longest river?", Options: []string{"Amazon", "Yangtze", "Nile"}, CorrectAnswer: 2},
		},
	}
}

func TestSubmitAllCorrect(t *testing.T) {
	service, _, results := newTestService(t)

	quiz := threeQuestionQuiz()
	require.NoError(t, service.CreateQuiz(quiz))

	summary, err := service.Submit(quiz.ID, 7, []*int{intPtr(1), intPtr(0), intPtr(2)})
	require.NoError(t, err)

	require.Equal(t, 3, summary.Score)
	require.Equal(t, 3, summary.Total)
	require.Equal(t, 3, summary.CorrectCount)
	require.Equal(t, 0, summary.WrongCount)
	require.Equal(t, float64(100), summary.Percentage)
	require.Equal(t, uint(1), summary.ResultID)

	require.Len(t, results.created, 1)
	stored := results.created[0]
	require.Equal(t, uint(7), stored.UserID)
	require.Equal(t, quiz.ID, stored.QuizID)
	require.Equal(t, models.StatusCompleted, stored.Status)
}

func TestSubmitPartiallyCorrect(t *testing.T) {
	service, _, _ := newTestService(t)

	quiz := threeQuestionQuiz()
	require.NoError(t, service.CreateQuiz(quiz))

	summary, err := service.Submit(quiz.ID, 7, []*int{intPtr(1), intPtr(1), intPtr(2)})
	require.NoError(t, err)

	require.Equal(t, 2, summary.Score)
	require.Equal(t, 1, summary.WrongCount)
	require.InDelta(t, 66.67, summary.Percentage, 0.01)
	require.Equal(t, 2.0/3.0*100, summary.Percentage)
}

func TestSubmitAllWrong(t *testing.T) {
	service, _, _ := newTestService(t)

	quiz := threeQuestionQuiz()
	require.NoError(t, service.CreateQuiz(quiz))

	summary, err := service.Submit(quiz.ID, 7, []*int{intPtr(0), intPtr(1), intPtr(0)})
	require.NoError(t, err)
	require.Equal(t, 0, summary.Score)
	require.Equal(t, float64(0), summary.Percentage)
	require.Equal(t, summary.Total, summary.CorrectCount+summary.WrongCount)
}

func TestSubmitShortAnswersCountMissingAsWrong(t *testing.T) {
	service, _, results := newTestService(t)

	quiz := threeQuestionQuiz()
	require.NoError(t, service.CreateQuiz(quiz))

	summary, err := service.Submit(quiz.ID, 7, []*int{intPtr(1)})
	require.NoError(t, err)

	require.Equal(t, 1, summary.Score)
	require.Equal(t, 2, summary.WrongCount)
	require.Equal(t, 3, summary.Total)

	answers := results.created[0].UserAnswers.Data()
	require.Len(t, answers, 3)
	require.Equal(t, 1, *answers["0"])
	require.Nil(t, answers["1"])
	require.Nil(t, answers["2"])
}

func TestSubmitRecordsNullForSkippedQuestions(t *testing.T) {
	service, _, results := newTestService(t)

	quiz := threeQuestionQuiz()
	require.NoError(t, service.CreateQuiz(quiz))

	_, err := service.Submit(quiz.ID, 7, []*int{intPtr(1), nil, intPtr(2)})
	require.NoError(t, err)

	answers := results.created[0].UserAnswers.Data()
	require.Nil(t, answers["1"])
	require.Equal(t, 2, *answers["2"])
}

func TestSubmitQuizNotFound(t *testing.T) {
	service, _, results := newTestService(t)

	_, err := service.Submit(42, 7, []*int{intPtr(0)})
	require.ErrorIs(t, err, models.ErrQuizNotFound)
	require.Empty(t, results.created)
}

func TestSubmitPersistenceFailureSurfaces(t *testing.T) {
	quizzes := newFakeQuizStore()
	results := &fakeResultStore{err: errors.New("connection reset")}
	service := NewService(quizzes, results, nil)

	quiz := threeQuestionQuiz()
	require.NoError(t, service.CreateQuiz(quiz))

	_, err := service.Submit(quiz.ID, 7, []*int{intPtr(1)})
	require.Error(t, err)
	require.NotErrorIs(t, err, models.ErrQuizNotFound)
}

func TestSubmitDoesNotMutateQuiz(t *testing.T) {
	service, quizzes, _ := newTestService(t)

	quiz := threeQuestionQuiz()
	require.NoError(t, service.CreateQuiz(quiz))

	_, err := service.Submit(quiz.ID, 7, []*int{intPtr(1), intPtr(0), intPtr(2)})
	require.NoError(t, err)

	stored, err := quizzes.GetQuizByID(quiz.ID)
	require.NoError(t, err)
	require.Equal(t, quiz.Questions, stored.Questions)
}

func TestRepeatedSubmissionsCreateDistinctResults(t *testing.T) {
	service, _, results := newTestService(t)

	quiz := threeQuestionQuiz()
	require.NoError(t, service.CreateQuiz(quiz))

	first, err := service.Submit(quiz.ID, 7, []*int{intPtr(1)})
	require.NoError(t, err)
	second, err := service.Submit(quiz.ID, 7, []*int{intPtr(1)})
	require.NoError(t, err)

	require.NotEqual(t, first.ResultID, second.ResultID)
	require.Len(t, results.created, 2)
}

func TestCreateQuizValidation(t *testing.T) {
	service, _, _ := newTestService(t)

	cases := []struct {
		name string
		quiz *models.Quiz
	}{
		{
			name: "no title",
			quiz: &models.Quiz{
				TimeLimit: 10,
				Questions: datatypes.JSONSlice[models.Question]{
					{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: 0},
				},
			},
		},
		{
			name: "no time limit",
			quiz: &models.Quiz{
				Title: "T",
				Questions: datatypes.JSONSlice[models.Question]{
					{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: 0},
				},
			},
		},
		{
			name: "no questions",
			quiz: &models.Quiz{Title: "T", TimeLimit: 10},
		},
		{
			name: "single option",
			quiz: &models.Quiz{
				Title:     "T",
				TimeLimit: 10,
				Questions: datatypes.JSONSlice[models.Question]{
					{Question: "Q", Options: []string{"a"}, CorrectAnswer: 0},
				},
			},
		},
		{
			name: "correct answer out of range",
			quiz: &models.Quiz{
				Title:     "T",
				TimeLimit: 10,
				Questions: datatypes.JSONSlice[models.Question]{
					{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: 2},
				},
			},
		},
		{
			name: "negative correct answer",
			quiz: &models.Quiz{
				Title:     "T",
				TimeLimit: 10,
				Questions: datatypes.JSONSlice[models.Question]{
					{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: -1},
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.CreateQuiz(tc.quiz)
			require.ErrorIs(t, err, models.ErrInvalidQuiz)
		})
	}
}

func TestUpdateQuizReplacesAuthoredFields(t *testing.T) {
	service, _, _ := newTestService(t)

	quiz := threeQuestionQuiz()
	require.NoError(t, service.CreateQuiz(quiz))

	updated, err := service.UpdateQuiz(quiz.ID, &models.Quiz{
		Title:     "Geography II",
		TimeLimit: 20,
		Questions: datatypes.JSONSlice[models.Question]{
			{Question: "Capital of Spain?", Options: []string{"Madrid", "Lisbon"}, CorrectAnswer: 0},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Geography II", updated.Title)
	require.Len(t, updated.Questions, 1)

	view, err := service.GetQuizView(quiz.ID)
	require.NoError(t, err)
	require.Len(t, view.Questions, 1)
}

func TestGetQuizViewStripsAnswerKey(t *testing.T) {
	service, _, _ := newTestService(t)

	quiz := threeQuestionQuiz()
	require.NoError(t, service.CreateQuiz(quiz))

	view, err := service.GetQuizView(quiz.ID)
	require.NoError(t, err)
	require.Len(t, view.Questions, 3)
	require.Equal(t, "Capital of France?", view.Questions[0].Question)
	require.Equal(t, []string{"Berlin", "Paris"}, view.Questions[0].Options)
}

func TestDeleteQuizNotFound(t *testing.T) {
	service, _, _ := newTestService(t)
	require.ErrorIs(t, service.DeleteQuiz(99), models.ErrQuizNotFound)
}
