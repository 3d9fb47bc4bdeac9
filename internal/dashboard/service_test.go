package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quizapp/internal/models"
	"quizapp/internal/result"
)

type fakeResultStore struct {
	results []models.Result
	err     error
}

func (s *fakeResultStore) GetResultHistory(userID uint) ([]models.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Result
	for _, r := range s.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeQuizStore struct {
	quizzes map[uint]*models.Quiz
}

func (s *fakeQuizStore) GetQuizByID(id uint) (*models.Quiz, error) {
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, models.ErrQuizNotFound
	}
	return quiz, nil
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func testResult(userID, quizID uint, percentage float64, submittedAt time.Time) models.Result {
	return models.Result{
		UserID:      userID,
		QuizID:      quizID,
		Percentage:  percentage,
		Status:      models.StatusCompleted,
		SubmittedAt: submittedAt,
	}
}

func TestDashboardEmptyHistory(t *testing.T) {
	service := NewService(&fakeResultStore{}, &fakeQuizStore{})

	dash, err := service.Dashboard(1)
	require.NoError(t, err)

	require.NotNil(t, dash.Heatmap)
	require.NotNil(t, dash.Trend)
	require.Empty(t, dash.Heatmap)
	require.Empty(t, dash.Trend)
	require.Equal(t, 0, dash.Summary.TotalQuizzes)
	require.Equal(t, float64(0), dash.Summary.AvgPercentage)
	require.Nil(t, dash.Summary.BestQuiz)
	require.Nil(t, dash.Summary.WorstQuiz)
}

func TestDashboardGroupsSameDay(t *testing.T) {
	results := &fakeResultStore{results: []models.Result{
		testResult(1, 10, 80, day(t, "2024-03-01T09:00:00Z")),
		testResult(1, 10, 60, day(t, "2024-03-01T17:30:00Z")),
	}}
	quizzes := &fakeQuizStore{quizzes: map[uint]*models.Quiz{
		10: {ID: 10, Title: "Algebra"},
	}}
	service := NewService(results, quizzes)

	dash, err := service.Dashboard(1)
	require.NoError(t, err)

	require.Len(t, dash.Trend, 1)
	require.Equal(t, "2024-03-01", dash.Trend[0].Date)
	require.Equal(t, 2, dash.Trend[0].Count)
	require.Equal(t, float64(70), dash.Trend[0].Percentage)

	require.Len(t, dash.Heatmap, 1)
	require.Equal(t, HeatmapPoint{Date: "2024-03-01", Count: 2}, dash.Heatmap[0])

	require.Equal(t, 2, dash.Summary.TotalQuizzes)
	require.Equal(t, float64(70), dash.Summary.AvgPercentage)
}

func TestDashboardBestAndWorst(t *testing.T) {
	results := &fakeResultStore{results: []models.Result{
		testResult(1, 10, 50, day(t, "2024-03-01T09:00:00Z")),
		testResult(1, 11, 90, day(t, "2024-03-02T09:00:00Z")),
		testResult(1, 12, 20, day(t, "2024-03-03T09:00:00Z")),
	}}
	quizzes := &fakeQuizStore{quizzes: map[uint]*models.Quiz{
		10: {ID: 10, Title: "Algebra"},
		11: {ID: 11, Title: "Geometry"},
		12: {ID: 12, Title: "Calculus"},
	}}
	service := NewService(results, quizzes)

	dash, err := service.Dashboard(1)
	require.NoError(t, err)

	require.Equal(t, &QuizScore{QuizTitle: "Geometry", Percentage: 90}, dash.Summary.BestQuiz)
	require.Equal(t, &QuizScore{QuizTitle: "Calculus", Percentage: 20}, dash.Summary.WorstQuiz)
}

func TestDashboardDeletedQuizFallback(t *testing.T) {
	results := &fakeResultStore{results: []models.Result{
		testResult(1, 10, 75, day(t, "2024-03-01T09:00:00Z")),
	}}
	service := NewService(results, &fakeQuizStore{quizzes: map[uint]*models.Quiz{}})

	dash, err := service.Dashboard(1)
	require.NoError(t, err)

	require.Equal(t, result.DeletedQuizTitle, dash.Summary.BestQuiz.QuizTitle)
	require.Equal(t, result.DeletedQuizTitle, dash.Summary.WorstQuiz.QuizTitle)
	require.Equal(t, float64(75), dash.Summary.BestQuiz.Percentage)
}

func TestDashboardRoundsAverages(t *testing.T) {
	// Stored percentages stay unrounded; only the aggregate output is
	// rounded to two decimals.
	third := 1.0 / 3.0 * 100
	results := &fakeResultStore{results: []models.Result{
		testResult(1, 10, third, day(t, "2024-03-01T09:00:00Z")),
		testResult(1, 10, third, day(t, "2024-03-01T10:00:00Z")),
	}}
	quizzes := &fakeQuizStore{quizzes: map[uint]*models.Quiz{
		10: {ID: 10, Title: "Algebra"},
	}}
	service := NewService(results, quizzes)

	dash, err := service.Dashboard(1)
	require.NoError(t, err)

	require.Equal(t, 33.33, dash.Summary.AvgPercentage)
	require.Equal(t, 33.33, dash.Trend[0].Percentage)
	require.Equal(t, third, dash.Summary.BestQuiz.Percentage)
}

func TestDashboardDatesAscending(t *testing.T) {
	results := &fakeResultStore{results: []models.Result{
		testResult(1, 10, 50, day(t, "2024-02-28T09:00:00Z")),
		testResult(1, 10, 60, day(t, "2024-03-02T09:00:00Z")),
		testResult(1, 10, 70, day(t, "2024-03-01T09:00:00Z")),
	}}
	quizzes := &fakeQuizStore{quizzes: map[uint]*models.Quiz{
		10: {ID: 10, Title: "Algebra"},
	}}
	service := NewService(results, quizzes)

	dash, err := service.Dashboard(1)
	require.NoError(t, err)

	require.Equal(t, []HeatmapPoint{
		{Date: "2024-02-28", Count: 1},
		{Date: "2024-03-01", Count: 1},
		{Date: "2024-03-02", Count: 1},
	}, dash.Heatmap)
}

func TestDashboardStoreErrorSurfaces(t *testing.T) {
	service := NewService(&fakeResultStore{err: errors.New("connection reset")}, &fakeQuizStore{})

	_, err := service.Dashboard(1)
	require.Error(t, err)
}

func TestPerformanceEmptyHistory(t *testing.T) {
	service := NewService(&fakeResultStore{}, &fakeQuizStore{})

	perf, err := service.Performance(1)
	require.NoError(t, err)

	require.NotNil(t, perf.DailyActivity)
	require.Empty(t, perf.DailyActivity)
	require.NotNil(t, perf.Trend)
	require.Empty(t, perf.Trend)
	require.Equal(t, float64(0), perf.AvgPercentage)
	require.Equal(t, 0, perf.TotalQuizzes)
}

func TestPerformancePerSubmissionTrend(t *testing.T) {
	results := &fakeResultStore{results: []models.Result{
		testResult(1, 10, 40, day(t, "2024-03-01T09:00:00Z")),
		testResult(1, 10, 80, day(t, "2024-03-01T12:00:00Z")),
		testResult(1, 11, 90, day(t, "2024-03-02T09:00:00Z")),
	}}
	service := NewService(results, &fakeQuizStore{})

	perf, err := service.Performance(1)
	require.NoError(t, err)

	require.Equal(t, map[string]int{"2024-03-01": 2, "2024-03-02": 1}, perf.DailyActivity)
	require.Equal(t, []PerformancePoint{
		{Date: "2024-03-01", Percentage: 40},
		{Date: "2024-03-01", Percentage: 80},
		{Date: "2024-03-02", Percentage: 90},
	}, perf.Trend)
	require.Equal(t, float64(70), perf.AvgPercentage)
	require.Equal(t, 3, perf.TotalQuizzes)
}
