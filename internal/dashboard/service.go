package dashboard

import (
	"errors"
	"math"
	"sort"

	"quizapp/internal/models"
	"quizapp/internal/result"
)

// ResultStore provides a user's full result history, oldest first.
type ResultStore interface {
	GetResultHistory(userID uint) ([]models.Result, error)
}

type QuizStore interface {
	GetQuizByID(id uint) (*models.Quiz, error)
}

// Service derives dashboard statistics from a user's result history.
// It is a pure read: every call recomputes from the stored results and
// nothing is ever cached or mutated.
type Service struct {
	results ResultStore
	quizzes QuizStore
}

func NewService(results ResultStore, quizzes QuizStore) *Service {
	return &Service{
		results: results,
		quizzes: quizzes,
	}
}

// QuizScore pairs a resolved quiz title with the stored (unrounded)
// percentage of one result.
type QuizScore struct {
	QuizTitle  string  `json:"quizTitle"`
	Percentage float64 `json:"percentage"`
}

// TrendPoint is one day of the average-percentage time series.
type TrendPoint struct {
	Date       string  `json:"date"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// HeatmapPoint is one day of the submission-count series.
type HeatmapPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Summary struct {
	TotalQuizzes  int        `json:"totalQuizzes"`
	AvgPercentage float64    `json:"avgPercentage"`
	BestQuiz      *QuizScore `json:"bestQuiz"`
	WorstQuiz     *QuizScore `json:"worstQuiz"`
}

type Dashboard struct {
	Heatmap []HeatmapPoint `json:"heatmap"`
	Trend   []TrendPoint   `json:"trend"`
	Summary Summary        `json:"summary"`
}

type dayBucket struct {
	sum   float64
	count int
}

// Dashboard aggregates the user's whole result history into summary,
// trend and heatmap statistics. Days are calendar dates of SubmittedAt
// in YYYY-MM-DD form, ascending. Best/worst ties go to the earliest
// submission.
func (s *Service) Dashboard(userID uint) (*Dashboard, error) {
	results, err := s.results.GetResultHistory(userID)
	if err != nil {
		return nil, err
	}

	// The averages below divide by the record count, so the empty
	// history short-circuits before any of them run.
	if len(results) == 0 {
		return &Dashboard{
			Heatmap: []HeatmapPoint{},
			Trend:   []TrendPoint{},
			Summary: Summary{},
		}, nil
	}

	var sum float64
	best, worst := &results[0], &results[0]
	days := make(map[string]*dayBucket)
	for i := range results {
		r := &results[i]
		sum += r.Percentage
		if r.Percentage > best.Percentage {
			best = r
		}
		if r.Percentage < worst.Percentage {
			worst = r
		}

		day := r.SubmittedAt.Format("2006-01-02")
		bucket := days[day]
		if bucket == nil {
			bucket = &dayBucket{}
			days[day] = bucket
		}
		bucket.sum += r.Percentage
		bucket.count++
	}

	dates := make([]string, 0, len(days))
	for day := range days {
		dates = append(dates, day)
	}
	// YYYY-MM-DD sorts chronologically as text.
	sort.Strings(dates)

	trend := make([]TrendPoint, 0, len(dates))
	heatmap := make([]HeatmapPoint, 0, len(dates))
	for _, day := range dates {
		bucket := days[day]
		trend = append(trend, TrendPoint{
			Date:       day,
			Percentage: round2(bucket.sum / float64(bucket.count)),
			Count:      bucket.count,
		})
		heatmap = append(heatmap, HeatmapPoint{Date: day, Count: bucket.count})
	}

	bestScore, err := s.quizScore(best)
	if err != nil {
		return nil, err
	}
	worstScore, err := s.quizScore(worst)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Heatmap: heatmap,
		Trend:   trend,
		Summary: Summary{
			TotalQuizzes:  len(results),
			AvgPercentage: round2(sum / float64(len(results))),
			BestQuiz:      bestScore,
			WorstQuiz:     worstScore,
		},
	}, nil
}

// PerformancePoint is one submission of the per-submission trend line.
type PerformancePoint struct {
	Date       string  `json:"date"`
	Percentage float64 `json:"percentage"`
}

type Performance struct {
	DailyActivity map[string]int     `json:"dailyActivity"`
	Trend         []PerformancePoint `json:"trend"`
	AvgPercentage float64            `json:"avgPercentage"`
	TotalQuizzes  int                `json:"totalQuizzes"`
}

// Performance returns the lighter per-submission view: a date-keyed
// activity map and one trend point per submission in submission order.
func (s *Service) Performance(userID uint) (*Performance, error) {
	results, err := s.results.GetResultHistory(userID)
	if err != nil {
		return nil, err
	}

	perf := &Performance{
		DailyActivity: make(map[string]int),
		Trend:         make([]PerformancePoint, 0, len(results)),
	}
	if len(results) == 0 {
		return perf, nil
	}

	var sum float64
	for _, r := range results {
		day := r.SubmittedAt.Format("2006-01-02")
		perf.DailyActivity[day]++
		perf.Trend = append(perf.Trend, PerformancePoint{
			Date:       day,
			Percentage: r.Percentage,
		})
		sum += r.Percentage
	}

	perf.AvgPercentage = round2(sum / float64(len(results)))
	perf.TotalQuizzes = len(results)
	return perf, nil
}

func (s *Service) quizScore(r *models.Result) (*QuizScore, error) {
	quiz, err := s.quizzes.GetQuizByID(r.QuizID)
	if err != nil {
		if errors.Is(err, models.ErrQuizNotFound) {
			return &QuizScore{QuizTitle: result.DeletedQuizTitle, Percentage: r.Percentage}, nil
		}
		return nil, err
	}
	return &QuizScore{QuizTitle: quiz.Title, Percentage: r.Percentage}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
