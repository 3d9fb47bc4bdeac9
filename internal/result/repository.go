package result

import (
	"errors"

	"gorm.io/gorm"

	"quizapp/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateResult appends one graded submission. Results are never updated
// or deleted afterwards.
func (r *Repository) CreateResult(result *models.Result) error {
	return r.db.Create(result).Error
}

func (r *Repository) GetResultByID(id uint) (*models.Result, error) {
	var result models.Result
	if err := r.db.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrResultNotFound
		}
		return nil, err
	}
	return &result, nil
}

// GetResultsByUser returns a user's results newest first, for listings.
func (r *Repository) GetResultsByUser(userID uint) ([]models.Result, error) {
	var results []models.Result
	err := r.db.Where("user_id = ?", userID).
		Order("submitted_at desc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetResultHistory returns a user's results oldest first, the order the
// aggregator consumes them in.
func (r *Repository) GetResultHistory(userID uint) ([]models.Result, error) {
	var results []models.Result
	err := r.db.Where("user_id = ?", userID).
		Order("submitted_at asc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
