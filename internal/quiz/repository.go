package quiz

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

func (r *Repository) CreateQuiz(quiz *models.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *Repository) GetQuizByID(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *Repository) GetAllQuizzes() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.db.Order("created_at").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *Repository) UpdateQuiz(quiz *models.Quiz) error {
	return r.db.Save(quiz).Error
}

// DeleteQuiz removes the quiz row only. Results referencing it are left
// untouched and resolve to a placeholder title from then on.
func (r *Repository) DeleteQuiz(id uint) error {
	res := r.db.Delete(&models.Quiz{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrQuizNotFound
	}
	return nil
}
