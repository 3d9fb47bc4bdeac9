package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"quizapp/internal/models"
)

// UserStore is the persistence capability the auth service needs.
type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
}

type Service struct {
	store     UserStore
	jwtSecret []byte
}

func NewService(store UserStore, jwtSecret string) *Service {
	return &Service{
		store:     store,
		jwtSecret: []byte(jwtSecret),
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	AdminKey string
}

func (s *Service) Signup(input SignupInput) (string, *models.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return "", nil, models.ErrMissingFields
	}
	if !models.ValidRole(input.Role) {
		return "", nil, models.ErrInvalidRole
	}

	if _, err := s.store.GetUserByEmail(input.Email); err == nil {
		return "", nil, models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return "", nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     input.Role,
	}
	if user.Role == models.RoleAdmin {
		user.AdminKey = input.AdminKey
	}

	if err := s.store.CreateUser(user); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) Login(email, password, adminKey string) (string, *models.User, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	// Admin accounts need their admin key on top of the password.
	if user.Role == models.RoleAdmin && (adminKey == "" || user.AdminKey != adminKey) {
		return "", nil, models.ErrInvalidAdminKey
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) ListUsers() ([]models.UserView, error) {
	users, err := s.store.GetAllUsers()
	if err != nil {
		return nil, err
	}
	views := make([]models.UserView, len(users))
	for i, user := range users {
		views[i] = user.View()
	}
	return views, nil
}

func (s *Service) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
