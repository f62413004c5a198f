package services

import (
	"errors"

	"github.com/finbook/finbook/internal/models"
	"github.com/finbook/finbook/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// bcryptCost matches the work factor used at sign-up; high enough to
// resist offline brute force.
const bcryptCost = 12

type AuthService struct {
	userRepo     *repository.UserRepository
	tokenService *TokenService
}

func NewAuthService(userRepo *repository.UserRepository, tokenService *TokenService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// SignUp creates a user if no existing row shares the email. The
// lookup-then-insert pair is backed by a unique index, so a concurrent
// duplicate that slips past the lookup still surfaces as ErrEmailTaken.
func (s *AuthService) SignUp(name, email, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// SignIn verifies the credentials and issues a bearer token for the
// matched user. Unknown email and wrong password are indistinguishable.
func (s *AuthService) SignIn(email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokenService.Issue(user.ID)
}
