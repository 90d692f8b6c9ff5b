package service

import (
	"fmt"

	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/repository"
)

// UserService resolves the account behind a request's auth cookie.
type UserService struct {
	userRepository repository.UserRepository
	authService    *AuthService
}

func NewUserService(userRepository repository.UserRepository, authService *AuthService) *UserService {
	return &UserService{userRepository: userRepository, authService: authService}
}

// FromToken verifies the JWT and loads its user. A valid token for a user
// that no longer exists is an error like any other bad token.
func (s *UserService) FromToken(token string) (*model.User, error) {
	userID, err := s.authService.VerifyJWT(token)
	if err != nil {
		return nil, err
	}

	user, err := s.ByID(userID)
	if err != nil {
		return nil, fmt.Errorf("token subject %s: %w", userID, err)
	}
	return user, nil
}

// ByID returns the user with the password hash blanked; the result ends up
// in the request context and in templates.
func (s *UserService) ByID(id string) (*model.User, error) {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}
