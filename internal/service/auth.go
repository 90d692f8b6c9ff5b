package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/repository"
	"github.com/templui/homerender/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const AuthCookieName = "auth_token"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
)

// ValidationError carries a user-facing message for a rejected form field.
// It matches ErrValidation and the wrapped field error.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string        { return e.Err.Error() }
func (e *ValidationError) Unwrap() error        { return e.Err }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

type AuthService struct {
	userRepository repository.UserRepository
	jwtSecret      string
	cookieSecure   bool
	jwtExpiry      time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	jwtSecret string,
	cookieSecure bool,
	jwtExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		jwtSecret:      jwtSecret,
		cookieSecure:   cookieSecure,
		jwtExpiry:      jwtExpiry,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Register creates a password account.
func (s *AuthService) Register(email, name, password string) (*model.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, invalid(err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, invalid(ErrEmailAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = normalizeEmail(email)

	if email == "" {
		return nil, invalid(validation.ErrEmailRequired)
	}
	if password == "" {
		return nil, invalid(validation.ErrPasswordRequired)
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateJWT(user *model.User) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(s.jwtExpiry)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     expiry.Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiry, nil
}

// VerifyJWT returns the user id carried by a valid token.
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("token has no user")
	}

	return userID, nil
}

// SignIn issues the auth cookie for user.
func (s *AuthService) SignIn(w http.ResponseWriter, user *model.User) error {
	token, expiry, err := s.GenerateJWT(user)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	s.SetJWTCookie(w, token, expiry)
	return nil
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
