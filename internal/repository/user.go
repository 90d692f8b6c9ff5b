package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/templui/homerender/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

const userColumns = `id, email, name, password_hash, created_at`

// UserRepository stores accounts. Renderings reference users by id, so
// there is no delete.
type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	Count() (int, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	return r.one(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// ByEmail matches case-insensitively; accounts registered before email
// normalization may carry mixed case.
func (r *userRepository) ByEmail(email string) (*model.User, error) {
	return r.one(`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM users`)
	return count, err
}

func (r *userRepository) one(query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.Get(user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// isUniqueViolation recognizes the unique constraint errors of both the
// sqlite and the postgres driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
