package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/homerender/internal/model"
)

var (
	ErrRenderingNotFound = errors.New("rendering not found")
)

const (
	FlagLiked     = "liked"
	FlagFavorited = "favorited"
)

// RenderingRepository persists renderings. There is no update of generation
// data and no delete: a modification is a new row.
type RenderingRepository interface {
	Create(rendering *model.Rendering) error
	ByID(id string) (*model.Rendering, error)
	ByUser(userID string) ([]*model.Rendering, error)
	ByIDs(ids []string) ([]*model.Rendering, error)
	ToggleFlag(userID, flag string, ids []string) (int64, error)
	Count() (int, error)
}

type renderingRepository struct {
	db *sqlx.DB
}

func NewRenderingRepository(db *sqlx.DB) RenderingRepository {
	return &renderingRepository{db: db}
}

func (r *renderingRepository) Create(rendering *model.Rendering) error {
	query := `INSERT INTO renderings (id, user_id, category, subcategory, options_json, prompt, image_path, liked, favorited, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		rendering.ID,
		rendering.UserID,
		rendering.Category,
		rendering.Subcategory,
		rendering.Options,
		rendering.Prompt,
		rendering.ImagePath,
		rendering.Liked,
		rendering.Favorited,
		rendering.CreatedAt,
	)

	return err
}

func (r *renderingRepository) ByID(id string) (*model.Rendering, error) {
	rendering := &model.Rendering{}
	query := `SELECT * FROM renderings WHERE id = $1`

	err := r.db.Get(rendering, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrRenderingNotFound
	}

	return rendering, err
}

// ByUser returns the user's renderings, newest first
func (r *renderingRepository) ByUser(userID string) ([]*model.Rendering, error) {
	var renderings []*model.Rendering
	query := `SELECT * FROM renderings WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	err := r.db.Select(&renderings, query, userID)
	if err != nil {
		return nil, err
	}

	return renderings, nil
}

// ByIDs returns the guest-owned renderings among ids, newest first
func (r *renderingRepository) ByIDs(ids []string) ([]*model.Rendering, error) {
	if len(ids) == 0 {
		return []*model.Rendering{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM renderings WHERE user_id IS NULL AND id IN (?) ORDER BY created_at DESC, id DESC`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var renderings []*model.Rendering
	err = r.db.Select(&renderings, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return renderings, nil
}

// ToggleFlag flips liked or favorited on the given renderings owned by userID.
// Ids the user does not own are silently skipped.
func (r *renderingRepository) ToggleFlag(userID, flag string, ids []string) (int64, error) {
	if flag != FlagLiked && flag != FlagFavorited {
		return 0, fmt.Errorf("unknown flag %q", flag)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	// flag is one of two constants above, never user input
	query, args, err := sqlx.In(`UPDATE renderings SET `+flag+` = NOT `+flag+` WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.Exec(r.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *renderingRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM renderings`)
	return count, err
}
