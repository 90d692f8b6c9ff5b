package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	CategoryExterior = "EXTERIOR"
	CategoryRoom     = "ROOM"

	SubcategoryFrontExterior = "Front Exterior"
	SubcategoryBackExterior  = "Back Exterior"
)

// Options maps a catalog attribute name to the chosen value.
// Stored as a JSON object in the options_json column.
type Options map[string]string

// Value implements driver.Valuer
func (o Options) Value() (driver.Value, error) {
	if o == nil {
		return "{}", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (o *Options) Scan(value any) error {
	if value == nil {
		*o = Options{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Options", value)
	}

	if len(raw) == 0 {
		*o = Options{}
		return nil
	}

	opts := Options{}
	err := json.Unmarshal(raw, &opts)
	if err != nil {
		return fmt.Errorf("failed to decode options: %w", err)
	}
	*o = opts
	return nil
}

// Rendering is one generated image plus the metadata used to produce it.
// Rows are append-only: a modification inserts a new rendering.
type Rendering struct {
	ID          string    `db:"id"`
	UserID      *string   `db:"user_id"` // nil = created by a guest session
	Category    string    `db:"category"`
	Subcategory string    `db:"subcategory"`
	Options     Options   `db:"options_json"`
	Prompt      string    `db:"prompt"`
	ImagePath   string    `db:"image_path"`
	Liked       bool      `db:"liked"`
	Favorited   bool      `db:"favorited"`
	CreatedAt   time.Time `db:"created_at"`

	// Computed fields (not in database)
	ImageURL string `db:"-"`
}

func (r *Rendering) IsGuestOwned() bool {
	return r.UserID == nil
}

func (r *Rendering) OwnedBy(userID string) bool {
	return r.UserID != nil && userID != "" && *r.UserID == userID
}
