package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TagList is an order-preserving list of tag strings, stored as a JSON
// document so it works on both PostgreSQL and SQLite.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(value any) error {
	if value == nil {
		*t = TagList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tag list column type %T", value)
	}
}

// Article represents an authored article identified by its slug.
//
// Favorited and FavoritesCount are derived from the favorites ledger at
// query time and never persisted on the row, so they cannot drift.
type Article struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	Slug        string  `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Title       string  `gorm:"size:300;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Body        string  `gorm:"type:text" json:"body"`
	TagList     TagList `gorm:"type:text" json:"tag_list"`
	AuthorID    uint    `gorm:"not null;index" json:"author_id"`
	Author      User    `gorm:"foreignKey:AuthorID" json:"author"`
	// FavoritesCount is not persisted; computed at query time
	FavoritesCount int64 `gorm:"->" json:"favorites_count"`
	// Favorited indicates whether the current requesting user favorited this article (computed)
	Favorited bool      `gorm:"->" json:"favorited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Article) TableName() string {
	return "articles"
}
