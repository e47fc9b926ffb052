// AngelaMos | 2026
// entity.go

package category

import (
	"time"
)

// CategoryType is the seeded global taxonomy (interior, exterior, and so
// on); categories are the per-household entries underneath a type.
type CategoryType struct {
	ID        int    `db:"id"`
	Name      string `db:"name"`
	SortOrder int    `db:"sort_order"`
}

type Category struct {
	ID             int        `db:"id"`
	HouseholdID    string     `db:"household_id"`
	CategoryTypeID int        `db:"category_type_id"`
	Name           string     `db:"name"`
	SortOrder      int        `db:"sort_order"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}
