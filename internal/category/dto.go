// AngelaMos | 2026
// dto.go

package category

import (
	"time"
)

type CreateCategoryRequest struct {
	CategoryTypeID int    `json:"category_type_id" validate:"required,gt=0"`
	Name           string `json:"name"             validate:"required,min=1,max=100"`
	SortOrder      int    `json:"sort_order"       validate:"gte=0"`
}

type UpdateCategoryRequest struct {
	Name      *string `json:"name"       validate:"omitempty,min=1,max=100"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

type CategoryTypeResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type CategoryResponse struct {
	ID             int       `json:"id"`
	HouseholdID    string    `json:"household_id"`
	CategoryTypeID int       `json:"category_type_id"`
	Name           string    `json:"name"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToCategoryTypeResponseList(types []CategoryType) []CategoryTypeResponse {
	responses := make([]CategoryTypeResponse, 0, len(types))
	for _, ct := range types {
		responses = append(responses, CategoryTypeResponse{
			ID:        ct.ID,
			Name:      ct.Name,
			SortOrder: ct.SortOrder,
		})
	}
	return responses
}

func ToCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:             c.ID,
		HouseholdID:    c.HouseholdID,
		CategoryTypeID: c.CategoryTypeID,
		Name:           c.Name,
		SortOrder:      c.SortOrder,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func ToCategoryResponseList(categories []Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, ToCategoryResponse(&c))
	}
	return responses
}
