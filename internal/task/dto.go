// AngelaMos | 2026
// dto.go

package task

import (
	"time"
)

const dateLayout = "2006-01-02"

type IntervalRequest struct {
	Years  int `json:"years"  validate:"gte=0"`
	Months int `json:"months" validate:"gte=0"`
	Weeks  int `json:"weeks"  validate:"gte=0"`
	Days   int `json:"days"   validate:"gte=0"`
}

func (r IntervalRequest) ToInterval() Interval {
	return Interval{
		Years:  r.Years,
		Months: r.Months,
		Weeks:  r.Weeks,
		Days:   r.Days,
	}
}

type CreateTaskRequest struct {
	Name         string          `json:"name"           validate:"required,min=1,max=200"`
	Description  string          `json:"description"    validate:"max=2000"`
	CategoryID   *int            `json:"category_id"    validate:"omitempty,gt=0"`
	Priority     string          `json:"priority"       validate:"omitempty,oneof=low medium high"`
	Interval     IntervalRequest `json:"interval"`
	FirstDueDate string          `json:"first_due_date" validate:"omitempty,datetime=2006-01-02"`
	AssignedTo   *string         `json:"assigned_to"    validate:"omitempty,uuid"`
}

type UpdateTaskRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	CategoryID  *int    `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Priority    *string `json:"priority,omitempty"    validate:"omitempty,oneof=low medium high"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"household_id"`
	CategoryID  *int      `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Interval    Interval  `json:"interval"`
	OneOff      bool      `json:"one_off"`
	Priority    string    `json:"priority"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListTasksParams struct {
	Page       int
	PageSize   int
	CategoryID *int
	Priority   string
	ActiveOnly bool
}

func (p *ListTasksParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListTasksParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToTaskResponse(t *Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		HouseholdID: t.HouseholdID,
		CategoryID:  t.CategoryID,
		Name:        t.Name,
		Description: t.Description,
		Interval:    t.Interval,
		OneOff:      t.IsOneOff(),
		Priority:    t.Priority,
		IsActive:    t.IsActive,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTaskResponseList(tasks []Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, ToTaskResponse(&t))
	}
	return responses
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
