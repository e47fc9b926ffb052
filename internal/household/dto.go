// AngelaMos | 2026
// dto.go

package household

import (
	"time"
)

type CreateHouseholdRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type UpdateHouseholdRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

type InviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"omitempty,oneof=admin member dashboard"`
}

type AcceptInviteRequest struct {
	Token string `json:"token" validate:"required"`
}

type HouseholdResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	PlanTypeID         int       `json:"plan_type_id"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreatedBy          string    `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type MemberResponse struct {
	ID           string     `json:"id"`
	HouseholdID  string     `json:"household_id"`
	UserID       *string    `json:"user_id"`
	InvitedEmail *string    `json:"invited_email,omitempty"`
	Role         string     `json:"role"`
	Pending      bool       `json:"pending"`
	ExpiresAt    *time.Time `json:"invitation_expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// InviteResponse is the only place the raw invite token ever appears; the
// database stores just its hash.
type InviteResponse struct {
	Member MemberResponse `json:"member"`
	Token  string         `json:"token"`
}

func ToHouseholdResponse(h *Household) HouseholdResponse {
	return HouseholdResponse{
		ID:                 h.ID,
		Name:               h.Name,
		PlanTypeID:         h.PlanTypeID,
		SubscriptionStatus: h.SubscriptionStatus,
		CreatedBy:          h.CreatedBy,
		CreatedAt:          h.CreatedAt,
		UpdatedAt:          h.UpdatedAt,
	}
}

func ToHouseholdResponseList(households []Household) []HouseholdResponse {
	responses := make([]HouseholdResponse, 0, len(households))
	for _, h := range households {
		responses = append(responses, ToHouseholdResponse(&h))
	}
	return responses
}

func ToMemberResponse(m *Member) MemberResponse {
	return MemberResponse{
		ID:           m.ID,
		HouseholdID:  m.HouseholdID,
		UserID:       m.UserID,
		InvitedEmail: m.InvitedEmail,
		Role:         m.Role,
		Pending:      m.IsPendingInvite(),
		ExpiresAt:    m.InvitationExpiresAt,
		CreatedAt:    m.CreatedAt,
	}
}

func ToMemberResponseList(members []Member) []MemberResponse {
	responses := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, ToMemberResponse(&m))
	}
	return responses
}
