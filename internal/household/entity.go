// AngelaMos | 2026
// entity.go

package household

import (
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleMember    = "member"
	RoleDashboard = "dashboard"
)

const (
	SubscriptionFree      = "free"
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

type Household struct {
	ID                 string     `db:"id"`
	Name               string     `db:"name"`
	PlanTypeID         int        `db:"plan_type_id"`
	SubscriptionStatus string     `db:"subscription_status"`
	CreatedBy          string     `db:"created_by"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

// Member rows exist in two shapes: accepted members carry a user_id, while
// outstanding invites carry only invited_email and a token hash. Accepting
// an invite fills user_id and clears the token.
type Member struct {
	ID                  string     `db:"id"`
	HouseholdID         string     `db:"household_id"`
	UserID              *string    `db:"user_id"`
	InvitedEmail        *string    `db:"invited_email"`
	Role                string     `db:"role"`
	InvitationTokenHash *string    `db:"invitation_token_hash"`
	InvitationExpiresAt *time.Time `db:"invitation_expires_at"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
}

func (m *Member) IsPendingInvite() bool {
	return m.UserID == nil && m.InvitationTokenHash != nil
}

func (m *Member) InviteExpired(now time.Time) bool {
	return m.InvitationExpiresAt != nil && now.After(*m.InvitationExpiresAt)
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMember, RoleDashboard:
		return true
	}
	return false
}
