// AngelaMos | 2026
// service.go

package household

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/plan"
)

// defaultPlanName is the plan every new household starts on.
const defaultPlanName = "free"

type Service struct {
	db        *core.Database
	tx        core.TxRunner
	repo      Repository
	plans     plan.Repository
	guard     *plan.Guard
	inviteTTL time.Duration
	now       func() time.Time
}

func NewService(
	db *core.Database,
	tx core.TxRunner,
	repo Repository,
	plans plan.Repository,
	guard *plan.Guard,
	inviteTTL time.Duration,
) *Service {
	return &Service{
		db:        db,
		tx:        tx,
		repo:      repo,
		plans:     plans,
		guard:     guard,
		inviteTTL: inviteTTL,
		now:       time.Now,
	}
}

// EnsureMember is the tenant gate every feature service calls before
// touching household data. Pending invites do not count as membership.
func (s *Service) EnsureMember(
	ctx context.Context,
	householdID, userID string,
) error {
	_, err := s.repo.GetMemberByUser(ctx, s.db.DB, householdID, userID)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf(
			"ensure member: %w",
			core.ForbiddenError("not a member of this household"),
		)
	}
	return err
}

func (s *Service) ensureAdmin(
	ctx context.Context,
	householdID, userID string,
) error {
	m, err := s.repo.GetMemberByUser(ctx, s.db.DB, householdID, userID)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf(
			"ensure admin: %w",
			core.ForbiddenError("not a member of this household"),
		)
	}
	if err != nil {
		return err
	}

	if m.Role != RoleAdmin {
		return fmt.Errorf(
			"ensure admin: %w",
			core.ForbiddenError("admin role required"),
		)
	}

	return nil
}

// Provision creates a household on the default plan together with its
// founding admin membership, in one transaction.
func (s *Service) Provision(
	ctx context.Context,
	userID string,
	req CreateHouseholdRequest,
) (*Household, error) {
	h := &Household{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(req.Name),
		SubscriptionStatus: SubscriptionFree,
		CreatedBy:          userID,
	}

	if h.Name == "" {
		return nil, fmt.Errorf(
			"provision household: %w",
			core.ValidationError("name is required"),
		)
	}

	err := s.tx.RunInTx(ctx, func(tx core.DBTX) error {
		planType, err := s.plans.GetPlanTypeByName(ctx, tx, defaultPlanName)
		if err != nil {
			return err
		}
		h.PlanTypeID = planType.ID

		if err := s.repo.Create(ctx, tx, h); err != nil {
			return err
		}

		founder := &Member{
			ID:          uuid.New().String(),
			HouseholdID: h.ID,
			UserID:      &userID,
			Role:        RoleAdmin,
		}
		if err := s.repo.CreateMember(ctx, tx, founder); err != nil {
			return err
		}

		return s.guard.RecordUsage(
			ctx, tx, h.ID, plan.UsageTypeMembers, 1,
		)
	})
	if err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) Get(
	ctx context.Context,
	householdID, userID string,
) (*Household, error) {
	if err := s.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, s.db.DB, householdID)
}

func (s *Service) ListForUser(
	ctx context.Context,
	userID string,
) ([]Household, error) {
	return s.repo.ListForUser(ctx, s.db.DB, userID)
}

func (s *Service) Update(
	ctx context.Context,
	householdID, userID string,
	req UpdateHouseholdRequest,
) (*Household, error) {
	if err := s.ensureAdmin(ctx, householdID, userID); err != nil {
		return nil, err
	}

	h, err := s.repo.GetByID(ctx, s.db.DB, householdID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		h.Name = strings.TrimSpace(*req.Name)
	}

	if err := s.repo.Update(ctx, s.db.DB, h); err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) Delete(
	ctx context.Context,
	householdID, userID string,
) error {
	if err := s.ensureAdmin(ctx, householdID, userID); err != nil {
		return err
	}

	return s.repo.SoftDelete(ctx, s.db.DB, householdID)
}

func (s *Service) ListMembers(
	ctx context.Context,
	householdID, userID string,
) ([]Member, error) {
	if err := s.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListMembers(ctx, s.db.DB, householdID)
}

// Invite creates a pending member row gated by the household's member
// quota and returns the raw token exactly once. Only the sha256 hash of
// the token is stored.
func (s *Service) Invite(
	ctx context.Context,
	householdID, userID string,
	req InviteMemberRequest,
) (*Member, string, error) {
	if err := s.ensureAdmin(ctx, householdID, userID); err != nil {
		return nil, "", err
	}

	role := req.Role
	if role == "" {
		role = RoleMember
	}
	if !ValidRole(role) {
		return nil, "", fmt.Errorf(
			"invite member: %w",
			core.ValidationError("role must be admin, member, or dashboard"),
		)
	}

	token, tokenHash, err := core.GenerateInviteToken()
	if err != nil {
		return nil, "", fmt.Errorf("invite member: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	expiresAt := s.now().Add(s.inviteTTL)

	m := &Member{
		ID:                  uuid.New().String(),
		HouseholdID:         householdID,
		InvitedEmail:        &email,
		Role:                role,
		InvitationTokenHash: &tokenHash,
		InvitationExpiresAt: &expiresAt,
	}

	err = s.tx.RunInTx(ctx, func(tx core.DBTX) error {
		if err := s.guard.CheckLimit(
			ctx, tx, householdID, plan.UsageTypeMembers,
		); err != nil {
			return err
		}

		if err := s.repo.CreateMember(ctx, tx, m); err != nil {
			return err
		}

		return s.guard.RecordUsage(
			ctx, tx, householdID, plan.UsageTypeMembers, 1,
		)
	})
	if err != nil {
		return nil, "", err
	}

	return m, token, nil
}

// AcceptInvite redeems an invite token for the authenticated user. The
// unique index on (household_id, user_id) turns a double-join into a
// duplicate key error, reported as a conflict.
func (s *Service) AcceptInvite(
	ctx context.Context,
	userID, token string,
) (*Member, error) {
	tokenHash := core.HashToken(token)

	var accepted *Member

	err := s.tx.RunInTx(ctx, func(tx core.DBTX) error {
		m, err := s.repo.GetMemberByTokenHash(ctx, tx, tokenHash)
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("accept invite: %w", core.TokenInvalidError())
		}
		if err != nil {
			return err
		}

		if !m.IsPendingInvite() {
			return fmt.Errorf("accept invite: %w", core.TokenInvalidError())
		}

		if m.InviteExpired(s.now()) {
			return fmt.Errorf("accept invite: %w", core.TokenExpiredError())
		}

		if err := s.repo.AcceptMember(ctx, tx, m.ID, userID); err != nil {
			return err
		}

		m.UserID = &userID
		m.InvitationTokenHash = nil
		m.InvitationExpiresAt = nil
		accepted = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return accepted, nil
}

// RemoveMember soft-deletes a membership and releases its quota slot.
// Admins can remove anyone; a regular member can only remove themselves.
// The last admin of a household cannot be removed.
func (s *Service) RemoveMember(
	ctx context.Context,
	householdID, actorID, memberID string,
) error {
	actor, err := s.repo.GetMemberByUser(ctx, s.db.DB, householdID, actorID)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf(
			"remove member: %w",
			core.ForbiddenError("not a member of this household"),
		)
	}
	if err != nil {
		return err
	}

	target, err := s.repo.GetMember(ctx, s.db.DB, householdID, memberID)
	if err != nil {
		return err
	}

	selfRemoval := actor.ID == target.ID
	if actor.Role != RoleAdmin && !selfRemoval {
		return fmt.Errorf(
			"remove member: %w",
			core.ForbiddenError("admin role required"),
		)
	}

	return s.tx.RunInTx(ctx, func(tx core.DBTX) error {
		if target.Role == RoleAdmin && !target.IsPendingInvite() {
			admins, err := s.repo.CountAdmins(ctx, tx, householdID)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return fmt.Errorf(
					"remove member: %w",
					core.ValidationError(
						"cannot remove the last admin of a household",
					),
				)
			}
		}

		if err := s.repo.SoftDeleteMember(
			ctx, tx, householdID, memberID,
		); err != nil {
			return err
		}

		return s.guard.RecordUsage(
			ctx, tx, householdID, plan.UsageTypeMembers, -1,
		)
	})
}

// Usage reports today's recorded usage alongside the plan's limits.
func (s *Service) Usage(
	ctx context.Context,
	householdID, userID string,
) ([]plan.Usage, error) {
	if err := s.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	return s.plans.TodayUsage(ctx, s.db.DB, householdID)
}
