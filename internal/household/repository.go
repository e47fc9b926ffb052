// AngelaMos | 2026
// repository.go

package household

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
)

const memberColumns = `
	id, household_id, user_id, invited_email, role,
	invitation_token_hash, invitation_expires_at,
	created_at, updated_at, deleted_at`

type Repository interface {
	Create(ctx context.Context, db core.DBTX, h *Household) error
	GetByID(ctx context.Context, db core.DBTX, id string) (*Household, error)
	ListForUser(
		ctx context.Context,
		db core.DBTX,
		userID string,
	) ([]Household, error)
	Update(ctx context.Context, db core.DBTX, h *Household) error
	SoftDelete(ctx context.Context, db core.DBTX, id string) error

	CreateMember(ctx context.Context, db core.DBTX, m *Member) error
	GetMember(
		ctx context.Context,
		db core.DBTX,
		householdID, memberID string,
	) (*Member, error)
	GetMemberByUser(
		ctx context.Context,
		db core.DBTX,
		householdID, userID string,
	) (*Member, error)
	GetMemberByTokenHash(
		ctx context.Context,
		db core.DBTX,
		tokenHash string,
	) (*Member, error)
	ListMembers(
		ctx context.Context,
		db core.DBTX,
		householdID string,
	) ([]Member, error)
	AcceptMember(
		ctx context.Context,
		db core.DBTX,
		memberID, userID string,
	) error
	CountAdmins(
		ctx context.Context,
		db core.DBTX,
		householdID string,
	) (int, error)
	SoftDeleteMember(
		ctx context.Context,
		db core.DBTX,
		householdID, memberID string,
	) error
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) Create(
	ctx context.Context,
	db core.DBTX,
	h *Household,
) error {
	query := `
		INSERT INTO households
			(id, name, plan_type_id, subscription_status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := db.GetContext(ctx, h, query,
		h.ID,
		h.Name,
		h.PlanTypeID,
		h.SubscriptionStatus,
		h.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create household: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	db core.DBTX,
	id string,
) (*Household, error) {
	query := `
		SELECT id, name, plan_type_id, subscription_status, created_by,
		       created_at, updated_at, deleted_at
		FROM households
		WHERE id = $1 AND deleted_at IS NULL`

	var h Household
	err := db.GetContext(ctx, &h, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get household: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}

	return &h, nil
}

func (r *repository) ListForUser(
	ctx context.Context,
	db core.DBTX,
	userID string,
) ([]Household, error) {
	query := `
		SELECT h.id, h.name, h.plan_type_id, h.subscription_status,
		       h.created_by, h.created_at, h.updated_at, h.deleted_at
		FROM households h
		JOIN household_members m ON m.household_id = h.id
		WHERE m.user_id = $1 AND m.deleted_at IS NULL
		  AND h.deleted_at IS NULL
		ORDER BY h.created_at ASC, h.id ASC`

	var households []Household
	if err := db.SelectContext(ctx, &households, query, userID); err != nil {
		return nil, fmt.Errorf("list households for user: %w", err)
	}

	return households, nil
}

func (r *repository) Update(
	ctx context.Context,
	db core.DBTX,
	h *Household,
) error {
	query := `
		UPDATE households
		SET name = $2, subscription_status = $3, plan_type_id = $4,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := db.GetContext(ctx, &h.UpdatedAt, query,
		h.ID,
		h.Name,
		h.SubscriptionStatus,
		h.PlanTypeID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update household: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update household: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(
	ctx context.Context,
	db core.DBTX,
	id string,
) error {
	query := `
		UPDATE households
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete household: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete household: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete household: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CreateMember(
	ctx context.Context,
	db core.DBTX,
	m *Member,
) error {
	query := `
		INSERT INTO household_members
			(id, household_id, user_id, invited_email, role,
			 invitation_token_hash, invitation_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := db.GetContext(ctx, m, query,
		m.ID,
		m.HouseholdID,
		m.UserID,
		m.InvitedEmail,
		m.Role,
		m.InvitationTokenHash,
		m.InvitationExpiresAt,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create member: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create member: %w", err)
	}

	return nil
}

func (r *repository) GetMember(
	ctx context.Context,
	db core.DBTX,
	householdID, memberID string,
) (*Member, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM household_members
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL`,
		memberColumns)

	var m Member
	err := db.GetContext(ctx, &m, query, memberID, householdID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get member: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}

	return &m, nil
}

func (r *repository) GetMemberByUser(
	ctx context.Context,
	db core.DBTX,
	householdID, userID string,
) (*Member, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM household_members
		WHERE household_id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		memberColumns)

	var m Member
	err := db.GetContext(ctx, &m, query, householdID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get member by user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get member by user: %w", err)
	}

	return &m, nil
}

func (r *repository) GetMemberByTokenHash(
	ctx context.Context,
	db core.DBTX,
	tokenHash string,
) (*Member, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM household_members
		WHERE invitation_token_hash = $1 AND deleted_at IS NULL`,
		memberColumns)

	var m Member
	err := db.GetContext(ctx, &m, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get member by token: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get member by token: %w", err)
	}

	return &m, nil
}

func (r *repository) ListMembers(
	ctx context.Context,
	db core.DBTX,
	householdID string,
) ([]Member, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM household_members
		WHERE household_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC, id ASC`,
		memberColumns)

	var members []Member
	if err := db.SelectContext(ctx, &members, query, householdID); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	return members, nil
}

// AcceptMember attaches a user to an invite row and retires the token. The
// partial unique index on (household_id, user_id) rejects a second
// membership for the same user.
func (r *repository) AcceptMember(
	ctx context.Context,
	db core.DBTX,
	memberID, userID string,
) error {
	query := `
		UPDATE household_members
		SET user_id = $2, invitation_token_hash = NULL,
		    invitation_expires_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := db.ExecContext(ctx, query, memberID, userID)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("accept member: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("accept member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("accept member: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("accept member: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CountAdmins(
	ctx context.Context,
	db core.DBTX,
	householdID string,
) (int, error) {
	query := `
		SELECT COUNT(*) FROM household_members
		WHERE household_id = $1 AND role = 'admin'
		  AND user_id IS NOT NULL AND deleted_at IS NULL`

	var count int
	if err := db.GetContext(ctx, &count, query, householdID); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}

	return count, nil
}

func (r *repository) SoftDeleteMember(
	ctx context.Context,
	db core.DBTX,
	householdID, memberID string,
) error {
	query := `
		UPDATE household_members
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND household_id = $2 AND deleted_at IS NULL`

	result, err := db.ExecContext(ctx, query, memberID, householdID)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete member: %w", core.ErrNotFound)
	}

	return nil
}
