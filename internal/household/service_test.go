// AngelaMos | 2026
// service_test.go

package household

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
	"github.com/mkrzemien-software/homely-sub001/internal/plan"
)

type fakeTxRunner struct{}

func (f *fakeTxRunner) RunInTx(
	ctx context.Context,
	fn func(tx core.DBTX) error,
) error {
	return fn(nil)
}

type fakeRepo struct {
	households map[string]Household
	members    map[string]Member
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		households: make(map[string]Household),
		members:    make(map[string]Member),
	}
}

func (r *fakeRepo) Create(ctx context.Context, db core.DBTX, h *Household) error {
	r.households[h.ID] = *h
	return nil
}

func (r *fakeRepo) GetByID(
	ctx context.Context,
	db core.DBTX,
	id string,
) (*Household, error) {
	h, ok := r.households[id]
	if !ok {
		return nil, fmt.Errorf("get household: %w", core.ErrNotFound)
	}
	copied := h
	return &copied, nil
}

func (r *fakeRepo) ListForUser(
	ctx context.Context,
	db core.DBTX,
	userID string,
) ([]Household, error) {
	var out []Household
	for _, m := range r.members {
		if m.UserID != nil && *m.UserID == userID {
			if h, ok := r.households[m.HouseholdID]; ok {
				out = append(out, h)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, db core.DBTX, h *Household) error {
	if _, ok := r.households[h.ID]; !ok {
		return fmt.Errorf("update household: %w", core.ErrNotFound)
	}
	r.households[h.ID] = *h
	return nil
}

func (r *fakeRepo) SoftDelete(ctx context.Context, db core.DBTX, id string) error {
	delete(r.households, id)
	return nil
}

func (r *fakeRepo) CreateMember(ctx context.Context, db core.DBTX, m *Member) error {
	for _, existing := range r.members {
		if existing.HouseholdID == m.HouseholdID &&
			existing.UserID != nil && m.UserID != nil &&
			*existing.UserID == *m.UserID {
			return fmt.Errorf("create member: %w", core.ErrDuplicateKey)
		}
	}
	r.members[m.ID] = *m
	return nil
}

func (r *fakeRepo) GetMember(
	ctx context.Context,
	db core.DBTX,
	householdID, memberID string,
) (*Member, error) {
	m, ok := r.members[memberID]
	if !ok || m.HouseholdID != householdID {
		return nil, fmt.Errorf("get member: %w", core.ErrNotFound)
	}
	copied := m
	return &copied, nil
}

func (r *fakeRepo) GetMemberByUser(
	ctx context.Context,
	db core.DBTX,
	householdID, userID string,
) (*Member, error) {
	for _, m := range r.members {
		if m.HouseholdID == householdID &&
			m.UserID != nil && *m.UserID == userID {
			copied := m
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get member by user: %w", core.ErrNotFound)
}

func (r *fakeRepo) GetMemberByTokenHash(
	ctx context.Context,
	db core.DBTX,
	tokenHash string,
) (*Member, error) {
	for _, m := range r.members {
		if m.InvitationTokenHash != nil && *m.InvitationTokenHash == tokenHash {
			copied := m
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get member by token: %w", core.ErrNotFound)
}

func (r *fakeRepo) ListMembers(
	ctx context.Context,
	db core.DBTX,
	householdID string,
) ([]Member, error) {
	var out []Member
	for _, m := range r.members {
		if m.HouseholdID == householdID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) AcceptMember(
	ctx context.Context,
	db core.DBTX,
	memberID, userID string,
) error {
	m, ok := r.members[memberID]
	if !ok {
		return fmt.Errorf("accept member: %w", core.ErrNotFound)
	}
	m.UserID = &userID
	m.InvitationTokenHash = nil
	m.InvitationExpiresAt = nil
	r.members[memberID] = m
	return nil
}

func (r *fakeRepo) CountAdmins(
	ctx context.Context,
	db core.DBTX,
	householdID string,
) (int, error) {
	count := 0
	for _, m := range r.members {
		if m.HouseholdID == householdID &&
			m.Role == RoleAdmin && m.UserID != nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) SoftDeleteMember(
	ctx context.Context,
	db core.DBTX,
	householdID, memberID string,
) error {
	m, ok := r.members[memberID]
	if !ok || m.HouseholdID != householdID {
		return fmt.Errorf("soft delete member: %w", core.ErrNotFound)
	}
	delete(r.members, memberID)
	return nil
}

type fakePlanRepo struct {
	plan.Repository
}

func (f *fakePlanRepo) GetPlanTypeByName(
	ctx context.Context,
	db core.DBTX,
	name string,
) (*plan.PlanType, error) {
	return &plan.PlanType{ID: 1, Name: name, IsActive: true}, nil
}

func (f *fakePlanRepo) PlanForHousehold(
	ctx context.Context,
	db core.DBTX,
	householdID string,
) (*plan.HouseholdPlan, error) {
	return &plan.HouseholdPlan{PlanTypeID: 1}, nil
}

func (f *fakePlanRepo) CountActive(
	ctx context.Context,
	db core.DBTX,
	householdID, usageType string,
) (int, error) {
	return 0, nil
}

func (f *fakePlanRepo) UpsertUsage(
	ctx context.Context,
	db core.DBTX,
	householdID, usageType string,
	delta int,
	maxValue *int,
) error {
	return nil
}

var testClock = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo) *Service {
	planRepo := &fakePlanRepo{}
	s := NewService(
		&core.Database{},
		&fakeTxRunner{},
		repo,
		planRepo,
		plan.NewGuard(planRepo),
		7*24*time.Hour,
	)
	s.now = func() time.Time { return testClock }
	return s
}

func seedHousehold(repo *fakeRepo, adminUserID string) string {
	uid := adminUserID
	repo.households["hh-1"] = Household{
		ID:                 "hh-1",
		Name:               "Maple Street",
		PlanTypeID:         1,
		SubscriptionStatus: SubscriptionFree,
		CreatedBy:          adminUserID,
	}
	repo.members["m-admin"] = Member{
		ID:          "m-admin",
		HouseholdID: "hh-1",
		UserID:      &uid,
		Role:        RoleAdmin,
	}
	return "hh-1"
}

func TestProvision(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	h, err := s.Provision(
		context.Background(), "user-1",
		CreateHouseholdRequest{Name: "  Maple Street  "},
	)
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}

	if h.Name != "Maple Street" {
		t.Errorf("name = %q, want trimmed", h.Name)
	}
	if h.PlanTypeID != 1 {
		t.Errorf("plan type = %d, want the default plan", h.PlanTypeID)
	}
	if h.SubscriptionStatus != SubscriptionFree {
		t.Errorf("subscription = %q", h.SubscriptionStatus)
	}

	founder, err := repo.GetMemberByUser(context.Background(), nil, h.ID, "user-1")
	if err != nil {
		t.Fatalf("founder membership missing: %v", err)
	}
	if founder.Role != RoleAdmin {
		t.Errorf("founder role = %q, want admin", founder.Role)
	}
}

func TestProvisionRejectsBlankName(t *testing.T) {
	s := newTestService(newFakeRepo())

	_, err := s.Provision(
		context.Background(), "user-1",
		CreateHouseholdRequest{Name: "   "},
	)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("Provision() error = %v, want validation error", err)
	}
}

func TestEnsureMember(t *testing.T) {
	repo := newFakeRepo()
	hhID := seedHousehold(repo, "user-1")
	s := newTestService(repo)

	if err := s.EnsureMember(context.Background(), hhID, "user-1"); err != nil {
		t.Errorf("EnsureMember() for member error = %v", err)
	}

	err := s.EnsureMember(context.Background(), hhID, "outsider")
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("EnsureMember() for outsider error = %v, want forbidden", err)
	}
}

func TestInviteStoresOnlyTokenHash(t *testing.T) {
	repo := newFakeRepo()
	hhID := seedHousehold(repo, "admin-1")
	s := newTestService(repo)

	m, token, err := s.Invite(
		context.Background(), hhID, "admin-1",
		InviteMemberRequest{Email: "  New.Person@Example.COM "},
	)
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}

	if token == "" {
		t.Fatal("raw token not returned")
	}
	if m.InvitationTokenHash == nil {
		t.Fatal("token hash not stored")
	}
	if *m.InvitationTokenHash == token {
		t.Error("raw token stored instead of its hash")
	}
	if *m.InvitationTokenHash != core.HashToken(token) {
		t.Error("stored hash does not match the issued token")
	}

	if m.InvitedEmail == nil || *m.InvitedEmail != "new.person@example.com" {
		t.Errorf("invited email = %v, want lowercased and trimmed", m.InvitedEmail)
	}
	if m.Role != RoleMember {
		t.Errorf("role = %q, want default member", m.Role)
	}
	if m.InvitationExpiresAt == nil ||
		!m.InvitationExpiresAt.Equal(testClock.Add(7*24*time.Hour)) {
		t.Errorf("expiry = %v, want clock + ttl", m.InvitationExpiresAt)
	}
	if !m.IsPendingInvite() {
		t.Error("fresh invite is not pending")
	}
}

func TestInviteRequiresAdmin(t *testing.T) {
	repo := newFakeRepo()
	hhID := seedHousehold(repo, "admin-1")
	uid := "member-1"
	repo.members["m-2"] = Member{
		ID: "m-2", HouseholdID: hhID, UserID: &uid, Role: RoleMember,
	}
	s := newTestService(repo)

	_, _, err := s.Invite(
		context.Background(), hhID, "member-1",
		InviteMemberRequest{Email: "x@example.com"},
	)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("Invite() error = %v, want forbidden", err)
	}
}

func TestAcceptInvite(t *testing.T) {
	repo := newFakeRepo()
	hhID := seedHousehold(repo, "admin-1")
	s := newTestService(repo)

	_, token, err := s.Invite(
		context.Background(), hhID, "admin-1",
		InviteMemberRequest{Email: "joiner@example.com"},
	)
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}

	accepted, err := s.AcceptInvite(context.Background(), "joiner-1", token)
	if err != nil {
		t.Fatalf("AcceptInvite() error = %v", err)
	}

	if accepted.UserID == nil || *accepted.UserID != "joiner-1" {
		t.Errorf("user id = %v", accepted.UserID)
	}
	if accepted.InvitationTokenHash != nil {
		t.Error("token hash survived acceptance")
	}
	if accepted.IsPendingInvite() {
		t.Error("accepted member still pending")
	}

	// The token is single use.
	_, err = s.AcceptInvite(context.Background(), "someone-else", token)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("second redeem error = %v, want token invalid", err)
	}
}

func TestAcceptInviteUnknownToken(t *testing.T) {
	repo := newFakeRepo()
	seedHousehold(repo, "admin-1")
	s := newTestService(repo)

	_, err := s.AcceptInvite(context.Background(), "joiner-1", "not-a-token")
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("AcceptInvite() error = %v, want token invalid", err)
	}
}

func TestAcceptInviteExpired(t *testing.T) {
	repo := newFakeRepo()
	hhID := seedHousehold(repo, "admin-1")
	s := newTestService(repo)

	_, token, err := s.Invite(
		context.Background(), hhID, "admin-1",
		InviteMemberRequest{Email: "late@example.com"},
	)
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}

	s.now = func() time.Time { return testClock.Add(8 * 24 * time.Hour) }

	_, err = s.AcceptInvite(context.Background(), "joiner-1", token)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Fatalf("AcceptInvite() error = %v, want token expired", err)
	}
}

func TestRemoveMemberLastAdmin(t *testing.T) {
	repo := newFakeRepo()
	hhID := seedHousehold(repo, "admin-1")
	s := newTestService(repo)

	err := s.RemoveMember(context.Background(), hhID, "admin-1", "m-admin")
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("RemoveMember() error = %v, want validation error", err)
	}
	if _, ok := repo.members["m-admin"]; !ok {
		t.Error("last admin was removed anyway")
	}
}

func TestRemoveMemberSelfRemoval(t *testing.T) {
	repo := newFakeRepo()
	hhID := seedHousehold(repo, "admin-1")
	uid := "member-1"
	repo.members["m-2"] = Member{
		ID: "m-2", HouseholdID: hhID, UserID: &uid, Role: RoleMember,
	}
	s := newTestService(repo)

	if err := s.RemoveMember(
		context.Background(), hhID, "member-1", "m-2",
	); err != nil {
		t.Fatalf("self removal error = %v", err)
	}
	if _, ok := repo.members["m-2"]; ok {
		t.Error("member row survived removal")
	}
}

func TestRemoveMemberRequiresAdminForOthers(t *testing.T) {
	repo := newFakeRepo()
	hhID := seedHousehold(repo, "admin-1")
	uid := "member-1"
	repo.members["m-2"] = Member{
		ID: "m-2", HouseholdID: hhID, UserID: &uid, Role: RoleMember,
	}
	s := newTestService(repo)

	err := s.RemoveMember(context.Background(), hhID, "member-1", "m-admin")
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("RemoveMember() error = %v, want forbidden", err)
	}
}

func TestRemoveSecondAdminAllowed(t *testing.T) {
	repo := newFakeRepo()
	hhID := seedHousehold(repo, "admin-1")
	uid := "admin-2"
	repo.members["m-2"] = Member{
		ID: "m-2", HouseholdID: hhID, UserID: &uid, Role: RoleAdmin,
	}
	s := newTestService(repo)

	if err := s.RemoveMember(
		context.Background(), hhID, "admin-1", "m-2",
	); err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
}
