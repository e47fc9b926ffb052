// AngelaMos | 2026
// guard_test.go

package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
)

type fakeRepo struct {
	Repository

	maxTasks   *int
	maxMembers *int
	active     int

	upserts []upsertCall
}

type upsertCall struct {
	usageType string
	delta     int
	maxValue  *int
}

func (f *fakeRepo) PlanForHousehold(
	ctx context.Context,
	db core.DBTX,
	householdID string,
) (*HouseholdPlan, error) {
	return &HouseholdPlan{
		PlanTypeID:          1,
		MaxHouseholdMembers: f.maxMembers,
		MaxTasks:            f.maxTasks,
	}, nil
}

func (f *fakeRepo) CountActive(
	ctx context.Context,
	db core.DBTX,
	householdID, usageType string,
) (int, error) {
	return f.active, nil
}

func (f *fakeRepo) UpsertUsage(
	ctx context.Context,
	db core.DBTX,
	householdID, usageType string,
	delta int,
	maxValue *int,
) error {
	f.upserts = append(f.upserts, upsertCall{usageType, delta, maxValue})
	return nil
}

func intPtr(n int) *int { return &n }

func TestCheckLimit(t *testing.T) {
	tests := []struct {
		name      string
		repo      *fakeRepo
		usageType string
		wantErr   error
	}{
		{
			name:      "under the cap passes",
			repo:      &fakeRepo{maxTasks: intPtr(10), active: 9},
			usageType: UsageTypeTasks,
		},
		{
			name:      "at the cap is denied",
			repo:      &fakeRepo{maxTasks: intPtr(10), active: 10},
			usageType: UsageTypeTasks,
			wantErr:   core.ErrQuotaExceeded,
		},
		{
			name:      "over the cap is denied",
			repo:      &fakeRepo{maxMembers: intPtr(3), active: 5},
			usageType: UsageTypeMembers,
			wantErr:   core.ErrQuotaExceeded,
		},
		{
			name:      "nil cap is unlimited",
			repo:      &fakeRepo{maxTasks: nil, active: 100000},
			usageType: UsageTypeTasks,
		},
		{
			name:      "uncapped usage type always passes",
			repo:      &fakeRepo{maxTasks: intPtr(1), active: 100000},
			usageType: UsageTypeEvents,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := NewGuard(tt.repo)

			err := guard.CheckLimit(
				context.Background(), nil, "household-1", tt.usageType,
			)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("CheckLimit() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckLimit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordUsageStampsPlanCap(t *testing.T) {
	repo := &fakeRepo{maxTasks: intPtr(20)}
	guard := NewGuard(repo)

	err := guard.RecordUsage(
		context.Background(), nil, "household-1", UsageTypeTasks, 1,
	)
	if err != nil {
		t.Fatalf("RecordUsage() error = %v", err)
	}

	if len(repo.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(repo.upserts))
	}
	call := repo.upserts[0]
	if call.usageType != UsageTypeTasks || call.delta != 1 {
		t.Errorf("upsert call = %+v", call)
	}
	if call.maxValue == nil || *call.maxValue != 20 {
		t.Errorf("stamped max = %v, want 20", call.maxValue)
	}
}

func TestRecordUsageDecrement(t *testing.T) {
	repo := &fakeRepo{}
	guard := NewGuard(repo)

	err := guard.RecordUsage(
		context.Background(), nil, "household-1", UsageTypeEvents, -1,
	)
	if err != nil {
		t.Fatalf("RecordUsage() error = %v", err)
	}

	if len(repo.upserts) != 1 || repo.upserts[0].delta != -1 {
		t.Fatalf("upserts = %+v, want one delta of -1", repo.upserts)
	}
	if repo.upserts[0].maxValue != nil {
		t.Errorf("uncapped type stamped max %v", *repo.upserts[0].maxValue)
	}
}
