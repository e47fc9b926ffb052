// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
)

type MemberVerifier interface {
	EnsureMember(ctx context.Context, householdID, userID string) error
}

type Service struct {
	db      *core.Database
	repo    Repository
	members MemberVerifier
}

func NewService(
	db *core.Database,
	repo Repository,
	members MemberVerifier,
) *Service {
	return &Service{
		db:      db,
		repo:    repo,
		members: members,
	}
}

func (s *Service) ListTypes(ctx context.Context) ([]CategoryType, error) {
	return s.repo.ListTypes(ctx, s.db.DB)
}

// Create adds a household category under a global type. Names are unique
// per (household, type) among live rows; a clash reports as a duplicate.
func (s *Service) Create(
	ctx context.Context,
	householdID, userID string,
	req CreateCategoryRequest,
) (*Category, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	c := &Category{
		HouseholdID:    householdID,
		CategoryTypeID: req.CategoryTypeID,
		Name:           strings.TrimSpace(req.Name),
		SortOrder:      req.SortOrder,
	}

	if c.Name == "" {
		return nil, fmt.Errorf(
			"create category: %w",
			core.ValidationError("name is required"),
		)
	}

	err := s.repo.Create(ctx, s.db.DB, c)
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, fmt.Errorf(
			"create category: %w",
			core.ValidationError("a category with this name already exists"),
		)
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(
	ctx context.Context,
	householdID, userID string,
	categoryID int,
) (*Category, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, s.db.DB, householdID, categoryID)
}

func (s *Service) List(
	ctx context.Context,
	householdID, userID string,
) ([]Category, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	return s.repo.List(ctx, s.db.DB, householdID)
}

func (s *Service) Update(
	ctx context.Context,
	householdID, userID string,
	categoryID int,
	req UpdateCategoryRequest,
) (*Category, error) {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, s.db.DB, householdID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}

	err = s.repo.Update(ctx, s.db.DB, c)
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, fmt.Errorf(
			"update category: %w",
			core.ValidationError("a category with this name already exists"),
		)
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Delete soft-deletes a category. Tasks keep their category_id; reads of
// those tasks simply stop resolving the category.
func (s *Service) Delete(
	ctx context.Context,
	householdID, userID string,
	categoryID int,
) error {
	if err := s.members.EnsureMember(ctx, householdID, userID); err != nil {
		return err
	}

	return s.repo.SoftDelete(ctx, s.db.DB, householdID, categoryID)
}
