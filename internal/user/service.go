// AngelaMos | 2026
// service.go

package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/mkrzemien-software/homely-sub001/internal/auth"
	"github.com/mkrzemien-software/homely-sub001/internal/core"
)

type Service struct {
	db   *core.Database
	repo Repository
}

func NewService(db *core.Database, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, s.db.DB, userID)
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	u, err := s.repo.GetByID(ctx, s.db.DB, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}

	if err := s.repo.Update(ctx, s.db.DB, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.SoftDelete(ctx, s.db.DB, userID)
}

// Provider adapts the user store to what the auth service needs.
type Provider struct {
	db   *core.Database
	repo Repository
}

var _ auth.UserProvider = (*Provider)(nil)

func NewProvider(db *core.Database, repo Repository) *Provider {
	return &Provider{db: db, repo: repo}
}

func (p *Provider) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	u, err := p.repo.GetByEmail(ctx, p.db.DB, email)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (p *Provider) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	u, err := p.repo.GetByID(ctx, p.db.DB, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (p *Provider) Create(
	ctx context.Context,
	email, passwordHash, name string,
) (*auth.UserInfo, error) {
	u := &User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         name,
	}

	if err := p.repo.Create(ctx, p.db.DB, u); err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

func (p *Provider) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return p.repo.UpdatePassword(ctx, p.db.DB, userID, passwordHash)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}
