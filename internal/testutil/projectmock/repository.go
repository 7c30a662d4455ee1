package projectmock

import (
	"context"

	domain "protrack-backend/internal/domain/project"
)

// Repo is a function-backed mock that satisfies project.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.Project) error
	GetByProjectIDFn          func(ctx context.Context, projectID string) (*domain.Project, error)
	GetByProjectIDForUpdateFn func(ctx context.Context, projectID string) (*domain.Project, error)
	SaveFn                    func(ctx context.Context, p *domain.Project) error
	ListByOwnerFn             func(ctx context.Context, ownerID string) ([]domain.Project, error)
	ListByManagerFn           func(ctx context.Context, managerID string) ([]domain.Project, error)
	ListByCustomerFn          func(ctx context.Context, customerID string) ([]domain.Project, error)
	HasCustomerFn             func(ctx context.Context, projectID, customerID string) (bool, error)
	ReplaceCustomersFn        func(ctx context.Context, projectID string, customerIDs []string) error
	AddFilesFn                func(ctx context.Context, files []domain.ProjectFile) error
	DeleteFilesFn             func(ctx context.Context, projectID string, ids []uint64) error
	CreateRatingFn            func(ctx context.Context, r *domain.ProjectRating) error
	ListRatingsFn             func(ctx context.Context, projectID string) ([]domain.ProjectRating, error)
	GetRatingByCustomerFn     func(ctx context.Context, projectID, customerID string) (*domain.ProjectRating, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Project) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByProjectID(ctx context.Context, projectID string) (*domain.Project, error) {
	if m.GetByProjectIDFn != nil {
		return m.GetByProjectIDFn(ctx, projectID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByProjectIDForUpdate(ctx context.Context, projectID string) (*domain.Project, error) {
	if m.GetByProjectIDForUpdateFn != nil {
		return m.GetByProjectIDForUpdateFn(ctx, projectID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.Project) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *Repo) ListByManager(ctx context.Context, managerID string) ([]domain.Project, error) {
	if m.ListByManagerFn != nil {
		return m.ListByManagerFn(ctx, managerID)
	}
	return nil, nil
}

func (m *Repo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Project, error) {
	if m.ListByCustomerFn != nil {
		return m.ListByCustomerFn(ctx, customerID)
	}
	return nil, nil
}

func (m *Repo) HasCustomer(ctx context.Context, projectID, customerID string) (bool, error) {
	if m.HasCustomerFn != nil {
		return m.HasCustomerFn(ctx, projectID, customerID)
	}
	return false, nil
}

func (m *Repo) ReplaceCustomers(ctx context.Context, projectID string, customerIDs []string) error {
	if m.ReplaceCustomersFn != nil {
		return m.ReplaceCustomersFn(ctx, projectID, customerIDs)
	}
	return nil
}

func (m *Repo) AddFiles(ctx context.Context, files []domain.ProjectFile) error {
	if m.AddFilesFn != nil {
		return m.AddFilesFn(ctx, files)
	}
	return nil
}

func (m *Repo) DeleteFiles(ctx context.Context, projectID string, ids []uint64) error {
	if m.DeleteFilesFn != nil {
		return m.DeleteFilesFn(ctx, projectID, ids)
	}
	return nil
}

func (m *Repo) CreateRating(ctx context.Context, r *domain.ProjectRating) error {
	if m.CreateRatingFn != nil {
		return m.CreateRatingFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListRatings(ctx context.Context, projectID string) ([]domain.ProjectRating, error) {
	if m.ListRatingsFn != nil {
		return m.ListRatingsFn(ctx, projectID)
	}
	return nil, nil
}

func (m *Repo) GetRatingByCustomer(ctx context.Context, projectID, customerID string) (*domain.ProjectRating, error) {
	if m.GetRatingByCustomerFn != nil {
		return m.GetRatingByCustomerFn(ctx, projectID, customerID)
	}
	return nil, context.Canceled
}
