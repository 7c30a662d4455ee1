package project

import "context"

type Repository interface {
	Create(ctx context.Context, p *Project) error
	// GetByProjectID loads the project with customers and files preloaded.
	GetByProjectID(ctx context.Context, projectID string) (*Project, error)
	// GetByProjectIDForUpdate locks the project row for the current tx.
	GetByProjectIDForUpdate(ctx context.Context, projectID string) (*Project, error)
	Save(ctx context.Context, p *Project) error

	ListByOwner(ctx context.Context, ownerID string) ([]Project, error)
	ListByManager(ctx context.Context, managerID string) ([]Project, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Project, error)
	// HasCustomer is the membership check behind every customer-scoped
	// operation; evaluated point-in-time, never cached.
	HasCustomer(ctx context.Context, projectID, customerID string) (bool, error)

	ReplaceCustomers(ctx context.Context, projectID string, customerIDs []string) error
	AddFiles(ctx context.Context, files []ProjectFile) error
	DeleteFiles(ctx context.Context, projectID string, ids []uint64) error

	CreateRating(ctx context.Context, r *ProjectRating) error
	// ListRatings returns all ratings with the customer preloaded.
	ListRatings(ctx context.Context, projectID string) ([]ProjectRating, error)
	GetRatingByCustomer(ctx context.Context, projectID, customerID string) (*ProjectRating, error)
}
