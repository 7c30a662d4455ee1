package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	projectDomain "protrack-backend/internal/domain/project"
)

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func (r *ProjectRepository) Create(ctx context.Context, p *projectDomain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Save persists the project's own columns only; customer links and files
// have dedicated methods so a Save never resurrects detached associations.
func (r *ProjectRepository) Save(ctx context.Context, p *projectDomain.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *ProjectRepository) GetByProjectID(ctx context.Context, projectID string) (*projectDomain.Project, error) {
	var out projectDomain.Project
	res := r.db.WithContext(ctx).
		Preload("Manager").
		Preload("Customers.Customer").
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("project_id = ?", projectID).
		First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) GetByProjectIDForUpdate(ctx context.Context, projectID string) (*projectDomain.Project, error) {
	tx := r.db.WithContext(ctx)
	// sqlite (tests) has no SELECT ... FOR UPDATE; its tx is a write lock anyway
	if tx.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out projectDomain.Project
	res := tx.Where("project_id = ?", projectID).First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]projectDomain.Project, error) {
	var out []projectDomain.Project
	res := r.db.WithContext(ctx).
		Preload("Manager").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ProjectRepository) ListByManager(ctx context.Context, managerID string) ([]projectDomain.Project, error) {
	var out []projectDomain.Project
	res := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ProjectRepository) ListByCustomer(ctx context.Context, customerID string) ([]projectDomain.Project, error) {
	var out []projectDomain.Project
	res := r.db.WithContext(ctx).
		Joins("JOIN project_customers ON project_customers.project_id = projects.project_id").
		Where("project_customers.customer_id = ?", customerID).
		Order("projects.created_at DESC, projects.id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ProjectRepository) HasCustomer(ctx context.Context, projectID, customerID string) (bool, error) {
	var count int64
	res := r.db.WithContext(ctx).
		Model(&projectDomain.ProjectCustomer{}).
		Where("project_id = ? AND customer_id = ?", projectID, customerID).
		Count(&count)
	return count > 0, res.Error
}

func (r *ProjectRepository) ReplaceCustomers(ctx context.Context, projectID string, customerIDs []string) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("project_id = ?", projectID).Delete(&projectDomain.ProjectCustomer{}).Error; err != nil {
		return err
	}
	if len(customerIDs) == 0 {
		return nil
	}
	links := make([]projectDomain.ProjectCustomer, 0, len(customerIDs))
	for _, cid := range customerIDs {
		links = append(links, projectDomain.ProjectCustomer{ProjectID: projectID, CustomerID: cid})
	}
	return tx.Create(&links).Error
}

func (r *ProjectRepository) AddFiles(ctx context.Context, files []projectDomain.ProjectFile) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&files).Error
}

func (r *ProjectRepository) DeleteFiles(ctx context.Context, projectID string, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("project_id = ? AND id IN ?", projectID, ids).
		Delete(&projectDomain.ProjectFile{}).Error
}

func (r *ProjectRepository) CreateRating(ctx context.Context, rating *projectDomain.ProjectRating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ProjectRepository) ListRatings(ctx context.Context, projectID string) ([]projectDomain.ProjectRating, error) {
	var out []projectDomain.ProjectRating
	res := r.db.WithContext(ctx).
		Preload("Customer").
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ProjectRepository) GetRatingByCustomer(ctx context.Context, projectID, customerID string) (*projectDomain.ProjectRating, error) {
	var out projectDomain.ProjectRating
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND customer_id = ?", projectID, customerID).
		First(&out)
	return &out, res.Error
}
