package mysql

import (
	"context"

	"gorm.io/gorm"

	"protrack-backend/internal/domain/project"
	"protrack-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Projects: &ProjectRepository{db: tx},
			Reports:  &ReportRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinProjectTx(ctx context.Context, projectID string, fn func(r uow.Repos, p *project.Project) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Projects: &ProjectRepository{db: tx},
			Reports:  &ReportRepository{db: tx},
		}
		// lock the project row up-front to prevent races
		p, err := r.Projects.GetByProjectIDForUpdate(ctx, projectID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
