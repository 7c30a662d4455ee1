package uow

import (
	"context"

	"protrack-backend/internal/domain/project"
	"protrack-backend/internal/domain/report"
)

type Repos struct {
	Projects project.Repository
	Reports  report.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the project row first, then pass it in
	WithinProjectTx(ctx context.Context, projectID string, fn func(r Repos, p *project.Project) error) error
}
