package reportmock

import (
	"context"
	"time"

	domain "protrack-backend/internal/domain/report"
)

// Repo is a function-backed mock that satisfies report.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                func(ctx context.Context, r *domain.Report) error
	GetByReportIDFn         func(ctx context.Context, kind domain.Kind, reportID string) (*domain.Report, error)
	GetDetailFn             func(ctx context.Context, kind domain.Kind, reportID string) (*domain.Report, error)
	UpdateStatusIfFn        func(ctx context.Context, kind domain.Kind, reportID string, from, to domain.Status, rejectNote *string) (int64, error)
	ResubmitIfFn            func(ctx context.Context, kind domain.Kind, reportID, content string, reportDate time.Time) (int64, error)
	ListByProjectFn         func(ctx context.Context, projectID string, kind domain.Kind) ([]domain.Report, error)
	ListApprovedByProjectFn func(ctx context.Context, projectID string) ([]domain.Report, error)
	ListPendingByOwnerFn    func(ctx context.Context, ownerID string) ([]domain.Report, error)
	CountPendingByOwnerFn   func(ctx context.Context, ownerID string) (int64, error)
	ListRejectedByAuthorFn  func(ctx context.Context, authorID string) ([]domain.Report, error)
	AddPhotosFn             func(ctx context.Context, photos []domain.ReportPhoto) error
	UpdatePhotoCaptionFn    func(ctx context.Context, reportID, photoID, caption string) error
	DeletePhotosFn          func(ctx context.Context, reportID string, photoIDs []string) error
	CreateCommentFn         func(ctx context.Context, c *domain.ReportComment) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Report) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByReportID(ctx context.Context, kind domain.Kind, reportID string) (*domain.Report, error) {
	if m.GetByReportIDFn != nil {
		return m.GetByReportIDFn(ctx, kind, reportID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetDetail(ctx context.Context, kind domain.Kind, reportID string) (*domain.Report, error) {
	if m.GetDetailFn != nil {
		return m.GetDetailFn(ctx, kind, reportID)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateStatusIf(ctx context.Context, kind domain.Kind, reportID string, from, to domain.Status, rejectNote *string) (int64, error) {
	if m.UpdateStatusIfFn != nil {
		return m.UpdateStatusIfFn(ctx, kind, reportID, from, to, rejectNote)
	}
	return 0, nil
}

func (m *Repo) ResubmitIf(ctx context.Context, kind domain.Kind, reportID, content string, reportDate time.Time) (int64, error) {
	if m.ResubmitIfFn != nil {
		return m.ResubmitIfFn(ctx, kind, reportID, content, reportDate)
	}
	return 0, nil
}

func (m *Repo) ListByProject(ctx context.Context, projectID string, kind domain.Kind) ([]domain.Report, error) {
	if m.ListByProjectFn != nil {
		return m.ListByProjectFn(ctx, projectID, kind)
	}
	return nil, nil
}

func (m *Repo) ListApprovedByProject(ctx context.Context, projectID string) ([]domain.Report, error) {
	if m.ListApprovedByProjectFn != nil {
		return m.ListApprovedByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *Repo) ListPendingByOwner(ctx context.Context, ownerID string) ([]domain.Report, error) {
	if m.ListPendingByOwnerFn != nil {
		return m.ListPendingByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *Repo) CountPendingByOwner(ctx context.Context, ownerID string) (int64, error) {
	if m.CountPendingByOwnerFn != nil {
		return m.CountPendingByOwnerFn(ctx, ownerID)
	}
	return 0, nil
}

func (m *Repo) ListRejectedByAuthor(ctx context.Context, authorID string) ([]domain.Report, error) {
	if m.ListRejectedByAuthorFn != nil {
		return m.ListRejectedByAuthorFn(ctx, authorID)
	}
	return nil, nil
}

func (m *Repo) AddPhotos(ctx context.Context, photos []domain.ReportPhoto) error {
	if m.AddPhotosFn != nil {
		return m.AddPhotosFn(ctx, photos)
	}
	return nil
}

func (m *Repo) UpdatePhotoCaption(ctx context.Context, reportID, photoID, caption string) error {
	if m.UpdatePhotoCaptionFn != nil {
		return m.UpdatePhotoCaptionFn(ctx, reportID, photoID, caption)
	}
	return nil
}

func (m *Repo) DeletePhotos(ctx context.Context, reportID string, photoIDs []string) error {
	if m.DeletePhotosFn != nil {
		return m.DeletePhotosFn(ctx, reportID, photoIDs)
	}
	return nil
}

func (m *Repo) CreateComment(ctx context.Context, c *domain.ReportComment) error {
	if m.CreateCommentFn != nil {
		return m.CreateCommentFn(ctx, c)
	}
	return nil
}
