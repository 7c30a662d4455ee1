package report

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r *Report) error
	// GetByReportID loads the report with photos preloaded.
	GetByReportID(ctx context.Context, kind Kind, reportID string) (*Report, error)
	// GetDetail additionally preloads project (with customers), author and
	// comments with their authors.
	GetDetail(ctx context.Context, kind Kind, reportID string) (*Report, error)

	// UpdateStatusIf is the atomic transition write: it sets status (and
	// reject note) only where the current status still equals from, and
	// reports how many rows matched. Zero on an existing report means the
	// transition lost a race or was illegal to begin with.
	UpdateStatusIf(ctx context.Context, kind Kind, reportID string, from, to Status, rejectNote *string) (int64, error)
	// ResubmitIf atomically replaces content, resets the report date and
	// returns the report to SUBMITTED with the reject note cleared, only
	// while status is still REJECTED. Same zero-rows contract as
	// UpdateStatusIf.
	ResubmitIf(ctx context.Context, kind Kind, reportID, content string, reportDate time.Time) (int64, error)

	ListByProject(ctx context.Context, projectID string, kind Kind) ([]Report, error)
	ListApprovedByProject(ctx context.Context, projectID string) ([]Report, error)
	// ListPendingByOwner returns SUBMITTED reports of every kind across the
	// owner's projects, project and customers preloaded.
	ListPendingByOwner(ctx context.Context, ownerID string) ([]Report, error)
	CountPendingByOwner(ctx context.Context, ownerID string) (int64, error)
	ListRejectedByAuthor(ctx context.Context, authorID string) ([]Report, error)

	AddPhotos(ctx context.Context, photos []ReportPhoto) error
	UpdatePhotoCaption(ctx context.Context, reportID, photoID, caption string) error
	DeletePhotos(ctx context.Context, reportID string, photoIDs []string) error

	CreateComment(ctx context.Context, c *ReportComment) error
}
