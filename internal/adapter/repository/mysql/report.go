package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	reportDomain "protrack-backend/internal/domain/report"
)

type ReportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) *ReportRepository { return &ReportRepository{db: db} }

func (r *ReportRepository) Create(ctx context.Context, rep *reportDomain.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *ReportRepository) GetByReportID(ctx context.Context, kind reportDomain.Kind, reportID string) (*reportDomain.Report, error) {
	var out reportDomain.Report
	res := r.db.WithContext(ctx).
		Preload("Photos", photoOrder).
		Where("kind = ? AND report_id = ?", kind, reportID).
		First(&out)
	return &out, res.Error
}

func (r *ReportRepository) GetDetail(ctx context.Context, kind reportDomain.Kind, reportID string) (*reportDomain.Report, error) {
	var out reportDomain.Report
	res := r.db.WithContext(ctx).
		Preload("Photos", photoOrder).
		Preload("Comments", commentOrder).
		Preload("Comments.User").
		Preload("CreatedBy").
		Preload("Project").
		Preload("Project.Customers.Customer").
		Where("kind = ? AND report_id = ?", kind, reportID).
		First(&out)
	return &out, res.Error
}

// UpdateStatusIf is the compare-and-swap on status: the WHERE carries the
// expected current status, so a racing transition matches zero rows instead
// of overwriting the winner.
func (r *ReportRepository) UpdateStatusIf(ctx context.Context, kind reportDomain.Kind, reportID string, from, to reportDomain.Status, rejectNote *string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&reportDomain.Report{}).
		Where("kind = ? AND report_id = ? AND status = ?", kind, reportID, from).
		Updates(map[string]any{"status": to, "reject_note": rejectNote})
	return res.RowsAffected, res.Error
}

func (r *ReportRepository) ResubmitIf(ctx context.Context, kind reportDomain.Kind, reportID, content string, reportDate time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&reportDomain.Report{}).
		Where("kind = ? AND report_id = ? AND status = ?", kind, reportID, reportDomain.StatusRejected).
		Updates(map[string]any{
			"content":     content,
			"report_date": reportDate,
			"status":      reportDomain.StatusSubmitted,
			"reject_note": nil,
		})
	return res.RowsAffected, res.Error
}

func (r *ReportRepository) ListByProject(ctx context.Context, projectID string, kind reportDomain.Kind) ([]reportDomain.Report, error) {
	var out []reportDomain.Report
	res := r.db.WithContext(ctx).
		Preload("Photos", photoOrder).
		Preload("Comments", commentOrder).
		Preload("Comments.User").
		Preload("CreatedBy").
		Where("project_id = ? AND kind = ?", projectID, kind).
		Order("report_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ReportRepository) ListApprovedByProject(ctx context.Context, projectID string) ([]reportDomain.Report, error) {
	var out []reportDomain.Report
	res := r.db.WithContext(ctx).
		Preload("Photos", photoOrder).
		Preload("Comments", commentOrder).
		Preload("Comments.User").
		Where("project_id = ? AND status = ?", projectID, reportDomain.StatusApproved).
		Order("report_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ReportRepository) ListPendingByOwner(ctx context.Context, ownerID string) ([]reportDomain.Report, error) {
	var out []reportDomain.Report
	res := r.pendingByOwner(ctx, ownerID).
		Preload("Project").
		Preload("Project.Customers.Customer").
		Order("reports.created_at ASC, reports.id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ReportRepository) CountPendingByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	res := r.pendingByOwner(ctx, ownerID).Count(&count)
	return count, res.Error
}

func (r *ReportRepository) pendingByOwner(ctx context.Context, ownerID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&reportDomain.Report{}).
		Joins("JOIN projects ON projects.project_id = reports.project_id AND projects.deleted_at IS NULL").
		Where("projects.owner_id = ? AND reports.status = ?", ownerID, reportDomain.StatusSubmitted)
}

func (r *ReportRepository) ListRejectedByAuthor(ctx context.Context, authorID string) ([]reportDomain.Report, error) {
	var out []reportDomain.Report
	res := r.db.WithContext(ctx).
		Preload("Photos", photoOrder).
		Preload("Project").
		Where("created_by_id = ? AND status = ?", authorID, reportDomain.StatusRejected).
		Order("updated_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ReportRepository) AddPhotos(ctx context.Context, photos []reportDomain.ReportPhoto) error {
	if len(photos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&photos).Error
}

func (r *ReportRepository) UpdatePhotoCaption(ctx context.Context, reportID, photoID, caption string) error {
	return r.db.WithContext(ctx).
		Model(&reportDomain.ReportPhoto{}).
		Where("report_id = ? AND photo_id = ?", reportID, photoID).
		Update("caption", caption).Error
}

func (r *ReportRepository) DeletePhotos(ctx context.Context, reportID string, photoIDs []string) error {
	if len(photoIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("report_id = ? AND photo_id IN ?", reportID, photoIDs).
		Delete(&reportDomain.ReportPhoto{}).Error
}

func (r *ReportRepository) CreateComment(ctx context.Context, c *reportDomain.ReportComment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func photoOrder(db *gorm.DB) *gorm.DB   { return db.Order("created_at ASC, id ASC") }
func commentOrder(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }
