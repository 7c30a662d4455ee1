package mysql

import (
	"context"
	"log"

	"gorm.io/gorm"

	auditDomain "protrack-backend/internal/domain/audit"
)

// AuditRecorder appends audit rows best-effort: a failed insert is logged
// and swallowed so the calling operation's outcome is never affected.
type AuditRecorder struct{ db *gorm.DB }

func NewAuditRecorder(db *gorm.DB) *AuditRecorder { return &AuditRecorder{db: db} }

func (r *AuditRecorder) Record(ctx context.Context, e auditDomain.Entry) {
	if err := r.db.WithContext(ctx).Create(&e).Error; err != nil {
		log.Printf("audit: record %s %s/%s: %v", e.Action, e.Entity, e.EntityID, err)
	}
}

func (r *AuditRecorder) List(ctx context.Context, limit, offset int) ([]auditDomain.Entry, error) {
	var out []auditDomain.Entry
	res := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out)
	return out, res.Error
}
