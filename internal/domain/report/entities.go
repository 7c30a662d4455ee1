package report

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"protrack-backend/internal/domain/project"
	"protrack-backend/internal/domain/user"
)

// Kind distinguishes the three reporting cadences. They share one table and
// one state machine; the original system duplicated the whole entity per
// cadence and the copies drifted.
type Kind string

const (
	KindDaily   Kind = "daily"
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindDaily, KindWeekly, KindMonthly:
		return Kind(s), true
	}
	return "", false
}

type Status string

const (
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

var (
	ErrNotFound          = errors.New("report not found")
	ErrEmptyContent      = errors.New("report content is required")
	ErrEmptyComment      = errors.New("comment message is required")
	ErrInvalidAction     = errors.New("action must be approve or reject")
	ErrMissingRejectNote = errors.New("reject note is required")
	ErrInvalidState      = errors.New("report state does not allow this transition")
	ErrNotAuthor         = errors.New("report belongs to another manager")
)

type Report struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ReportID  string `gorm:"column:report_id;type:char(32);not null;uniqueIndex:ux_reports_report_id_active" json:"report_id"`
	Kind      Kind   `gorm:"column:kind;type:varchar(10);not null;index:idx_reports_kind_status" json:"kind"`
	ProjectID string `gorm:"column:project_id;type:char(32);not null;index" json:"project_id"`
	Content   string `gorm:"column:content;type:text;not null" json:"content"`
	// ReportDate is always the server clock at create/resubmit time;
	// client-supplied timestamps are never trusted.
	ReportDate  time.Time `gorm:"column:report_date;not null" json:"report_date"`
	Status      Status    `gorm:"column:status;type:varchar(10);not null;index:idx_reports_kind_status" json:"status"`
	RejectNote  *string   `gorm:"column:reject_note;type:text" json:"reject_note"`
	CreatedByID string    `gorm:"column:created_by_id;type:char(32);not null;index" json:"created_by_id"`

	Project   *project.Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project,omitempty"`
	CreatedBy *user.User       `gorm:"foreignKey:CreatedByID;references:UserID" json:"created_by,omitempty"`
	Photos    []ReportPhoto    `gorm:"foreignKey:ReportID;references:ReportID" json:"photos,omitempty"`
	Comments  []ReportComment  `gorm:"foreignKey:ReportID;references:ReportID" json:"comments,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Report) TableName() string { return "reports" }

type ReportPhoto struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier, referenced by resubmit photo edits
	PhotoID   string    `gorm:"column:photo_id;type:char(32);not null;uniqueIndex:ux_report_photos_photo_id" json:"photo_id"`
	ReportID  string    `gorm:"column:report_id;type:char(32);not null;index" json:"-"`
	URL       string    `gorm:"column:url;type:text;not null" json:"url"`
	Caption   string    `gorm:"column:caption;size:255" json:"caption"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ReportPhoto) TableName() string { return "report_photos" }

// ReportComment is customer feedback on a report. Append-only, allowed at any
// report status — feedback stays possible mid-workflow.
type ReportComment struct {
	ID        uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ReportID  string     `gorm:"column:report_id;type:char(32);not null;index" json:"-"`
	UserID    string     `gorm:"column:user_id;type:char(32);not null" json:"-"`
	Message   string     `gorm:"column:message;type:text;not null" json:"message"`
	User      *user.User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ReportComment) TableName() string { return "report_comments" }
