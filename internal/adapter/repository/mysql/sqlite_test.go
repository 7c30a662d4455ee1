package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no CHAR/ENUM column types) ---

type userSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	UserID       string         `gorm:"size:32;column:user_id;uniqueIndex:ux_users_user_id_active"`
	Name         string         `gorm:"column:name"`
	Email        string         `gorm:"column:email;uniqueIndex:ux_users_email_active"`
	PasswordHash string         `gorm:"column:password_hash"`
	Role         string         `gorm:"type:text;column:role"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (userSQLite) TableName() string { return "users" }

type projectSQLite struct {
	ID          uint64         `gorm:"primaryKey;column:id"`
	ProjectID   string         `gorm:"size:32;column:project_id;uniqueIndex:ux_projects_project_id_active"`
	OwnerID     string         `gorm:"size:32;column:owner_id"`
	ManagerID   string         `gorm:"size:32;column:manager_id"`
	Name        string         `gorm:"column:name"`
	Description string         `gorm:"type:text;column:description"`
	StartDate   time.Time      `gorm:"column:start_date"`
	EndDate     time.Time      `gorm:"column:end_date"`
	IsDone      bool           `gorm:"column:is_done"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (projectSQLite) TableName() string { return "projects" }

type projectCustomerSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	ProjectID  string    `gorm:"size:32;column:project_id;uniqueIndex:ux_project_customers_pair"`
	CustomerID string    `gorm:"size:32;column:customer_id;uniqueIndex:ux_project_customers_pair"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (projectCustomerSQLite) TableName() string { return "project_customers" }

type projectFileSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	ProjectID string    `gorm:"size:32;column:project_id"`
	Kind      string    `gorm:"type:text;column:kind"`
	URL       string    `gorm:"type:text;column:url"`
	FileName  string    `gorm:"column:file_name"`
	Caption   string    `gorm:"column:caption"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (projectFileSQLite) TableName() string { return "project_files" }

type projectRatingSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	ProjectID  string    `gorm:"size:32;column:project_id;uniqueIndex:ux_project_ratings_pair"`
	CustomerID string    `gorm:"size:32;column:customer_id;uniqueIndex:ux_project_ratings_pair"`
	Rating     int       `gorm:"column:rating"`
	Feedback   string    `gorm:"type:text;column:feedback"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (projectRatingSQLite) TableName() string { return "project_ratings" }

type reportSQLite struct {
	ID          uint64         `gorm:"primaryKey;column:id"`
	ReportID    string         `gorm:"size:32;column:report_id;uniqueIndex:ux_reports_report_id_active"`
	Kind        string         `gorm:"type:text;column:kind"`
	ProjectID   string         `gorm:"size:32;column:project_id"`
	Content     string         `gorm:"type:text;column:content"`
	ReportDate  time.Time      `gorm:"column:report_date"`
	Status      string         `gorm:"type:text;column:status"`
	RejectNote  *string        `gorm:"type:text;column:reject_note"`
	CreatedByID string         `gorm:"size:32;column:created_by_id"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (reportSQLite) TableName() string { return "reports" }

type reportPhotoSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	PhotoID   string    `gorm:"size:32;column:photo_id;uniqueIndex:ux_report_photos_photo_id"`
	ReportID  string    `gorm:"size:32;column:report_id"`
	URL       string    `gorm:"type:text;column:url"`
	Caption   string    `gorm:"column:caption"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reportPhotoSQLite) TableName() string { return "report_photos" }

type reportCommentSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	ReportID  string    `gorm:"size:32;column:report_id"`
	UserID    string    `gorm:"size:32;column:user_id"`
	Message   string    `gorm:"type:text;column:message"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reportCommentSQLite) TableName() string { return "report_comments" }

type auditEntrySQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	ActorID   string    `gorm:"size:32;column:actor_id"`
	ActorRole string    `gorm:"type:text;column:actor_role"`
	Action    string    `gorm:"column:action"`
	Entity    string    `gorm:"column:entity"`
	EntityID  string    `gorm:"size:32;column:entity_id"`
	Meta      string    `gorm:"type:text;column:meta"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (auditEntrySQLite) TableName() string { return "audit_logs" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas. TranslateError is on, matching production, so
// constraint violations read as gorm.ErrDuplicatedKey here too.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userSQLite{},
		&projectSQLite{},
		&projectCustomerSQLite{},
		&projectFileSQLite{},
		&projectRatingSQLite{},
		&reportSQLite{},
		&reportPhotoSQLite{},
		&reportCommentSQLite{},
		&auditEntrySQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
