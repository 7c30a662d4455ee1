package project

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"protrack-backend/internal/domain/user"
)

var (
	ErrNotFound          = errors.New("project not found")
	ErrNoReports         = errors.New("project has no reports")
	ErrUnapprovedReports = errors.New("all reports must be approved")
	ErrNotDone           = errors.New("project is not completed yet")
	ErrAlreadyRated      = errors.New("rating already submitted")
	ErrInvalidRating     = errors.New("rating must be an integer between 1 and 5")
)

type FileKind string

const (
	FileImage    FileKind = "IMAGE"
	FileDocument FileKind = "DOCUMENT"
)

type Project struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ProjectID   string    `gorm:"column:project_id;type:char(32);not null;uniqueIndex:ux_projects_project_id_active" json:"project_id"`
	OwnerID     string    `gorm:"column:owner_id;type:char(32);not null;index" json:"owner_id"`
	ManagerID   string    `gorm:"column:manager_id;type:char(32);not null;index" json:"manager_id"`
	Name        string    `gorm:"column:name;size:255;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	StartDate   time.Time `gorm:"column:start_date;not null" json:"start_date"`
	EndDate     time.Time `gorm:"column:end_date;not null" json:"end_date"`
	IsDone      bool      `gorm:"column:is_done;not null;default:false" json:"is_done"`

	Manager   *user.User        `gorm:"foreignKey:ManagerID;references:UserID" json:"manager,omitempty"`
	Customers []ProjectCustomer `gorm:"foreignKey:ProjectID;references:ProjectID" json:"customers,omitempty"`
	Files     []ProjectFile     `gorm:"foreignKey:ProjectID;references:ProjectID" json:"files,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Project) TableName() string { return "projects" }

// ProjectCustomer links a customer account to a project it may view and rate.
type ProjectCustomer struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ProjectID  string     `gorm:"column:project_id;type:char(32);not null;uniqueIndex:ux_project_customers_pair" json:"-"`
	CustomerID string     `gorm:"column:customer_id;type:char(32);not null;uniqueIndex:ux_project_customers_pair" json:"customer_id"`
	Customer   *user.User `gorm:"foreignKey:CustomerID;references:UserID" json:"customer,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (ProjectCustomer) TableName() string { return "project_customers" }

// ProjectFile is a project-level attachment, distinct from report photos.
type ProjectFile struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProjectID string    `gorm:"column:project_id;type:char(32);not null;index" json:"-"`
	Kind      FileKind  `gorm:"column:kind;type:varchar(20);not null" json:"type"`
	URL       string    `gorm:"column:url;type:text;not null" json:"url"`
	FileName  string    `gorm:"column:file_name;size:255" json:"file_name"`
	Caption   string    `gorm:"column:caption;size:255" json:"caption"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProjectFile) TableName() string { return "project_files" }

// ProjectRating is a customer's 1-5 verdict on a finished project. The
// (project, customer) pair is unique at the store level; a concurrent
// duplicate insert loses with a constraint violation, not a silent overwrite.
type ProjectRating struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ProjectID  string     `gorm:"column:project_id;type:char(32);not null;uniqueIndex:ux_project_ratings_pair" json:"-"`
	CustomerID string     `gorm:"column:customer_id;type:char(32);not null;uniqueIndex:ux_project_ratings_pair" json:"-"`
	Rating     int        `gorm:"column:rating;not null" json:"rating"`
	Feedback   string     `gorm:"column:feedback;type:text" json:"feedback"`
	Customer   *user.User `gorm:"foreignKey:CustomerID;references:UserID" json:"-"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProjectRating) TableName() string { return "project_ratings" }
