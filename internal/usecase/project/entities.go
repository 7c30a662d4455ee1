package project

import (
	"time"

	"protrack-backend/internal/domain/project"
	"protrack-backend/internal/domain/report"
)

// FileUpload is a project attachment received from the client, not yet in
// blob storage.
type FileUpload struct {
	FileName string
	Data     []byte
	Caption  string
}

type CreateInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	ManagerID   string
	CustomerIDs []string
	Images      []FileUpload
	Documents   []FileUpload
}

type UpdateInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	ManagerID   string
	CustomerIDs []string
	// Files to keep; everything else is dropped from the record and its
	// blob deleted best-effort after commit.
	KeepFileIDs []uint64
	Images      []FileUpload
	Documents   []FileUpload
}

type RatingInput struct {
	ProjectID string
	Rating    int
	Feedback  string
}

type FeedbackDTO struct {
	Rating       int    `json:"rating"`
	Feedback     string `json:"feedback"`
	CustomerName string `json:"customer_name"`
}

type RatingSummaryDTO struct {
	Average   float64       `json:"average"`
	Count     int           `json:"count"`
	Feedbacks []FeedbackDTO `json:"feedbacks"`
}

type DetailDTO struct {
	Project *project.Project `json:"project"`
	Reports []report.Report  `json:"reports"`
	// Summary is present only for finished projects with ratings.
	Summary *RatingSummaryDTO `json:"rating_summary,omitempty"`
	// OwnRating is the caller's rating; customer detail only.
	OwnRating *project.ProjectRating `json:"rating,omitempty"`
}

type OwnerDashboardDTO struct {
	TotalProject    int   `json:"total_project"`
	OngoingProject  int   `json:"ongoing_project"`
	FinishedProject int   `json:"finished_project"`
	OverdueProject  int   `json:"overdue_project"`
	PendingApproval int64 `json:"pending_approval"`
}

type ManagerDashboardDTO struct {
	AssignedProjects int `json:"assigned_projects"`
	FinishedProjects int `json:"finished_projects"`
	ActionNeeded     int `json:"action_needed"`
}

type CustomerDashboardDTO struct {
	Projects int `json:"projects"`
	Rateable int `json:"rateable"`
}
