package report

import (
	"time"

	"protrack-backend/internal/domain/report"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// PhotoUpload is an image received from the client, not yet in blob storage.
type PhotoUpload struct {
	FileName string
	Data     []byte
	Caption  string
}

// PhotoCaptionEdit updates the caption of a photo kept through a resubmit.
type PhotoCaptionEdit struct {
	PhotoID string
	Caption string
}

type CreateInput struct {
	Kind      report.Kind
	ProjectID string
	Content   string
	Photos    []PhotoUpload
}

type DecideInput struct {
	Kind       report.Kind
	ReportID   string
	Action     string
	RejectNote string
}

type ResubmitInput struct {
	Kind            report.Kind
	ReportID        string
	Content         string
	KeptPhotos      []PhotoCaptionEdit
	DeletedPhotoIDs []string
	NewPhotos       []PhotoUpload
}

type CommentInput struct {
	Kind     report.Kind
	ReportID string
	Message  string
}

type PhotoDTO struct {
	PhotoID string `json:"photo_id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type CommentDTO struct {
	Message    string    `json:"message"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// QueueItemDTO is a row in the owner's approval queue or the manager's
// action-needed list.
type QueueItemDTO struct {
	ReportID    string      `json:"report_id"`
	Kind        report.Kind `json:"report_type"`
	ProjectID   string      `json:"project_id"`
	ProjectName string      `json:"project_name"`
	Status      string      `json:"status"`
	RejectNote  *string     `json:"reject_note,omitempty"`
	SubmittedAt time.Time   `json:"submitted_at"`
}

type ReportDTO struct {
	ReportID   string       `json:"report_id"`
	Kind       report.Kind  `json:"kind"`
	ProjectID  string       `json:"project_id"`
	Content    string       `json:"content"`
	ReportDate time.Time    `json:"report_date"`
	Status     string       `json:"status"`
	RejectNote *string      `json:"reject_note"`
	Photos     []PhotoDTO   `json:"photos"`
	Comments   []CommentDTO `json:"comments,omitempty"`
}
