package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"protrack-backend/internal/domain/audit"
	"protrack-backend/internal/domain/blob"
	domainProject "protrack-backend/internal/domain/project"
	domainReport "protrack-backend/internal/domain/report"
	"protrack-backend/internal/domain/uow"
	"protrack-backend/internal/domain/user"
	"protrack-backend/pkg/id"
)

// Usecase is the single home of the report state machine. Every entry point
// (create, decide, resubmit, comment, the approval queues) goes through it;
// the original system had the same checks copy-pasted per route and the
// copies drifted.
type Usecase struct {
	reports  domainReport.Repository
	projects domainProject.Repository
	uow      uow.UnitOfWork
	blobs    blob.Store
	recorder audit.Recorder
}

func NewUsecase(
	reports domainReport.Repository,
	projects domainProject.Repository,
	tx uow.UnitOfWork,
	blobs blob.Store,
	recorder audit.Recorder,
) *Usecase {
	return &Usecase{reports: reports, projects: projects, uow: tx, blobs: blobs, recorder: recorder}
}

// Create persists a new report in SUBMITTED state. Photos are uploaded to
// blob storage before any row is written; a failed upload aborts the whole
// operation so the database never references a missing blob.
func (u *Usecase) Create(ctx context.Context, p *user.Principal, in CreateInput) (*ReportDTO, error) {
	if err := user.Authorize(p, user.RoleManager); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, domainReport.ErrEmptyContent
	}

	proj, err := u.projects.GetByProjectID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProject.ErrNotFound
		}
		return nil, err
	}
	if proj.ManagerID != p.UserID {
		return nil, user.ErrForbidden
	}

	reportID := id.NewID32()
	photos, err := u.uploadPhotos(ctx, proj.ProjectID, reportID, in.Photos)
	if err != nil {
		return nil, err
	}

	rep := &domainReport.Report{
		ReportID:    reportID,
		Kind:        in.Kind,
		ProjectID:   proj.ProjectID,
		Content:     in.Content,
		ReportDate:  time.Now().UTC(), // server timestamp, never client input
		Status:      domainReport.StatusSubmitted,
		CreatedByID: p.UserID,
		Photos:      photos,
	}
	if err := u.reports.Create(ctx, rep); err != nil {
		return nil, err
	}

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   p.UserID,
		ActorRole: p.Role,
		Action:    "CREATE_REPORT",
		Entity:    "REPORT",
		EntityID:  rep.ReportID,
		Meta:      audit.Meta(map[string]any{"kind": in.Kind, "project_id": proj.ProjectID}),
	})
	return toDTO(rep), nil
}

// Decide approves or rejects a SUBMITTED report. The status write is one
// conditional update; when it matches zero rows the report has already left
// SUBMITTED and the caller gets ErrInvalidState instead of a silent
// last-write-wins.
func (u *Usecase) Decide(ctx context.Context, p *user.Principal, in DecideInput) (*ReportDTO, error) {
	if err := user.Authorize(p, user.RoleOwner); err != nil {
		return nil, err
	}

	var target domainReport.Status
	var note *string
	switch in.Action {
	case ActionApprove:
		target = domainReport.StatusApproved
	case ActionReject:
		if strings.TrimSpace(in.RejectNote) == "" {
			return nil, domainReport.ErrMissingRejectNote
		}
		target = domainReport.StatusRejected
		note = &in.RejectNote
	default:
		return nil, domainReport.ErrInvalidAction
	}

	rep, err := u.loadOwned(ctx, p, in.Kind, in.ReportID)
	if err != nil {
		return nil, err
	}

	rows, err := u.reports.UpdateStatusIf(ctx, in.Kind, in.ReportID, domainReport.StatusSubmitted, target, note)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domainReport.ErrInvalidState
	}

	rep.Status = target
	rep.RejectNote = note

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   p.UserID,
		ActorRole: p.Role,
		Action:    "DECIDE_REPORT",
		Entity:    "REPORT",
		EntityID:  rep.ReportID,
		Meta:      audit.Meta(map[string]any{"kind": in.Kind, "action": in.Action}),
	})
	return toDTO(rep), nil
}

// Resubmit is the only transition that mutates report content. It requires
// REJECTED, and in one transaction: replaces content, resets the date,
// returns to SUBMITTED with the note cleared, deletes dropped photo rows,
// updates kept captions and appends the already-uploaded new photos. Blobs
// of dropped photos are deleted after commit, best-effort.
func (u *Usecase) Resubmit(ctx context.Context, p *user.Principal, in ResubmitInput) (*ReportDTO, error) {
	if err := user.Authorize(p, user.RoleManager); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, domainReport.ErrEmptyContent
	}

	rep, err := u.reports.GetByReportID(ctx, in.Kind, in.ReportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainReport.ErrNotFound
		}
		return nil, err
	}
	if rep.CreatedByID != p.UserID {
		return nil, domainReport.ErrNotAuthor
	}
	if rep.Status != domainReport.StatusRejected {
		return nil, domainReport.ErrInvalidState
	}

	newPhotos, err := u.uploadPhotos(ctx, rep.ProjectID, rep.ReportID, in.NewPhotos)
	if err != nil {
		return nil, err
	}

	// URLs of dropped photos, resolved before the rows go away.
	dropped := lo.FilterMap(rep.Photos, func(ph domainReport.ReportPhoto, _ int) (string, bool) {
		return ph.URL, lo.Contains(in.DeletedPhotoIDs, ph.PhotoID)
	})

	now := time.Now().UTC()
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := r.Reports.ResubmitIf(ctx, in.Kind, in.ReportID, in.Content, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domainReport.ErrInvalidState
		}
		if len(in.DeletedPhotoIDs) > 0 {
			if err := r.Reports.DeletePhotos(ctx, rep.ReportID, in.DeletedPhotoIDs); err != nil {
				return err
			}
		}
		for _, edit := range in.KeptPhotos {
			if err := r.Reports.UpdatePhotoCaption(ctx, rep.ReportID, edit.PhotoID, edit.Caption); err != nil {
				return err
			}
		}
		if len(newPhotos) > 0 {
			if err := r.Reports.AddPhotos(ctx, newPhotos); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Blob deletion is fire-and-forget once the rows are gone.
	for _, url := range dropped {
		if err := u.blobs.Delete(ctx, url); err != nil {
			log.Printf("resubmit: delete blob %s: %v", url, err)
		}
	}

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   p.UserID,
		ActorRole: p.Role,
		Action:    "RESUBMIT_REPORT",
		Entity:    "REPORT",
		EntityID:  rep.ReportID,
		Meta:      audit.Meta(map[string]any{"kind": in.Kind}),
	})

	out, err := u.reports.GetByReportID(ctx, in.Kind, in.ReportID)
	if err != nil {
		return nil, err
	}
	return toDTO(out), nil
}

// AddComment appends customer feedback. Deliberately not gated on report
// status: feedback stays possible mid-workflow.
func (u *Usecase) AddComment(ctx context.Context, p *user.Principal, in CommentInput) (*CommentDTO, error) {
	if err := user.Authorize(p, user.RoleCustomer); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, domainReport.ErrEmptyComment
	}

	rep, err := u.reports.GetByReportID(ctx, in.Kind, in.ReportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainReport.ErrNotFound
		}
		return nil, err
	}
	member, err := u.projects.HasCustomer(ctx, rep.ProjectID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, user.ErrForbidden
	}

	c := &domainReport.ReportComment{
		ReportID: rep.ReportID,
		UserID:   p.UserID,
		Message:  in.Message,
	}
	if err := u.reports.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   p.UserID,
		ActorRole: p.Role,
		Action:    "ADD_COMMENT",
		Entity:    "REPORT",
		EntityID:  rep.ReportID,
	})
	return &CommentDTO{Message: c.Message, CreatedAt: c.CreatedAt}, nil
}

// PendingApprovals lists SUBMITTED reports of every kind across the owner's
// projects — the approval queue.
func (u *Usecase) PendingApprovals(ctx context.Context, p *user.Principal) ([]QueueItemDTO, error) {
	if err := user.Authorize(p, user.RoleOwner); err != nil {
		return nil, err
	}
	reps, err := u.reports.ListPendingByOwner(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return lo.Map(reps, func(r domainReport.Report, _ int) QueueItemDTO { return toQueueItem(&r) }), nil
}

// ApprovalDetail loads one pending report for review. A report that has
// already been processed reads as not found, matching the queue's view.
func (u *Usecase) ApprovalDetail(ctx context.Context, p *user.Principal, kind domainReport.Kind, reportID string) (*ReportDTO, error) {
	if err := user.Authorize(p, user.RoleOwner); err != nil {
		return nil, err
	}
	rep, err := u.reports.GetDetail(ctx, kind, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainReport.ErrNotFound
		}
		return nil, err
	}
	if rep.Project == nil || rep.Project.OwnerID != p.UserID {
		return nil, user.ErrForbidden
	}
	if rep.Status != domainReport.StatusSubmitted {
		return nil, domainReport.ErrNotFound
	}
	return toDTO(rep), nil
}

// ActionNeeded lists the manager's REJECTED reports awaiting a resubmit.
func (u *Usecase) ActionNeeded(ctx context.Context, p *user.Principal) ([]QueueItemDTO, error) {
	if err := user.Authorize(p, user.RoleManager); err != nil {
		return nil, err
	}
	reps, err := u.reports.ListRejectedByAuthor(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return lo.Map(reps, func(r domainReport.Report, _ int) QueueItemDTO { return toQueueItem(&r) }), nil
}

// loadOwned fetches a report and verifies the principal owns its project.
func (u *Usecase) loadOwned(ctx context.Context, p *user.Principal, kind domainReport.Kind, reportID string) (*domainReport.Report, error) {
	rep, err := u.reports.GetByReportID(ctx, kind, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainReport.ErrNotFound
		}
		return nil, err
	}
	proj, err := u.projects.GetByProjectID(ctx, rep.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProject.ErrNotFound
		}
		return nil, err
	}
	if proj.OwnerID != p.UserID {
		return nil, user.ErrForbidden
	}
	return rep, nil
}

func (u *Usecase) uploadPhotos(ctx context.Context, projectID, reportID string, uploads []PhotoUpload) ([]domainReport.ReportPhoto, error) {
	photos := make([]domainReport.ReportPhoto, 0, len(uploads))
	for _, up := range uploads {
		path := fmt.Sprintf("projects/%s/reports/%s/photos/%d-%s",
			projectID, reportID, time.Now().UnixMilli(), up.FileName)
		url, err := u.blobs.Put(ctx, path, up.Data)
		if err != nil {
			return nil, blob.UploadError(err)
		}
		photos = append(photos, domainReport.ReportPhoto{
			PhotoID:  id.NewID32(),
			ReportID: reportID,
			URL:      url,
			Caption:  up.Caption,
		})
	}
	return photos, nil
}

func toDTO(r *domainReport.Report) *ReportDTO {
	return &ReportDTO{
		ReportID:   r.ReportID,
		Kind:       r.Kind,
		ProjectID:  r.ProjectID,
		Content:    r.Content,
		ReportDate: r.ReportDate,
		Status:     string(r.Status),
		RejectNote: r.RejectNote,
		Photos: lo.Map(r.Photos, func(ph domainReport.ReportPhoto, _ int) PhotoDTO {
			return PhotoDTO{PhotoID: ph.PhotoID, URL: ph.URL, Caption: ph.Caption}
		}),
		Comments: lo.Map(r.Comments, func(c domainReport.ReportComment, _ int) CommentDTO {
			name := ""
			if c.User != nil {
				name = c.User.DisplayName()
			}
			return CommentDTO{Message: c.Message, AuthorName: name, CreatedAt: c.CreatedAt}
		}),
	}
}

func toQueueItem(r *domainReport.Report) QueueItemDTO {
	item := QueueItemDTO{
		ReportID:    r.ReportID,
		Kind:        r.Kind,
		Status:      string(r.Status),
		RejectNote:  r.RejectNote,
		SubmittedAt: r.CreatedAt,
	}
	if r.Project != nil {
		item.ProjectID = r.Project.ProjectID
		item.ProjectName = r.Project.Name
	}
	return item
}
