package project

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

var ErrInvalidInput = errors.New("name, manager and project dates are required")

type Usecase struct {
	projects domainProject.Repository
	reports  domainReport.Repository
	uow      uow.UnitOfWork
	blobs    blob.Store
	recorder audit.Recorder
}

func NewUsecase(
	projects domainProject.Repository,
	reports domainReport.Repository,
	tx uow.UnitOfWork,
	blobs blob.Store,
	recorder audit.Recorder,
) *Usecase {
	return &Usecase{projects: projects, reports: reports, uow: tx, blobs: blobs, recorder: recorder}
}

func (u *Usecase) Create(ctx context.Context, p *user.Principal, in CreateInput) (*domainProject.Project, error) {
	if err := user.Authorize(p, user.RoleOwner); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || in.ManagerID == "" || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, ErrInvalidInput
	}

	projectID := id.NewID32()
	files, err := u.uploadFiles(ctx, projectID, in.Images, in.Documents)
	if err != nil {
		return nil, err
	}

	proj := &domainProject.Project{
		ProjectID:   projectID,
		OwnerID:     p.UserID,
		ManagerID:   in.ManagerID,
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Files:       files,
		Customers: lo.Map(lo.Uniq(in.CustomerIDs), func(cid string, _ int) domainProject.ProjectCustomer {
			return domainProject.ProjectCustomer{ProjectID: projectID, CustomerID: cid}
		}),
	}
	if err := u.projects.Create(ctx, proj); err != nil {
		return nil, err
	}

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   p.UserID,
		ActorRole: p.Role,
		Action:    "CREATE_PROJECT",
		Entity:    "PROJECT",
		EntityID:  proj.ProjectID,
		Meta:      audit.Meta(map[string]any{"name": proj.Name}),
	})
	return proj, nil
}

func (u *Usecase) Update(ctx context.Context, p *user.Principal, projectID string, in UpdateInput) error {
	if err := user.Authorize(p, user.RoleOwner); err != nil {
		return err
	}
	if strings.TrimSpace(in.Name) == "" || in.ManagerID == "" || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return ErrInvalidInput
	}

	proj, err := u.loadOwned(ctx, p, projectID)
	if err != nil {
		return err
	}

	newFiles, err := u.uploadFiles(ctx, proj.ProjectID, in.Images, in.Documents)
	if err != nil {
		return err
	}

	dropped := lo.Filter(proj.Files, func(f domainProject.ProjectFile, _ int) bool {
		return !lo.Contains(in.KeepFileIDs, f.ID)
	})

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		proj.Name = in.Name
		proj.Description = in.Description
		proj.StartDate = in.StartDate
		proj.EndDate = in.EndDate
		proj.ManagerID = in.ManagerID
		proj.Files = nil
		proj.Customers = nil
		if err := r.Projects.Save(ctx, proj); err != nil {
			return err
		}
		if err := r.Projects.ReplaceCustomers(ctx, proj.ProjectID, lo.Uniq(in.CustomerIDs)); err != nil {
			return err
		}
		if len(dropped) > 0 {
			ids := lo.Map(dropped, func(f domainProject.ProjectFile, _ int) uint64 { return f.ID })
			if err := r.Projects.DeleteFiles(ctx, proj.ProjectID, ids); err != nil {
				return err
			}
		}
		if len(newFiles) > 0 {
			if err := r.Projects.AddFiles(ctx, newFiles); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, f := range dropped {
		if err := u.blobs.Delete(ctx, f.URL); err != nil {
			log.Printf("update project: delete blob %s: %v", f.URL, err)
		}
	}

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   p.UserID,
		ActorRole: p.Role,
		Action:    "UPDATE_PROJECT",
		Entity:    "PROJECT",
		EntityID:  proj.ProjectID,
	})
	return nil
}

// MarkComplete flips IsDone once every daily report is approved. The project
// row is locked for the duration of the check-and-set; the weekly/monthly
// queues are deliberately not consulted, matching the system this replaces.
func (u *Usecase) MarkComplete(ctx context.Context, p *user.Principal, projectID string) (*domainProject.Project, error) {
	if err := user.Authorize(p, user.RoleOwner); err != nil {
		return nil, err
	}

	var out *domainProject.Project
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, proj *domainProject.Project) error {
		if proj.OwnerID != p.UserID {
			return user.ErrForbidden
		}
		if proj.IsDone {
			out = proj
			return nil
		}
		daily, err := r.Reports.ListByProject(ctx, proj.ProjectID, domainReport.KindDaily)
		if err != nil {
			return err
		}
		if len(daily) == 0 {
			return domainProject.ErrNoReports
		}
		if lo.SomeBy(daily, func(rep domainReport.Report) bool {
			return rep.Status != domainReport.StatusApproved
		}) {
			return domainProject.ErrUnapprovedReports
		}
		proj.IsDone = true
		if err := r.Projects.Save(ctx, proj); err != nil {
			return err
		}
		out = proj
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProject.ErrNotFound
		}
		return nil, err
	}

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   p.UserID,
		ActorRole: p.Role,
		Action:    "COMPLETE_PROJECT",
		Entity:    "PROJECT",
		EntityID:  projectID,
	})
	return out, nil
}

// SubmitRating inserts the customer's one rating for a finished project. The
// pre-check gives a friendly error on the common path; the (project,
// customer) unique index is what actually decides a concurrent duplicate.
func (u *Usecase) SubmitRating(ctx context.Context, p *user.Principal, in RatingInput) (*domainProject.ProjectRating, error) {
	if err := user.Authorize(p, user.RoleCustomer); err != nil {
		return nil, err
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domainProject.ErrInvalidRating
	}

	member, err := u.projects.HasCustomer(ctx, in.ProjectID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domainProject.ErrNotFound
	}

	proj, err := u.projects.GetByProjectID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProject.ErrNotFound
		}
		return nil, err
	}
	if !proj.IsDone {
		return nil, domainProject.ErrNotDone
	}

	if _, err := u.projects.GetRatingByCustomer(ctx, in.ProjectID, p.UserID); err == nil {
		return nil, domainProject.ErrAlreadyRated
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rating := &domainProject.ProjectRating{
		ProjectID:  in.ProjectID,
		CustomerID: p.UserID,
		Rating:     in.Rating,
		Feedback:   in.Feedback,
	}
	if err := u.projects.CreateRating(ctx, rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainProject.ErrAlreadyRated
		}
		return nil, err
	}

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   p.UserID,
		ActorRole: p.Role,
		Action:    "RATE_PROJECT",
		Entity:    "PROJECT",
		EntityID:  in.ProjectID,
		Meta:      audit.Meta(map[string]any{"rating": in.Rating}),
	})
	return rating, nil
}

// RatingSummary computes the mean and the feedback list. Nil until the
// project is done and has at least one rating.
func (u *Usecase) RatingSummary(ctx context.Context, projectID string) (*RatingSummaryDTO, error) {
	proj, err := u.projects.GetByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProject.ErrNotFound
		}
		return nil, err
	}
	return u.summarize(ctx, proj)
}

func (u *Usecase) summarize(ctx context.Context, proj *domainProject.Project) (*RatingSummaryDTO, error) {
	if !proj.IsDone {
		return nil, nil
	}
	ratings, err := u.projects.ListRatings(ctx, proj.ProjectID)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, nil
	}
	total := lo.SumBy(ratings, func(r domainProject.ProjectRating) int { return r.Rating })
	return &RatingSummaryDTO{
		Average: float64(total) / float64(len(ratings)),
		Count:   len(ratings),
		Feedbacks: lo.FilterMap(ratings, func(r domainProject.ProjectRating, _ int) (FeedbackDTO, bool) {
			if r.Feedback == "" {
				return FeedbackDTO{}, false
			}
			name := ""
			if r.Customer != nil {
				name = r.Customer.DisplayName()
			}
			return FeedbackDTO{Rating: r.Rating, Feedback: r.Feedback, CustomerName: name}, true
		}),
	}, nil
}

func (u *Usecase) ListOwned(ctx context.Context, p *user.Principal) ([]domainProject.Project, error) {
	if err := user.Authorize(p, user.RoleOwner); err != nil {
		return nil, err
	}
	return u.projects.ListByOwner(ctx, p.UserID)
}

func (u *Usecase) ListForCustomer(ctx context.Context, p *user.Principal) ([]domainProject.Project, error) {
	if err := user.Authorize(p, user.RoleCustomer); err != nil {
		return nil, err
	}
	return u.projects.ListByCustomer(ctx, p.UserID)
}

// OwnerDetail returns the project, its daily reports and the rating summary.
func (u *Usecase) OwnerDetail(ctx context.Context, p *user.Principal, projectID string) (*DetailDTO, error) {
	if err := user.Authorize(p, user.RoleOwner); err != nil {
		return nil, err
	}
	proj, err := u.loadOwned(ctx, p, projectID)
	if err != nil {
		return nil, err
	}
	reps, err := u.reports.ListByProject(ctx, proj.ProjectID, domainReport.KindDaily)
	if err != nil {
		return nil, err
	}
	summary, err := u.summarize(ctx, proj)
	if err != nil {
		return nil, err
	}
	return &DetailDTO{Project: proj, Reports: reps, Summary: summary}, nil
}

func (u *Usecase) ManagerDetail(ctx context.Context, p *user.Principal, projectID string) (*DetailDTO, error) {
	if err := user.Authorize(p, user.RoleManager); err != nil {
		return nil, err
	}
	proj, err := u.projects.GetByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProject.ErrNotFound
		}
		return nil, err
	}
	if proj.ManagerID != p.UserID {
		return nil, user.ErrForbidden
	}
	reps, err := u.reports.ListByProject(ctx, proj.ProjectID, domainReport.KindDaily)
	if err != nil {
		return nil, err
	}
	return &DetailDTO{Project: proj, Reports: reps}, nil
}

// CustomerDetail exposes only approved reports and the caller's own rating.
func (u *Usecase) CustomerDetail(ctx context.Context, p *user.Principal, projectID string) (*DetailDTO, error) {
	if err := user.Authorize(p, user.RoleCustomer); err != nil {
		return nil, err
	}
	member, err := u.projects.HasCustomer(ctx, projectID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domainProject.ErrNotFound
	}
	proj, err := u.projects.GetByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProject.ErrNotFound
		}
		return nil, err
	}
	reps, err := u.reports.ListApprovedByProject(ctx, proj.ProjectID)
	if err != nil {
		return nil, err
	}
	out := &DetailDTO{Project: proj, Reports: reps}
	if own, err := u.projects.GetRatingByCustomer(ctx, proj.ProjectID, p.UserID); err == nil {
		out.OwnRating = own
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) OwnerDashboard(ctx context.Context, p *user.Principal) (*OwnerDashboardDTO, error) {
	if err := user.Authorize(p, user.RoleOwner); err != nil {
		return nil, err
	}
	projects, err := u.projects.ListByOwner(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	pending, err := u.reports.CountPendingByOwner(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &OwnerDashboardDTO{
		TotalProject: len(projects),
		OngoingProject: lo.CountBy(projects, func(pr domainProject.Project) bool {
			return !pr.IsDone && !pr.EndDate.Before(now)
		}),
		FinishedProject: lo.CountBy(projects, func(pr domainProject.Project) bool { return pr.IsDone }),
		OverdueProject: lo.CountBy(projects, func(pr domainProject.Project) bool {
			return !pr.IsDone && pr.EndDate.Before(now)
		}),
		PendingApproval: pending,
	}, nil
}

func (u *Usecase) ManagerDashboard(ctx context.Context, p *user.Principal) (*ManagerDashboardDTO, error) {
	if err := user.Authorize(p, user.RoleManager); err != nil {
		return nil, err
	}
	projects, err := u.projects.ListByManager(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	rejected, err := u.reports.ListRejectedByAuthor(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &ManagerDashboardDTO{
		AssignedProjects: len(projects),
		FinishedProjects: lo.CountBy(projects, func(pr domainProject.Project) bool { return pr.IsDone }),
		ActionNeeded:     len(rejected),
	}, nil
}

func (u *Usecase) CustomerDashboard(ctx context.Context, p *user.Principal) (*CustomerDashboardDTO, error) {
	if err := user.Authorize(p, user.RoleCustomer); err != nil {
		return nil, err
	}
	projects, err := u.projects.ListByCustomer(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	rateable := 0
	for _, pr := range projects {
		if !pr.IsDone {
			continue
		}
		if _, err := u.projects.GetRatingByCustomer(ctx, pr.ProjectID, p.UserID); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rateable++
	}
	return &CustomerDashboardDTO{Projects: len(projects), Rateable: rateable}, nil
}

func (u *Usecase) loadOwned(ctx context.Context, p *user.Principal, projectID string) (*domainProject.Project, error) {
	proj, err := u.projects.GetByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProject.ErrNotFound
		}
		return nil, err
	}
	if proj.OwnerID != p.UserID {
		return nil, user.ErrForbidden
	}
	return proj, nil
}

func (u *Usecase) uploadFiles(ctx context.Context, projectID string, images, documents []FileUpload) ([]domainProject.ProjectFile, error) {
	files := make([]domainProject.ProjectFile, 0, len(images)+len(documents))
	upload := func(kind domainProject.FileKind, ups []FileUpload) error {
		for _, up := range ups {
			path := fmt.Sprintf("projects/%s/files/%d-%s", projectID, time.Now().UnixMilli(), up.FileName)
			url, err := u.blobs.Put(ctx, path, up.Data)
			if err != nil {
				return blob.UploadError(err)
			}
			files = append(files, domainProject.ProjectFile{
				ProjectID: projectID,
				Kind:      kind,
				URL:       url,
				FileName:  up.FileName,
				Caption:   up.Caption,
			})
		}
		return nil
	}
	if err := upload(domainProject.FileImage, images); err != nil {
		return nil, err
	}
	if err := upload(domainProject.FileDocument, documents); err != nil {
		return nil, err
	}
	return files, nil
}
