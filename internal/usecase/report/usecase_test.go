package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"protrack-backend/internal/domain/blob"
	domainProject "protrack-backend/internal/domain/project"
	domainReport "protrack-backend/internal/domain/report"
	"protrack-backend/internal/domain/uow"
	"protrack-backend/internal/domain/user"
	"protrack-backend/internal/testutil/auditmock"
	"protrack-backend/internal/testutil/blobmock"
	"protrack-backend/internal/testutil/projectmock"
	"protrack-backend/internal/testutil/reportmock"
	"protrack-backend/internal/testutil/uowmock"
)

var (
	ownerID    = strings.Repeat("a", 32)
	managerID  = strings.Repeat("b", 32)
	customerID = strings.Repeat("c", 32)
	projectID  = strings.Repeat("d", 32)
	reportID   = strings.Repeat("e", 32)
)

func ownerPrincipal() *user.Principal    { return &user.Principal{UserID: ownerID, Role: user.RoleOwner} }
func managerPrincipal() *user.Principal  { return &user.Principal{UserID: managerID, Role: user.RoleManager} }
func customerPrincipal() *user.Principal { return &user.Principal{UserID: customerID, Role: user.RoleCustomer} }

func testProject() *domainProject.Project {
	return &domainProject.Project{ProjectID: projectID, OwnerID: ownerID, ManagerID: managerID, Name: "Warehouse"}
}

func testReport(status domainReport.Status) *domainReport.Report {
	return &domainReport.Report{
		ReportID:    reportID,
		Kind:        domainReport.KindDaily,
		ProjectID:   projectID,
		Content:     "poured the slab",
		ReportDate:  time.Now().UTC(),
		Status:      status,
		CreatedByID: managerID,
	}
}

func newUsecase(reports *reportmock.Repo, projects *projectmock.Repo, tx *uowmock.UoW, blobs *blobmock.Store, rec *auditmock.Recorder) *Usecase {
	if reports == nil {
		reports = &reportmock.Repo{}
	}
	if projects == nil {
		projects = &projectmock.Repo{}
	}
	if tx == nil {
		tx = uowmock.New()
	}
	if blobs == nil {
		blobs = &blobmock.Store{}
	}
	if rec == nil {
		rec = &auditmock.Recorder{}
	}
	return NewUsecase(reports, projects, tx, blobs, rec)
}

// passthroughTx runs the callback against the same mocks, no transaction.
func passthroughTx(reports *reportmock.Repo, projects *projectmock.Repo) *uowmock.UoW {
	return uowmock.New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
		return fn(uow.Repos{Projects: projects, Reports: reports})
	})
}

// ---- Create ----

func TestCreate_Authorization(t *testing.T) {
	uc := newUsecase(nil, nil, nil, nil, nil)
	in := CreateInput{Kind: domainReport.KindDaily, ProjectID: projectID, Content: "x"}

	if _, err := uc.Create(context.Background(), nil, in); !errors.Is(err, user.ErrUnauthenticated) {
		t.Fatalf("nil principal: want ErrUnauthenticated, got %v", err)
	}
	if _, err := uc.Create(context.Background(), ownerPrincipal(), in); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("owner: want ErrForbidden, got %v", err)
	}
}

func TestCreate_EmptyContent(t *testing.T) {
	created := false
	reports := &reportmock.Repo{CreateFn: func(ctx context.Context, r *domainReport.Report) error {
		created = true
		return nil
	}}
	uc := newUsecase(reports, nil, nil, nil, nil)

	_, err := uc.Create(context.Background(), managerPrincipal(), CreateInput{
		Kind: domainReport.KindDaily, ProjectID: projectID, Content: "   ",
	})
	if !errors.Is(err, domainReport.ErrEmptyContent) {
		t.Fatalf("want ErrEmptyContent, got %v", err)
	}
	if created {
		t.Fatalf("blank report must not be persisted")
	}
}

func TestCreate_ProjectChecks(t *testing.T) {
	projects := &projectmock.Repo{GetByProjectIDFn: func(ctx context.Context, pid string) (*domainProject.Project, error) {
		return nil, gorm.ErrRecordNotFound
	}}
	uc := newUsecase(nil, projects, nil, nil, nil)
	in := CreateInput{Kind: domainReport.KindDaily, ProjectID: projectID, Content: "x"}

	if _, err := uc.Create(context.Background(), managerPrincipal(), in); !errors.Is(err, domainProject.ErrNotFound) {
		t.Fatalf("want project ErrNotFound, got %v", err)
	}

	// project exists but belongs to another manager
	projects.GetByProjectIDFn = func(ctx context.Context, pid string) (*domainProject.Project, error) {
		p := testProject()
		p.ManagerID = strings.Repeat("f", 32)
		return p, nil
	}
	if _, err := uc.Create(context.Background(), managerPrincipal(), in); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("foreign project: want ErrForbidden, got %v", err)
	}
}

func TestCreate_HappyPath(t *testing.T) {
	var saved *domainReport.Report
	reports := &reportmock.Repo{CreateFn: func(ctx context.Context, r *domainReport.Report) error {
		saved = r
		return nil
	}}
	projects := &projectmock.Repo{GetByProjectIDFn: func(ctx context.Context, pid string) (*domainProject.Project, error) {
		return testProject(), nil
	}}
	blobs := &blobmock.Store{}
	rec := &auditmock.Recorder{}
	uc := newUsecase(reports, projects, nil, blobs, rec)

	before := time.Now().UTC()
	dto, err := uc.Create(context.Background(), managerPrincipal(), CreateInput{
		Kind:      domainReport.KindWeekly,
		ProjectID: projectID,
		Content:   "framing done",
		Photos:    []PhotoUpload{{FileName: "wall.jpg", Data: []byte("img"), Caption: "north wall"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if saved == nil {
		t.Fatalf("report not persisted")
	}
	if saved.Status != domainReport.StatusSubmitted {
		t.Errorf("status = %s, want SUBMITTED", saved.Status)
	}
	if saved.CreatedByID != managerID {
		t.Errorf("author = %s, want manager", saved.CreatedByID)
	}
	if saved.ReportDate.Before(before) {
		t.Errorf("report date must be the server clock, got %v", saved.ReportDate)
	}
	if len(saved.Photos) != 1 || saved.Photos[0].Caption != "north wall" {
		t.Errorf("photos not attached: %+v", saved.Photos)
	}
	if len(blobs.Puts) != 1 {
		t.Errorf("expected 1 blob upload, got %d", len(blobs.Puts))
	}
	if dto.Status != string(domainReport.StatusSubmitted) || len(dto.Photos) != 1 {
		t.Errorf("unexpected dto: %+v", dto)
	}
	if got := rec.Actions(); len(got) != 1 || got[0] != "CREATE_REPORT" {
		t.Errorf("audit actions = %v", got)
	}
}

func TestCreate_UploadFailureAborts(t *testing.T) {
	created := false
	reports := &reportmock.Repo{CreateFn: func(ctx context.Context, r *domainReport.Report) error {
		created = true
		return nil
	}}
	projects := &projectmock.Repo{GetByProjectIDFn: func(ctx context.Context, pid string) (*domainProject.Project, error) {
		return testProject(), nil
	}}
	blobs := &blobmock.Store{PutFn: func(ctx context.Context, path string, data []byte) (string, error) {
		return "", errors.New("disk full")
	}}
	uc := newUsecase(reports, projects, nil, blobs, nil)

	_, err := uc.Create(context.Background(), managerPrincipal(), CreateInput{
		Kind: domainReport.KindDaily, ProjectID: projectID, Content: "x",
		Photos: []PhotoUpload{{FileName: "a.jpg", Data: []byte("img")}},
	})
	if !errors.Is(err, blob.ErrUpload) {
		t.Fatalf("want ErrUpload, got %v", err)
	}
	if created {
		t.Fatalf("report must not be persisted when an upload fails")
	}
}

// ---- Decide ----

func decideMocks(status domainReport.Status) (*reportmock.Repo, *projectmock.Repo) {
	reports := &reportmock.Repo{GetByReportIDFn: func(ctx context.Context, kind domainReport.Kind, rid string) (*domainReport.Report, error) {
		return testReport(status), nil
	}}
	projects := &projectmock.Repo{GetByProjectIDFn: func(ctx context.Context, pid string) (*domainProject.Project, error) {
		return testProject(), nil
	}}
	return reports, projects
}

func TestDecide_Validation(t *testing.T) {
	uc := newUsecase(nil, nil, nil, nil, nil)

	cases := []struct {
		name string
		in   DecideInput
		want error
	}{
		{"unknown action", DecideInput{Kind: domainReport.KindDaily, ReportID: reportID, Action: "escalate"}, domainReport.ErrInvalidAction},
		{"reject without note", DecideInput{Kind: domainReport.KindDaily, ReportID: reportID, Action: ActionReject}, domainReport.ErrMissingRejectNote},
		{"reject with blank note", DecideInput{Kind: domainReport.KindDaily, ReportID: reportID, Action: ActionReject, RejectNote: "  "}, domainReport.ErrMissingRejectNote},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Decide(context.Background(), ownerPrincipal(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := uc.Decide(context.Background(), managerPrincipal(), DecideInput{Action: ActionApprove}); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("manager deciding: want ErrForbidden, got %v", err)
	}
}

func TestDecide_ForeignOwner(t *testing.T) {
	reports, projects := decideMocks(domainReport.StatusSubmitted)
	projects.GetByProjectIDFn = func(ctx context.Context, pid string) (*domainProject.Project, error) {
		p := testProject()
		p.OwnerID = strings.Repeat("f", 32)
		return p, nil
	}
	uc := newUsecase(reports, projects, nil, nil, nil)

	_, err := uc.Decide(context.Background(), ownerPrincipal(), DecideInput{
		Kind: domainReport.KindDaily, ReportID: reportID, Action: ActionApprove,
	})
	if !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestDecide_Approve(t *testing.T) {
	reports, projects := decideMocks(domainReport.StatusSubmitted)
	var gotFrom, gotTo domainReport.Status
	reports.UpdateStatusIfFn = func(ctx context.Context, kind domainReport.Kind, rid string, from, to domainReport.Status, note *string) (int64, error) {
		gotFrom, gotTo = from, to
		if note != nil {
			t.Fatalf("approve must not carry a note")
		}
		return 1, nil
	}
	rec := &auditmock.Recorder{}
	uc := newUsecase(reports, projects, nil, nil, rec)

	dto, err := uc.Decide(context.Background(), ownerPrincipal(), DecideInput{
		Kind: domainReport.KindDaily, ReportID: reportID, Action: ActionApprove,
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if gotFrom != domainReport.StatusSubmitted || gotTo != domainReport.StatusApproved {
		t.Errorf("transition %s->%s, want SUBMITTED->APPROVED", gotFrom, gotTo)
	}
	if dto.Status != string(domainReport.StatusApproved) || dto.RejectNote != nil {
		t.Errorf("unexpected dto: %+v", dto)
	}
	if got := rec.Actions(); len(got) != 1 || got[0] != "DECIDE_REPORT" {
		t.Errorf("audit actions = %v", got)
	}
}

func TestDecide_Reject(t *testing.T) {
	reports, projects := decideMocks(domainReport.StatusSubmitted)
	reports.UpdateStatusIfFn = func(ctx context.Context, kind domainReport.Kind, rid string, from, to domainReport.Status, note *string) (int64, error) {
		if to != domainReport.StatusRejected || note == nil || *note != "missing photos" {
			t.Fatalf("unexpected transition to=%s note=%v", to, note)
		}
		return 1, nil
	}
	uc := newUsecase(reports, projects, nil, nil, nil)

	dto, err := uc.Decide(context.Background(), ownerPrincipal(), DecideInput{
		Kind: domainReport.KindDaily, ReportID: reportID, Action: ActionReject, RejectNote: "missing photos",
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dto.Status != string(domainReport.StatusRejected) || dto.RejectNote == nil || *dto.RejectNote != "missing photos" {
		t.Errorf("unexpected dto: %+v", dto)
	}
}

func TestDecide_LostRace(t *testing.T) {
	reports, projects := decideMocks(domainReport.StatusSubmitted)
	reports.UpdateStatusIfFn = func(ctx context.Context, kind domainReport.Kind, rid string, from, to domainReport.Status, note *string) (int64, error) {
		return 0, nil // another decision got there first
	}
	rec := &auditmock.Recorder{}
	uc := newUsecase(reports, projects, nil, nil, rec)

	_, err := uc.Decide(context.Background(), ownerPrincipal(), DecideInput{
		Kind: domainReport.KindDaily, ReportID: reportID, Action: ActionApprove,
	})
	if !errors.Is(err, domainReport.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}
	if len(rec.Actions()) != 0 {
		t.Errorf("lost race must not be audited as a decision")
	}
}

// ---- Resubmit ----

func TestResubmit_Preconditions(t *testing.T) {
	reports := &reportmock.Repo{GetByReportIDFn: func(ctx context.Context, kind domainReport.Kind, rid string) (*domainReport.Report, error) {
		return nil, gorm.ErrRecordNotFound
	}}
	uc := newUsecase(reports, nil, nil, nil, nil)
	in := ResubmitInput{Kind: domainReport.KindDaily, ReportID: reportID, Content: "x"}

	if _, err := uc.Resubmit(context.Background(), managerPrincipal(), in); !errors.Is(err, domainReport.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	// another manager's report
	reports.GetByReportIDFn = func(ctx context.Context, kind domainReport.Kind, rid string) (*domainReport.Report, error) {
		r := testReport(domainReport.StatusRejected)
		r.CreatedByID = strings.Repeat("f", 32)
		return r, nil
	}
	if _, err := uc.Resubmit(context.Background(), managerPrincipal(), in); !errors.Is(err, domainReport.ErrNotAuthor) {
		t.Fatalf("want ErrNotAuthor, got %v", err)
	}

	// not rejected
	reports.GetByReportIDFn = func(ctx context.Context, kind domainReport.Kind, rid string) (*domainReport.Report, error) {
		return testReport(domainReport.StatusSubmitted), nil
	}
	if _, err := uc.Resubmit(context.Background(), managerPrincipal(), in); !errors.Is(err, domainReport.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}

	if _, err := uc.Resubmit(context.Background(), managerPrincipal(), ResubmitInput{Kind: domainReport.KindDaily, ReportID: reportID}); !errors.Is(err, domainReport.ErrEmptyContent) {
		t.Fatalf("want ErrEmptyContent, got %v", err)
	}
}

func TestResubmit_HappyPath(t *testing.T) {
	droppedID := strings.Repeat("1", 32)
	keptID := strings.Repeat("2", 32)

	rejected := testReport(domainReport.StatusRejected)
	note := "redo"
	rejected.RejectNote = &note
	rejected.Photos = []domainReport.ReportPhoto{
		{PhotoID: droppedID, ReportID: reportID, URL: "https://blob.test/old.jpg"},
		{PhotoID: keptID, ReportID: reportID, URL: "https://blob.test/keep.jpg", Caption: "old"},
	}

	var resubmitted, deleted, captioned, added bool
	reloaded := testReport(domainReport.StatusSubmitted)
	reloaded.Content = "fixed the east wall"

	reports := &reportmock.Repo{
		GetByReportIDFn: func(ctx context.Context, kind domainReport.Kind, rid string) (*domainReport.Report, error) {
			if resubmitted {
				return reloaded, nil
			}
			return rejected, nil
		},
		ResubmitIfFn: func(ctx context.Context, kind domainReport.Kind, rid, content string, date time.Time) (int64, error) {
			if content != "fixed the east wall" {
				t.Fatalf("unexpected content %q", content)
			}
			resubmitted = true
			return 1, nil
		},
		DeletePhotosFn: func(ctx context.Context, rid string, ids []string) error {
			if len(ids) != 1 || ids[0] != droppedID {
				t.Fatalf("unexpected deleted ids %v", ids)
			}
			deleted = true
			return nil
		},
		UpdatePhotoCaptionFn: func(ctx context.Context, rid, photoID, caption string) error {
			if photoID != keptID || caption != "new caption" {
				t.Fatalf("unexpected caption edit %s=%q", photoID, caption)
			}
			captioned = true
			return nil
		},
		AddPhotosFn: func(ctx context.Context, photos []domainReport.ReportPhoto) error {
			if len(photos) != 1 {
				t.Fatalf("expected 1 new photo, got %d", len(photos))
			}
			added = true
			return nil
		},
	}
	blobs := &blobmock.Store{}
	rec := &auditmock.Recorder{}
	uc := newUsecase(reports, nil, passthroughTx(reports, nil), blobs, rec)

	dto, err := uc.Resubmit(context.Background(), managerPrincipal(), ResubmitInput{
		Kind:            domainReport.KindDaily,
		ReportID:        reportID,
		Content:         "fixed the east wall",
		KeptPhotos:      []PhotoCaptionEdit{{PhotoID: keptID, Caption: "new caption"}},
		DeletedPhotoIDs: []string{droppedID},
		NewPhotos:       []PhotoUpload{{FileName: "new.jpg", Data: []byte("img")}},
	})
	if err != nil {
		t.Fatalf("Resubmit: %v", err)
	}
	if !resubmitted || !deleted || !captioned || !added {
		t.Fatalf("missing steps: resubmit=%v delete=%v caption=%v add=%v", resubmitted, deleted, captioned, added)
	}
	if len(blobs.Deletes) != 1 || blobs.Deletes[0] != "https://blob.test/old.jpg" {
		t.Errorf("dropped blob not deleted: %v", blobs.Deletes)
	}
	if dto.Content != "fixed the east wall" || dto.Status != string(domainReport.StatusSubmitted) {
		t.Errorf("unexpected dto: %+v", dto)
	}
	if got := rec.Actions(); len(got) != 1 || got[0] != "RESUBMIT_REPORT" {
		t.Errorf("audit actions = %v", got)
	}
}

func TestResubmit_LostRace(t *testing.T) {
	reports := &reportmock.Repo{
		GetByReportIDFn: func(ctx context.Context, kind domainReport.Kind, rid string) (*domainReport.Report, error) {
			return testReport(domainReport.StatusRejected), nil
		},
		ResubmitIfFn: func(ctx context.Context, kind domainReport.Kind, rid, content string, date time.Time) (int64, error) {
			return 0, nil // state moved between the read and the write
		},
	}
	uc := newUsecase(reports, nil, passthroughTx(reports, nil), nil, nil)

	_, err := uc.Resubmit(context.Background(), managerPrincipal(), ResubmitInput{
		Kind: domainReport.KindDaily, ReportID: reportID, Content: "x",
	})
	if !errors.Is(err, domainReport.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}
}

// ---- AddComment ----

func TestAddComment(t *testing.T) {
	reports := &reportmock.Repo{GetByReportIDFn: func(ctx context.Context, kind domainReport.Kind, rid string) (*domainReport.Report, error) {
		return testReport(domainReport.StatusApproved), nil
	}}
	member := true
	projects := &projectmock.Repo{HasCustomerFn: func(ctx context.Context, pid, cid string) (bool, error) {
		return member, nil
	}}
	var saved *domainReport.ReportComment
	reports.CreateCommentFn = func(ctx context.Context, c *domainReport.ReportComment) error {
		saved = c
		return nil
	}
	rec := &auditmock.Recorder{}
	uc := newUsecase(reports, projects, nil, nil, rec)

	in := CommentInput{Kind: domainReport.KindDaily, ReportID: reportID, Message: "nice progress"}

	if _, err := uc.AddComment(context.Background(), managerPrincipal(), in); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("manager commenting: want ErrForbidden, got %v", err)
	}
	if _, err := uc.AddComment(context.Background(), customerPrincipal(), CommentInput{Kind: domainReport.KindDaily, ReportID: reportID, Message: " "}); !errors.Is(err, domainReport.ErrEmptyComment) {
		t.Fatalf("want ErrEmptyComment, got %v", err)
	}

	dto, err := uc.AddComment(context.Background(), customerPrincipal(), in)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if saved == nil || saved.UserID != customerID || saved.Message != "nice progress" {
		t.Errorf("unexpected comment: %+v", saved)
	}
	if dto.Message != "nice progress" {
		t.Errorf("unexpected dto: %+v", dto)
	}
	if got := rec.Actions(); len(got) != 1 || got[0] != "ADD_COMMENT" {
		t.Errorf("audit actions = %v", got)
	}

	// not linked to the project
	member = false
	if _, err := uc.AddComment(context.Background(), customerPrincipal(), in); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("non-member: want ErrForbidden, got %v", err)
	}
}

// ---- Queues ----

func TestPendingApprovals(t *testing.T) {
	rep := testReport(domainReport.StatusSubmitted)
	rep.Project = testProject()
	reports := &reportmock.Repo{ListPendingByOwnerFn: func(ctx context.Context, oid string) ([]domainReport.Report, error) {
		if oid != ownerID {
			t.Fatalf("queried wrong owner %s", oid)
		}
		return []domainReport.Report{*rep}, nil
	}}
	uc := newUsecase(reports, nil, nil, nil, nil)

	items, err := uc.PendingApprovals(context.Background(), ownerPrincipal())
	if err != nil {
		t.Fatalf("PendingApprovals: %v", err)
	}
	if len(items) != 1 || items[0].ProjectName != "Warehouse" || items[0].Status != string(domainReport.StatusSubmitted) {
		t.Errorf("unexpected queue: %+v", items)
	}

	if _, err := uc.PendingApprovals(context.Background(), customerPrincipal()); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("customer: want ErrForbidden, got %v", err)
	}
}

func TestApprovalDetail(t *testing.T) {
	rep := testReport(domainReport.StatusSubmitted)
	rep.Project = testProject()
	reports := &reportmock.Repo{GetDetailFn: func(ctx context.Context, kind domainReport.Kind, rid string) (*domainReport.Report, error) {
		return rep, nil
	}}
	uc := newUsecase(reports, nil, nil, nil, nil)

	dto, err := uc.ApprovalDetail(context.Background(), ownerPrincipal(), domainReport.KindDaily, reportID)
	if err != nil {
		t.Fatalf("ApprovalDetail: %v", err)
	}
	if dto.ReportID != reportID {
		t.Errorf("unexpected dto: %+v", dto)
	}

	// someone else's project
	other := &user.Principal{UserID: strings.Repeat("f", 32), Role: user.RoleOwner}
	if _, err := uc.ApprovalDetail(context.Background(), other, domainReport.KindDaily, reportID); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	// already processed reports fall out of the queue's view
	rep.Status = domainReport.StatusApproved
	if _, err := uc.ApprovalDetail(context.Background(), ownerPrincipal(), domainReport.KindDaily, reportID); !errors.Is(err, domainReport.ErrNotFound) {
		t.Fatalf("processed report: want ErrNotFound, got %v", err)
	}
}

func TestActionNeeded(t *testing.T) {
	note := "too thin"
	rep := testReport(domainReport.StatusRejected)
	rep.RejectNote = &note
	rep.Project = testProject()
	reports := &reportmock.Repo{ListRejectedByAuthorFn: func(ctx context.Context, aid string) ([]domainReport.Report, error) {
		if aid != managerID {
			t.Fatalf("queried wrong author %s", aid)
		}
		return []domainReport.Report{*rep}, nil
	}}
	uc := newUsecase(reports, nil, nil, nil, nil)

	items, err := uc.ActionNeeded(context.Background(), managerPrincipal())
	if err != nil {
		t.Fatalf("ActionNeeded: %v", err)
	}
	if len(items) != 1 || items[0].RejectNote == nil || *items[0].RejectNote != note {
		t.Errorf("unexpected queue: %+v", items)
	}
}
