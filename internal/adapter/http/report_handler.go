package http

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"protrack-backend/internal/adapter/middleware"
	domainReport "protrack-backend/internal/domain/report"
	reportuc "protrack-backend/internal/usecase/report"
)

type ReportHandler struct{ uc *reportuc.Usecase }

func NewReportHandler(uc *reportuc.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

func bindPhotos(files []*multipart.FileHeader, captions []string) ([]reportuc.PhotoUpload, error) {
	out := make([]reportuc.PhotoUpload, 0, len(files))
	for i, fh := range files {
		data, err := readUpload(fh)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload "+fh.Filename)
		}
		out = append(out, reportuc.PhotoUpload{
			FileName: fh.Filename,
			Data:     data,
			Caption:  captionFor(captions, i),
		})
	}
	return out, nil
}

// Create files a progress report. Multipart: `project_id`, `content`,
// photos under `photos` with a parallel `captions` array.
func (h *ReportHandler) Create(c echo.Context) error {
	kind, ok := reportKind(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown report type"})
	}
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expected multipart form"})
	}
	value := func(key string) string {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}
	projectID := value("project_id")
	if !reHex32.MatchString(projectID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "project_id must be 32-char lowercase hex"})
	}
	photos, err := bindPhotos(form.File["photos"], form.Value["captions"])
	if err != nil {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), middleware.Principal(c), reportuc.CreateInput{
		Kind:      kind,
		ProjectID: projectID,
		Content:   value("content"),
		Photos:    photos,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Resubmit reworks a rejected report. Multipart: `content`, kept photo
// captions as parallel `kept_photo_ids`/`kept_captions`, photos to drop
// under `deleted_photo_ids`, new photos under `photos`/`captions`.
func (h *ReportHandler) Resubmit(c echo.Context) error {
	kind, ok := reportKind(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown report type"})
	}
	reportID := c.Param("report_id")
	if !reHex32.MatchString(reportID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid report_id path param"})
	}
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expected multipart form"})
	}
	value := func(key string) string {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	keptIDs := form.Value["kept_photo_ids"]
	keptCaptions := form.Value["kept_captions"]
	kept := make([]reportuc.PhotoCaptionEdit, 0, len(keptIDs))
	for i, pid := range keptIDs {
		if !reHex32.MatchString(pid) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "kept_photo_ids must be 32-char lowercase hex"})
		}
		kept = append(kept, reportuc.PhotoCaptionEdit{PhotoID: pid, Caption: captionFor(keptCaptions, i)})
	}
	for _, pid := range form.Value["deleted_photo_ids"] {
		if !reHex32.MatchString(pid) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "deleted_photo_ids must be 32-char lowercase hex"})
		}
	}
	photos, err := bindPhotos(form.File["photos"], form.Value["captions"])
	if err != nil {
		return err
	}

	dto, err := h.uc.Resubmit(c.Request().Context(), middleware.Principal(c), reportuc.ResubmitInput{
		Kind:            kind,
		ReportID:        reportID,
		Content:         value("content"),
		KeptPhotos:      kept,
		DeletedPhotoIDs: form.Value["deleted_photo_ids"],
		NewPhotos:       photos,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReportHandler) PendingApprovals(c echo.Context) error {
	items, err := h.uc.PendingApprovals(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ReportHandler) ApprovalDetail(c echo.Context) error {
	kind, ok := reportKind(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown report type"})
	}
	dto, err := h.uc.ApprovalDetail(c.Request().Context(), middleware.Principal(c), kind, c.Param("report_id"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type decideReq struct {
	Action     string `json:"action" validate:"required,oneof=approve reject"`
	RejectNote string `json:"reject_note"`
}

func (h *ReportHandler) Decide(c echo.Context) error {
	kind, ok := reportKind(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown report type"})
	}
	reportID := c.Param("report_id")
	if !reHex32.MatchString(reportID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid report_id path param"})
	}
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Decide(c.Request().Context(), middleware.Principal(c), reportuc.DecideInput{
		Kind:       kind,
		ReportID:   reportID,
		Action:     req.Action,
		RejectNote: req.RejectNote,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReportHandler) ActionNeeded(c echo.Context) error {
	items, err := h.uc.ActionNeeded(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

type commentReq struct {
	ReportType string `json:"report_type" validate:"required,oneof=daily weekly monthly"`
	ReportID   string `json:"report_id"   validate:"required,hex32"`
	Message    string `json:"message"     validate:"required"`
}

func (h *ReportHandler) AddComment(c echo.Context) error {
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.AddComment(c.Request().Context(), middleware.Principal(c), reportuc.CommentInput{
		Kind:     domainReport.Kind(req.ReportType),
		ReportID: req.ReportID,
		Message:  req.Message,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
