package http

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"protrack-backend/internal/adapter/middleware"
	projectuc "protrack-backend/internal/usecase/project"
)

const dateLayout = "2006-01-02"

type ProjectHandler struct{ uc *projectuc.Usecase }

func NewProjectHandler(uc *projectuc.Usecase) *ProjectHandler { return &ProjectHandler{uc: uc} }

// projectForm is the multipart surface shared by create and update. Files
// travel under the `images` and `documents` keys with parallel
// `image_captions` / `document_captions` arrays.
type projectForm struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	ManagerID   string
	CustomerIDs []string
	KeepFileIDs []uint64
	Images      []projectuc.FileUpload
	Documents   []projectuc.FileUpload
}

func bindProjectForm(c echo.Context) (*projectForm, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "expected multipart form")
	}
	value := func(key string) string {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	out := &projectForm{
		Name:        value("name"),
		Description: value("description"),
		ManagerID:   value("manager_id"),
		CustomerIDs: form.Value["customer_ids"],
	}
	if out.ManagerID != "" && !reHex32.MatchString(out.ManagerID) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "manager_id must be 32-char lowercase hex")
	}
	for _, cid := range out.CustomerIDs {
		if !reHex32.MatchString(cid) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "customer_ids must be 32-char lowercase hex")
		}
	}
	if raw := value("start_date"); raw != "" {
		if out.StartDate, err = time.Parse(dateLayout, raw); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "start_date must match "+dateLayout)
		}
	}
	if raw := value("end_date"); raw != "" {
		if out.EndDate, err = time.Parse(dateLayout, raw); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "end_date must match "+dateLayout)
		}
	}
	for _, raw := range form.Value["keep_file_ids"] {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "keep_file_ids must be numeric")
		}
		out.KeepFileIDs = append(out.KeepFileIDs, id)
	}

	if out.Images, err = bindUploads(form.File["images"], form.Value["image_captions"]); err != nil {
		return nil, err
	}
	if out.Documents, err = bindUploads(form.File["documents"], form.Value["document_captions"]); err != nil {
		return nil, err
	}
	return out, nil
}

func bindUploads(files []*multipart.FileHeader, captions []string) ([]projectuc.FileUpload, error) {
	out := make([]projectuc.FileUpload, 0, len(files))
	for i, fh := range files {
		data, err := readUpload(fh)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload "+fh.Filename)
		}
		out = append(out, projectuc.FileUpload{
			FileName: fh.Filename,
			Data:     data,
			Caption:  captionFor(captions, i),
		})
	}
	return out, nil
}

func (h *ProjectHandler) Create(c echo.Context) error {
	form, err := bindProjectForm(c)
	if err != nil {
		return err
	}
	proj, err := h.uc.Create(c.Request().Context(), middleware.Principal(c), projectuc.CreateInput{
		Name:        form.Name,
		Description: form.Description,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
		ManagerID:   form.ManagerID,
		CustomerIDs: form.CustomerIDs,
		Images:      form.Images,
		Documents:   form.Documents,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, proj)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	projectID := c.Param("project_id")
	if !reHex32.MatchString(projectID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	form, err := bindProjectForm(c)
	if err != nil {
		return err
	}
	err = h.uc.Update(c.Request().Context(), middleware.Principal(c), projectID, projectuc.UpdateInput{
		Name:        form.Name,
		Description: form.Description,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
		ManagerID:   form.ManagerID,
		CustomerIDs: form.CustomerIDs,
		KeepFileIDs: form.KeepFileIDs,
		Images:      form.Images,
		Documents:   form.Documents,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

func (h *ProjectHandler) MarkComplete(c echo.Context) error {
	projectID := c.Param("project_id")
	if !reHex32.MatchString(projectID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	proj, err := h.uc.MarkComplete(c.Request().Context(), middleware.Principal(c), projectID)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, proj)
}

func (h *ProjectHandler) ListOwned(c echo.Context) error {
	projects, err := h.uc.ListOwned(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) OwnerDetail(c echo.Context) error {
	detail, err := h.uc.OwnerDetail(c.Request().Context(), middleware.Principal(c), c.Param("project_id"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *ProjectHandler) ManagerDetail(c echo.Context) error {
	detail, err := h.uc.ManagerDetail(c.Request().Context(), middleware.Principal(c), c.Param("project_id"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *ProjectHandler) ListForCustomer(c echo.Context) error {
	projects, err := h.uc.ListForCustomer(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) CustomerDetail(c echo.Context) error {
	detail, err := h.uc.CustomerDetail(c.Request().Context(), middleware.Principal(c), c.Param("project_id"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

type submitRatingReq struct {
	Rating   int    `json:"rating"   validate:"required,gte=1,lte=5"`
	Feedback string `json:"feedback"`
}

func (h *ProjectHandler) SubmitRating(c echo.Context) error {
	projectID := c.Param("project_id")
	if !reHex32.MatchString(projectID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	var req submitRatingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	rating, err := h.uc.SubmitRating(c.Request().Context(), middleware.Principal(c), projectuc.RatingInput{
		ProjectID: projectID,
		Rating:    req.Rating,
		Feedback:  req.Feedback,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, rating)
}

func (h *ProjectHandler) OwnerDashboard(c echo.Context) error {
	dash, err := h.uc.OwnerDashboard(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *ProjectHandler) ManagerDashboard(c echo.Context) error {
	dash, err := h.uc.ManagerDashboard(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *ProjectHandler) CustomerDashboard(c echo.Context) error {
	dash, err := h.uc.CustomerDashboard(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}
