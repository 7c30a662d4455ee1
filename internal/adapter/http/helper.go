package http

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"protrack-backend/internal/domain/blob"
	"protrack-backend/internal/domain/project"
	"protrack-backend/internal/domain/report"
	"protrack-backend/internal/domain/user"
	"protrack-backend/internal/usecase/admin"
	"protrack-backend/internal/usecase/auth"
	projectuc "protrack-backend/internal/usecase/project"
)

// httpError maps domain errors onto HTTP codes. Every handler funnels its
// usecase error through here so the mapping lives in one place.
func httpError(c echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, user.ErrUnauthenticated),
		errors.Is(err, user.ErrBadCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		code = http.StatusUnauthorized
	case errors.Is(err, user.ErrForbidden),
		errors.Is(err, report.ErrNotAuthor):
		code = http.StatusForbidden
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, project.ErrNotFound),
		errors.Is(err, report.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, report.ErrInvalidState),
		errors.Is(err, project.ErrAlreadyRated),
		errors.Is(err, user.ErrEmailTaken):
		code = http.StatusConflict
	case errors.Is(err, report.ErrEmptyContent),
		errors.Is(err, report.ErrEmptyComment),
		errors.Is(err, report.ErrInvalidAction),
		errors.Is(err, report.ErrMissingRejectNote),
		errors.Is(err, project.ErrInvalidRating),
		errors.Is(err, project.ErrNoReports),
		errors.Is(err, project.ErrUnapprovedReports),
		errors.Is(err, project.ErrNotDone),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, projectuc.ErrInvalidInput),
		errors.Is(err, admin.ErrInvalidInput):
		code = http.StatusBadRequest
	case errors.Is(err, blob.ErrUpload):
		code = http.StatusBadGateway
	default:
		log.Printf("unhandled error on %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

// readUpload reads one multipart file fully into memory.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// captionFor pairs files with a parallel caption array; missing entries
// fall back to empty captions.
func captionFor(captions []string, i int) string {
	if i < len(captions) {
		return captions[i]
	}
	return ""
}

// reportKind parses the :report_type path param.
func reportKind(c echo.Context) (report.Kind, bool) {
	return report.ParseKind(strings.ToLower(c.Param("report_type")))
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
