package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"protrack-backend/internal/adapter/middleware"
	"protrack-backend/internal/domain/user"
	"protrack-backend/internal/usecase/admin"
)

type AdminHandler struct{ uc *admin.Usecase }

func NewAdminHandler(uc *admin.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context(), middleware.Principal(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,role"`
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	u, err := h.uc.CreateUser(c.Request().Context(), middleware.Principal(c), admin.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     user.Role(req.Role),
		Password: req.Password,
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

type updateUserReq struct {
	Name string `json:"name"`
	Role string `json:"role" validate:"required,role"`
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	userID := c.Param("user_id")
	if !reHex32.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id path param"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	u, err := h.uc.UpdateUser(c.Request().Context(), middleware.Principal(c), userID, admin.UpdateUserInput{
		Name: req.Name,
		Role: user.Role(req.Role),
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) AuditLogs(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	entries, err := h.uc.AuditLogs(c.Request().Context(), middleware.Principal(c), limit, offset)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
