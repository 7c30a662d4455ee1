package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the full surface. Everything except /health and
// /auth/login sits behind the auth middleware; the idempotency middleware
// follows it and only engages on mutating methods.
func RegisterRoutes(
	e *echo.Echo,
	h *Handler,
	authH *AuthHandler,
	adminH *AdminHandler,
	projH *ProjectHandler,
	repH *ReportHandler,
	authMW echo.MiddlewareFunc,
	idemMW echo.MiddlewareFunc,
) {
	e.GET("/health", h.Health)
	e.POST("/auth/login", authH.Login)

	api := e.Group("", authMW, idemMW)

	// admin
	api.GET("/admin/users", adminH.ListUsers)
	api.POST("/admin/users", adminH.CreateUser)
	api.PUT("/admin/users/:user_id", adminH.UpdateUser)
	api.GET("/admin/audit-logs", adminH.AuditLogs)

	// owner
	api.POST("/projects", projH.Create)
	api.GET("/projects/owner", projH.ListOwned)
	api.GET("/projects/owner/:project_id", projH.OwnerDetail)
	api.PUT("/projects/owner/:project_id", projH.Update)
	api.PATCH("/projects/owner/:project_id", projH.MarkComplete)
	api.GET("/owner/approvals", repH.PendingApprovals)
	api.GET("/owner/approvals/:report_type/:report_id", repH.ApprovalDetail)
	api.POST("/owner/approvals/:report_type/:report_id", repH.Decide)
	api.GET("/dashboard/owner", projH.OwnerDashboard)

	// manager
	api.POST("/reports/:report_type", repH.Create)
	api.PUT("/manager/reports/:report_type/:report_id", repH.Resubmit)
	api.GET("/manager/reports/action-needed", repH.ActionNeeded)
	api.GET("/manager/projects/:project_id", projH.ManagerDetail)
	api.GET("/dashboard/manager", projH.ManagerDashboard)

	// customer
	api.GET("/customer/projects", projH.ListForCustomer)
	api.GET("/customer/projects/:project_id", projH.CustomerDetail)
	api.POST("/customer/projects/:project_id/rating", projH.SubmitRating)
	api.POST("/customer/comments", repH.AddComment)
	api.GET("/customer/dashboard", projH.CustomerDashboard)
}
