package applicationapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jobgate-vn/jobgate/pkg/iam/auth"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/application"
	"github.com/jobgate-vn/jobgate/recruitment/application/applicationsrv"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{service: service}
}

// Apply submits an application to a job post
// POST /api/applications
func (h *Handlers) Apply(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req application.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.Apply(c.Context(), authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// ListMine lists the caller's own applications
// GET /api/applications/mine
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	apps, err := h.service.ListMine(c.Context(), authCtx.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(apps)
}

// ListForJob lists applications to one of the caller's job posts
// GET /api/applications/job/:jobId
func (h *Handlers) ListForJob(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	apps, err := h.service.ListForJob(c.Context(), kernel.JobID(c.Params("jobId")), authCtx.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(apps)
}

// ViewApplication opens an application on the employer side
// GET /api/applications/:id
func (h *Handlers) ViewApplication(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	app, err := h.service.ViewApplication(c.Context(), kernel.ApplicationID(c.Params("id")), authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// Shortlist selects a viewed application for the next round
// POST /api/applications/:id/shortlist
func (h *Handlers) Shortlist(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req application.ReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.Shortlist(c.Context(), kernel.ApplicationID(c.Params("id")), authCtx.UserID, req.Note)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Reject declines a viewed application
// POST /api/applications/:id/reject
func (h *Handlers) Reject(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req application.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.Reject(c.Context(), kernel.ApplicationID(c.Params("id")), authCtx.UserID, req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// RegisterRoutes wires application routes into the app
func RegisterRoutes(app *fiber.App, h *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/applications", authMiddleware)
	api.Post("/", auth.RequireRole(auth.RoleCandidate), h.Apply)
	api.Get("/mine", auth.RequireRole(auth.RoleCandidate), h.ListMine)
	api.Get("/job/:jobId", auth.RequireRole(auth.RoleEmployer), h.ListForJob)
	api.Get("/:id", auth.RequireRole(auth.RoleEmployer), h.ViewApplication)
	api.Post("/:id/shortlist", auth.RequireRole(auth.RoleEmployer), h.Shortlist)
	api.Post("/:id/reject", auth.RequireRole(auth.RoleEmployer), h.Reject)
}

// parsePaginationOptions extracts pagination from query params
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}.Normalize()
}
