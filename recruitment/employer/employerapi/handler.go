package employerapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jobgate-vn/jobgate/pkg/iam/auth"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/employer"
	"github.com/jobgate-vn/jobgate/recruitment/employer/employersrv"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
)

// Handlers provides HTTP handlers for employer operations
type Handlers struct {
	service *employersrv.EmployerService
}

// NewHandlers creates a new employer handlers instance
func NewHandlers(service *employersrv.EmployerService) *Handlers {
	return &Handlers{service: service}
}

// Register creates an employer account
// POST /api/employers/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req employer.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return employer.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	profile, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

// Login authenticates an employer
// POST /api/employers/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req employer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return employer.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetMyProfile returns the caller's own profile
// GET /api/employers/me
func (h *Handlers) GetMyProfile(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	profile, err := h.service.GetProfileByUser(c.Context(), authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// SubmitProfile submits the caller's profile for review
// POST /api/employers/:id/submit
func (h *Handlers) SubmitProfile(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	profileID := kernel.EmployerID(c.Params("id"))
	result, err := h.service.SubmitProfile(c.Context(), profileID, authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// UpdateProfile edits the caller's profile content
// PUT /api/employers/:id
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req employer.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return employer.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	profileID := kernel.EmployerID(c.Params("id"))
	profile, err := h.service.UpdateProfile(c.Context(), profileID, authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// UploadLogo uploads a company logo
// POST /api/employers/:id/logo
func (h *Handlers) UploadLogo(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return employer.ErrInvalidRequest().WithDetail("file", "missing multipart file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return employer.ErrInvalidRequest().WithDetail("file", err.Error())
	}
	defer file.Close()

	data := make([]byte, fileHeader.Size)
	if _, err := file.Read(data); err != nil {
		return employer.ErrInvalidRequest().WithDetail("file", err.Error())
	}

	profileID := kernel.EmployerID(c.Params("id"))
	profile, err := h.service.UploadLogo(c.Context(), profileID, authCtx.UserID, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// ApproveProfile approves a pending profile
// POST /api/admin/employers/:id/approve
func (h *Handlers) ApproveProfile(c *fiber.Ctx) error {
	actor, ok := adminActor(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req employer.ReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return employer.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	profileID := kernel.EmployerID(c.Params("id"))
	result, err := h.service.ApproveProfile(c.Context(), profileID, actor, req.Note)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// RejectProfile rejects a pending profile
// POST /api/admin/employers/:id/reject
func (h *Handlers) RejectProfile(c *fiber.Ctx) error {
	actor, ok := adminActor(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req employer.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return employer.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	profileID := kernel.EmployerID(c.Params("id"))
	result, err := h.service.RejectProfile(c.Context(), profileID, actor, req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ListProfiles lists profiles filtered by status
// GET /api/admin/employers?status=pending_approval
func (h *Handlers) ListProfiles(c *fiber.Ctx) error {
	var status *employer.ProfileStatus
	if raw := c.Query("status"); raw != "" {
		s := employer.ProfileStatus(raw)
		status = &s
	}

	profiles, err := h.service.ListProfiles(c.Context(), status, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(profiles)
}

// RegisterRoutes wires employer routes into the app
func RegisterRoutes(app *fiber.App, h *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/employers")
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Get("/me", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.GetMyProfile)
	api.Post("/:id/submit", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.SubmitProfile)
	api.Put("/:id", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.UpdateProfile)
	api.Post("/:id/logo", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.UploadLogo)

	admin := app.Group("/api/admin/employers", authMiddleware, auth.RequireRole(auth.RoleAdmin))
	admin.Get("/", h.ListProfiles)
	admin.Post("/:id/approve", h.ApproveProfile)
	admin.Post("/:id/reject", h.RejectProfile)
}

// adminActor builds the workflow actor for an admin request
func adminActor(c *fiber.Ctx) (workflow.Actor, bool) {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return workflow.Actor{}, false
	}
	return workflow.Actor{ID: authCtx.UserID, Admin: authCtx.Role == auth.RoleAdmin}, true
}

// parsePaginationOptions extracts pagination from query params
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}.Normalize()
}
