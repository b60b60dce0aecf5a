package candidateapi

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jobgate-vn/jobgate/pkg/iam/auth"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/candidate"
	"github.com/jobgate-vn/jobgate/recruitment/candidate/candidatesrv"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
)

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.CandidateService
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.CandidateService) *Handlers {
	return &Handlers{service: service}
}

// Register creates a candidate account
// POST /api/candidates/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req candidate.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	cand, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(cand)
}

// Login authenticates a candidate
// POST /api/candidates/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req candidate.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetMe returns the caller's own account
// GET /api/candidates/me
func (h *Handlers) GetMe(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	cand, err := h.service.GetMe(c.Context(), authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(cand)
}

// CreateCV creates a CV in pending review
// POST /api/candidates/cvs
func (h *Handlers) CreateCV(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req candidate.CreateCVRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	cv, err := h.service.CreateCV(c.Context(), authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(cv)
}

// ListMyCVs lists the caller's own CVs
// GET /api/candidates/cvs
func (h *Handlers) ListMyCVs(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	cvs, err := h.service.ListMyCVs(c.Context(), authCtx.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(cvs)
}

// GetMyCV returns one of the caller's own CVs
// GET /api/candidates/cvs/:id
func (h *Handlers) GetMyCV(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	cv, err := h.service.GetMyCV(c.Context(), kernel.CVID(c.Params("id")), authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(cv)
}

// UpdateCV edits content fields of the caller's own CV
// PUT /api/candidates/cvs/:id
func (h *Handlers) UpdateCV(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req candidate.UpdateCVRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	cv, err := h.service.UpdateCV(c.Context(), kernel.CVID(c.Params("id")), authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(cv)
}

// UploadCVFile uploads a CV document
// POST /api/candidates/cvs/:id/file
func (h *Handlers) UploadCVFile(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return candidate.ErrInvalidRequest().WithDetail("file", "missing multipart file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return candidate.ErrInvalidRequest().WithDetail("file", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return candidate.ErrInvalidRequest().WithDetail("file", err.Error())
	}

	cv, err := h.service.UploadCVFile(c.Context(), kernel.CVID(c.Params("id")), authCtx.UserID, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return c.JSON(cv)
}

// DeleteCVs removes a batch of the caller's CVs
// DELETE /api/candidates/cvs
func (h *Handlers) DeleteCVs(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req candidate.DeleteCVsRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	if err := h.service.DeleteCVs(c.Context(), authCtx.UserID, req.IDs); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ApproveCV approves a pending CV
// POST /api/admin/cvs/:id/approve
func (h *Handlers) ApproveCV(c *fiber.Ctx) error {
	actor, ok := adminActor(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req candidate.ReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.ApproveCV(c.Context(), kernel.CVID(c.Params("id")), actor, req.Note)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// RejectCV rejects a pending CV
// POST /api/admin/cvs/:id/reject
func (h *Handlers) RejectCV(c *fiber.Ctx) error {
	actor, ok := adminActor(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req candidate.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.RejectCV(c.Context(), kernel.CVID(c.Params("id")), actor, req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ListCVsByStatus lists CVs by status for admin review queues
// GET /api/admin/cvs?status=pending_approval
func (h *Handlers) ListCVsByStatus(c *fiber.Ctx) error {
	status := candidate.CVStatus(c.Query("status", string(candidate.CVStatusPendingApproval)))

	cvs, err := h.service.ListCVsByStatus(c.Context(), status, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(cvs)
}

// RegisterRoutes wires candidate routes into the app
func RegisterRoutes(app *fiber.App, h *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/candidates")
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Get("/me", authMiddleware, auth.RequireRole(auth.RoleCandidate), h.GetMe)

	cvs := app.Group("/api/candidates/cvs", authMiddleware, auth.RequireRole(auth.RoleCandidate))
	cvs.Post("/", h.CreateCV)
	cvs.Get("/", h.ListMyCVs)
	cvs.Delete("/", h.DeleteCVs)
	cvs.Get("/:id", h.GetMyCV)
	cvs.Put("/:id", h.UpdateCV)
	cvs.Post("/:id/file", h.UploadCVFile)

	admin := app.Group("/api/admin/cvs", authMiddleware, auth.RequireRole(auth.RoleAdmin))
	admin.Get("/", h.ListCVsByStatus)
	admin.Post("/:id/approve", h.ApproveCV)
	admin.Post("/:id/reject", h.RejectCV)
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
