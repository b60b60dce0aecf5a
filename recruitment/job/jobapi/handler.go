package jobapi

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jobgate-vn/jobgate/pkg/iam/auth"
	"github.com/jobgate-vn/jobgate/pkg/kernel"
	"github.com/jobgate-vn/jobgate/recruitment/job"
	"github.com/jobgate-vn/jobgate/recruitment/job/jobsrv"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
)

// Handlers provides HTTP handlers for job post operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{service: service}
}

// ListPublished lists active posts for public browsing
// GET /api/jobs
func (h *Handlers) ListPublished(c *fiber.Ctx) error {
	posts, err := h.service.ListPublished(c.Context(), parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(posts)
}

// GetPublishedPost returns an active post for public viewing
// GET /api/jobs/:id
func (h *Handlers) GetPublishedPost(c *fiber.Ctx) error {
	post, err := h.service.GetPublishedPost(c.Context(), kernel.JobID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(post)
}

// CreatePost creates a job post in pending review
// POST /api/jobs
func (h *Handlers) CreatePost(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req job.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	post, err := h.service.CreatePost(c.Context(), authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListMine lists the caller's own posts
// GET /api/jobs/mine
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	posts, err := h.service.ListMine(c.Context(), authCtx.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(posts)
}

// GetMyPost returns one of the caller's own posts
// GET /api/jobs/mine/:id
func (h *Handlers) GetMyPost(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	post, err := h.service.GetMyPost(c.Context(), kernel.JobID(c.Params("id")), authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(post)
}

// UpdatePost edits content fields of the caller's own post
// PUT /api/jobs/:id
func (h *Handlers) UpdatePost(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req job.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	post, err := h.service.UpdatePost(c.Context(), kernel.JobID(c.Params("id")), authCtx.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(post)
}

// HidePost hides an active post from public listings
// POST /api/jobs/:id/hide
func (h *Handlers) HidePost(c *fiber.Ctx) error {
	return h.ownerTransition(c, h.service.HidePost)
}

// UnhidePost returns a hidden post to public listings
// POST /api/jobs/:id/unhide
func (h *Handlers) UnhidePost(c *fiber.Ctx) error {
	return h.ownerTransition(c, h.service.UnhidePost)
}

// DeletePost marks a post deleted
// DELETE /api/jobs/:id
func (h *Handlers) DeletePost(c *fiber.Ctx) error {
	return h.ownerTransition(c, h.service.DeletePost)
}

// ResubmitPost sends an expired post back to review
// POST /api/jobs/:id/resubmit
func (h *Handlers) ResubmitPost(c *fiber.Ctx) error {
	return h.ownerTransition(c, h.service.ResubmitPost)
}

// ApprovePost approves a pending post
// POST /api/admin/jobs/:id/approve
func (h *Handlers) ApprovePost(c *fiber.Ctx) error {
	actor, ok := adminActor(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req job.ReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := h.service.ApprovePost(c.Context(), kernel.JobID(c.Params("id")), actor, req.Note)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// RejectPost rejects a pending post
// POST /api/admin/jobs/:id/reject
func (h *Handlers) RejectPost(c *fiber.Ctx) error {
	return h.adminReview(c, h.service.RejectPost)
}

// RemovePost takes down an active post
// POST /api/admin/jobs/:id/remove
func (h *Handlers) RemovePost(c *fiber.Ctx) error {
	return h.adminReview(c, h.service.RemovePost)
}

// ListByStatus lists posts by status for admin review queues
// GET /api/admin/jobs?status=pending_approval
func (h *Handlers) ListByStatus(c *fiber.Ctx) error {
	status := job.PostStatus(c.Query("status", string(job.PostStatusPendingApproval)))

	posts, err := h.service.ListByStatus(c.Context(), status, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(posts)
}

// RegisterRoutes wires job routes into the app
func RegisterRoutes(app *fiber.App, h *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/jobs")
	api.Get("/", h.ListPublished)
	api.Get("/mine", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.ListMine)
	api.Get("/mine/:id", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.GetMyPost)
	api.Get("/:id", h.GetPublishedPost)
	api.Post("/", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.CreatePost)
	api.Put("/:id", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.UpdatePost)
	api.Post("/:id/hide", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.HidePost)
	api.Post("/:id/unhide", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.UnhidePost)
	api.Post("/:id/resubmit", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.ResubmitPost)
	api.Delete("/:id", authMiddleware, auth.RequireRole(auth.RoleEmployer), h.DeletePost)

	admin := app.Group("/api/admin/jobs", authMiddleware, auth.RequireRole(auth.RoleAdmin))
	admin.Get("/", h.ListByStatus)
	admin.Post("/:id/approve", h.ApprovePost)
	admin.Post("/:id/reject", h.RejectPost)
	admin.Post("/:id/remove", h.RemovePost)
}

type ownerTransitionFunc func(ctx context.Context, postID kernel.JobID, userID kernel.UserID) (*workflow.TransitionResult, error)

func (h *Handlers) ownerTransition(c *fiber.Ctx, fn ownerTransitionFunc) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	result, err := fn(c.Context(), kernel.JobID(c.Params("id")), authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

type adminReviewFunc func(ctx context.Context, postID kernel.JobID, actor workflow.Actor, reason *string) (*workflow.TransitionResult, error)

func (h *Handlers) adminReview(c *fiber.Ctx, fn adminReviewFunc) error {
	actor, ok := adminActor(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req job.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := fn(c.Context(), kernel.JobID(c.Params("id")), actor, req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(result)
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
