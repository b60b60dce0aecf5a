package workflow

import (
	"net/http"

	"github.com/jobgate-vn/jobgate/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("WORKFLOW")

// Error codes
var (
	CodeEntityNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resource not found")
	CodeUnknownKind       = ErrRegistry.Register("UNKNOWN_KIND", errx.TypeInternal, http.StatusInternalServerError, "Unknown resource kind")
	CodeIllegalTransition = ErrRegistry.Register("ILLEGAL_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Action is not valid from the current state")
	CodeInvalidPayload    = ErrRegistry.Register("INVALID_PAYLOAD", errx.TypeValidation, http.StatusBadRequest, "Required transition input is missing or out of bounds")
	CodeStaleState        = ErrRegistry.Register("STALE_STATE", errx.TypeConflict, http.StatusConflict, "State changed concurrently, retry the operation")
	CodeAdminRequired     = ErrRegistry.Register("ADMIN_REQUIRED", errx.TypeAuthorization, http.StatusForbidden, "Administrative role required")
)

// Helper functions
func ErrEntityNotFound() *errx.Error {
	return ErrRegistry.New(CodeEntityNotFound)
}

func ErrUnknownKind() *errx.Error {
	return ErrRegistry.New(CodeUnknownKind)
}

func ErrIllegalTransition() *errx.Error {
	return ErrRegistry.New(CodeIllegalTransition)
}

func ErrInvalidPayload() *errx.Error {
	return ErrRegistry.New(CodeInvalidPayload)
}

func ErrStaleState() *errx.Error {
	return ErrRegistry.New(CodeStaleState)
}

func ErrAdminRequired() *errx.Error {
	return ErrRegistry.New(CodeAdminRequired)
}
