package employer

import (
	"net/http"

	"github.com/jobgate-vn/jobgate/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("EMPLOYER")

// Error codes
var (
	CodeProfileNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Employer profile not found")
	CodeProfileAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Employer profile already exists")
	CodeProfileUnderReview   = ErrRegistry.Register("UNDER_REVIEW", errx.TypeBusiness, http.StatusConflict, "Profile is awaiting review and cannot be edited")
	CodeProfileNotActive     = ErrRegistry.Register("NOT_ACTIVE", errx.TypeBusiness, http.StatusForbidden, "Employer profile is not active")
	CodeInvalidRequest       = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrProfileNotFound() *errx.Error {
	return ErrRegistry.New(CodeProfileNotFound)
}

func ErrProfileAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeProfileAlreadyExists)
}

func ErrProfileUnderReview() *errx.Error {
	return ErrRegistry.New(CodeProfileUnderReview)
}

func ErrProfileNotActive() *errx.Error {
	return ErrRegistry.New(CodeProfileNotActive)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
