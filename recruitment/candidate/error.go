package candidate

import (
	"net/http"

	"github.com/jobgate-vn/jobgate/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Error codes
var (
	CodeNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeCVNotFound     = ErrRegistry.Register("CV_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "CV not found")
	CodeAlreadyExists  = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Candidate account already exists")
	CodeCVUnderReview  = ErrRegistry.Register("CV_UNDER_REVIEW", errx.TypeBusiness, http.StatusConflict, "CV is under review and cannot be edited")
	CodeInvalidRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}

func ErrCVNotFound() *errx.Error {
	return ErrRegistry.New(CodeCVNotFound)
}

func ErrCandidateAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeAlreadyExists)
}

func ErrCVUnderReview() *errx.Error {
	return ErrRegistry.New(CodeCVUnderReview)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
