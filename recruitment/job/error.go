package job

import (
	"net/http"

	"github.com/jobgate-vn/jobgate/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodePostNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job post not found")
	CodePostNotEditable   = ErrRegistry.Register("NOT_EDITABLE", errx.TypeBusiness, http.StatusConflict, "Job post cannot be edited in its current state")
	CodeEmployerNotActive = ErrRegistry.Register("EMPLOYER_NOT_ACTIVE", errx.TypeBusiness, http.StatusForbidden, "Employer profile must be active to post jobs")
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrPostNotFound() *errx.Error {
	return ErrRegistry.New(CodePostNotFound)
}

func ErrPostNotEditable() *errx.Error {
	return ErrRegistry.New(CodePostNotEditable)
}

func ErrEmployerNotActive() *errx.Error {
	return ErrRegistry.New(CodeEmployerNotActive)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
