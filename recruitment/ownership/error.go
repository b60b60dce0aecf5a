package ownership

import (
	"net/http"

	"github.com/jobgate-vn/jobgate/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("OWNERSHIP")

// Error codes
var (
	// CodeNotFound covers both a missing entity and an ownership mismatch.
	// The two cases are indistinguishable on purpose: a caller must not be
	// able to probe for the existence of records it does not own.
	CodeNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resource not found")

	CodeInvalidDescriptor = ErrRegistry.Register("INVALID_DESCRIPTOR", errx.TypeInternal, http.StatusInternalServerError, "Invalid ownership descriptor")
)

// Helper functions
func ErrNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}

func ErrInvalidDescriptor() *errx.Error {
	return ErrRegistry.New(CodeInvalidDescriptor)
}
