package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/talent-match/internal/ingestion"
	"github.com/jonathan/talent-match/internal/matching"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		valErr    *ErrValidation
		ingestErr *ingestion.ValidationError
		fieldErrs validator.ValidationErrors
	)
	switch {
	case errors.Is(err, matching.ErrJobNotFound), errors.Is(err, matching.ErrCandidateNotFound):
		return http.StatusNotFound
	case errors.As(err, &valErr), errors.As(err, &ingestErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
