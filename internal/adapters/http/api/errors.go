package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/skillrate/internal/app"
	"github.com/okian/skillrate/internal/domain/conversion"
	"github.com/okian/skillrate/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrRateLimited      = errors.New("too many requests")
)

// Error codes carried in the response envelope.
const (
	codeBadRequest       = "bad_request"
	codeInvalidRating    = "invalid_rating"
	codeUnknownSystem    = "unknown_system"
	codeUnsupported      = "unsupported_conversion"
	codeOutOfRange       = "out_of_range"
	codeNoDefault        = "no_default"
	codeEmptyBatch       = "empty_batch"
	codeBatchTooLarge    = "batch_too_large"
	codeBodyTooLarge     = "body_too_large"
	codeBackpressure     = "backpressure"
	codeUnavailable      = "unavailable"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeRateLimited      = "rate_limited"
	codeInternal         = "internal_error"
	codeRequestCancelled = "request_cancelled"
	codeTimeout          = "timeout"
)

// statusClientClosedRequest is the nginx convention for a client that went away.
const statusClientClosedRequest = 499

// classify maps a domain error to an HTTP status and envelope code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, conversion.ErrUnsupportedConversion):
		return http.StatusUnprocessableEntity, codeUnsupported
	case errors.Is(err, conversion.ErrOutOfRange):
		return http.StatusUnprocessableEntity, codeOutOfRange
	case errors.Is(err, model.ErrUnknownSystem):
		return http.StatusBadRequest, codeUnknownSystem
	case errors.Is(err, conversion.ErrInvalidInput), errors.Is(err, model.ErrInvalidRating):
		return http.StatusBadRequest, codeInvalidRating
	case errors.Is(err, model.ErrNoDefault):
		return http.StatusNotFound, codeNoDefault
	case errors.Is(err, service.ErrEmptyBatch):
		return http.StatusBadRequest, codeEmptyBatch
	case errors.Is(err, service.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge, codeBatchTooLarge
	case errors.Is(err, service.ErrBackpressure):
		return http.StatusTooManyRequests, codeBackpressure
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, codeUnavailable
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, codeRequestCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeTimeout
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
