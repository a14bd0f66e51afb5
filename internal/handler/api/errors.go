package api

import (
	"errors"
	"net/http"

	"teetime/internal/handler/httperr"
	"teetime/internal/pkg/errs"
	"teetime/internal/usecase/commands"
	"teetime/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	codeIdempotencyKeyRequired = "idempotency_key_required"
	codeInvalidCursor          = "invalid_cursor"
	codeTeeTimeNotFound        = "tee_time_not_found"
	codeCustomerNotFound       = "customer_not_found"
	codeReservationNotFound    = "reservation_not_found"
	codeForbidden              = "forbidden"
	codeIdempotencyInProgress  = "idempotency_in_progress"
	codeIdempotencyKeyReused   = "idempotency_key_reused"
	codeTeeTimeUnavailable     = "tee_time_unavailable"
	codeTeeTimeBlocked         = "tee_time_blocked"
	codeTeeTimeStarted         = "tee_time_started"
	codeInvalidReservation     = "invalid_reservation"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Checked in order; the first mark found on the error wins.
var usecaseErrorMappings = []errorMapping{
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, codeIdempotencyKeyRequired, "Idempotency-Key header is required"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, codeInvalidCursor, "Invalid cursor"},
	{errs.ErrTeeTimeNotFound, http.StatusNotFound, codeTeeTimeNotFound, "Tee time not found"},
	{errs.ErrCustomerNotFound, http.StatusNotFound, codeCustomerNotFound, "Customer not found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, codeReservationNotFound, "Reservation not found"},
	{errs.ErrReservationAccess, http.StatusForbidden, codeForbidden, "Access to reservation denied"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, codeIdempotencyInProgress, "Request with this idempotency key is still in progress"},
	{errs.ErrIdempotencyKeyReused, http.StatusConflict, codeIdempotencyKeyReused, "Idempotency key was used with a different request"},
	{commands.ErrTeeTimeUnavailable, http.StatusConflict, codeTeeTimeUnavailable, "Tee time is no longer available"},
	{commands.ErrTeeTimeBlocked, http.StatusUnprocessableEntity, codeTeeTimeBlocked, "Tee time is blocked"},
	{commands.ErrTeeTimeStarted, http.StatusUnprocessableEntity, codeTeeTimeStarted, "Tee time has already started"},
	{commands.ErrDomainValidation, http.StatusUnprocessableEntity, codeInvalidReservation, "Invalid reservation"},
}

func abortWithUsecaseError(c *gin.Context, err error) {
	for _, m := range usecaseErrorMappings {
		if errs.Is(err, m.target) {
			httperr.Abort(c, m.status, m.code, err, m.message)
			return
		}
	}
	httperr.Abort(c, http.StatusInternalServerError, httperr.CodeInternal, err, "Internal server error")
}

var (
	errUnauthorized     = errors.New("missing customer in context")
	errInvalidTeeTimeID = errors.New("tee time id must be a positive integer")
)
