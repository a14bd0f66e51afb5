package api

import (
	"net/http"

	reqdto "teetime/internal/handler/dto/request"
	resdto "teetime/internal/handler/dto/response"
	"teetime/internal/handler/httperr"
	"teetime/internal/handler/middleware"
	"teetime/internal/pkg/errs"
	"teetime/internal/usecase/commands"
	"teetime/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Purchase a tee time
// @Description Reprices the tee time at purchase time and stores a reservation with the factor audit trail
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key (UUID)"
// @Param request body reqdto.CreateReservationRequest true "Create reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse "Replayed response"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, httperr.CodeUnauthorized, errUnauthorized, "Unauthorized")
		return
	}

	rawKey := c.GetHeader(idempotencyKeyHeader)
	if rawKey == "" {
		httperr.Abort(c, http.StatusBadRequest, codeIdempotencyKeyRequired, errs.ErrIdempotencyKeyRequired, "Idempotency-Key header is required")
		return
	}
	idempotencyKey, err := uuid.Parse(rawKey)
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, httperr.CodeInvalidRequest, err, "Idempotency-Key must be a UUID")
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, http.StatusBadRequest, httperr.CodeInvalidRequest, err, "Invalid request")
		return
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), req.ToCommand(), customerID, idempotencyKey)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	c.Header("Location", "/api/reservations/"+result.Reservation.ID.String())
	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromReservationView(result.Reservation))
}

// @Summary Get reservation
// @Description Get one of the caller's reservations by ID
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, httperr.CodeUnauthorized, errUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, httperr.CodeInvalidRequest, err, "Invalid reservation ID")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), customerID, id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List the caller's reservations, newest first, with keyset pagination
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 50, max 200)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, httperr.CodeUnauthorized, errUnauthorized, "Unauthorized")
		return
	}
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.Abort(c, http.StatusBadRequest, httperr.CodeInvalidRequest, err, "Invalid query")
		return
	}
	var cursor *queries.Cursor
	if query.After != "" {
		cursor = &queries.Cursor{After: query.After}
	}

	items, next, err := h.q.ListByCustomer(c.Request.Context(), customerID, cursor, query.Limit)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	page, err := resdto.FromReservationListItems(items, next)
	if err != nil {
		httperr.Abort(c, http.StatusInternalServerError, httperr.CodeInternal, err, "Failed to build response")
		return
	}
	c.JSON(http.StatusOK, page)
}
