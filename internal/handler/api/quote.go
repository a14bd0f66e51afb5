package api

import (
	"net/http"
	"strconv"

	reqdto "teetime/internal/handler/dto/request"
	resdto "teetime/internal/handler/dto/response"
	"teetime/internal/handler/httperr"
	"teetime/internal/handler/middleware"
	"teetime/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	q queries.PricingQueries
}

func NewQuoteHandler(q queries.PricingQueries) *QuoteHandler {
	return &QuoteHandler{q: q}
}

// @Summary Quote a tee time
// @Description Price a tee time now. Anonymous callers get the standard segment. Blocked slots return 200 with isBlocked set.
// @Tags pricing
// @Produce json
// @Param id path int true "Tee time ID"
// @Param proximity_km query number false "Distance from the course in km"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/tee-times/{id}/quote [get]
func (h *QuoteHandler) Quote(c *gin.Context) {
	teeTimeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || teeTimeID <= 0 {
		httperr.Abort(c, http.StatusBadRequest, httperr.CodeInvalidRequest, errInvalidTeeTimeID, "Invalid tee time ID")
		return
	}
	var query reqdto.QuoteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.Abort(c, http.StatusBadRequest, httperr.CodeInvalidRequest, err, "Invalid query")
		return
	}

	req := queries.QuoteRequest{TeeTimeID: teeTimeID, ProximityKm: query.ProximityKm}
	if customerID, ok := middleware.GetCustomerID(c); ok {
		req.CustomerID = &customerID
	}

	view, err := h.q.Quote(c.Request.Context(), req)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}
