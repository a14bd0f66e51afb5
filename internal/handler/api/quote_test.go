//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"teetime/internal/domain/pricing"
	"teetime/internal/handler/api"
	resdto "teetime/internal/handler/dto/response"
	"teetime/internal/pkg/errs"
	"teetime/internal/pkg/ptr"
	"teetime/internal/usecase/queries"
	"teetime/tests/common/builder"
	"teetime/tests/common/httptest"
	queriesmock "teetime/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupQuoteRouter(t *testing.T, customerID *uuid.UUID) (*gin.Engine, *queriesmock.MockPricingQueries) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	mockQueries := queriesmock.NewMockPricingQueries(gomock.NewController(t))
	handler := api.NewQuoteHandler(mockQueries)

	optionalAuth := func(c *gin.Context) {
		if customerID != nil {
			c.Set("customer_id", *customerID)
		}
		c.Next()
	}
	router.GET("/api/tee-times/:id/quote", optionalAuth, handler.Quote)
	return router, mockQueries
}

func TestQuoteHandler_Quote(t *testing.T) {
	teeTime := builder.NewTeeTimeBuilder()
	view := &queries.QuoteView{
		TeeTimeID:  teeTime.ID,
		CourseName: teeTime.CourseName,
		StartsAt:   teeTime.StartsAt,
		QuotedAt:   teeTime.StartsAt.Add(-80 * time.Minute),
		Result:     builder.NewReservationBuilder().Quote,
	}

	t.Run("success: anonymous quote", func(t *testing.T) {
		router, mockQueries := setupQuoteRouter(t, nil)
		mockQueries.EXPECT().Quote(gomock.Any(), queries.QuoteRequest{TeeTimeID: 42}).Return(view, nil)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/tee-times/42/quote", nil, "")

		var body resdto.QuoteResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, int64(42), body.TeeTimeID)
		assert.Equal(t, int64(76000), body.FinalPrice)
		assert.Equal(t, 2, body.StepStatus.CurrentStep)
	})

	t.Run("success: signed-in customer with proximity", func(t *testing.T) {
		customerID := uuid.New()
		router, mockQueries := setupQuoteRouter(t, &customerID)
		mockQueries.EXPECT().Quote(gomock.Any(), queries.QuoteRequest{TeeTimeID: 42, CustomerID: &customerID, ProximityKm: ptr.Of(2.5)}).
			Return(view, nil)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/tee-times/42/quote?proximity_km=2.5", nil, "")

		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
	})

	t.Run("success: blocked slot returns 200 with isBlocked", func(t *testing.T) {
		router, mockQueries := setupQuoteRouter(t, nil)
		blocked := *view
		blocked.Result = pricing.Result{FinalPrice: 100000, BasePrice: 100000, IsBlocked: true, BlockReason: pricing.BlockReasonWeatherStorm, Factors: []pricing.Factor{}}
		mockQueries.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(&blocked, nil)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/tee-times/42/quote", nil, "")

		var body map[string]any
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, true, body["isBlocked"])
		assert.Equal(t, "WEATHER_STORM", body["blockReason"])
	})

	t.Run("error: 400 for a non-numeric id", func(t *testing.T) {
		router, _ := setupQuoteRouter(t, nil)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/tee-times/abc/quote", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid tee time ID")
	})

	t.Run("error: 400 for negative proximity", func(t *testing.T) {
		router, _ := setupQuoteRouter(t, nil)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/tee-times/42/quote?proximity_km=-3", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid query")
	})

	t.Run("error: 404 for an unknown tee time", func(t *testing.T) {
		router, mockQueries := setupQuoteRouter(t, nil)
		mockQueries.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(nil, errs.Mark(errs.New("missing"), errs.ErrTeeTimeNotFound))

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/tee-times/7/quote", nil, "")

		httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "Tee time not found")
	})
}
