//go:build e2e

package reservation_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"teetime/internal/domain/pricing"
	"teetime/internal/handler/dto/request"
	"teetime/internal/handler/dto/response"
	"teetime/tests/common/authtest"
	"teetime/tests/common/dbtest"
	"teetime/tests/common/httptest"
	"teetime/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	quoteURL        = "/api/tee-times/%d/quote"

	// slot 42 sits in step level 2 between 92 and 65 minutes before tee-off
	// and never enters panic mode; slot 123 always does inside the window
	calmSlotID  int64 = 42
	panicSlotID int64 = 123
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) token(customerID uuid.UUID) string {
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), customerID)
}

func (s *ReservationSuite) create(token string, key string, body request.CreateReservationRequest) (int, *response.ReservationResponse, string) {
	t := s.T()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, body,
		map[string]string{"Idempotency-Key": key}, token)

	if w.Code != http.StatusCreated && w.Code != http.StatusOK {
		return w.Code, nil, w.Body.String()
	}
	var got response.ReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))
	return w.Code, &got, w.Header().Get("Location")
}

// =============================================================================
// Quote
// =============================================================================

func (s *ReservationSuite) TestQuote() {
	s.Run("anonymous quote applies the time step only", func() {
		t := s.T()
		dbtest.CreateTestTeeTime(t, s.DB, calmSlotID, "Pine Valley", time.Now().Add(80*time.Minute), 100000)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(quoteURL, calmSlotID), nil, "")

		var got response.QuoteResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		assert.Equal(t, int64(80000), got.FinalPrice)
		assert.Equal(t, 2, got.StepStatus.CurrentStep)
		assert.False(t, got.HasFactor(pricing.FactorVIPStatus))
	})

	s.Run("signed-in prestige customer gets the member discount", func() {
		t := s.T()
		dbtest.CreateTestTeeTime(t, s.DB, calmSlotID, "Pine Valley", time.Now().Add(80*time.Minute), 100000)
		customerID := dbtest.CreateTestCustomer(t, s.DB, "prestige@example.com", "PRESTIGE")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(quoteURL, calmSlotID), nil, s.token(customerID))

		var got response.QuoteResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		assert.Equal(t, int64(76000), got.FinalPrice)
		assert.InDelta(t, 0.24, got.DiscountRate, 1e-9)
		assert.True(t, got.HasFactor(pricing.FactorVIPStatus))
	})

	s.Run("storm blocks the quote but still answers 200", func() {
		t := s.T()
		dbtest.CreateTestTeeTime(t, s.DB, calmSlotID, "Storm Ridge", time.Now().Add(80*time.Minute), 100000)
		dbtest.CreateTestWeather(t, s.DB, "Storm Ridge", time.Now(), 12, 95)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(quoteURL, calmSlotID), nil, "")

		var got response.QuoteResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		assert.True(t, got.IsBlocked)
		assert.Equal(t, pricing.BlockReasonWeatherStorm, got.BlockReason)
		assert.Empty(t, got.Factors)
	})

	s.Run("unknown tee time", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, fmt.Sprintf(quoteURL, 999999), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Tee time not found")
	})
}

// =============================================================================
// CreateReservation
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("prices at purchase time and replays on the same key", func() {
		t := s.T()
		dbtest.CreateTestTeeTime(t, s.DB, calmSlotID, "Pine Valley", time.Now().Add(80*time.Minute), 100000)
		customerID := dbtest.CreateTestCustomer(t, s.DB, "prestige@example.com", "PRESTIGE")
		token := s.token(customerID)
		key := uuid.NewString()
		note := "two carts please"
		body := request.CreateReservationRequest{TeeTimeID: calmSlotID, Note: &note}

		status, created, location := s.create(token, key, body)
		require.Equal(t, http.StatusCreated, status, location)
		assert.Equal(t, "/api/reservations/"+created.ID.String(), location)
		assert.Equal(t, customerID, created.CustomerID)
		assert.Equal(t, int64(76000), created.FinalPrice)
		assert.Equal(t, "confirmed", created.Status)
		require.NotNil(t, created.Note)
		assert.Equal(t, note, *created.Note)
		assert.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "reservation_created"))

		status, replayed, _ := s.create(token, key, body)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, created.ID, replayed.ID)
		assert.Equal(t, created.FinalPrice, replayed.FinalPrice)
		assert.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "reservation_created"))
	})

	s.Run("same key with a different body is rejected", func() {
		t := s.T()
		dbtest.CreateTestTeeTime(t, s.DB, calmSlotID, "Pine Valley", time.Now().Add(80*time.Minute), 100000)
		customerID := dbtest.CreateTestCustomer(t, s.DB, "prestige@example.com", "PRESTIGE")
		token := s.token(customerID)
		key := uuid.NewString()

		status, _, _ := s.create(token, key, request.CreateReservationRequest{TeeTimeID: calmSlotID})
		require.Equal(t, http.StatusCreated, status)

		note := "changed my mind"
		status, _, body := s.create(token, key, request.CreateReservationRequest{TeeTimeID: calmSlotID, Note: &note})
		assert.Equal(t, http.StatusConflict, status, body)
	})

	s.Run("second booking of a taken tee time conflicts", func() {
		t := s.T()
		dbtest.CreateTestTeeTime(t, s.DB, calmSlotID, "Pine Valley", time.Now().Add(80*time.Minute), 100000)
		first := dbtest.CreateTestCustomer(t, s.DB, "prestige@example.com", "PRESTIGE")
		second := dbtest.CreateTestCustomer(t, s.DB, "future@example.com", "FUTURE")

		status, _, _ := s.create(s.token(first), uuid.NewString(), request.CreateReservationRequest{TeeTimeID: calmSlotID})
		require.Equal(t, http.StatusCreated, status)

		status, _, body := s.create(s.token(second), uuid.NewString(), request.CreateReservationRequest{TeeTimeID: calmSlotID})
		assert.Equal(t, http.StatusConflict, status, body)
		assert.Contains(t, body, "no longer available")
	})

	s.Run("panic mode enqueues a push job in the same transaction", func() {
		t := s.T()
		dbtest.CreateTestTeeTime(t, s.DB, panicSlotID, "Pine Valley", time.Now().Add(20*time.Minute), 100000)
		customerID := dbtest.CreateTestCustomer(t, s.DB, "future@example.com", "FUTURE")

		status, created, body := s.create(s.token(customerID), uuid.NewString(), request.CreateReservationRequest{TeeTimeID: panicSlotID})
		require.Equal(t, http.StatusCreated, status, body)
		assert.True(t, created.PanicMode.Active)
		assert.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "tee_time_panic"))
	})

	s.Run("storm blocks the purchase and frees the key", func() {
		t := s.T()
		dbtest.CreateTestTeeTime(t, s.DB, calmSlotID, "Thunder Bay", time.Now().Add(80*time.Minute), 100000)
		dbtest.CreateTestWeather(t, s.DB, "Thunder Bay", time.Now(), 20, 100)
		customerID := dbtest.CreateTestCustomer(t, s.DB, "future@example.com", "FUTURE")

		status, _, body := s.create(s.token(customerID), uuid.NewString(), request.CreateReservationRequest{TeeTimeID: calmSlotID})
		assert.Equal(t, http.StatusUnprocessableEntity, status, body)
		assert.Equal(t, 0, dbtest.CountNotificationJobs(t, s.DB, "reservation_created"))
	})

	s.Run("requires authentication", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{TeeTimeID: calmSlotID},
			map[string]string{"Idempotency-Key": uuid.NewString()}, "")
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// Get / List
// =============================================================================

func (s *ReservationSuite) TestReadReservations() {
	s.Run("owner reads, others are forbidden", func() {
		t := s.T()
		dbtest.CreateTestTeeTime(t, s.DB, calmSlotID, "Pine Valley", time.Now().Add(80*time.Minute), 100000)
		owner := dbtest.CreateTestCustomer(t, s.DB, "prestige@example.com", "PRESTIGE")
		other := dbtest.CreateTestCustomer(t, s.DB, "future@example.com", "FUTURE")

		status, created, _ := s.create(s.token(owner), uuid.NewString(), request.CreateReservationRequest{TeeTimeID: calmSlotID})
		require.Equal(t, http.StatusCreated, status)

		url := reservationsURL + "/" + created.ID.String()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.token(owner))
		var got response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.FinalPrice, got.FinalPrice)
		assert.Len(t, got.Factors, len(created.Factors))
		require.NotNil(t, got.PricingInputs.Segment)
		assert.Equal(t, pricing.SegmentPrestige, *got.PricingInputs.Segment)
		assert.Nil(t, got.PricingInputs.ProximityKm)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.token(other))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("schema rejects a negative base price", func() {
		_, err := s.DB.Exec(context.Background(),
			"INSERT INTO tee_times (id, course_name, starts_at, base_price) VALUES ($1, $2, $3, $4)",
			int64(299), "Pine Valley", time.Now().Add(time.Hour), int64(-1))
		s.Require().Error(err)
	})

	s.Run("list pages with a keyset cursor", func() {
		t := s.T()
		customerID := dbtest.CreateTestCustomer(t, s.DB, "prestige@example.com", "PRESTIGE")
		token := s.token(customerID)

		for i, id := range []int64{201, 202, 203} {
			dbtest.CreateTestTeeTime(t, s.DB, id, "Pine Valley", time.Now().Add(time.Duration(180+i*10)*time.Minute), 100000)
			status, _, body := s.create(token, uuid.NewString(), request.CreateReservationRequest{TeeTimeID: id})
			require.Equal(t, http.StatusCreated, status, body)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"?limit=2", nil, token)
		var first response.ReservationPageResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &first)
		require.Len(t, first.Items, 2)
		require.NotNil(t, first.NextCursor)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"?limit=2&after="+*first.NextCursor, nil, token)
		var second response.ReservationPageResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &second)
		require.Len(t, second.Items, 1)
		assert.Nil(t, second.NextCursor)

		seen := map[uuid.UUID]bool{}
		for _, item := range append(first.Items, second.Items...) {
			assert.False(t, seen[item.ID], "duplicate item across pages")
			seen[item.ID] = true
		}
	})
}
