//go:build unit

package readstore_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"teetime/internal/domain/pricing"
	"teetime/internal/infra"
	"teetime/internal/infra/postgres"
	"teetime/internal/infra/readstore"
	"teetime/internal/pkg/pgconv"
	"teetime/internal/pkg/ptr"
	"teetime/internal/usecase/queries"
	"teetime/tests/common/builder"
	readstoremock "teetime/tests/mock/readstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func reservationRow(t *testing.T, b *builder.ReservationBuilder) postgres.ReservationRow {
	t.Helper()
	factors, err := json.Marshal(b.Quote.Factors)
	require.NoError(t, err)
	rate, err := pgconv.RateToNumeric(b.Quote.DiscountRate)
	require.NoError(t, err)
	return b.BuildInfraRow(factors, rate)
}

// =============================================================================
// FindByID Tests
// =============================================================================

func TestReservationReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	b := builder.NewReservationBuilder()

	t.Run("success: stored quote is rebuilt verbatim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := readstoremock.NewMockReservationViewQueries(ctrl)
		mock.EXPECT().GetReservationByID(ctx, gomock.Any(), b.ID).Return(reservationRow(t, b), nil)

		view, err := readstore.NewReservationReadStore(mock, &mockDBTX{}).FindByID(ctx, b.ID)

		require.NoError(t, err)
		if diff := cmp.Diff(b.BuildView(), view); diff != "" {
			t.Errorf("view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("error: reservation not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := readstoremock.NewMockReservationViewQueries(ctrl)
		mock.EXPECT().GetReservationByID(ctx, gomock.Any(), b.ID).Return(postgres.ReservationRow{}, pgx.ErrNoRows)

		_, err := readstore.NewReservationReadStore(mock, &mockDBTX{}).FindByID(ctx, b.ID)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("error: database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := readstoremock.NewMockReservationViewQueries(ctrl)
		mock.EXPECT().GetReservationByID(ctx, gomock.Any(), b.ID).Return(postgres.ReservationRow{}, errDBConnectionLost)

		_, err := readstore.NewReservationReadStore(mock, &mockDBTX{}).FindByID(ctx, b.ID)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("error: corrupt factors column", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := readstoremock.NewMockReservationViewQueries(ctrl)
		row := reservationRow(t, b)
		row.Factors = []byte("{not json")
		mock.EXPECT().GetReservationByID(ctx, gomock.Any(), b.ID).Return(row, nil)

		_, err := readstore.NewReservationReadStore(mock, &mockDBTX{}).FindByID(ctx, b.ID)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("success: stored weather and proximity come back for replay", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := readstoremock.NewMockReservationViewQueries(ctrl)
		rainy := builder.NewReservationBuilder().WithProximityKm(3).With(func(r *builder.ReservationBuilder) {
			r.Weather = &pricing.WeatherSnapshot{RainfallMm: 2.5, PrecipitationProbabilityPct: 70}
		})
		mock.EXPECT().GetReservationByID(ctx, gomock.Any(), rainy.ID).Return(reservationRow(t, rainy), nil)

		view, err := readstore.NewReservationReadStore(mock, &mockDBTX{}).FindByID(ctx, rainy.ID)

		require.NoError(t, err)
		want := queries.PricingInputs{
			Segment:     ptr.Of(pricing.SegmentPrestige),
			Weather:     &pricing.WeatherSnapshot{RainfallMm: 2.5, PrecipitationProbabilityPct: 70},
			ProximityKm: ptr.Of(3.0),
		}
		if diff := cmp.Diff(want, view.Inputs); diff != "" {
			t.Errorf("inputs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("error: unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := readstoremock.NewMockReservationViewQueries(ctrl)
		row := reservationRow(t, b)
		row.Status = "pending"
		mock.EXPECT().GetReservationByID(ctx, gomock.Any(), b.ID).Return(row, nil)

		_, err := readstore.NewReservationReadStore(mock, &mockDBTX{}).FindByID(ctx, b.ID)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("error: corrupt pricing inputs column", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := readstoremock.NewMockReservationViewQueries(ctrl)
		row := reservationRow(t, b)
		row.PricingInputs = []byte("[")
		mock.EXPECT().GetReservationByID(ctx, gomock.Any(), b.ID).Return(row, nil)

		_, err := readstore.NewReservationReadStore(mock, &mockDBTX{}).FindByID(ctx, b.ID)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

// =============================================================================
// List Tests
// =============================================================================

func TestReservationReadStore_List(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	rows := []postgres.ReservationRow{
		reservationRow(t, builder.NewReservationBuilder()),
		reservationRow(t, builder.NewReservationBuilder()),
	}

	t.Run("success: first page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := readstoremock.NewMockReservationViewQueries(ctrl)
		mock.EXPECT().ListReservationsByCustomerFirstPage(ctx, gomock.Any(), customerID, int32(51)).Return(rows, nil)

		items, err := readstore.NewReservationReadStore(mock, &mockDBTX{}).FindByCustomerFirstPage(ctx, customerID, 51)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, rows[0].ID, items[0].ID)
		assert.Equal(t, int64(76000), items[0].FinalPrice)
		assert.InDelta(t, 0.24, items[0].DiscountRate, 1e-9)
		assert.Equal(t, "Pine Valley", items[0].CourseName)
	})

	t.Run("success: keyset page passes the cursor position", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := readstoremock.NewMockReservationViewQueries(ctrl)
		lastCreatedAt := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
		lastID := uuid.New()
		mock.EXPECT().ListReservationsByCustomerKeyset(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ postgres.DBTX, arg postgres.ListReservationsKeysetParams) ([]postgres.ReservationRow, error) {
				assert.Equal(t, customerID, arg.CustomerID)
				assert.Equal(t, lastID, arg.LastID)
				assert.True(t, arg.LastCreatedAt.Time.Equal(lastCreatedAt))
				assert.Equal(t, int32(11), arg.Limit)
				return rows[:1], nil
			})

		items, err := readstore.NewReservationReadStore(mock, &mockDBTX{}).FindByCustomerKeyset(ctx, customerID, lastCreatedAt, lastID, 11)

		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("error: database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := readstoremock.NewMockReservationViewQueries(ctrl)
		mock.EXPECT().ListReservationsByCustomerFirstPage(ctx, gomock.Any(), customerID, int32(10)).Return(nil, errDBConnectionLost)

		_, err := readstore.NewReservationReadStore(mock, &mockDBTX{}).FindByCustomerFirstPage(ctx, customerID, 10)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
