//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"teetime/internal/infra"
	"teetime/internal/infra/postgres"
	"teetime/internal/infra/repository"
	repositorymock "teetime/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIdempotencyRepository_TryInsert(t *testing.T) {
	ctx := context.Background()
	key, customerID := uuid.New(), uuid.New()
	expiresAt := time.Date(2026, 5, 2, 6, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		rows         int64
		err          error
		wantInserted bool
		wantErr      bool
	}{
		{name: "success: new key inserted", rows: 1, wantInserted: true},
		{name: "success: existing key left alone", rows: 0, wantInserted: false},
		{name: "error: database failure", err: errors.New("connection reset"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

			mockQueries.EXPECT().TryInsertIdempotencyKey(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ postgres.DBTX, arg postgres.TryInsertIdempotencyKeyParams) (int64, error) {
					assert.Equal(t, key, arg.Key)
					assert.Equal(t, customerID, arg.CustomerID)
					assert.Equal(t, "hash", arg.RequestHash)
					assert.True(t, arg.ExpiresAt.Time.Equal(expiresAt))
					return tc.rows, tc.err
				})

			inserted, err := repo.TryInsert(ctx, mockDB, key, customerID, "POST /api/reservations", "hash", expiresAt)

			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantInserted, inserted)
		})
	}
}

func TestIdempotencyRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	key, customerID, reservationID := uuid.New(), uuid.New(), uuid.New()

	t.Run("success: completion records the result reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

		mockQueries.EXPECT().UpdateIdempotencyKeyCompleted(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ postgres.DBTX, arg postgres.UpdateIdempotencyKeyCompletedParams) error {
				assert.True(t, arg.ResultReservationID.Valid)
				assert.Equal(t, [16]byte(reservationID), arg.ResultReservationID.Bytes)
				assert.Equal(t, "result-hash", arg.ResponseBodyHash.String)
				return nil
			})

		require.NoError(t, repo.UpdateStatusCompleted(ctx, mockDB, key, customerID, "result-hash", reservationID))
	})

	t.Run("success: expired key claimed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

		mockQueries.EXPECT().ClaimExpiredIdempotencyKey(ctx, mockDB, gomock.Any()).Return(int64(1), nil)

		claimed, err := repo.ClaimExpired(ctx, mockDB, key, customerID, "hash", time.Now())
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("error: release failure is classified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

		mockQueries.EXPECT().ReleaseIdempotencyKey(ctx, mockDB, postgres.GetIdempotencyKeyParams{Key: key, CustomerID: customerID}).
			Return(errors.New("connection reset"))

		err := repo.Release(ctx, mockDB, key, customerID)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("success: expired keys purged with the repository pool", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

		mockQueries.EXPECT().DeleteExpiredIdempotencyKeys(ctx, mockDB).Return(int64(3), nil)

		n, err := repo.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})
}

func TestNotificationRepository_CreateJob(t *testing.T) {
	ctx := context.Background()
	runAt := time.Date(2026, 5, 1, 6, 10, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockNotificationWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewNotificationRepository(mockQueries, mockDB)

	mockQueries.EXPECT().CreateNotificationJob(ctx, mockDB, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ postgres.DBTX, arg postgres.CreateNotificationJobParams) error {
			assert.Equal(t, "push", arg.Kind)
			assert.Equal(t, "tee_time_panic", arg.Topic)
			assert.Equal(t, "queued", arg.Status)
			assert.JSONEq(t, `{"tee_time_id":123}`, string(arg.Payload))
			assert.True(t, arg.RunAt.Time.Equal(runAt))
			return nil
		})

	require.NoError(t, repo.CreateJob(ctx, mockDB, "push", "tee_time_panic", []byte(`{"tee_time_id":123}`), runAt))
}
