//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"teetime/internal/infra"
	"teetime/internal/pkg/errs"
	"teetime/internal/usecase/queries"
	"teetime/tests/common/builder"
	queriesmock "teetime/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReservationQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	view := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.CustomerID = owner }).BuildView()

	testCases := []struct {
		name        string
		actorID     uuid.UUID
		setupMock   func(*queriesmock.MockReservationReadStore)
		expectedErr error
	}{
		{
			name:    "success: owner reads own reservation",
			actorID: owner,
			setupMock: func(m *queriesmock.MockReservationReadStore) {
				m.EXPECT().FindByID(ctx, view.ID).Return(view, nil)
			},
		},
		{
			name:    "error: another customer is denied",
			actorID: uuid.New(),
			setupMock: func(m *queriesmock.MockReservationReadStore) {
				m.EXPECT().FindByID(ctx, view.ID).Return(view, nil)
			},
			expectedErr: errs.ErrReservationAccess,
		},
		{
			name:    "error: reservation not found",
			actorID: owner,
			setupMock: func(m *queriesmock.MockReservationReadStore) {
				m.EXPECT().FindByID(ctx, view.ID).Return(nil, infra.WrapRepoErr("missing", pgx.ErrNoRows, infra.KindNotFound))
			},
			expectedErr: errs.ErrReservationNotFound,
		},
		{
			name:    "error: database failure",
			actorID: owner,
			setupMock: func(m *queriesmock.MockReservationReadStore) {
				m.EXPECT().FindByID(ctx, view.ID).Return(nil, infra.WrapRepoErr("boom", errors.New("connection refused")))
			},
			expectedErr: errs.ErrDatabaseOperationFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockReservationReadStore(ctrl)
			tc.setupMock(store)

			actual, err := queries.NewReservationQueries(store).GetByID(ctx, tc.actorID, view.ID)

			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.expectedErr), "got %v", err)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, view, actual)
		})
	}
}

func TestReservationQueries_ListByCustomer(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	items := make([]*queries.ReservationListItem, 0, 3)
	base := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		item := builder.NewReservationBuilder().BuildListItem()
		item.CreatedAt = base.Add(-time.Duration(i) * time.Minute)
		items = append(items, item)
	}

	t.Run("success: first page with a next cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReservationReadStore(ctrl)
		store.EXPECT().FindByCustomerFirstPage(ctx, customerID, int32(3)).Return(items, nil)

		page, next, err := queries.NewReservationQueries(store).ListByCustomer(ctx, customerID, nil, 2)

		require.NoError(t, err)
		assert.Len(t, page, 2)
		require.NotNil(t, next)
		createdAt, id, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, items[1].ID, id)
		assert.True(t, items[1].CreatedAt.Equal(createdAt))
	})

	t.Run("success: last page has no cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReservationReadStore(ctrl)
		store.EXPECT().FindByCustomerFirstPage(ctx, customerID, int32(queries.DefaultListLimit+1)).Return(items, nil)

		page, next, err := queries.NewReservationQueries(store).ListByCustomer(ctx, customerID, nil, 0)

		require.NoError(t, err)
		assert.Len(t, page, 3)
		assert.Nil(t, next)
	})

	t.Run("success: keyset page continues after the cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReservationReadStore(ctrl)
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(items[0].CreatedAt, items[0].ID)}
		store.EXPECT().FindByCustomerKeyset(ctx, customerID, gomock.Any(), items[0].ID, int32(queries.MaxListLimit+1)).
			Return(items[1:], nil)

		page, next, err := queries.NewReservationQueries(store).ListByCustomer(ctx, customerID, cursor, 1000)

		require.NoError(t, err)
		assert.Len(t, page, 2)
		assert.Nil(t, next)
	})

	t.Run("error: malformed cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReservationReadStore(ctrl)

		_, _, err := queries.NewReservationQueries(store).ListByCustomer(ctx, customerID, &queries.Cursor{After: "not-a-cursor"}, 10)

		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})
}

func TestCursor_RoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 5, 1, 6, 0, 0, 123456000, time.UTC)
	id := uuid.New()

	decodedAt, decodedID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(createdAt, id))

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt))
	assert.Equal(t, id, decodedID)

	_, _, err = queries.DecodeAfterCursor("")
	assert.Error(t, err)
}
