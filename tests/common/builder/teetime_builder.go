//go:build unit || e2e

package builder

import (
	"time"

	"teetime/internal/domain/teetime"
	"teetime/internal/infra/postgres"
	"teetime/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type TeeTimeBuilder struct {
	ID         int64
	CourseName string
	StartsAt   time.Time
	BasePrice  int64
}

func NewTeeTimeBuilder() *TeeTimeBuilder {
	return &TeeTimeBuilder{
		ID:         42,
		CourseName: "Pine Valley",
		StartsAt:   time.Date(2026, 5, 1, 7, 30, 0, 0, time.UTC),
		BasePrice:  100000,
	}
}

func (b *TeeTimeBuilder) With(mutate func(*TeeTimeBuilder)) *TeeTimeBuilder {
	mutate(b)
	return b
}

func (b *TeeTimeBuilder) WithID(id int64) *TeeTimeBuilder {
	b.ID = id
	return b
}

func (b *TeeTimeBuilder) WithBasePrice(price int64) *TeeTimeBuilder {
	b.BasePrice = price
	return b
}

func (b *TeeTimeBuilder) WithStartsAt(t time.Time) *TeeTimeBuilder {
	b.StartsAt = t
	return b
}

// Build methods
func (b *TeeTimeBuilder) BuildDomain() (*teetime.TeeTime, error) {
	return teetime.NewTeeTime(b.ID, b.CourseName, b.StartsAt, b.BasePrice)
}

func (b *TeeTimeBuilder) BuildInfra() postgres.TeeTimes {
	return postgres.TeeTimes{
		ID:         b.ID,
		CourseName: b.CourseName,
		StartsAt:   pgtype.Timestamptz{Time: b.StartsAt, Valid: true},
		BasePrice:  b.BasePrice,
		CreatedAt:  pgtype.Timestamptz{Time: b.StartsAt.Add(-30 * 24 * time.Hour), Valid: true},
		UpdatedAt:  pgtype.Timestamptz{Time: b.StartsAt.Add(-30 * 24 * time.Hour), Valid: true},
	}
}

func (b *TeeTimeBuilder) BuildSnapshot() *shared.TeeTimeSnapshot {
	return &shared.TeeTimeSnapshot{
		ID:         b.ID,
		CourseName: b.CourseName,
		StartsAt:   b.StartsAt,
		BasePrice:  b.BasePrice,
	}
}
