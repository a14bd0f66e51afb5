package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var ErrInvalidNumericValue = errors.New("invalid numeric value")

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func StringFromPgtype(pt pgtype.Text) string {
	if !pt.Valid {
		return ""
	}
	return pt.String
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

// NullableText stores an empty string as NULL.
func NullableText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// RateToNumeric stores a two-decimal rate such as a discount rate. The
// decimal round trip keeps 0.23 as 0.23 instead of its float64 expansion.
func RateToNumeric(rate float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(decimal.NewFromFloat(rate).Round(2).String()); err != nil {
		return pgtype.Numeric{}, ErrInvalidNumericValue
	}
	return n, nil
}

func RateFromNumeric(pn pgtype.Numeric) (float64, error) {
	if pn.NaN || pn.InfinityModifier != pgtype.Finite {
		return 0, ErrInvalidNumericValue
	}
	if !pn.Valid || pn.Int == nil {
		return 0, nil
	}
	d := decimal.NewFromBigInt(pn.Int, pn.Exp)
	f, _ := d.Round(2).Float64()
	return f, nil
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
