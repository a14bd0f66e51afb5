package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Queries holds the SQL for every table. It carries no connection; callers
// pass the DBTX so the same query runs on the pool or inside a transaction.
type Queries struct{}

func New() *Queries {
	return &Queries{}
}

const getCustomerByID = `
SELECT id, email, loyalty_segment, created_at, updated_at
FROM customers
WHERE id = $1`

func (q *Queries) GetCustomerByID(ctx context.Context, db DBTX, id uuid.UUID) (Customers, error) {
	var c Customers
	err := db.QueryRow(ctx, getCustomerByID, id).Scan(
		&c.ID, &c.Email, &c.LoyaltySegment, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

const getTeeTimeByID = `
SELECT id, course_name, starts_at, base_price, created_at, updated_at
FROM tee_times
WHERE id = $1`

func (q *Queries) GetTeeTimeByID(ctx context.Context, db DBTX, id int64) (TeeTimes, error) {
	var t TeeTimes
	err := db.QueryRow(ctx, getTeeTimeByID, id).Scan(
		&t.ID, &t.CourseName, &t.StartsAt, &t.BasePrice, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

const getLatestWeatherByCourse = `
SELECT id, course_name, observed_at, rainfall_mm, precipitation_probability_pct
FROM weather_snapshots
WHERE course_name = $1
ORDER BY observed_at DESC, id DESC
LIMIT 1`

func (q *Queries) GetLatestWeatherByCourse(ctx context.Context, db DBTX, courseName string) (WeatherSnapshots, error) {
	var w WeatherSnapshots
	err := db.QueryRow(ctx, getLatestWeatherByCourse, courseName).Scan(
		&w.ID, &w.CourseName, &w.ObservedAt, &w.RainfallMm, &w.PrecipitationProbabilityPct,
	)
	return w, err
}

const createReservation = `
INSERT INTO reservations (
    id, tee_time_id, customer_id, status, base_price, final_price, discount_rate, factors,
    current_step, next_step_at, panic_active, panic_minutes_left, panic_reason, pricing_clock,
    pricing_inputs, note
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
)
RETURNING id`

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.TeeTimeID,
		arg.CustomerID,
		arg.Status,
		arg.BasePrice,
		arg.FinalPrice,
		arg.DiscountRate,
		arg.Factors,
		arg.CurrentStep,
		arg.NextStepAt,
		arg.PanicActive,
		arg.PanicMinutesLeft,
		arg.PanicReason,
		arg.PricingClock,
		arg.PricingInputs,
		arg.Note,
	).Scan(&id)
	return id, err
}

const reservationColumns = `
    r.id, r.tee_time_id, r.customer_id, r.status, r.base_price, r.final_price, r.discount_rate,
    r.factors, r.current_step, r.next_step_at, r.panic_active, r.panic_minutes_left, r.panic_reason,
    r.pricing_clock, r.pricing_inputs, r.note, r.created_at, r.updated_at, t.course_name, t.starts_at`

const getReservationByID = `
SELECT` + reservationColumns + `
FROM reservations r
JOIN tee_times t ON t.id = r.tee_time_id
WHERE r.id = $1`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (ReservationRow, error) {
	return scanReservationRow(db.QueryRow(ctx, getReservationByID, id))
}

const listReservationsByCustomerFirstPage = `
SELECT` + reservationColumns + `
FROM reservations r
JOIN tee_times t ON t.id = r.tee_time_id
WHERE r.customer_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2`

func (q *Queries) ListReservationsByCustomerFirstPage(ctx context.Context, db DBTX, customerID uuid.UUID, limit int32) ([]ReservationRow, error) {
	rows, err := db.Query(ctx, listReservationsByCustomerFirstPage, customerID, limit)
	if err != nil {
		return nil, err
	}
	return collectReservationRows(rows)
}

const listReservationsByCustomerKeyset = `
SELECT` + reservationColumns + `
FROM reservations r
JOIN tee_times t ON t.id = r.tee_time_id
WHERE r.customer_id = $1
  AND (r.created_at, r.id) < ($2, $3)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4`

func (q *Queries) ListReservationsByCustomerKeyset(ctx context.Context, db DBTX, arg ListReservationsKeysetParams) ([]ReservationRow, error) {
	rows, err := db.Query(ctx, listReservationsByCustomerKeyset, arg.CustomerID, arg.LastCreatedAt, arg.LastID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectReservationRows(rows)
}

func scanReservationRow(row pgx.Row) (ReservationRow, error) {
	var r ReservationRow
	err := row.Scan(
		&r.ID, &r.TeeTimeID, &r.CustomerID, &r.Status, &r.BasePrice, &r.FinalPrice, &r.DiscountRate,
		&r.Factors, &r.CurrentStep, &r.NextStepAt, &r.PanicActive, &r.PanicMinutesLeft, &r.PanicReason,
		&r.PricingClock, &r.PricingInputs, &r.Note, &r.CreatedAt, &r.UpdatedAt, &r.CourseName, &r.StartsAt,
	)
	return r, err
}

func collectReservationRows(rows pgx.Rows) ([]ReservationRow, error) {
	defer rows.Close()

	var items []ReservationRow
	for rows.Next() {
		r, err := scanReservationRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const tryInsertIdempotencyKey = `
INSERT INTO idempotency_keys (key, customer_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, customer_id) DO NOTHING`

// TryInsertIdempotencyKey reports how many rows were inserted: 1 when this
// request owns the key, 0 when someone else already does.
func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, tryInsertIdempotencyKey, arg.Key, arg.CustomerID, arg.Endpoint, arg.RequestHash, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getIdempotencyKey = `
SELECT key, customer_id, endpoint, request_hash, response_body_hash, status,
       result_reservation_id, expires_at, created_at, updated_at
FROM idempotency_keys
WHERE key = $1 AND customer_id = $2`

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, arg GetIdempotencyKeyParams) (IdempotencyKeys, error) {
	var k IdempotencyKeys
	err := db.QueryRow(ctx, getIdempotencyKey, arg.Key, arg.CustomerID).Scan(
		&k.Key, &k.CustomerID, &k.Endpoint, &k.RequestHash, &k.ResponseBodyHash, &k.Status,
		&k.ResultReservationID, &k.ExpiresAt, &k.CreatedAt, &k.UpdatedAt,
	)
	return k, err
}

const updateIdempotencyKeyCompleted = `
UPDATE idempotency_keys
SET status = 'completed', response_body_hash = $3, result_reservation_id = $4, updated_at = now()
WHERE key = $1 AND customer_id = $2`

func (q *Queries) UpdateIdempotencyKeyCompleted(ctx context.Context, db DBTX, arg UpdateIdempotencyKeyCompletedParams) error {
	_, err := db.Exec(ctx, updateIdempotencyKeyCompleted, arg.Key, arg.CustomerID, arg.ResponseBodyHash, arg.ResultReservationID)
	return err
}

const claimExpiredIdempotencyKey = `
UPDATE idempotency_keys
SET status = 'processing', request_hash = $3, expires_at = $4,
    response_body_hash = NULL, result_reservation_id = NULL, updated_at = now()
WHERE key = $1 AND customer_id = $2 AND expires_at < now()`

func (q *Queries) ClaimExpiredIdempotencyKey(ctx context.Context, db DBTX, arg ClaimExpiredIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, claimExpiredIdempotencyKey, arg.Key, arg.CustomerID, arg.RequestHash, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const releaseIdempotencyKey = `
DELETE FROM idempotency_keys
WHERE key = $1 AND customer_id = $2 AND status = 'processing'`

// ReleaseIdempotencyKey frees a key whose request failed so the client can
// retry with the same key.
func (q *Queries) ReleaseIdempotencyKey(ctx context.Context, db DBTX, arg GetIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, releaseIdempotencyKey, arg.Key, arg.CustomerID)
	return err
}

const deleteExpiredIdempotencyKeys = `
DELETE FROM idempotency_keys
WHERE expires_at < now()`

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, db DBTX) (int64, error) {
	tag, err := db.Exec(ctx, deleteExpiredIdempotencyKeys)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const createNotificationJob = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5)`

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, arg CreateNotificationJobParams) error {
	_, err := db.Exec(ctx, createNotificationJob, arg.Kind, arg.Topic, arg.Payload, arg.RunAt, arg.Status)
	return err
}
