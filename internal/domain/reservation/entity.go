package reservation

import (
	"errors"
	"time"

	"teetime/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrTeeTimeBlocked      = errors.New("tee time is blocked")
	ErrTeeTimeStarted      = errors.New("tee time has already started")
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrMissingPricingClock = errors.New("pricing clock is required")
	ErrInvalidStatus       = errors.New("invalid reservation status")
)

// Reservation keeps the full pricing result it was sold at. The factors are
// the audit trail of that price and are never recomputed after creation.
type Reservation struct {
	id         uuid.UUID
	teeTimeID  int64
	customerID uuid.UUID
	status     Status
	quote      pricing.Result
	pricedAt   time.Time
	inputs     PricingInputs
	note       Note
}

func NewReservation(
	teeTimeID int64,
	customerID uuid.UUID,
	quote pricing.Result,
	pricedAt time.Time,
	note Note,
) (*Reservation, error) {
	if quote.IsBlocked {
		return nil, ErrTeeTimeBlocked
	}
	if quote.FinalPrice < 0 {
		return nil, ErrNegativePrice
	}
	if pricedAt.IsZero() {
		return nil, ErrMissingPricingClock
	}

	return &Reservation{
		id:         uuid.New(),
		teeTimeID:  teeTimeID,
		customerID: customerID,
		status:     StatusConfirmed,
		quote:      quote,
		pricedAt:   pricedAt,
		note:       note,
	}, nil
}

func (r *Reservation) Price() Money {
	return NewMoney(r.quote.FinalPrice)
}

func (r *Reservation) BasePrice() Money {
	return NewMoney(r.quote.BasePrice)
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) TeeTimeID() int64      { return r.teeTimeID }
func (r *Reservation) CustomerID() uuid.UUID { return r.customerID }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) Quote() pricing.Result { return r.quote }
func (r *Reservation) PricedAt() time.Time   { return r.pricedAt }
func (r *Reservation) Inputs() PricingInputs { return r.inputs }
func (r *Reservation) Note() Note            { return r.note }
