package customer

import (
	"strings"

	"teetime/internal/domain/pricing"

	"github.com/google/uuid"
)

// Customer is the booking party. Only the loyalty segment takes part in
// pricing.
type Customer struct {
	id      uuid.UUID
	email   Email
	segment pricing.LoyaltySegment
}

func NewCustomer(id uuid.UUID, email string, segment string) (*Customer, error) {
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	s, err := pricing.ParseLoyaltySegment(segment)
	if err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Customer{
		id:      id,
		email:   e,
		segment: s,
	}, nil
}

// ReconstructCustomer rebuilds a stored customer. The email is trusted as
// stored; the segment is still parsed because the engine rejects unknown ones.
func ReconstructCustomer(id uuid.UUID, email string, segment string) (*Customer, error) {
	s, err := pricing.ParseLoyaltySegment(segment)
	if err != nil {
		return nil, err
	}
	return &Customer{
		id:      id,
		email:   Email{value: strings.TrimSpace(email)},
		segment: s,
	}, nil
}

func (c *Customer) PricingCustomer() *pricing.Customer {
	return &pricing.Customer{LoyaltySegment: c.segment}
}

func (c *Customer) ID() uuid.UUID                   { return c.id }
func (c *Customer) Email() Email                    { return c.email }
func (c *Customer) Segment() pricing.LoyaltySegment { return c.segment }
