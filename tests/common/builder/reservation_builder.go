//go:build unit || e2e

package builder

import (
	"encoding/json"
	"time"

	"teetime/internal/domain/pricing"
	reqdto "teetime/internal/handler/dto/request"
	"teetime/internal/infra/postgres"
	"teetime/internal/pkg/ptr"
	"teetime/internal/usecase/commands"
	"teetime/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationBuilder struct {
	ID          uuid.UUID
	TeeTime     *TeeTimeBuilder
	CustomerID  uuid.UUID
	Status      string
	Segment     pricing.LoyaltySegment
	Weather     *pricing.WeatherSnapshot
	ProximityKm *float64
	Note        string
	PricedAt    time.Time
	Quote       pricing.Result
}

// NewReservationBuilder prices tee time 42 at 80 minutes out for a prestige
// customer: a 20000 step markdown plus a 4000 loyalty discount.
func NewReservationBuilder() *ReservationBuilder {
	teeTime := NewTeeTimeBuilder()
	pricedAt := teeTime.StartsAt.Add(-80 * time.Minute)
	nextStepAt := teeTime.StartsAt.Add(-65 * time.Minute)
	return &ReservationBuilder{
		ID:         uuid.New(),
		TeeTime:    teeTime,
		CustomerID: uuid.New(),
		Status:     "confirmed",
		Segment:    pricing.SegmentPrestige,
		Note:       "two carts please",
		PricedAt:   pricedAt,
		Quote: pricing.Result{
			FinalPrice:   76000,
			BasePrice:    100000,
			DiscountRate: 0.24,
			Factors: []pricing.Factor{
				{Code: pricing.FactorTimeStep, Description: "Tee-off approaching: step 2 markdown", Amount: -20000, Rate: 0.2},
				{Code: pricing.FactorVIPStatus, Description: "Prestige member discount", Amount: -4000, Rate: 0.05},
			},
			StepStatus: pricing.StepStatus{CurrentStep: 2, NextStepAt: &nextStepAt},
		},
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) WithProximityKm(km float64) *ReservationBuilder {
	r.ProximityKm = ptr.Of(km)
	return r
}

// Build methods
func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		TeeTimeID:   r.TeeTime.ID,
		ProximityKm: r.ProximityKm,
		Note:        ptr.Of(r.Note),
	}
}

func (r *ReservationBuilder) BuildCreateCommand() commands.CreateReservationRequest {
	return commands.CreateReservationRequest{
		TeeTimeID:   r.TeeTime.ID,
		ProximityKm: r.ProximityKm,
		Note:        r.Note,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:         r.ID,
		TeeTimeID:  r.TeeTime.ID,
		CourseName: r.TeeTime.CourseName,
		StartsAt:   r.TeeTime.StartsAt,
		CustomerID: r.CustomerID,
		Status:     r.Status,
		Quote:      r.Quote,
		PricedAt:   r.PricedAt,
		Inputs: queries.PricingInputs{
			Segment:     ptr.Of(r.Segment),
			Weather:     r.Weather,
			ProximityKm: r.ProximityKm,
		},
		Note:      ptr.Of(r.Note),
		CreatedAt: r.PricedAt,
		UpdatedAt: r.PricedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:           r.ID,
		TeeTimeID:    r.TeeTime.ID,
		CourseName:   r.TeeTime.CourseName,
		StartsAt:     r.TeeTime.StartsAt,
		Status:       r.Status,
		FinalPrice:   r.Quote.FinalPrice,
		DiscountRate: r.Quote.DiscountRate,
		CreatedAt:    r.PricedAt,
	}
}

// BuildInputsJSON is the stored pricing_inputs document for this reservation.
func (r *ReservationBuilder) BuildInputsJSON() []byte {
	doc := map[string]any{"segment": r.Segment}
	if r.Weather != nil {
		doc["weather"] = r.Weather
	}
	if r.ProximityKm != nil {
		doc["proximityKm"] = *r.ProximityKm
	}
	b, _ := json.Marshal(doc)
	return b
}

func (r *ReservationBuilder) BuildInfraRow(factorsJSON []byte, discountRate pgtype.Numeric) postgres.ReservationRow {
	var nextStepAt pgtype.Timestamptz
	if r.Quote.StepStatus.NextStepAt != nil {
		nextStepAt = pgtype.Timestamptz{Time: *r.Quote.StepStatus.NextStepAt, Valid: true}
	}
	return postgres.ReservationRow{
		Reservations: postgres.Reservations{
			ID:            r.ID,
			TeeTimeID:     r.TeeTime.ID,
			CustomerID:    r.CustomerID,
			Status:        r.Status,
			BasePrice:     r.Quote.BasePrice,
			FinalPrice:    r.Quote.FinalPrice,
			DiscountRate:  discountRate,
			Factors:       factorsJSON,
			CurrentStep:   int32(r.Quote.StepStatus.CurrentStep), // #nosec G115 -- step level is 0..3
			NextStepAt:    nextStepAt,
			PricingClock:  pgtype.Timestamptz{Time: r.PricedAt, Valid: true},
			PricingInputs: r.BuildInputsJSON(),
			Note:          pgtype.Text{String: r.Note, Valid: r.Note != ""},
			CreatedAt:     pgtype.Timestamptz{Time: r.PricedAt, Valid: true},
			UpdatedAt:     pgtype.Timestamptz{Time: r.PricedAt, Valid: true},
		},
		CourseName: r.TeeTime.CourseName,
		StartsAt:   pgtype.Timestamptz{Time: r.TeeTime.StartsAt, Valid: true},
	}
}
