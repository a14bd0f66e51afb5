package shared

import (
	"context"
	"time"

	"teetime/internal/domain/customer"
	"teetime/internal/domain/reservation"
	"teetime/internal/domain/teetime"
	"teetime/internal/infra"
	"teetime/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type PricingInputsRequest struct {
	TeeTimeID   int64
	CustomerID  *uuid.UUID
	ProximityKm *float64
}

type LoadedPricingInputs struct {
	TeeTime *teetime.TeeTime
	Inputs  reservation.PricingInputs
}

// LoadPricingInputs fetches the tee time and customer concurrently, then the
// weather for the tee time's course.
func LoadPricingInputs(ctx context.Context, reads PricingReads, weather WeatherSource, req PricingInputsRequest) (*LoadedPricingInputs, error) {
	var (
		teeTimeSnap  *TeeTimeSnapshot
		customerSnap *CustomerSnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := reads.TeeTimeByID(gctx, req.TeeTimeID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrTeeTimeNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		teeTimeSnap = snap
		return nil
	})
	if req.CustomerID != nil {
		g.Go(func() error {
			snap, err := reads.CustomerByID(gctx, *req.CustomerID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, errs.ErrCustomerNotFound)
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			customerSnap = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	teeTimeEntity := teetime.ReconstructTeeTime(
		teeTimeSnap.ID,
		teeTimeSnap.CourseName,
		teeTimeSnap.StartsAt,
		teeTimeSnap.BasePrice,
		time.Time{},
		time.Time{},
	)

	inputs := reservation.PricingInputs{ProximityKm: req.ProximityKm}
	if customerSnap != nil {
		c, err := customer.ReconstructCustomer(customerSnap.ID, customerSnap.Email, customerSnap.LoyaltySegment)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		inputs.Customer = c.PricingCustomer()
	}

	snapshot, err := weather.LatestForCourse(ctx, teeTimeSnap.CourseName)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	inputs.Weather = snapshot

	return &LoadedPricingInputs{TeeTime: teeTimeEntity, Inputs: inputs}, nil
}
