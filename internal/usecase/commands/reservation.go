package commands

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"teetime/internal/domain/reservation"
	"teetime/internal/infra"
	"teetime/internal/metrics"
	"teetime/internal/pkg/clock"
	"teetime/internal/pkg/errs"
	"teetime/internal/usecase/queries"
	"teetime/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	createReservationEndpoint = "POST /api/reservations"
	idempotencyKeyTTL         = 24 * time.Hour
)

var (
	ErrTeeTimeBlocked         = errs.New("tee time is blocked")
	ErrTeeTimeStarted         = errs.New("tee time has already started")
	ErrTeeTimeUnavailable     = errs.New("tee time already reserved")
	ErrDomainValidation       = errs.New("domain validation error")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
)

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest, customerID uuid.UUID, idempotencyKey uuid.UUID) (*CreateReservationResult, error)
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	weather            shared.WeatherSource
	reservationFactory *reservation.Factory
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	weather shared.WeatherSource,
	reservationFactory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:                uow,
		weather:            weather,
		reservationFactory: reservationFactory,
		reservationQueries: reservationQueries,
		clock:              clk,
	}
}

// CreateReservation reprices the tee time at purchase time and stores the
// result together with its factor audit trail. Earlier quotes are ignored.
func (r *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	req CreateReservationRequest,
	customerID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateReservationResult, error) {
	requestHash := r.calculateRequestHash(req)

	replayed, err := r.handleIdempotency(ctx, idempotencyKey, customerID, requestHash)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateReservationResult{
			Reservation: replayed,
			IsReplayed:  true,
		}, nil
	}

	view, err := r.createNewReservation(ctx, req, customerID, idempotencyKey)
	if err != nil {
		r.releaseIdempotencyKey(ctx, idempotencyKey, customerID)
		return nil, err
	}
	return &CreateReservationResult{
		Reservation: view,
		IsReplayed:  false,
	}, nil
}

// handleIdempotency returns the stored reservation for a completed replay, or
// nil when this request now owns the key.
func (r *reservationUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, customerID uuid.UUID,
	requestHash string,
) (*queries.ReservationView, error) {
	expiresAt := r.clock.Now().Add(idempotencyKeyTTL)

	var inserted bool
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ierr error
		inserted, ierr = tx.Idempotency().TryInsert(ctx, tx.DB(), idempotencyKey, customerID, createReservationEndpoint, requestHash, expiresAt)
		return ierr
	})
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := r.uow.CommandReads().IdempotencyByKey(ctx, idempotencyKey, customerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Released between our insert attempt and this read.
			return nil, errs.ErrIdempotencyInProgress
		}
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	if existing.IsExpired(r.clock.Now()) {
		var claimed bool
		err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var cerr error
			claimed, cerr = tx.Idempotency().ClaimExpired(ctx, tx.DB(), idempotencyKey, customerID, requestHash, expiresAt)
			return cerr
		})
		if err != nil {
			return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		if claimed {
			return nil, nil
		}
		return nil, errs.ErrIdempotencyInProgress
	}

	if existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultReservationID == nil {
			return nil, errs.Mark(errs.New("completed request missing result reservation ID"), ErrIdempotencyCheckFailed)
		}
		return r.reservationQueries.GetByIDSystem(ctx, *existing.ResultReservationID)

	case shared.IdempotencyStatusProcessing:
		return nil, errs.ErrIdempotencyInProgress

	default:
		return nil, errs.Mark(errs.New("invalid idempotency key status"), ErrIdempotencyCheckFailed)
	}
}

func (r *reservationUseCaseImpl) createNewReservation(
	ctx context.Context,
	req CreateReservationRequest,
	customerID, idempotencyKey uuid.UUID,
) (*queries.ReservationView, error) {
	note, err := reservation.NewNote(req.Note)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	loaded, err := shared.LoadPricingInputs(ctx, r.uow.CommandReads(), r.weather, shared.PricingInputsRequest{
		TeeTimeID:   req.TeeTimeID,
		CustomerID:  &customerID,
		ProximityKm: req.ProximityKm,
	})
	if err != nil {
		return nil, err
	}

	reservationEntity, err := r.reservationFactory.CreateReservation(loaded.TeeTime, customerID, loaded.Inputs, note)
	if err != nil {
		switch {
		case errs.Is(err, reservation.ErrTeeTimeBlocked):
			metrics.PricingResults.WithLabelValues(metrics.SourcePurchase, metrics.OutcomeBlocked).Inc()
			return nil, errs.Mark(err, ErrTeeTimeBlocked)
		case errs.Is(err, reservation.ErrTeeTimeStarted):
			return nil, errs.Mark(err, ErrTeeTimeStarted)
		default:
			return nil, errs.Mark(err, ErrDomainValidation)
		}
	}
	metrics.ObserveResult(metrics.SourcePurchase, reservationEntity.Quote())

	var reservationID uuid.UUID
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, cerr := tx.Reservations().Create(ctx, tx.DB(), reservationEntity)
		if cerr != nil {
			if infra.IsKind(cerr, infra.KindDuplicateKey) {
				return errs.Mark(cerr, ErrTeeTimeUnavailable)
			}
			return errs.Mark(cerr, errs.ErrDatabaseOperationFailed)
		}
		reservationID = id

		if cerr = r.enqueueNotifications(ctx, tx, reservationEntity, id); cerr != nil {
			return errs.Mark(cerr, errs.ErrDatabaseOperationFailed)
		}

		if cerr = tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, customerID, r.calculateIDHash(id), id); cerr != nil {
			return errs.Mark(cerr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: Get the complete reservation view from read store
	view, err := r.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// enqueueNotifications writes outbox jobs in the reservation's transaction.
// A panic-mode sale also alerts the tee sheet that the slot went at the last
// minute.
func (r *reservationUseCaseImpl) enqueueNotifications(
	ctx context.Context,
	tx shared.Tx,
	res *reservation.Reservation,
	reservationID uuid.UUID,
) error {
	now := r.clock.Now()

	created, err := json.Marshal(reservationCreatedPayload{
		ReservationID: reservationID,
		TeeTimeID:     res.TeeTimeID(),
		CustomerID:    res.CustomerID(),
		BasePrice:     res.BasePrice().Amount(),
		FinalPrice:    res.Price().Amount(),
		Savings:       res.BasePrice().Sub(res.Price()).Amount(),
	})
	if err != nil {
		return err
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), notificationKindEmail, topicReservationCreated, created, now); err != nil {
		return err
	}

	panicMode := res.Quote().PanicMode
	if !panicMode.Active {
		return nil
	}

	alert, err := json.Marshal(teeTimePanicPayload{
		TeeTimeID:   res.TeeTimeID(),
		MinutesLeft: panicMode.MinutesLeft,
		Reason:      panicMode.Reason,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), notificationKindPush, topicTeeTimePanic, alert, now)
}

func (r *reservationUseCaseImpl) releaseIdempotencyKey(ctx context.Context, idempotencyKey, customerID uuid.UUID) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), idempotencyKey, customerID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", idempotencyKey.String(), "error", err.Error())
	}
}

func (r *reservationUseCaseImpl) calculateRequestHash(req CreateReservationRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (r *reservationUseCaseImpl) calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
