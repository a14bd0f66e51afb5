package components

import (
	"context"
	"log/slog"
	"time"

	"teetime/internal/infra/repository"

	"go.uber.org/fx"
)

const idempotencySweepInterval = 15 * time.Minute

var MaintenanceModule = fx.Module("maintenance",
	fx.Invoke(startIdempotencySweeper),
)

// startIdempotencySweeper purges idempotency keys whose TTL has passed.
// Expired keys are already reclaimable on the request path; this only keeps
// the table from growing without bound.
func startIdempotencySweeper(lc fx.Lifecycle, repo *repository.IdempotencyRepository, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(idempotencySweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						sweepIdempotencyKeys(ctx, repo, logger)
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

func sweepIdempotencyKeys(ctx context.Context, repo *repository.IdempotencyRepository, logger *slog.Logger) {
	count, err := repo.DeleteExpired(ctx)
	if err != nil {
		logger.Warn("Idempotency sweep failed", "error", err)
		return
	}
	if count > 0 {
		logger.Info("Expired idempotency keys deleted", "count", count)
	}
}
