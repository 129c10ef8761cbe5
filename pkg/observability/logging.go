package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/strata/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that log every commit and dispatch.
// Getter evaluations are logged at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(ctx context.Context, e *domain.CommitEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "commit_failed", "type", e.Type, "err", e.Err)
				return
			}
			logger.InfoContext(ctx, "commit", "type", e.Type, "duration", e.Duration)
		},
		OnDispatch: func(ctx context.Context, e *domain.DispatchEvent) {
			logger.InfoContext(ctx, "dispatch",
				"type", e.Type,
				"dispatch_id", e.ID,
				"async", e.Async,
			)
		},
		OnGetterEvaluate: func(e *domain.GetterEvent) {
			logger.Debug("getter_evaluate", "name", e.Name, "duration", e.Duration)
		},
	}
}
