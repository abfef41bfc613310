package main

import (
	"context"
	"log/slog"
	"time"
)

// expiredTokenSweeper удаляет истёкшие refresh-токены из реестра.
type expiredTokenSweeper interface {
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// startRefreshJanitor запускает фоновую очистку истёкших refresh-токенов.
// Реестры без такой операции (redis с TTL ключей, in-memory) пропускаются.
func startRefreshJanitor(ctx context.Context, sweeper expiredTokenSweeper, log *slog.Logger, period time.Duration) {
	if sweeper == nil || period <= 0 {
		return
	}

	go func() {
		t := time.NewTicker(period)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				sweepOnce(ctx, sweeper, log)
			}
		}
	}()
}

func sweepOnce(ctx context.Context, sweeper expiredTokenSweeper, log *slog.Logger) {
	n, err := sweeper.DeleteExpiredTokens(ctx, time.Now().UTC())
	if err != nil {
		log.Error("refresh_janitor_failed", slog.String("err", err.Error()))
		return
	}

	if n > 0 {
		log.Info("refresh_tokens_swept", "count", n)
	}
}
