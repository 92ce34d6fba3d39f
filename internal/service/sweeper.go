package service

import (
	"context"
	"log/slog"
	"time"

	"portal_creditos/internal/store"
)

// StartSweeper lanza la goroutine que purga periódicamente los tokens vencidos.
// Solo acota el uso de memoria: la validación re-chequea la expiración siempre,
// corra o no corra el barrido. Se detiene cuando el contexto se cancela.
func StartSweeper(ctx context.Context, tokens store.TokenStore, interval time.Duration, logger *slog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Info("Token sweeper started", "interval", interval.String())
		for {
			select {
			case <-ctx.Done():
				logger.Info("Token sweeper stopped")
				return
			case <-ticker.C:
				sweepOnce(ctx, tokens, logger)
			}
		}
	}()
}

// sweepOnce ejecuta una pasada. Un pánico o error a mitad de barrido no tumba
// el proceso; la siguiente corrida programada procede con normalidad.
func sweepOnce(ctx context.Context, tokens store.TokenStore, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Token sweep panicked", "panic", r)
		}
	}()

	removed, err := tokens.SweepExpired(ctx, time.Now())
	if err != nil {
		logger.Error("Token sweep failed", "error", err)
		return
	}
	if removed > 0 {
		logger.Info("Token sweep completed", "removed", removed)
	} else {
		logger.Debug("Token sweep completed", "removed", 0)
	}
}
