package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"portal_creditos/internal/model"
	"portal_creditos/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_sweepOnce_RemovesExpired(t *testing.T) {
	ctx := context.Background()
	tokens := store.NewMemoryTokenStore()
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	now := time.Now()
	require.NoError(t, tokens.Put(ctx, model.ResetToken{
		Token: "vivo", Email: "a@example.com", IssuedAt: now, ExpiresAt: now.Add(time.Hour),
	}))
	require.NoError(t, tokens.Put(ctx, model.ResetToken{
		Token: "vencido", Email: "b@example.com", IssuedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}))

	sweepOnce(ctx, tokens, testLogger)

	assert.Equal(t, 1, tokens.Len())
	_, err := tokens.Get(ctx, "vivo")
	assert.NoError(t, err)
}

// panickyStore provoca un pánico en el barrido para probar la recuperación.
type panickyStore struct {
	store.TokenStore
}

func (panickyStore) SweepExpired(context.Context, time.Time) (int, error) {
	panic("sweep exploded")
}

func Test_sweepOnce_RecoversFromPanic(t *testing.T) {
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// No debe tumbar el proceso; la siguiente corrida procede normal.
	assert.NotPanics(t, func() {
		sweepOnce(context.Background(), panickyStore{}, testLogger)
	})
}

func TestStartSweeper_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tokens := store.NewMemoryTokenStore()
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	now := time.Now()
	require.NoError(t, tokens.Put(ctx, model.ResetToken{
		Token: "vencido", Email: "a@example.com", IssuedAt: now.Add(-time.Hour), ExpiresAt: now.Add(-time.Minute),
	}))

	StartSweeper(ctx, tokens, 10*time.Millisecond, testLogger)

	// El ticker debe alcanzar a barrer el vencido.
	assert.Eventually(t, func() bool {
		return tokens.Len() == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	// Tras la cancelación no queda nada corriendo que toque el store.
	time.Sleep(30 * time.Millisecond)
}
