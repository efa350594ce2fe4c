package service

import (
	"context"
	"testing"
	"time"

	"github.com/expense-report/backend/internal/config"
	"github.com/expense-report/backend/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBlacklist(t *testing.T, store *servicetest.Store, now time.Time) *BlacklistService {
	t.Helper()
	svc, err := NewBlacklistService(store, config.AuthConfig{SweepInterval: "1h"})
	require.NoError(t, err)
	svc.now = func() time.Time { return now }
	return svc
}

func TestNewBlacklistServiceConfig(t *testing.T) {
	_, err := NewBlacklistService(servicetest.NewStore(), config.AuthConfig{SweepInterval: "hourly"})
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = NewBlacklistService(servicetest.NewStore(), config.AuthConfig{SweepInterval: "0s"})
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestRevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	now := time.Now()
	svc := newTestBlacklist(t, store, now)

	revoked, err := svc.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Revoke(ctx, "tok", "user-1", now.Add(time.Hour)))
	require.NoError(t, svc.Revoke(ctx, "tok", "user-1", now.Add(time.Hour)))

	revoked, err = svc.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 1, store.BlacklistCount())
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestBlacklist(t, store, now)

	require.NoError(t, svc.Revoke(ctx, "expired-1", "u", now.Add(-2*time.Hour)))
	require.NoError(t, svc.Revoke(ctx, "expired-2", "u", now.Add(-time.Second)))
	require.NoError(t, svc.Revoke(ctx, "at-now", "u", now))
	require.NoError(t, svc.Revoke(ctx, "live", "u", now.Add(time.Hour)))

	removed, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	for token, want := range map[string]bool{
		"expired-1": false,
		"expired-2": false,
		"at-now":    true,
		"live":      true,
	} {
		got, err := svc.IsRevoked(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, want, got, token)
	}
}

func TestSweepToleratesDeleteFailure(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	now := time.Now()
	svc := newTestBlacklist(t, store, now)

	require.NoError(t, svc.Revoke(ctx, "stuck", "u", now.Add(-time.Hour)))
	require.NoError(t, svc.Revoke(ctx, "gone", "u", now.Add(-time.Hour)))

	list, err := store.ListBlacklistedTokens(ctx)
	require.NoError(t, err)
	for _, rec := range list {
		if rec.Token == "stuck" {
			store.FailDelete[rec.ID] = true
		}
	}

	removed, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	stuck, _ := svc.IsRevoked(ctx, "stuck")
	gone, _ := svc.IsRevoked(ctx, "gone")
	assert.True(t, stuck)
	assert.False(t, gone)
}

func TestSweepScanFailure(t *testing.T) {
	store := servicetest.NewStore()
	store.FailList = true
	svc := newTestBlacklist(t, store, time.Now())

	_, err := svc.Sweep(context.Background())
	assert.ErrorIs(t, err, servicetest.ErrInjected)
}

func TestRunStopsOnCancel(t *testing.T) {
	store := servicetest.NewStore()
	svc := newTestBlacklist(t, store, time.Now())
	svc.sweepInterval = 5 * time.Millisecond
	require.NoError(t, svc.Revoke(context.Background(), "old", "u", time.Now().Add(-time.Hour)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return store.BlacklistCount() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
