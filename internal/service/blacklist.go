package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/expense-report/backend/internal/config"
	"github.com/expense-report/backend/internal/model"
)

type BlacklistRepo interface {
	BlacklistedTokenExists(ctx context.Context, token string) (bool, error)
	InsertBlacklistedToken(ctx context.Context, token, userID string, expiresAt, blacklistedAt time.Time) error
	ListBlacklistedTokens(ctx context.Context) ([]model.BlacklistedToken, error)
	DeleteBlacklistedToken(ctx context.Context, id int64) error
}

// BlacklistService records revoked tokens until they would have expired on
// their own. Expired entries are only a space concern: Validate already
// rejects them.
type BlacklistService struct {
	repo          BlacklistRepo
	sweepInterval time.Duration
	now           func() time.Time
}

func NewBlacklistService(repo BlacklistRepo, cfg config.AuthConfig) (*BlacklistService, error) {
	interval, err := time.ParseDuration(cfg.SweepInterval)
	if err != nil || interval <= 0 {
		return nil, fmt.Errorf("%w: invalid BLACKLIST_SWEEP_INTERVAL", ErrMisconfigured)
	}

	return &BlacklistService{
		repo:          repo,
		sweepInterval: interval,
		now:           time.Now,
	}, nil
}

func (s *BlacklistService) Revoke(ctx context.Context, token, userID string, expiresAt time.Time) error {
	exists, err := s.repo.BlacklistedTokenExists(ctx, token)
	if err != nil {
		return fmt.Errorf("check blacklist: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.repo.InsertBlacklistedToken(ctx, token, userID, expiresAt, s.now()); err != nil {
		return fmt.Errorf("insert blacklisted token: %w", err)
	}
	return nil
}

func (s *BlacklistService) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.repo.BlacklistedTokenExists(ctx, token)
}

// Sweep deletes every record whose expiry is before the current time. A
// failed delete is logged and skipped; only a failed scan aborts the sweep.
func (s *BlacklistService) Sweep(ctx context.Context) (int, error) {
	now := s.now()

	tokens, err := s.repo.ListBlacklistedTokens(ctx)
	if err != nil {
		return 0, fmt.Errorf("list blacklisted tokens: %w", err)
	}

	removed := 0
	for _, t := range tokens {
		if !t.ExpiresAt.Before(now) {
			continue
		}
		if err := s.repo.DeleteBlacklistedToken(ctx, t.ID); err != nil {
			log.Printf("[Sweep] Failed to delete blacklisted token (id=%d): %v", t.ID, err)
			continue
		}
		removed++
	}
	return removed, nil
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *BlacklistService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	log.Printf("[Sweep] Started (interval=%s)", s.sweepInterval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[Sweep] Stopped")
			return
		case <-ticker.C:
			removed, err := s.Sweep(ctx)
			if err != nil {
				log.Printf("[Sweep] Failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("[Sweep] Removed %d expired blacklisted tokens", removed)
			}
		}
	}
}
