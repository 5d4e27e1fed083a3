package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// RewardLedger tracks each user's running point total. Totals only ever
// grow through Add; Reset is the single way back to zero. The whole
// ledger persists as one JSON object keyed by user id.
type RewardLedger struct {
	mu   sync.Mutex
	blob Blob
}

func NewRewardLedger(blob Blob) *RewardLedger {
	return &RewardLedger{blob: blob}
}

func (l *RewardLedger) load(ctx context.Context) (map[string]int, error) {
	data, err := l.blob.Get(ctx, RewardsKey)
	if err != nil {
		return nil, fmt.Errorf("load rewards: %w", err)
	}
	if data == nil {
		return map[string]int{}, nil
	}
	var totals map[string]int
	if err := json.Unmarshal(data, &totals); err != nil {
		return nil, fmt.Errorf("decode rewards: %w", err)
	}
	return totals, nil
}

func (l *RewardLedger) save(ctx context.Context, totals map[string]int) error {
	data, err := json.Marshal(totals)
	if err != nil {
		return fmt.Errorf("encode rewards: %w", err)
	}
	if err := l.blob.Set(ctx, RewardsKey, data); err != nil {
		return fmt.Errorf("save rewards: %w", err)
	}
	return nil
}

// Add credits points to a user's total. Points must be non-negative;
// there is no decrement operation and no upper bound.
func (l *RewardLedger) Add(ctx context.Context, userID string, points int) (int, error) {
	if points < 0 {
		return 0, fmt.Errorf("points must be non-negative: %w", ErrInvalidArgument)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	totals, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	totals[userID] += points
	if err := l.save(ctx, totals); err != nil {
		return 0, err
	}
	return totals[userID], nil
}

// Reset zeroes a user's total
func (l *RewardLedger) Reset(ctx context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	totals, err := l.load(ctx)
	if err != nil {
		return err
	}
	totals[userID] = 0
	return l.save(ctx, totals)
}

// Current returns a user's total; unknown users sit at zero
func (l *RewardLedger) Current(ctx context.Context, userID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	totals, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	return totals[userID], nil
}

// Totals returns a snapshot of every user's total, for the leaderboard
func (l *RewardLedger) Totals(ctx context.Context) (map[string]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}
