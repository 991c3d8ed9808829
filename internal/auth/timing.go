package auth

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"time"
)

// TimingConfig holds configuration for timing attack prevention
type TimingConfig struct {
	BaseDelayMs    int  // Base delay in milliseconds
	RandomDelayMs  int  // Random delay range in milliseconds
	DelayOnSuccess bool // If true, delay even on successful login
}

// TimingDelay pads failed logins so a wrong password and a lockout answer
// take about as long as each other.
type TimingDelay struct {
	config TimingConfig
}

// NewTimingDelay creates a new TimingDelay instance
func NewTimingDelay(config TimingConfig) *TimingDelay {
	return &TimingDelay{
		config: config,
	}
}

// cryptoRandIntn returns a secure random number between 0 and max (exclusive)
func cryptoRandIntn(max int) (int, error) {
	if max <= 0 {
		return 0, nil
	}

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return 0, err
	}

	randomValue := binary.BigEndian.Uint64(randomBytes)
	return int(randomValue % uint64(max)), nil
}

// target returns the padded duration for one response, or 0 when no delay applies.
func (td *TimingDelay) target(success bool) time.Duration {
	if td == nil || (success && !td.config.DelayOnSuccess) {
		return 0
	}

	delay := time.Duration(td.config.BaseDelayMs) * time.Millisecond
	if td.config.RandomDelayMs > 0 {
		if randomValue, err := cryptoRandIntn(td.config.RandomDelayMs); err == nil {
			delay += time.Duration(randomValue) * time.Millisecond
		}
	}
	return delay
}

// Wait sleeps for the full padded delay.
func (td *TimingDelay) Wait(success bool) {
	time.Sleep(td.target(success))
}

// WaitFrom sleeps until at least the padded delay has elapsed since startTime.
func (td *TimingDelay) WaitFrom(startTime time.Time, success bool) {
	_ = td.WaitFromContext(context.Background(), startTime, success)
}

// WaitFromContext is WaitFrom that gives up when ctx is done, returning ctx.Err().
func (td *TimingDelay) WaitFromContext(ctx context.Context, startTime time.Time, success bool) error {
	remaining := td.target(success) - time.Since(startTime)
	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
