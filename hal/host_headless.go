//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
}

// RunHeadless runs the pipeline against a fresh host HAL without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	return RunHeadlessOn(ctx, NewHost(), newApp, cfg)
}

// RunHeadlessOn is RunHeadless on a caller-provided host, so the caller can
// inspect the software panel afterwards.
func RunHeadlessOn(ctx context.Context, h *Host, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	hz := cfg.Hz
	if hz <= 0 {
		hz = 60
	}
	period := time.Second / time.Duration(hz)
	if period <= 0 {
		return fmt.Errorf("headless: tick rate %d Hz too high", hz)
	}

	step, err := newApp(h)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for n := uint64(0); cfg.Ticks == 0 || n < cfg.Ticks; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if step == nil {
			continue
		}
		if err := step(); err != nil {
			return fmt.Errorf("headless tick %d: %w", n, err)
		}
	}
	return nil
}
