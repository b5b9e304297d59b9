package roster

// limiter.go serializes import batches. The importer's report ordering and
// failure attribution assume no overlapping batches, so the service admits
// one at a time; a second submission waits briefly for the slot and is then
// refused with ErrImportBusy.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrImportBusy is returned when an import batch is already in flight and
// the wait for the slot expires. Clients should retry after a short delay.
var ErrImportBusy = errors.New("an import is already in progress, please try again later")

// DefaultBatchWait is how long a submission waits for the batch slot before
// being refused.
const DefaultBatchWait = 10 * time.Second

// BatchGuard admits at most one import batch at a time.
type BatchGuard struct {
	slot    chan struct{}
	maxWait time.Duration

	mu     sync.RWMutex
	active int
}

// NewBatchGuard creates a guard with the given slot wait. A non-positive
// wait falls back to DefaultBatchWait.
func NewBatchGuard(maxWait time.Duration) *BatchGuard {
	if maxWait <= 0 {
		maxWait = DefaultBatchWait
	}
	return &BatchGuard{
		slot:    make(chan struct{}, 1),
		maxWait: maxWait,
	}
}

// Acquire claims the batch slot, waiting up to the configured limit.
// The caller must Release exactly once after a successful Acquire.
func (g *BatchGuard) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, g.maxWait)
	defer cancel()

	select {
	case g.slot <- struct{}{}:
		g.mu.Lock()
		g.active++
		g.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrImportBusy
	}
}

// Release frees the batch slot.
func (g *BatchGuard) Release() {
	g.mu.Lock()
	g.active--
	g.mu.Unlock()
	<-g.slot
}

// Active reports whether a batch is currently in flight.
func (g *BatchGuard) Active() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active > 0
}

// WaitForDrain blocks until the in-flight batch completes or ctx is done.
// Used during graceful shutdown so a running import is not cut off mid-row.
func (g *BatchGuard) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !g.Active() {
				return nil
			}
		}
	}
}
