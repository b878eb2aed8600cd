package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quickbites/storefront/internal/port"
)

const (
	adminTapThreshold = 5
	adminTapWindow    = 2 * time.Second
)

var ErrInvalidPIN = errors.New("invalid pin")

// AdminGate is the hidden admin entry path: a debounced tap counter that
// reveals the PIN prompt after five rapid taps. It is a convenience gate, not
// an authentication boundary; the PIN is a static value compared by equality.
type AdminGate struct {
	db        port.DatabaseRepository
	threshold int
	window    time.Duration

	mu    sync.Mutex
	count int
	reset *time.Timer
}

func NewAdminGate(db port.DatabaseRepository) *AdminGate {
	return &AdminGate{
		db:        db,
		threshold: adminTapThreshold,
		window:    adminTapWindow,
	}
}

// Tap registers one tap and reports whether the PIN prompt should be shown.
// Each tap restarts the inactivity timer; a full window of silence resets the
// counter to zero. The fifth qualifying tap fires the prompt exactly once and
// resets the counter.
func (g *AdminGate) Tap() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.reset != nil {
		g.reset.Stop()
		g.reset = nil
	}

	g.count++
	if g.count >= g.threshold {
		g.count = 0
		return true
	}

	g.reset = time.AfterFunc(g.window, func() {
		g.mu.Lock()
		g.count = 0
		g.reset = nil
		g.mu.Unlock()
	})
	return false
}

// VerifyPIN checks the supplied PIN against the stored one. A mismatch is
// surfaced as ErrInvalidPIN so the caller can keep the input for retry.
func (g *AdminGate) VerifyPIN(ctx context.Context, pin string) error {
	stored, err := g.db.AdminPIN(ctx)
	if err != nil {
		return fmt.Errorf("admin pin: %w", err)
	}
	if pin != stored {
		return ErrInvalidPIN
	}
	return nil
}
