package service

import (
	"context"
	"log"
	"sync"
	"time"
)

const defaultEffectTimeout = 5 * time.Second

// EffectRunner executes best-effort side effects. Each effect runs in its own
// goroutine with a fresh timeout context, so a slow or failing effect can
// neither block the submitting flow nor take down its siblings. Failures are
// logged and swallowed.
type EffectRunner struct {
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewEffectRunner() *EffectRunner {
	return &EffectRunner{timeout: defaultEffectTimeout}
}

// Submit schedules fn to run in the background. The effect gets its own
// context detached from the caller, so it may finish after the caller has
// moved on.
func (r *EffectRunner) Submit(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				log.Printf("effect %s: panic: %v", name, p)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			log.Printf("effect %s: %v", name, err)
		}
	}()
}

// Wait blocks until every submitted effect has finished. Called on shutdown.
func (r *EffectRunner) Wait() {
	r.wg.Wait()
}
