package viewmodel

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ngmaloney/weather-terminal/internal/remote"
)

// trigger runs the newest of a series of jobs. Starting a job cancels the
// context of the previous one, and writes guarded by apply are dropped
// once a newer job has started. Each job's context carries a run id that
// outbound requests and repository logs are tagged with.
type trigger struct {
	name string

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (t *trigger) run(parent context.Context, job func(ctx context.Context, gen uint64)) {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.gen++
	gen := t.gen
	runID := uuid.NewString()
	ctx, cancel := context.WithCancel(remote.WithRequestID(parent, runID))
	t.cancel = cancel
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		defer cancel()

		start := time.Now()
		log.Printf("%s %s: started (generation %d)", t.name, runID, gen)
		job(ctx, gen)
		if ctx.Err() != nil {
			log.Printf("%s %s: superseded after %v", t.name, runID, time.Since(start))
			return
		}
		log.Printf("%s %s: settled in %v", t.name, runID, time.Since(start))
	}()
}

// apply runs fn only if gen is still the newest job.
func (t *trigger) apply(gen uint64, fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return false
	}
	fn()
	return true
}

// wait blocks until every started job has returned.
func (t *trigger) wait() {
	t.wg.Wait()
}
