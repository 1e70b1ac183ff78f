package fetch

import (
	"context"
	"errors"
	"sync"
)

// DefaultRingSize is the default Ring capacity.
const DefaultRingSize = 256

// Ring keeps the most recent attempts in memory for the debug overlay.
// Goroutine-safe: fetch commands record from their own goroutines while the
// UI reads.
type Ring struct {
	mu    sync.Mutex
	buf   []Attempt
	head  int // next write position
	count int
}

// NewRing creates a ring holding up to size attempts.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{buf: make([]Attempt, size)}
}

// RecordAttempt stores a, evicting the oldest attempt when full. It never fails.
func (r *Ring) RecordAttempt(_ context.Context, a Attempt) error {
	r.mu.Lock()
	r.buf[r.head] = a
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.mu.Unlock()
	return nil
}

// Last returns up to n of the newest attempts, oldest first.
func (r *Ring) Last(n int) []Attempt {
	if n <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n = min(n, r.count)
	out := make([]Attempt, n)
	for i := range out {
		out[i] = r.buf[(r.head-n+i+len(r.buf))%len(r.buf)]
	}
	return out
}

// Len is the number of attempts held.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap is the ring capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Stats counts the held attempts by outcome.
func (r *Ring) Stats() map[Outcome]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[Outcome]int)
	for i := 0; i < r.count; i++ {
		counts[r.buf[(r.head-r.count+i+len(r.buf))%len(r.buf)].Outcome]++
	}
	return counts
}

// Tee returns a Recorder that hands every attempt to each of recs in order.
// Nil recorders are skipped; the errors of all recorders are joined.
func Tee(recs ...Recorder) Recorder {
	return tee(recs)
}

type tee []Recorder

func (t tee) RecordAttempt(ctx context.Context, a Attempt) error {
	var errs []error
	for _, rec := range t {
		if rec == nil {
			continue
		}
		if err := rec.RecordAttempt(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
