package trend

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Debouncer lets at most one event through per interval. The last event
// dropped during a burst runs once the interval passes without a newer one.
type Debouncer struct {
	limiter  *rate.Limiter
	now      func() time.Time
	interval time.Duration

	mu      sync.Mutex
	pending func()
	timer   *time.Timer
}

// NewDebouncer creates a debouncer driven by now.
func NewDebouncer(interval time.Duration, now func() time.Time) *Debouncer {
	if now == nil {
		now = time.Now
	}
	return &Debouncer{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		now:      now,
		interval: interval,
	}
}

// Allow reports whether an event arriving now should take effect.
func (d *Debouncer) Allow() bool {
	return d.limiter.AllowN(d.now(), 1)
}

// Do runs fn immediately when allowed and reports true. Otherwise fn
// replaces any pending call and is run after the quiet period.
func (d *Debouncer) Do(fn func()) bool {
	d.mu.Lock()
	if d.limiter.AllowN(d.now(), 1) {
		d.stopLocked()
		d.mu.Unlock()
		fn()
		return true
	}

	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
	d.mu.Unlock()
	return false
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	if fn != nil {
		// the trailing event uses up the token like a leading one
		d.limiter.AllowN(d.now(), 1)
	}
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops the pending event, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.stopLocked()
	d.mu.Unlock()
}

func (d *Debouncer) stopLocked() {
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
