package frame

import "time"

// Throttle lets at most one event through per interval, leading edge.
type Throttle struct {
	interval time.Duration
	last     time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

func (t *Throttle) Allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}

func (t *Throttle) Reset() {
	t.last = time.Time{}
}

// Debouncer fires once, delay after the last Touch.
type Debouncer struct {
	delay    time.Duration
	deadline time.Time
	armed    bool
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Touch(now time.Time) {
	d.deadline = now.Add(d.delay)
	d.armed = true
}

func (d *Debouncer) Armed() bool {
	return d.armed
}

// Due reports whether the deadline passed and disarms the debouncer if so.
func (d *Debouncer) Due(now time.Time) bool {
	if !d.armed || now.Before(d.deadline) {
		return false
	}
	d.armed = false
	return true
}

func (d *Debouncer) Stop() {
	d.armed = false
}
