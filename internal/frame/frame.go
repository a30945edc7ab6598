// Package frame provides animation-frame style scheduling for a single
// threaded event loop: coalesced per-slot frame requests, constant-interval
// throttles and trailing debouncers. Nothing here starts goroutines; the
// host drives everything by calling Flush with the current time.
package frame

import "time"

// Interval is the nominal display refresh period.
const Interval = time.Second / 60

// Slot orders the work done inside one frame: input is folded into state
// before the draw reads it.
type Slot int

const (
	SlotWheel Slot = iota
	SlotPan
	SlotHover
	SlotDraw
	numSlots
)

func (s Slot) String() string {
	switch s {
	case SlotWheel:
		return "wheel"
	case SlotPan:
		return "pan"
	case SlotHover:
		return "hover"
	case SlotDraw:
		return "draw"
	}
	return "unknown"
}

type Callback func(now time.Time)

// Loop holds at most one pending callback per slot. A new request for a
// slot replaces the one still waiting there.
type Loop struct {
	pending [numSlots]Callback
	frames  uint64
}

func NewLoop() *Loop {
	return &Loop{}
}

func (l *Loop) Request(s Slot, cb Callback) {
	l.pending[s] = cb
}

func (l *Loop) Cancel(s Slot) {
	l.pending[s] = nil
}

func (l *Loop) Pending() bool {
	for _, cb := range l.pending {
		if cb != nil {
			return true
		}
	}
	return false
}

func (l *Loop) PendingSlot(s Slot) bool {
	return l.pending[s] != nil
}

// Frames counts the Flush calls that ran at least one callback.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Flush runs the callbacks pending at call time, once each, in slot order.
// Callbacks may request again; those requests wait for the next Flush.
func (l *Loop) Flush(now time.Time) bool {
	batch := l.pending
	l.pending = [numSlots]Callback{}

	ran := false
	for _, cb := range batch {
		if cb == nil {
			continue
		}
		cb(now)
		ran = true
	}
	if ran {
		l.frames++
	}
	return ran
}
