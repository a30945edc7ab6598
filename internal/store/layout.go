package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"xarxa/internal/catalog"
	"xarxa/internal/frame"
)

const (
	LayoutKey   = "xarxa.nodePositions"
	SaveDelay   = 300 * time.Millisecond
	saveTimeout = 2 * time.Second
)

// LayoutStore loads the edited layout and writes changes back once they
// stop arriving for SaveDelay.
type LayoutStore struct {
	kv      KV
	log     *slog.Logger
	pending catalog.Layout
	timer   *frame.Debouncer
}

func NewLayoutStore(kv KV, log *slog.Logger) *LayoutStore {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &LayoutStore{
		kv:    kv,
		log:   log.With("component", "store"),
		timer: frame.NewDebouncer(SaveDelay),
	}
}

// Load returns the saved layout when it has exactly one position per
// default entry, and defaults otherwise.
func (s *LayoutStore) Load(ctx context.Context, defaults catalog.Layout) catalog.Layout {
	saved, err := s.Saved(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		return defaults.Clone()
	case err != nil:
		s.log.Warn("saved layout unreadable, using defaults", "err", err)
		return defaults.Clone()
	case len(saved) != len(defaults):
		s.log.Info("saved layout does not match catalog, using defaults",
			"saved", len(saved), "nodes", len(defaults))
		return defaults.Clone()
	}
	return saved
}

// Saved returns the stored layout without checking it against a catalog.
func (s *LayoutStore) Saved(ctx context.Context) (catalog.Layout, error) {
	raw, err := s.kv.Get(ctx, LayoutKey)
	if err != nil {
		return nil, err
	}
	var l catalog.Layout
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", LayoutKey, err)
	}
	return l, nil
}

// Save writes l immediately.
func (s *LayoutStore) Save(ctx context.Context, l catalog.Layout) error {
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	return s.kv.Set(ctx, LayoutKey, string(b))
}

// Reset forgets the saved layout and any pending write.
func (s *LayoutStore) Reset(ctx context.Context) error {
	s.timer.Stop()
	s.pending = nil
	return s.kv.Delete(ctx, LayoutKey)
}

// Schedule queues l to be written SaveDelay after the last call.
func (s *LayoutStore) Schedule(now time.Time, l catalog.Layout) {
	s.pending = l.Clone()
	s.timer.Touch(now)
}

func (s *LayoutStore) Pending() bool {
	return s.timer.Armed()
}

// Tick writes the pending layout once its delay has passed.
func (s *LayoutStore) Tick(ctx context.Context, now time.Time) {
	if s.timer.Due(now) {
		s.write(ctx)
	}
}

// Flush writes any pending layout now.
func (s *LayoutStore) Flush(ctx context.Context) {
	if s.timer.Armed() {
		s.timer.Stop()
		s.write(ctx)
	}
}

func (s *LayoutStore) write(ctx context.Context) {
	l := s.pending
	s.pending = nil
	if l == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := s.Save(ctx, l); err != nil {
		s.log.Warn("layout not saved", "err", err)
		return
	}
	s.log.Debug("layout saved", "nodes", len(l))
}
