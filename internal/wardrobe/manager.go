// Package wardrobe owns the clothing collection and the laundry lifecycle of
// its items: explicit user transitions and the periodic sweep that returns
// washed items to the wardrobe.
package wardrobe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/store"
)

// Manager errors.
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrDuplicateItem = errors.New("item already exists")
	ErrStopped       = errors.New("wardrobe manager stopped")
)

// Manager serializes every change to the wardrobe and persists each new
// collection before it becomes visible.
type Manager struct {
	cell   *store.Cell[[]model.ClothingItem]
	clock  Clock
	config Config

	mu       sync.Mutex
	stopped  bool
	sweeping atomic.Bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager loads the wardrobe from db. A nil clock means RealClock.
func NewManager(ctx context.Context, db *sql.DB, cfg Config, clock Clock) (*Manager, error) {
	cell, err := store.OpenCell(ctx, db, store.KeyWardrobe, []model.ClothingItem{})
	if err != nil {
		return nil, fmt.Errorf("opening wardrobe: %w", err)
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Manager{
		cell:   cell,
		clock:  clock,
		config: cfg.withDefaults(),
	}, nil
}

// Config returns the effective lifecycle configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Items returns a copy of the current wardrobe.
func (m *Manager) Items() []model.ClothingItem {
	return slices.Clone(m.cell.Get())
}

// Get returns one item.
func (m *Manager) Get(id string) (model.ClothingItem, error) {
	it, ok := Find(m.cell.Get(), id)
	if !ok {
		return model.ClothingItem{}, ErrItemNotFound
	}
	return it, nil
}

// Add puts a new item at the front of the wardrobe. New items are always
// available.
func (m *Manager) Add(ctx context.Context, item model.ClothingItem) (model.ClothingItem, error) {
	item.Availability = model.Available()

	err := m.update(ctx, func(items []model.ClothingItem) ([]model.ClothingItem, error) {
		if _, ok := Find(items, item.ID); ok {
			return nil, ErrDuplicateItem
		}
		next := make([]model.ClothingItem, 0, len(items)+1)
		next = append(next, item)
		return append(next, items...), nil
	})
	if err != nil {
		return model.ClothingItem{}, err
	}

	slog.Info("item added", "item", item.ID, "name", item.Name)
	return item, nil
}

// SendToLaundry sends one available item to laundry. An item already in
// laundry is returned unchanged.
func (m *Manager) SendToLaundry(ctx context.Context, id string) (model.ClothingItem, error) {
	return m.transition(ctx, id, func(items []model.ClothingItem, now time.Time) []model.ClothingItem {
		return SendToLaundry(items, id, now, m.config.LaundryDuration)
	})
}

// MarkClean returns one item to available before its deadline.
func (m *Manager) MarkClean(ctx context.Context, id string) (model.ClothingItem, error) {
	return m.transition(ctx, id, func(items []model.ClothingItem, _ time.Time) []model.ClothingItem {
		return MarkClean(items, id)
	})
}

// Toggle flips one item between available and laundry.
func (m *Manager) Toggle(ctx context.Context, id string) (model.ClothingItem, error) {
	return m.transition(ctx, id, func(items []model.ClothingItem, now time.Time) []model.ClothingItem {
		return Toggle(items, id, now, m.config.LaundryDuration)
	})
}

// CommitWorn sends the available items among ids to laundry with one shared
// deadline and returns them. Unknown ids and items already in laundry are
// skipped.
func (m *Manager) CommitWorn(ctx context.Context, ids []string) ([]model.ClothingItem, error) {
	var worn []model.ClothingItem
	err := m.update(ctx, func(items []model.ClothingItem) ([]model.ClothingItem, error) {
		next := CommitWorn(items, ids, now(m.clock), m.config.LaundryDuration)
		worn = changedItems(items, next)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	if len(worn) > 0 {
		slog.Info("outfit worn", "items", len(worn), "requested", len(ids))
	}
	return worn, nil
}

// Sweep returns overdue laundry items to available and reports how many
// reverted. A sweep that would overlap a running one is skipped.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	if !m.sweeping.CompareAndSwap(false, true) {
		slog.Debug("laundry sweep already running, skipping")
		return 0, nil
	}
	defer m.sweeping.Store(false)

	var reverted int
	err := m.update(ctx, func(items []model.ClothingItem) ([]model.ClothingItem, error) {
		var next []model.ClothingItem
		next, reverted = Sweep(items, now(m.clock))
		return next, nil
	})
	if err != nil {
		return 0, err
	}

	if reverted > 0 {
		slog.Info("laundry sweep reverted items", "count", reverted)
	}
	return reverted, nil
}

// Start runs one sweep immediately and then one every SweepInterval until
// ctx is done or Stop is called.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return ErrStopped
	}
	if m.cancel != nil {
		m.mu.Unlock()
		return errors.New("wardrobe manager already started")
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	m.mu.Unlock()

	if _, err := m.Sweep(ctx); err != nil && !errors.Is(err, ErrStopped) {
		slog.Error("initial laundry sweep failed", "error", err)
	}

	go m.sweepLoop(ctx)
	slog.Info("laundry sweeper started", "interval", m.config.SweepInterval, "laundry_duration", m.config.LaundryDuration)
	return nil
}

// Stop cancels the sweeper and waits for it to exit. Afterwards every
// mutating call returns ErrStopped.
func (m *Manager) Stop() {
	m.mu.Lock()
	m.stopped = true
	cancel := m.cancel
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
	slog.Info("laundry sweeper stopped")
}

func (m *Manager) sweepLoop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.Sweep(ctx); err != nil && !errors.Is(err, ErrStopped) {
				slog.Error("laundry sweep failed", "error", err)
			}
		}
	}
}

// transition applies a single-item transition and returns the item after it.
func (m *Manager) transition(ctx context.Context, id string, fn func([]model.ClothingItem, time.Time) []model.ClothingItem) (model.ClothingItem, error) {
	var result model.ClothingItem
	err := m.update(ctx, func(items []model.ClothingItem) ([]model.ClothingItem, error) {
		if _, ok := Find(items, id); !ok {
			return nil, ErrItemNotFound
		}
		next := fn(items, now(m.clock))
		result, _ = Find(next, id)
		return next, nil
	})
	if err != nil {
		return model.ClothingItem{}, err
	}

	slog.Info("item status changed", "item", id, "status", result.Status())
	return result, nil
}

// update computes the next wardrobe under the lock and persists it. When fn
// returns its input unchanged nothing is written.
func (m *Manager) update(ctx context.Context, fn func([]model.ClothingItem) ([]model.ClothingItem, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return ErrStopped
	}

	current := m.cell.Get()
	next, err := fn(current)
	if err != nil {
		return err
	}
	if sameSlice(current, next) {
		return nil
	}
	if err := m.cell.Set(ctx, next); err != nil {
		return fmt.Errorf("saving wardrobe: %w", err)
	}
	return nil
}

// changedItems returns the items of next that differ from the same position
// in prev. Both slices come from one transition, so positions line up.
func changedItems(prev, next []model.ClothingItem) []model.ClothingItem {
	var out []model.ClothingItem
	for i := range next {
		if i >= len(prev) || next[i] != prev[i] {
			out = append(out, next[i])
		}
	}
	return out
}

func sameSlice(a, b []model.ClothingItem) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
