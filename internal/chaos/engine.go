package chaos

import (
	"fmt"
	"math/rand"
	"time"

	"main/internal/mdg"
)

// Config controls fault injection on the simulated feed.
type Config struct {
	Seed          int64
	DropRate      float64
	DuplicateRate float64
	ReorderWindow int
	MaxDelay      time.Duration
}

// Stats counts the faults injected so far.
type Stats struct {
	Dropped    uint64
	Duplicated uint64
	Delayed    uint64
}

// Engine applies drop, duplicate, reorder and delay faults to feed
// events before they reach the strategy. Commands are never touched;
// only the inbound feed passes through here.
type Engine struct {
	cfg     Config
	rng     *rand.Rand
	pending []mdg.Event
	stats   Stats
}

// NewEngine creates a fault injection engine with validation.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.ReorderWindow <= 0 {
		cfg.ReorderWindow = 1
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UTC().UnixNano()
	}
	return &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Validate ensures the config is within supported ranges.
func (c Config) Validate() error {
	if c.DropRate < 0 || c.DropRate > 1 {
		return fmt.Errorf("dropRate must be between 0 and 1")
	}
	if c.DuplicateRate < 0 || c.DuplicateRate > 1 {
		return fmt.Errorf("duplicateRate must be between 0 and 1")
	}
	if c.ReorderWindow <= 0 {
		return fmt.Errorf("reorderWindow must be >= 1")
	}
	if c.MaxDelay < 0 {
		return fmt.Errorf("maxDelay must be >= 0")
	}
	return nil
}

// Process applies faults to one feed event and returns any output events.
func (e *Engine) Process(ev mdg.Event) []mdg.Event {
	if e == nil {
		return []mdg.Event{ev}
	}
	if e.cfg.DropRate > 0 && e.rng.Float64() < e.cfg.DropRate {
		e.stats.Dropped++
		return nil
	}
	ev = e.applyDelay(ev)
	if e.cfg.ReorderWindow <= 1 {
		return e.applyDuplicate(ev)
	}
	e.pending = append(e.pending, ev)
	if len(e.pending) < e.cfg.ReorderWindow {
		return nil
	}
	return e.applyDuplicate(e.takeRandomPending())
}

// Flush drains any buffered events after the feed ends.
func (e *Engine) Flush() []mdg.Event {
	if e == nil || len(e.pending) == 0 {
		return nil
	}
	out := make([]mdg.Event, 0, len(e.pending))
	for len(e.pending) > 0 {
		out = append(out, e.applyDuplicate(e.takeRandomPending())...)
	}
	return out
}

// Stats returns the fault counters.
func (e *Engine) Stats() Stats {
	if e == nil {
		return Stats{}
	}
	return e.stats
}

func (e *Engine) takeRandomPending() mdg.Event {
	idx := e.rng.Intn(len(e.pending))
	ev := e.pending[idx]
	e.pending = append(e.pending[:idx], e.pending[idx+1:]...)
	return ev
}

func (e *Engine) applyDuplicate(ev mdg.Event) []mdg.Event {
	out := []mdg.Event{ev}
	if e.cfg.DuplicateRate > 0 && e.rng.Float64() < e.cfg.DuplicateRate {
		e.stats.Duplicated++
		out = append(out, ev)
	}
	return out
}

func (e *Engine) applyDelay(ev mdg.Event) mdg.Event {
	if e.cfg.MaxDelay <= 0 {
		return ev
	}
	delay := time.Duration(e.rng.Int63n(e.cfg.MaxDelay.Nanoseconds() + 1))
	if delay == 0 {
		return ev
	}
	e.stats.Delayed++
	if ev.Header.TsRecv > 0 {
		ev.Header.TsRecv += int64(delay)
		return ev
	}
	if ev.Header.TsEvent > 0 {
		ev.Header.TsRecv = ev.Header.TsEvent + int64(delay)
	}
	return ev
}
