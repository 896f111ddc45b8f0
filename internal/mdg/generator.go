package mdg

import (
	"fmt"
	"math/rand"
	"time"

	"main/internal/schema"
)

// Config controls the synthetic two-leg feed.
type Config struct {
	Seed       int64
	BasePrice  schema.Price
	TickSize   schema.Price
	BaseVolume schema.Volume
	// MaxStepTicks bounds the per-step mid price move.
	MaxStepTicks int64
	// MaxBasisTicks bounds how far the future drifts from the ETF mid.
	MaxBasisTicks int64
	// TradeEvery emits a trade ticks event after this many book events.
	// Zero disables trade ticks.
	TradeEvery int
}

// DefaultConfig returns a feed shaped like the production instruments.
func DefaultConfig(seed int64) Config {
	return Config{
		Seed:          seed,
		BasePrice:     10000,
		TickSize:      100,
		BaseVolume:    50,
		MaxStepTicks:  2,
		MaxBasisTicks: 4,
		TradeEvery:    16,
	}
}

// Event is one synthetic feed item: a book update or trade ticks.
type Event struct {
	Header schema.EventHeader
	Book   schema.BookUpdate
	Ticks  schema.TradeTicks
}

// Generator produces a deterministic correlated feed for both legs.
// The ETF follows a random walk around the base price; the future
// tracks the ETF mid with a bounded basis, so arbitrage windows open
// and close as the basis drifts past the profitability margin.
type Generator struct {
	cfg  Config
	rng  *rand.Rand
	mid  schema.Price
	seq  uint64
	step int

	bookSeq [schema.InstrumentCount]uint32
}

// NewGenerator validates the config and creates a generator.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.BasePrice <= 0 {
		return nil, fmt.Errorf("base price must be > 0")
	}
	if cfg.TickSize <= 0 {
		return nil, fmt.Errorf("tick size must be > 0")
	}
	if cfg.BaseVolume <= 0 {
		return nil, fmt.Errorf("base volume must be > 0")
	}
	if cfg.MaxStepTicks < 0 || cfg.MaxBasisTicks < 0 {
		return nil, fmt.Errorf("step bounds must be >= 0")
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		mid: cfg.BasePrice / cfg.TickSize * cfg.TickSize,
	}, nil
}

// Next produces the next feed event. Legs alternate: future, then ETF.
func (g *Generator) Next(now time.Time) Event {
	instrument := schema.InstrumentFuture
	if g.step%2 == 1 {
		instrument = schema.InstrumentEtf
		g.walk()
	}

	mid := g.mid
	if instrument == schema.InstrumentFuture {
		mid += schema.Price(g.jitter(g.cfg.MaxBasisTicks)) * g.cfg.TickSize
	}
	if floor := g.cfg.TickSize * 2; mid < floor {
		mid = floor
	}

	g.step++
	g.bookSeq[instrument]++
	g.seq++

	book := buildBook(instrument, g.bookSeq[instrument], mid, g.cfg.TickSize, g.volume(), g.volume())

	ts := now.UnixNano()
	if g.cfg.TradeEvery > 0 && g.step%g.cfg.TradeEvery == 0 {
		ticks := schema.TradeTicks(book)
		return Event{
			Header: schema.NewHeader(schema.EventTradeTicks, schema.SourceFeed, g.seq, ts, ts),
			Ticks:  ticks,
		}
	}
	return Event{
		Header: schema.NewHeader(schema.EventBookUpdate, schema.SourceFeed, g.seq, ts, ts),
		Book:   book,
	}
}

func (g *Generator) walk() {
	g.mid += schema.Price(g.jitter(g.cfg.MaxStepTicks)) * g.cfg.TickSize
	if floor := g.cfg.TickSize * 2; g.mid < floor {
		g.mid = floor
	}
}

// jitter returns a uniform value in [-bound, bound].
func (g *Generator) jitter(bound int64) int64 {
	if bound <= 0 {
		return 0
	}
	return g.rng.Int63n(2*bound+1) - bound
}

func (g *Generator) volume() schema.Volume {
	return g.cfg.BaseVolume + schema.Volume(g.rng.Int63n(int64(g.cfg.BaseVolume)))
}
