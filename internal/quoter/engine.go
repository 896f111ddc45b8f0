package quoter

import (
	"fmt"

	"main/internal/schema"
)

// Sender receives the engine's outbound commands. Sends are
// fire-and-forget: the engine never waits for acknowledgment.
type Sender interface {
	SendInsertOrder(cmd schema.InsertCommand)
	SendCancelOrder(cmd schema.CancelCommand)
	SendHedgeOrder(cmd schema.HedgeCommand)
}

// Config defines the strategy constants.
type Config struct {
	TickSize         schema.Price
	LotSize          schema.Volume
	PositionLimit    schema.Volume
	MaxActiveOrders  int
	MinProfitability int64 // in ticks
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{
		TickSize:         100,
		LotSize:          10,
		PositionLimit:    70,
		MaxActiveOrders:  2,
		MinProfitability: 2,
	}
}

// Validate checks if the configuration is usable.
func (c Config) Validate() error {
	if c.TickSize <= 0 {
		return fmt.Errorf("invalid quoter config: TickSize must be > 0")
	}
	if c.LotSize <= 0 {
		return fmt.Errorf("invalid quoter config: LotSize must be > 0")
	}
	if c.PositionLimit <= 0 {
		return fmt.Errorf("invalid quoter config: PositionLimit must be > 0")
	}
	if c.MaxActiveOrders <= 0 {
		return fmt.Errorf("invalid quoter config: MaxActiveOrders must be > 0")
	}
	if c.MinProfitability < 0 {
		return fmt.Errorf("invalid quoter config: MinProfitability must be >= 0")
	}
	return nil
}

// Engine owns all mutable strategy state. Position and order tables are
// updated optimistically, before exchange confirmation, and may
// transiently diverge from exchange truth.
type Engine struct {
	cfg    Config
	sender Sender

	books     [schema.InstrumentCount]schema.BookUpdate
	bids      map[uint64]schema.Price
	asks      map[uint64]schema.Price
	cancelled map[uint64]struct{}
	position  schema.Volume
	nextID    uint64

	minBidNearestTick schema.Price
	maxAskNearestTick schema.Price
}

// NewEngine creates an engine with the given constants and command sink.
func NewEngine(cfg Config, sender Sender) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, fmt.Errorf("quoter sender is nil")
	}
	return &Engine{
		cfg:               cfg,
		sender:            sender,
		bids:              make(map[uint64]schema.Price, cfg.MaxActiveOrders),
		asks:              make(map[uint64]schema.Price, cfg.MaxActiveOrders),
		cancelled:         make(map[uint64]struct{}),
		minBidNearestTick: (schema.MinimumBid + cfg.TickSize) / cfg.TickSize * cfg.TickSize,
		maxAskNearestTick: schema.MaximumAsk / cfg.TickSize * cfg.TickSize,
	}, nil
}

// OnBookUpdate overwrites the snapshot for one instrument and re-runs the
// cancel sweep and both quoting policies against the combined view.
// Sequence gaps are not checked; ordering is the transport's job.
func (e *Engine) OnBookUpdate(book schema.BookUpdate) {
	if !book.Instrument.Valid() {
		return
	}
	e.books[book.Instrument] = book

	e.sweepBids()
	e.sweepAsks()
	e.quoteBid()
	e.quoteAsk()
}

// OnTradeTicks is accepted for interface completeness; the strategy only
// reacts to book updates.
func (e *Engine) OnTradeTicks(ticks schema.TradeTicks) {
}

// OnOrderFilled hedges the fill in the future leg, updates the position
// and proactively pulls the remainder of the filled quote.
func (e *Engine) OnOrderFilled(fill schema.OrderFilled) {
	id := fill.ClientOrderID
	if _, ok := e.bids[id]; ok {
		e.sender.SendHedgeOrder(schema.HedgeCommand{
			ClientOrderID: e.nextOrderID(),
			Side:          schema.SideSell,
			Price:         e.minBidNearestTick,
			Volume:        fill.Volume,
		})
		e.position += fill.Volume
		e.cancelOnce(id)
		return
	}
	if _, ok := e.asks[id]; ok {
		e.sender.SendHedgeOrder(schema.HedgeCommand{
			ClientOrderID: e.nextOrderID(),
			Side:          schema.SideBuy,
			Price:         e.maxAskNearestTick,
			Volume:        fill.Volume,
		})
		e.position -= fill.Volume
		e.cancelOnce(id)
	}
}

// OnHedgeFilled is accepted for interface completeness; hedges are
// fire-and-forget and not reconciled here.
func (e *Engine) OnHedgeFilled(fill schema.HedgeFilled) {
}

// OnOrderStatus removes terminal orders from the outstanding tables.
// Cancelled-set membership is left in place; ids are never reused so a
// stale entry is inert.
func (e *Engine) OnOrderStatus(status schema.OrderStatus) {
	if status.RemainingVolume != 0 {
		return
	}
	id := status.ClientOrderID
	if _, ok := e.bids[id]; ok {
		delete(e.bids, id)
		return
	}
	delete(e.asks, id)
}

// OnError forces cleanup of a tracked order by synthesizing a terminal
// status. The message itself is informational at this layer.
func (e *Engine) OnError(notice schema.ErrorNotice) {
	id := notice.ClientOrderID
	if id == 0 {
		return
	}
	_, isBid := e.bids[id]
	_, isAsk := e.asks[id]
	if isBid || isAsk {
		e.OnOrderStatus(schema.OrderStatus{ClientOrderID: id})
	}
}

// Position returns the optimistic net ETF inventory.
func (e *Engine) Position() schema.Volume {
	return e.position
}

// OpenBids returns the number of outstanding bid orders.
func (e *Engine) OpenBids() int {
	return len(e.bids)
}

// OpenAsks returns the number of outstanding ask orders.
func (e *Engine) OpenAsks() int {
	return len(e.asks)
}

// LastOrderID returns the most recently allocated client order id.
func (e *Engine) LastOrderID() uint64 {
	return e.nextID
}

func (e *Engine) nextOrderID() uint64 {
	e.nextID++
	return e.nextID
}

func (e *Engine) margin() schema.Price {
	return schema.Price(e.cfg.MinProfitability) * e.cfg.TickSize
}

// sweepBids pulls bids that are no longer profitable against the future
// leg or no longer competitive inside the ETF book.
func (e *Engine) sweepBids() {
	future := &e.books[schema.InstrumentFuture]
	etf := &e.books[schema.InstrumentEtf]
	margin := e.margin()
	for id, price := range e.bids {
		if _, ok := e.cancelled[id]; ok {
			continue
		}
		if future.BidPrices[0] <= price+margin {
			e.cancelOnce(id)
		} else if etf.BidPrices[1] > price {
			e.cancelOnce(id)
		}
	}
}

// sweepAsks mirrors sweepBids. The second-level comparison is skipped
// when the ETF reports no liquidity there (a zero price would always
// read as "below").
func (e *Engine) sweepAsks() {
	future := &e.books[schema.InstrumentFuture]
	etf := &e.books[schema.InstrumentEtf]
	margin := e.margin()
	for id, price := range e.asks {
		if _, ok := e.cancelled[id]; ok {
			continue
		}
		if future.AskPrices[0] >= price-margin {
			e.cancelOnce(id)
		} else if etf.AskPrices[1] < price && etf.AskPrices[1] != 0 {
			e.cancelOnce(id)
		}
	}
}

// quoteBid places at most one new bid per book event: an arbitrage entry
// when the future trades rich to the ETF, otherwise an unwind bid when
// short inventory passed 60% of the limit.
func (e *Engine) quoteBid() {
	if len(e.bids) >= e.cfg.MaxActiveOrders || e.position >= e.cfg.PositionLimit {
		return
	}
	future := &e.books[schema.InstrumentFuture]
	etf := &e.books[schema.InstrumentEtf]
	margin := e.margin()

	if future.BidPrices[0] > etf.BidPrices[0]+margin && etf.BidPrices[0] > margin {
		price := etf.BidPrices[0] + e.cfg.TickSize
		if price > etf.AskPrices[0] && etf.AskPrices[0] != 0 {
			price = etf.AskPrices[0]
		}
		e.insertBid(price)
		return
	}
	if int64(e.position)*10 < -int64(e.cfg.PositionLimit)*6 && future.AskPrices[0] != 0 {
		e.insertBid(future.AskPrices[0] + e.cfg.TickSize)
	}
}

// quoteAsk mirrors quoteBid for the sell side.
func (e *Engine) quoteAsk() {
	if len(e.asks) >= e.cfg.MaxActiveOrders || e.position <= -e.cfg.PositionLimit {
		return
	}
	future := &e.books[schema.InstrumentFuture]
	etf := &e.books[schema.InstrumentEtf]
	margin := e.margin()

	if future.AskPrices[0] != 0 && future.AskPrices[0] < etf.AskPrices[0]-margin && etf.AskPrices[0] > margin {
		price := etf.AskPrices[0] + e.cfg.TickSize
		if price < etf.BidPrices[0] && etf.BidPrices[0] != 0 {
			price = etf.BidPrices[0]
		}
		e.insertAsk(price)
		return
	}
	if int64(e.position)*10 > int64(e.cfg.PositionLimit)*6 && future.BidPrices[0] != 0 {
		e.insertAsk(future.BidPrices[0] + e.cfg.TickSize)
	}
}

func (e *Engine) insertBid(price schema.Price) {
	id := e.nextOrderID()
	e.sender.SendInsertOrder(schema.InsertCommand{
		ClientOrderID: id,
		Side:          schema.SideBuy,
		Price:         price,
		Volume:        e.cfg.LotSize,
		Lifespan:      schema.LifespanGoodForDay,
	})
	e.bids[id] = price
}

func (e *Engine) insertAsk(price schema.Price) {
	id := e.nextOrderID()
	e.sender.SendInsertOrder(schema.InsertCommand{
		ClientOrderID: id,
		Side:          schema.SideSell,
		Price:         price,
		Volume:        e.cfg.LotSize,
		Lifespan:      schema.LifespanGoodForDay,
	})
	e.asks[id] = price
}

// cancelOnce sends at most one cancel per id, tracked by the cancelled
// set rather than by waiting for confirmation.
func (e *Engine) cancelOnce(id uint64) {
	if _, ok := e.cancelled[id]; ok {
		return
	}
	e.sender.SendCancelOrder(schema.CancelCommand{ClientOrderID: id})
	e.cancelled[id] = struct{}{}
}
