package quoter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

type commandLog struct {
	inserts []schema.InsertCommand
	cancels []schema.CancelCommand
	hedges  []schema.HedgeCommand
}

func (l *commandLog) SendInsertOrder(cmd schema.InsertCommand) { l.inserts = append(l.inserts, cmd) }
func (l *commandLog) SendCancelOrder(cmd schema.CancelCommand) { l.cancels = append(l.cancels, cmd) }
func (l *commandLog) SendHedgeOrder(cmd schema.HedgeCommand)   { l.hedges = append(l.hedges, cmd) }

func (l *commandLog) reset() {
	l.inserts = l.inserts[:0]
	l.cancels = l.cancels[:0]
	l.hedges = l.hedges[:0]
}

func newTestEngine(t *testing.T) (*Engine, *commandLog) {
	t.Helper()
	log := &commandLog{}
	engine, err := NewEngine(DefaultConfig(), log)
	require.NoError(t, err)
	return engine, log
}

func futureBook(bid0, ask0 schema.Price) schema.BookUpdate {
	book := schema.BookUpdate{Instrument: schema.InstrumentFuture}
	book.BidPrices[0] = bid0
	book.BidVolumes[0] = 50
	book.AskPrices[0] = ask0
	if ask0 != 0 {
		book.AskVolumes[0] = 50
	}
	return book
}

func etfBook(bid0, ask0 schema.Price) schema.BookUpdate {
	book := schema.BookUpdate{Instrument: schema.InstrumentEtf}
	book.BidPrices[0] = bid0
	book.BidVolumes[0] = 50
	book.AskPrices[0] = ask0
	if ask0 != 0 {
		book.AskVolumes[0] = 50
	}
	return book
}

func TestArbitrageBidCappedAtEtfAsk(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	require.Empty(t, log.inserts, "no quote before the ETF book is known")

	engine.OnBookUpdate(etfBook(9900, 9950))
	require.Len(t, log.inserts, 1)
	cmd := log.inserts[0]
	assert.Equal(t, schema.SideBuy, cmd.Side)
	assert.Equal(t, schema.Price(9950), cmd.Price, "bid capped at the ETF best ask")
	assert.Equal(t, schema.Volume(10), cmd.Volume)
	assert.Equal(t, schema.LifespanGoodForDay, cmd.Lifespan)
	assert.Equal(t, uint64(1), cmd.ClientOrderID)
	assert.Equal(t, 1, engine.OpenBids())
	assert.Equal(t, 0, engine.OpenAsks())
}

func TestArbitrageBidUncapped(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	engine.OnBookUpdate(etfBook(9900, 10100))
	require.Len(t, log.inserts, 1)
	assert.Equal(t, schema.Price(10000), log.inserts[0].Price, "one tick above the ETF best bid")
}

func TestBidCountNeverExceedsMaxOrders(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	book := etfBook(9900, 9950)
	book.BidPrices[1] = 9890
	book.BidVolumes[1] = 10
	for i := 0; i < 5; i++ {
		engine.OnBookUpdate(book)
	}
	assert.Len(t, log.inserts, 2)
	assert.Equal(t, 2, engine.OpenBids())
	assert.Empty(t, log.cancels)
}

func TestFillOnBidHedgesAndPullsQuote(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	engine.OnBookUpdate(etfBook(9900, 9950))
	require.Len(t, log.inserts, 1)
	bidID := log.inserts[0].ClientOrderID
	log.reset()

	engine.OnOrderFilled(schema.OrderFilled{ClientOrderID: bidID, Price: 9950, Volume: 7})
	require.Len(t, log.hedges, 1)
	hedge := log.hedges[0]
	assert.Equal(t, schema.SideSell, hedge.Side)
	assert.Equal(t, schema.Volume(7), hedge.Volume)
	assert.Equal(t, schema.Price(100), hedge.Price, "minimum bid rounded up to the nearest tick")
	assert.NotEqual(t, bidID, hedge.ClientOrderID)
	assert.Equal(t, schema.Volume(7), engine.Position())

	require.Len(t, log.cancels, 1, "a partially filled quote is pulled")
	assert.Equal(t, bidID, log.cancels[0].ClientOrderID)

	// Second fill on the same order must not re-send the cancel.
	log.reset()
	engine.OnOrderFilled(schema.OrderFilled{ClientOrderID: bidID, Price: 9950, Volume: 3})
	assert.Len(t, log.hedges, 1)
	assert.Empty(t, log.cancels)
	assert.Equal(t, schema.Volume(10), engine.Position())
}

func TestFillOnAskHedgesBuy(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(etfBook(9900, 10000))
	engine.OnBookUpdate(futureBook(9000, 9100))
	require.Len(t, log.inserts, 1)
	askCmd := log.inserts[0]
	require.Equal(t, schema.SideSell, askCmd.Side)
	log.reset()

	engine.OnOrderFilled(schema.OrderFilled{ClientOrderID: askCmd.ClientOrderID, Price: askCmd.Price, Volume: 10})
	require.Len(t, log.hedges, 1)
	assert.Equal(t, schema.SideBuy, log.hedges[0].Side)
	assert.Equal(t, schema.Price(2147483600), log.hedges[0].Price, "maximum ask rounded down to the nearest tick")
	assert.Equal(t, schema.Volume(-10), engine.Position())
}

func TestUnwindBidAfterShortInventory(t *testing.T) {
	engine, log := newTestEngine(t)

	// Build a short position of 45 lots through an arbitrage ask.
	engine.OnBookUpdate(etfBook(9900, 10000))
	engine.OnBookUpdate(futureBook(9000, 9100))
	require.Len(t, log.inserts, 1)
	askID := log.inserts[0].ClientOrderID
	engine.OnOrderFilled(schema.OrderFilled{ClientOrderID: askID, Price: 10100, Volume: 45})
	engine.OnOrderStatus(schema.OrderStatus{ClientOrderID: askID, FillVolume: 45})
	require.Equal(t, schema.Volume(-45), engine.Position())
	require.Equal(t, 0, engine.OpenAsks())
	log.reset()

	// -45 is past -60% of the limit (-42); the future ask is the reference.
	engine.OnBookUpdate(futureBook(10050, 10300))
	require.Len(t, log.inserts, 1)
	cmd := log.inserts[0]
	assert.Equal(t, schema.SideBuy, cmd.Side)
	assert.Equal(t, schema.Price(10400), cmd.Price)
	assert.Equal(t, schema.Volume(10), cmd.Volume)
}

func TestUnwindAskAfterLongInventory(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	engine.OnBookUpdate(etfBook(9900, 9950))
	require.Len(t, log.inserts, 1)
	bidID := log.inserts[0].ClientOrderID
	engine.OnOrderFilled(schema.OrderFilled{ClientOrderID: bidID, Price: 9950, Volume: 45})
	engine.OnOrderStatus(schema.OrderStatus{ClientOrderID: bidID, FillVolume: 45})
	require.Equal(t, schema.Volume(45), engine.Position())
	log.reset()

	// Future bid well below the ETF bid so no arbitrage fires either way.
	engine.OnBookUpdate(futureBook(9700, 12000))
	require.Len(t, log.inserts, 1)
	cmd := log.inserts[0]
	assert.Equal(t, schema.SideSell, cmd.Side)
	assert.Equal(t, schema.Price(9800), cmd.Price, "one tick above the future best bid")
}

func TestSweepCancelsBidWhenFutureFalls(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	engine.OnBookUpdate(etfBook(9700, 10500))
	require.Len(t, log.inserts, 1)
	bidID := log.inserts[0].ClientOrderID
	require.Equal(t, schema.Price(9800), log.inserts[0].Price)
	log.reset()

	// Future best bid falls to within two ticks of the resting price.
	engine.OnBookUpdate(futureBook(9850, 10210))
	require.Len(t, log.cancels, 1)
	assert.Equal(t, bidID, log.cancels[0].ClientOrderID)

	// A repeat of the same book must not cancel twice.
	log.reset()
	engine.OnBookUpdate(futureBook(9850, 10210))
	assert.Empty(t, log.cancels)
}

func TestSweepCancelsBidWhenEtfSecondLevelOvertakes(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	engine.OnBookUpdate(etfBook(9700, 10500))
	require.Len(t, log.inserts, 1)
	bidID := log.inserts[0].ClientOrderID
	log.reset()

	// The ETF second-level bid moves above the resting price.
	book := etfBook(9900, 10500)
	book.BidPrices[1] = 9850
	book.BidVolumes[1] = 20
	engine.OnBookUpdate(book)
	require.NotEmpty(t, log.cancels)
	assert.Equal(t, bidID, log.cancels[0].ClientOrderID)
}

func TestSweepSkipsAskSecondLevelWithoutLiquidity(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(etfBook(9900, 10000))
	engine.OnBookUpdate(futureBook(9000, 9100))
	require.Len(t, log.inserts, 1)
	require.Equal(t, schema.SideSell, log.inserts[0].Side)
	log.reset()

	// Future ask still far below, ETF second-level ask unreported (zero):
	// neither sweep rule may fire.
	engine.OnBookUpdate(etfBook(9900, 10000))
	assert.Empty(t, log.cancels)
}

func TestStatusRemovalIsIdempotent(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	engine.OnBookUpdate(etfBook(9900, 9950))
	require.Len(t, log.inserts, 1)
	bidID := log.inserts[0].ClientOrderID
	require.Equal(t, 1, engine.OpenBids())

	engine.OnOrderStatus(schema.OrderStatus{ClientOrderID: bidID})
	assert.Equal(t, 0, engine.OpenBids())
	engine.OnOrderStatus(schema.OrderStatus{ClientOrderID: bidID})
	assert.Equal(t, 0, engine.OpenBids())

	// Live orders are kept.
	engine.OnBookUpdate(etfBook(9900, 9950))
	require.NotEmpty(t, log.inserts[1:])
	liveID := log.inserts[len(log.inserts)-1].ClientOrderID
	engine.OnOrderStatus(schema.OrderStatus{ClientOrderID: liveID, RemainingVolume: 4})
	assert.Equal(t, 1, engine.OpenBids())
}

func TestErrorSynthesizesTerminalStatus(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	engine.OnBookUpdate(etfBook(9900, 9950))
	require.Len(t, log.inserts, 1)
	bidID := log.inserts[0].ClientOrderID

	engine.OnError(schema.ErrorNotice{ClientOrderID: bidID, Message: "invalid price"})
	assert.Equal(t, 0, engine.OpenBids())

	// Unrelated errors leave the tables alone.
	engine.OnBookUpdate(etfBook(9900, 9950))
	engine.OnError(schema.ErrorNotice{Message: "exchange busy"})
	engine.OnError(schema.ErrorNotice{ClientOrderID: 99999, Message: "unknown order"})
	assert.Equal(t, 1, engine.OpenBids())
}

func TestPositionLimitSuppressesSameDirectionQuotes(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	engine.OnBookUpdate(etfBook(9900, 9950))
	require.Len(t, log.inserts, 1)
	bidID := log.inserts[0].ClientOrderID
	engine.OnOrderFilled(schema.OrderFilled{ClientOrderID: bidID, Price: 9950, Volume: 70})
	engine.OnOrderStatus(schema.OrderStatus{ClientOrderID: bidID, FillVolume: 70})
	require.Equal(t, schema.Volume(70), engine.Position())
	log.reset()

	engine.OnBookUpdate(etfBook(9900, 9950))
	for _, cmd := range log.inserts {
		assert.NotEqual(t, schema.SideBuy, cmd.Side, "no new bids at the position limit")
	}
}

func TestTradeTicksAndHedgeFillsAreIgnored(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnTradeTicks(schema.TradeTicks{Instrument: schema.InstrumentEtf})
	engine.OnHedgeFilled(schema.HedgeFilled{ClientOrderID: 77, Price: 100, Volume: 10})
	assert.Empty(t, log.inserts)
	assert.Empty(t, log.cancels)
	assert.Empty(t, log.hedges)
	assert.Equal(t, schema.Volume(0), engine.Position())
}

func TestOrderIDsAreMonotonic(t *testing.T) {
	engine, log := newTestEngine(t)

	engine.OnBookUpdate(futureBook(10200, 10210))
	book := etfBook(9900, 9950)
	book.BidPrices[1] = 9890
	book.BidVolumes[1] = 10
	engine.OnBookUpdate(book)
	engine.OnBookUpdate(book)
	require.Len(t, log.inserts, 2)

	var last uint64
	for _, cmd := range log.inserts {
		require.Greater(t, cmd.ClientOrderID, last)
		last = cmd.ClientOrderID
	}
	engine.OnOrderFilled(schema.OrderFilled{ClientOrderID: log.inserts[0].ClientOrderID, Price: 9950, Volume: 1})
	require.Len(t, log.hedges, 1)
	assert.Greater(t, log.hedges[0].ClientOrderID, last, "hedge ids share the same counter")
}
