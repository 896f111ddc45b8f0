package schema

import "strconv"

// Price is a price in minor currency units.
type Price int64

// AppendString formats the price with the given decimal scale.
func (p Price) AppendString(priceScale int, buf []byte) []byte {
	return appendScaledInt(buf, int64(p), priceScale)
}

// Volume is a number of lots.
type Volume int64

// Fee is a signed fee amount in minor currency units.
type Fee int64

// Exchange-admissible price bounds. Orders outside these are rejected
// upstream, so hedge floors/ceilings are derived from them.
const (
	MinimumBid Price = 1
	MaximumAsk Price = 1<<31 - 1
)

// Instrument identifies one of the two correlated legs.
type Instrument uint16

const (
	InstrumentFuture Instrument = iota
	InstrumentEtf
)

// InstrumentCount is the number of tradable legs.
const InstrumentCount = 2

// Valid reports whether the instrument is one of the two legs.
func (i Instrument) Valid() bool {
	return i == InstrumentFuture || i == InstrumentEtf
}

// Other returns the correlated leg.
func (i Instrument) Other() Instrument {
	if i == InstrumentFuture {
		return InstrumentEtf
	}
	return InstrumentFuture
}

func (i Instrument) String() string {
	switch i {
	case InstrumentFuture:
		return "FUTURE"
	case InstrumentEtf:
		return "ETF"
	default:
		return "UNKNOWN"
	}
}

// Side describes order direction.
type Side uint16

const (
	SideUnknown Side = iota
	SideBuy
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Lifespan describes how long an order rests on the book.
type Lifespan uint16

const (
	LifespanUnknown Lifespan = iota
	LifespanGoodForDay
	LifespanFillAndKill
)

// TopLevelCount is the number of book levels carried per side.
const TopLevelCount = 2

// BookUpdate is the payload for EventBookUpdate. It replaces the whole
// top-of-book snapshot for one instrument.
type BookUpdate struct {
	Instrument Instrument
	Sequence   uint32
	AskPrices  [TopLevelCount]Price
	AskVolumes [TopLevelCount]Volume
	BidPrices  [TopLevelCount]Price
	BidVolumes [TopLevelCount]Volume
}

// TradeTicks is the payload for EventTradeTicks. Same shape as a book
// update; it reports traded levels since the previous tick message.
type TradeTicks struct {
	Instrument Instrument
	Sequence   uint32
	AskPrices  [TopLevelCount]Price
	AskVolumes [TopLevelCount]Volume
	BidPrices  [TopLevelCount]Price
	BidVolumes [TopLevelCount]Volume
}

// OrderStatus is the payload for EventOrderStatus.
type OrderStatus struct {
	ClientOrderID   uint64
	FillVolume      Volume
	RemainingVolume Volume
	Fees            Fee
}

// OrderFilled is the payload for EventOrderFilled.
type OrderFilled struct {
	ClientOrderID uint64
	Price         Price
	Volume        Volume
}

// HedgeFilled is the payload for EventHedgeFilled.
type HedgeFilled struct {
	ClientOrderID uint64
	Price         Price
	Volume        Volume
}

// ErrorNotice is the payload for EventErrorNotice. ClientOrderID is zero
// when the error is not related to a particular order.
type ErrorNotice struct {
	ClientOrderID uint64
	Message       string
}

// InsertCommand asks the gateway to place a new limit order.
type InsertCommand struct {
	ClientOrderID uint64
	Side          Side
	Price         Price
	Volume        Volume
	Lifespan      Lifespan
}

// CancelCommand asks the gateway to pull a resting order.
type CancelCommand struct {
	ClientOrderID uint64
}

// HedgeCommand asks the gateway to trade the future leg at once.
type HedgeCommand struct {
	ClientOrderID uint64
	Side          Side
	Price         Price
	Volume        Volume
}

// AuditAction is the outcome of an audit review.
type AuditAction uint16

const (
	AuditActionUnknown AuditAction = iota
	AuditActionAllow
	AuditActionFlag
)

// AuditReason is a coarse reason code for flagged commands.
type AuditReason uint16

const (
	AuditReasonNone AuditReason = iota
	AuditReasonPositionLimit
	AuditReasonOrderCap
	AuditReasonPriceBand
	AuditReasonVolumeCap
	AuditReasonTickAlignment
	AuditReasonUnknownSide
)

// AuditDecision is the payload for EventAuditDecision.
type AuditDecision struct {
	OrderID    uint64
	Action     AuditAction
	Reason     AuditReason
	Flags      uint16
	Price      Price
	Volume     Volume
	Position   Volume
	OpenOrders uint32
}

func appendScaledInt(buf []byte, value int64, scale int) []byte {
	if scale <= 0 {
		return strconv.AppendInt(buf, value, 10)
	}

	neg := value < 0
	u := uint64(value)
	if neg {
		u = uint64(^value) + 1
	}

	var tmp [32]byte
	digits := strconv.AppendUint(tmp[:0], u, 10)

	if neg {
		buf = append(buf, '-')
	}

	if len(digits) <= scale {
		buf = append(buf, '0', '.')
		for i := 0; i < scale-len(digits); i++ {
			buf = append(buf, '0')
		}
		buf = append(buf, digits...)
		return buf
	}

	idx := len(digits) - scale
	buf = append(buf, digits[:idx]...)
	buf = append(buf, '.')
	buf = append(buf, digits[idx:]...)
	return buf
}
