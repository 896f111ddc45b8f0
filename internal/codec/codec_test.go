package codec

import (
	"testing"

	"main/internal/schema"
)

func TestBookUpdateRoundTrip(t *testing.T) {
	book := schema.BookUpdate{
		Instrument: schema.InstrumentEtf,
		Sequence:   91,
		AskPrices:  [schema.TopLevelCount]schema.Price{10100, 10200},
		AskVolumes: [schema.TopLevelCount]schema.Volume{12, 40},
		BidPrices:  [schema.TopLevelCount]schema.Price{9900, 9800},
		BidVolumes: [schema.TopLevelCount]schema.Volume{7, 33},
	}
	buf := EncodeBookUpdate(nil, book)
	if len(buf) != BookUpdatePayloadSize {
		t.Fatalf("unexpected size: %d", len(buf))
	}
	decoded, ok := DecodeBookUpdate(buf)
	if !ok || decoded != book {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
	if _, ok := DecodeBookUpdate(buf[:BookUpdatePayloadSize-1]); ok {
		t.Fatal("expected short buffer to fail")
	}
}

func TestInsertCommandRoundTrip(t *testing.T) {
	cmd := schema.InsertCommand{
		ClientOrderID: 42,
		Side:          schema.SideSell,
		Price:         10300,
		Volume:        10,
		Lifespan:      schema.LifespanGoodForDay,
	}
	decoded, ok := DecodeInsertCommand(EncodeInsertCommand(nil, cmd))
	if !ok || decoded != cmd {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestHedgeCommandRoundTrip(t *testing.T) {
	cmd := schema.HedgeCommand{
		ClientOrderID: 43,
		Side:          schema.SideBuy,
		Price:         2147483600,
		Volume:        10,
	}
	decoded, ok := DecodeHedgeCommand(EncodeHedgeCommand(nil, cmd))
	if !ok || decoded != cmd {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestOrderStatusRoundTrip(t *testing.T) {
	status := schema.OrderStatus{
		ClientOrderID:   7,
		FillVolume:      4,
		RemainingVolume: 6,
		Fees:            -12,
	}
	decoded, ok := DecodeOrderStatus(EncodeOrderStatus(nil, status))
	if !ok || decoded != status {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestAuditDecisionRoundTrip(t *testing.T) {
	decision := schema.AuditDecision{
		OrderID:    9,
		Action:     schema.AuditActionFlag,
		Reason:     schema.AuditReasonPositionLimit,
		Price:      9900,
		Volume:     10,
		Position:   -70,
		OpenOrders: 2,
	}
	decoded, ok := DecodeAuditDecision(EncodeAuditDecision(nil, decision))
	if !ok || decoded != decision {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestErrorNoticeBounds(t *testing.T) {
	notice := schema.ErrorNotice{ClientOrderID: 5, Message: "order rejected: price not aligned"}
	buf := EncodeErrorNotice(nil, notice)
	decoded, ok := DecodeErrorNotice(buf)
	if !ok || decoded != notice {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}

	if _, ok := DecodeErrorNotice(buf[:ErrorNoticeHeaderSize-1]); ok {
		t.Fatal("expected short header to fail")
	}
	if _, ok := DecodeErrorNotice(buf[:len(buf)-1]); ok {
		t.Fatal("expected truncated message to fail")
	}
}

func TestEncodeReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 256)
	out := EncodeBookUpdate(buf, schema.BookUpdate{Instrument: schema.InstrumentFuture})
	if cap(out) != cap(buf) {
		t.Fatal("expected encode to reuse the provided buffer")
	}
}
