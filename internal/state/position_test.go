package state

import (
	"path/filepath"
	"testing"

	"main/internal/schema"
)

func TestApplyFillBothLegs(t *testing.T) {
	r := NewPositionReducer()
	if got := r.ApplyFill(schema.InstrumentEtf, schema.SideBuy, 10); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := r.ApplyFill(schema.InstrumentFuture, schema.SideSell, 10); got != -10 {
		t.Fatalf("expected -10, got %d", got)
	}
	if got := r.ApplyFill(schema.InstrumentEtf, schema.SideSell, 4); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
	if r.Count() != 2 {
		t.Fatalf("expected 2 instruments, got %d", r.Count())
	}
}

func TestApplyFillUnknownSideIsNoop(t *testing.T) {
	r := NewPositionReducer()
	r.ApplyFill(schema.InstrumentEtf, schema.SideBuy, 10)
	if got := r.ApplyFill(schema.InstrumentEtf, schema.SideUnknown, 5); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	r := NewPositionReducer()
	r.ApplyFill(schema.InstrumentEtf, schema.SideBuy, 30)
	r.ApplyFill(schema.InstrumentFuture, schema.SideSell, 30)
	snap := r.SnapshotWithMeta(42, 1700000000)

	path := filepath.Join(t.TempDir(), "positions.json")
	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	loaded, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if loaded.LastSeq != 42 || loaded.LastEventTs != 1700000000 {
		t.Fatalf("metadata mismatch: %+v", loaded)
	}
	if err := CompareSnapshots(snap, loaded); err != nil {
		t.Fatalf("compare: %v", err)
	}

	restored := NewPositionReducer()
	restored.ApplySnapshot(loaded)
	if restored.Position(schema.InstrumentEtf) != 30 || restored.Position(schema.InstrumentFuture) != -30 {
		t.Fatalf("restore mismatch: etf=%d future=%d", restored.Position(schema.InstrumentEtf), restored.Position(schema.InstrumentFuture))
	}
}

func TestCompareSnapshotsMismatch(t *testing.T) {
	a := Snapshot{Positions: []PositionEntry{{Instrument: schema.InstrumentEtf, Volume: 10}}}
	b := Snapshot{Positions: []PositionEntry{{Instrument: schema.InstrumentEtf, Volume: 20}}}
	if err := CompareSnapshots(a, b); err == nil {
		t.Fatal("expected mismatch error")
	}
}
