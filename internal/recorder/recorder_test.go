package recorder

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"main/internal/codec"
	"main/internal/schema"
)

func appendAll(t *testing.T, w *Writer, events []struct {
	header  schema.EventHeader
	payload []byte
}) {
	t.Helper()
	for _, e := range events {
		if err := w.TryAppend(e.header, e.payload); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig(dir)
	cfg.CopyPayload = true
	w, err := NewWriter(cfg)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	book := schema.BookUpdate{
		Instrument: schema.InstrumentEtf,
		Sequence:   7,
		AskPrices:  [schema.TopLevelCount]schema.Price{10100, 10200},
		AskVolumes: [schema.TopLevelCount]schema.Volume{5, 9},
		BidPrices:  [schema.TopLevelCount]schema.Price{9900, 9800},
		BidVolumes: [schema.TopLevelCount]schema.Volume{4, 8},
	}
	cmd := schema.InsertCommand{
		ClientOrderID: 1,
		Side:          schema.SideBuy,
		Price:         9950,
		Volume:        10,
		Lifespan:      schema.LifespanGoodForDay,
	}

	events := []struct {
		header  schema.EventHeader
		payload []byte
	}{
		{schema.NewHeader(schema.EventBookUpdate, schema.SourceFeed, 1, 100, 101), codec.EncodeBookUpdate(nil, book)},
		{schema.NewHeader(schema.EventInsertCommand, schema.SourceStrategy, 2, 102, 102), codec.EncodeInsertCommand(nil, cmd)},
	}
	appendAll(t, w, events)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "wal-*.wal"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one segment, got %v (%v)", files, err)
	}
	file, err := os.Open(files[0])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	r := NewReader(file, ReaderOptions{})

	header, payload, err := r.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if header.Type != schema.EventBookUpdate || header.Seq != 1 {
		t.Fatalf("unexpected first header: %+v", header)
	}
	decodedBook, ok := codec.DecodeBookUpdate(payload)
	if !ok || decodedBook != book {
		t.Fatalf("book mismatch: %+v", decodedBook)
	}

	header, payload, err = r.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if header.Type != schema.EventInsertCommand {
		t.Fatalf("unexpected second header: %+v", header)
	}
	decodedCmd, ok := codec.DecodeInsertCommand(payload)
	if !ok || decodedCmd != cmd {
		t.Fatalf("command mismatch: %+v", decodedCmd)
	}

	if _, _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReaderDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(DefaultConfig(dir))
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	header := schema.NewHeader(schema.EventCancelCommand, schema.SourceStrategy, 1, 10, 10)
	if err := w.TryAppend(header, codec.EncodeCancelCommand(nil, schema.CancelCommand{ClientOrderID: 3})); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, _ := filepath.Glob(filepath.Join(dir, "wal-*.wal"))
	if len(files) != 1 {
		t.Fatalf("expected one segment, got %v", files)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	data[recordHeaderSize] ^= 0xFF
	corrupted := filepath.Join(dir, "wal-corrupt.wal")
	if err := os.WriteFile(corrupted, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	file, err := os.Open(corrupted)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()
	if _, _, err := NewReader(file, ReaderOptions{}).Next(); err != ErrChecksumMismatch {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestPlaybackFiltersTypes(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(DefaultConfig(dir))
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	events := []struct {
		header  schema.EventHeader
		payload []byte
	}{
		{schema.NewHeader(schema.EventBookUpdate, schema.SourceFeed, 1, 100, 100), codec.EncodeBookUpdate(nil, schema.BookUpdate{Instrument: schema.InstrumentFuture})},
		{schema.NewHeader(schema.EventInsertCommand, schema.SourceStrategy, 2, 101, 101), codec.EncodeInsertCommand(nil, schema.InsertCommand{ClientOrderID: 1})},
		{schema.NewHeader(schema.EventBookUpdate, schema.SourceFeed, 3, 102, 102), codec.EncodeBookUpdate(nil, schema.BookUpdate{Instrument: schema.InstrumentEtf})},
	}
	appendAll(t, w, events)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	pb, err := NewPlayback(PlaybackConfig{
		Dir:   dir,
		Types: []schema.EventType{schema.EventBookUpdate},
	})
	if err != nil {
		t.Fatalf("new playback: %v", err)
	}
	var seqs []uint64
	err = pb.Run(context.Background(), func(header schema.EventHeader, payload []byte) error {
		if header.Type != schema.EventBookUpdate {
			t.Fatalf("filter leaked type %d", header.Type)
		}
		seqs = append(seqs, header.Seq)
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(seqs) != 2 || seqs[0] != 1 || seqs[1] != 3 {
		t.Fatalf("unexpected sequences: %v", seqs)
	}
}
