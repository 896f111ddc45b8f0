package bus

import (
	"context"
	"testing"

	"main/internal/schema"
)

func TestTryPublishFullQueue(t *testing.T) {
	q := NewQueue(1)
	if err := q.TryPublish(Event{Header: schema.EventHeader{Seq: 1}}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := q.TryPublish(Event{Header: schema.EventHeader{Seq: 2}}); err != ErrQueueFull {
		t.Fatalf("expected queue full, got %v", err)
	}
	if q.Len() != 1 {
		t.Fatalf("expected one buffered event, got %d", q.Len())
	}
}

func TestPublishAfterCloseFails(t *testing.T) {
	q := NewQueue(4)
	q.Close()
	if err := q.TryPublish(Event{}); err != ErrQueueClosed {
		t.Fatalf("expected queue closed, got %v", err)
	}
}

func TestRunDrainsInOrder(t *testing.T) {
	q := NewQueue(8)
	for seq := uint64(1); seq <= 3; seq++ {
		if err := q.TryPublish(Event{Header: schema.EventHeader{Seq: seq}}); err != nil {
			t.Fatalf("publish %d: %v", seq, err)
		}
	}
	q.Close()

	var got []uint64
	q.Run(context.Background(), func(e Event) {
		got = append(got, e.Header.Seq)
	})
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected order: %v", got)
	}
}
