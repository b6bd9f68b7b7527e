package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/core/ports"
)

type recordingProcessor struct {
	mu   sync.Mutex
	seen map[string][]ports.ActivityKind
	n    int
	done chan struct{}
	want int
}

func newRecordingProcessor(want int) *recordingProcessor {
	return &recordingProcessor{seen: map[string][]ports.ActivityKind{}, done: make(chan struct{}), want: want}
}

func (p *recordingProcessor) Process(_ context.Context, a ports.InquiryActivity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen[a.InquiryID] = append(p.seen[a.InquiryID], a.Kind)
	p.n++
	if p.n == p.want {
		close(p.done)
	}
	if a.Kind == ports.ActivityDeleted {
		return fmt.Errorf("boom")
	}
	return nil
}

func TestDispatcher_PreservesPerInquiryOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	order := []ports.ActivityKind{ports.ActivityCreated, ports.ActivityMessage, ports.ActivityStatusChanged, ports.ActivityDeleted}
	inquiries := []string{"inq-a", "inq-b", "inq-c"}

	p := newRecordingProcessor(len(order) * len(inquiries))
	d := NewDispatcher(2, p, zerolog.Nop())
	d.Start(ctx)

	for _, kind := range order {
		for _, id := range inquiries {
			d.Enqueue(ports.InquiryActivity{Kind: kind, InquiryID: id})
		}
	}

	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("activity was not processed in time")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range inquiries {
		got := p.seen[id]
		if len(got) != len(order) {
			t.Fatalf("%s: expected %d records, got %v", id, len(order), got)
		}
		for i := range order {
			if got[i] != order[i] {
				t.Fatalf("%s: out of order: %v", id, got)
			}
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(0, newRecordingProcessor(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	if d.shardIndex("inq-42") != d.shardIndex("inq-42") {
		t.Fatalf("shard index must be deterministic")
	}
}
