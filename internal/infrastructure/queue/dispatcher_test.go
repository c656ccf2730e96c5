package queue

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

type capturingService struct {
	mu     sync.Mutex
	events []ports.ActivityInput
}

func (s *capturingService) Process(_ context.Context, event ports.ActivityInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *capturingService) ListForCustomer(context.Context, string) ([]domain.Activity, error) {
	return nil, nil
}

func (s *capturingService) snapshot() []ports.ActivityInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.ActivityInput(nil), s.events...)
}

func waitFor(t *testing.T, n int, svc *capturingService) []ports.ActivityInput {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if events := svc.snapshot(); len(events) >= n {
			return events
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, got %d", n, len(svc.snapshot()))
	return nil
}

func TestDispatcher_ProcessesRecordedEvents(t *testing.T) {
	svc := &capturingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(ports.ActivityInput{CustomerID: "7", Action: domain.ActionCreated})
	d.Record(ports.ActivityInput{CustomerID: "8", Action: domain.ActionDeleted})

	events := waitFor(t, 2, svc)
	seen := map[string]bool{}
	for _, ev := range events {
		seen[ev.CustomerID] = true
	}
	if !seen["7"] || !seen["8"] {
		t.Fatalf("missing events: %+v", events)
	}
}

func TestDispatcher_PerCustomerOrdering(t *testing.T) {
	svc := &capturingService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const perCustomer = 50
	for i := 0; i < perCustomer; i++ {
		d.Record(ports.ActivityInput{CustomerID: "7", EntityID: strconv.Itoa(i)})
		d.Record(ports.ActivityInput{CustomerID: "8", EntityID: strconv.Itoa(i)})
	}

	events := waitFor(t, 2*perCustomer, svc)

	last := map[string]int{"7": -1, "8": -1}
	for _, ev := range events {
		n, _ := strconv.Atoi(ev.EntityID)
		if n <= last[ev.CustomerID] {
			t.Fatalf("ordering violated for customer %s: %d after %d", ev.CustomerID, n, last[ev.CustomerID])
		}
		last[ev.CustomerID] = n
	}
}

func TestDispatcher_SameCustomerAlwaysSameWorker(t *testing.T) {
	d := NewDispatcher(4, &capturingService{}, zerolog.Nop())

	first := d.shardIndex("customer-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("customer-42"); got != first {
			t.Fatalf("shard index must be deterministic: got %d then %d", first, got)
		}
	}
}
