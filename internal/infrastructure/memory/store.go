// Package memory implements the repository ports against a single in-process
// store. The store is an explicit object constructed with injected seed state,
// so tests get isolation by building a fresh instance instead of sharing a
// package-level database. Every operation takes a deep copy on the way out and
// can simulate network latency to exercise loading states in callers.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/leadline/crm-system/internal/core/domain"
)

// Options configures a Store.
type Options struct {
	// Seed is the initial record set. A zero Seed starts empty.
	Seed Seed
	// Latency is the artificial delay applied to every operation before it
	// touches the record set. Zero disables the delay (use in tests).
	Latency time.Duration
}

// Store owns the authoritative record set for customers, leads, users and
// activities. All repositories in this package share one Store.
type Store struct {
	mu sync.RWMutex

	customers  []domain.Customer
	leads      []domain.Lead
	users      []domain.User
	activities []domain.Activity

	nextCustomerID int
	nextUserID     int
	nextActivityID int
	leadSeq        map[string]int // per-customer lead sequence, monotonic

	latency time.Duration
}

// NewStore builds a Store from opts. Seed records are copied in, so the
// caller's slices are never aliased.
func NewStore(opts Options) *Store {
	s := &Store{
		customers: append([]domain.Customer(nil), opts.Seed.Customers...),
		leads:     append([]domain.Lead(nil), opts.Seed.Leads...),
		users:     append([]domain.User(nil), opts.Seed.Users...),
		leadSeq:   make(map[string]int),
		latency:   opts.Latency,
	}

	for _, c := range s.customers {
		if n, err := strconv.Atoi(c.ID); err == nil && n >= s.nextCustomerID {
			s.nextCustomerID = n + 1
		}
	}
	if s.nextCustomerID == 0 {
		s.nextCustomerID = 1
	}

	for _, u := range s.users {
		if n, err := strconv.Atoi(u.ID); err == nil && n >= s.nextUserID {
			s.nextUserID = n + 1
		}
	}
	if s.nextUserID == 0 {
		s.nextUserID = 1
	}

	// Recover per-customer sequences so new ids never collide with seed ids.
	for _, l := range s.leads {
		s.leadSeq[l.CustomerID]++
	}

	s.nextActivityID = 1
	return s
}

// delay simulates network latency. It returns early with the context error
// when the caller gives up before the delay elapses.
func (s *Store) delay(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Store) newCustomerID() string {
	id := strconv.Itoa(s.nextCustomerID)
	s.nextCustomerID++
	return id
}

func (s *Store) newUserID() string {
	id := strconv.Itoa(s.nextUserID)
	s.nextUserID++
	return id
}

// newLeadID combines the owning customer id with a per-customer sequence
// number, e.g. "5-3" for the third lead ever created under customer "5".
func (s *Store) newLeadID(customerID string) string {
	s.leadSeq[customerID]++
	return customerID + "-" + strconv.Itoa(s.leadSeq[customerID])
}

func (s *Store) newActivityID() string {
	id := "act-" + strconv.Itoa(s.nextActivityID)
	s.nextActivityID++
	return id
}
