package state

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/leadline/crm-system/internal/api/metrics"
	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

// Sequence keys. Each fetch category is staleness-guarded independently;
// per-customer lead fetches get one key per customer id.
const (
	keyCustomers = "customers"
	keyAllLeads  = "all-leads"
)

func keyLeads(customerID string) string { return "leads:" + customerID }

// keyCategory strips the per-resource suffix so metric labels stay bounded.
func keyCategory(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

// Store synchronizes a State with the gateway services.
//
// Every operation follows the same protocol: begin (loading on, error
// cleared), gateway call, complete (merge on success, error string on
// failure). Gateway failures never escape the Store; they become state.
//
// Fetches carry a monotonic sequence number per resource key. When two
// fetches against the same key overlap, only the completion of the latest
// dispatched one is merged; older completions are discarded, so a slow
// stale response can never clobber fresher data. Mutations are never
// discarded.
type Store struct {
	mu       sync.Mutex
	state    State
	inFlight int
	seq      map[string]uint64

	customers ports.CustomerService
	leads     ports.LeadService
	logger    zerolog.Logger
}

func NewStore(customers ports.CustomerService, leads ports.LeadService, logger zerolog.Logger) *Store {
	return &Store{
		state:     newState(),
		seq:       make(map[string]uint64),
		customers: customers,
		leads:     leads,
		logger:    logger,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// FetchCustomers loads one page of customers matching search and replaces
// the customer page plus the filter-wide total.
func (s *Store) FetchCustomers(ctx context.Context, page, limit int, search string) {
	s.dispatch(ctx, keyCustomers, func(ctx context.Context) (action, error) {
		res, err := s.customers.List(ctx, ports.ListCustomersInput{Page: page, Limit: limit, Search: search})
		if err != nil {
			return nil, err
		}
		return customersFetched{customers: res.Items, total: res.Total}, nil
	})
}

// FetchLeads loads one customer's leads into its bucket.
func (s *Store) FetchLeads(ctx context.Context, customerID string) {
	s.dispatch(ctx, keyLeads(customerID), func(ctx context.Context) (action, error) {
		leads, err := s.leads.ListForCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		return leadsFetched{customerID: customerID, leads: leads}, nil
	})
}

// FetchAllLeads loads the flat snapshot used for dashboard aggregation.
func (s *Store) FetchAllLeads(ctx context.Context) {
	s.dispatch(ctx, keyAllLeads, func(ctx context.Context) (action, error) {
		leads, err := s.leads.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return allLeadsFetched{leads: leads}, nil
	})
}

func (s *Store) AddCustomer(ctx context.Context, input ports.CreateCustomerInput) {
	s.dispatch(ctx, "", func(ctx context.Context) (action, error) {
		created, err := s.customers.Create(ctx, input)
		if err != nil {
			return nil, err
		}
		return customerAdded{customer: *created}, nil
	})
}

func (s *Store) UpdateCustomer(ctx context.Context, input ports.UpdateCustomerInput) {
	s.dispatch(ctx, "", func(ctx context.Context) (action, error) {
		updated, err := s.customers.Update(ctx, input)
		if err != nil {
			return nil, err
		}
		return customerUpdated{customer: *updated}, nil
	})
}

func (s *Store) DeleteCustomer(ctx context.Context, input ports.DeleteCustomerInput) {
	s.dispatch(ctx, "", func(ctx context.Context) (action, error) {
		if err := s.customers.Delete(ctx, input); err != nil {
			return nil, err
		}
		return customerDeleted{id: input.ID}, nil
	})
}

func (s *Store) AddLead(ctx context.Context, input ports.CreateLeadInput) {
	s.dispatch(ctx, "", func(ctx context.Context) (action, error) {
		created, err := s.leads.Create(ctx, input)
		if err != nil {
			return nil, err
		}
		return leadAdded{lead: *created}, nil
	})
}

func (s *Store) UpdateLead(ctx context.Context, input ports.UpdateLeadInput) {
	s.dispatch(ctx, "", func(ctx context.Context) (action, error) {
		updated, err := s.leads.Update(ctx, input)
		if err != nil {
			return nil, err
		}
		return leadUpdated{lead: *updated}, nil
	})
}

func (s *Store) DeleteLead(ctx context.Context, input ports.DeleteLeadInput) {
	s.dispatch(ctx, "", func(ctx context.Context) (action, error) {
		removed, err := s.leads.Delete(ctx, input)
		if err != nil {
			return nil, err
		}
		return leadDeleted{leadID: removed.ID, customerID: removed.CustomerID}, nil
	})
}

// dispatch runs the two-phase protocol around one gateway call. key is empty
// for mutations and a resource key for fetches.
func (s *Store) dispatch(ctx context.Context, key string, call func(ctx context.Context) (action, error)) {
	s.mu.Lock()
	s.inFlight++
	var mySeq uint64
	if key != "" {
		s.seq[key]++
		mySeq = s.seq[key]
	}
	s.apply(begin{})
	s.mu.Unlock()

	act, err := call(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--

	if key != "" && mySeq < s.seq[key] {
		// A newer fetch for this key was dispatched while we were waiting;
		// its outcome supersedes ours, success or failure alike.
		s.logger.Debug().Str("key", key).Uint64("seq", mySeq).Msg("discarding stale completion")
		metrics.StoreStaleDropsTotal.WithLabelValues(keyCategory(key)).Inc()
		s.state.Loading = s.inFlight > 0
		return
	}

	if err != nil {
		s.apply(fail{message: err.Error()})
		metrics.StoreDispatchesTotal.WithLabelValues(name(fail{}), "error").Inc()
		return
	}

	s.apply(act)
	metrics.StoreDispatchesTotal.WithLabelValues(name(act), "ok").Inc()
}

// apply must be called with mu held.
func (s *Store) apply(act action) {
	s.state = reduce(s.state, act)
	s.state.Loading = s.inFlight > 0
}

// CustomerLeads returns a copy of one customer's bucket, or nil when the
// bucket has never been fetched.
func (s *Store) CustomerLeads(customerID string) []domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.state.LeadsByCustomer[customerID]
	if !ok {
		return nil
	}
	return append([]domain.Lead(nil), bucket...)
}
