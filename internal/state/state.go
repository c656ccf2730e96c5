// Package state implements the client-side state container that keeps
// UI-visible CRM data synchronized with the gateway services. It follows a
// reducer pattern: a closed set of actions, a pure transition function, and a
// Store that runs the two-phase dispatch protocol (begin, gateway call,
// complete) around every operation.
package state

import "github.com/leadline/crm-system/internal/core/domain"

// State is the full UI-visible snapshot.
//
// TotalCustomers always reflects the number of customers matching the last
// search term sent to the gateway, independent of pagination. LeadsByCustomer
// buckets are populated lazily per customer and never evicted while the
// customer exists.
type State struct {
	Customers       []domain.Customer
	TotalCustomers  int
	LeadsByCustomer map[string][]domain.Lead
	AllLeads        []domain.Lead
	// Loading is true while at least one dispatch is in flight.
	Loading bool
	// Err holds the message of the most recent failed dispatch. It is
	// cleared atomically with the begin phase of the next dispatch.
	Err string
}

func newState() State {
	return State{LeadsByCustomer: make(map[string][]domain.Lead)}
}

// clone deep-copies the state so callers can never alias Store internals.
func (st State) clone() State {
	out := st
	out.Customers = append([]domain.Customer(nil), st.Customers...)
	out.AllLeads = append([]domain.Lead(nil), st.AllLeads...)
	out.LeadsByCustomer = make(map[string][]domain.Lead, len(st.LeadsByCustomer))
	for id, bucket := range st.LeadsByCustomer {
		out.LeadsByCustomer[id] = append([]domain.Lead(nil), bucket...)
	}
	return out
}
