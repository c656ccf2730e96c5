package state

import "github.com/leadline/crm-system/internal/core/domain"

// reduce applies one action to a state and returns the next state. It is
// pure: the input state is never mutated, and shared slices are copied before
// modification. Loading is owned by the Store (it tracks in-flight dispatch
// counts), so no action touches it here.
func reduce(st State, act action) State {
	switch a := act.(type) {
	case begin:
		st.Err = ""
		return st

	case fail:
		st.Err = a.message
		return st

	case customersFetched:
		st.Customers = a.customers
		st.TotalCustomers = a.total
		return st

	case leadsFetched:
		st.LeadsByCustomer = cloneBuckets(st.LeadsByCustomer)
		st.LeadsByCustomer[a.customerID] = a.leads
		return st

	case allLeadsFetched:
		st.AllLeads = a.leads
		return st

	case customerAdded:
		st.Customers = append([]domain.Customer{a.customer}, st.Customers...)
		st.TotalCustomers++
		return st

	case customerUpdated:
		customers := append([]domain.Customer(nil), st.Customers...)
		for i := range customers {
			if customers[i].ID == a.customer.ID {
				customers[i] = a.customer
				break
			}
		}
		st.Customers = customers
		return st

	case customerDeleted:
		customers := make([]domain.Customer, 0, len(st.Customers))
		for _, c := range st.Customers {
			if c.ID != a.id {
				customers = append(customers, c)
			}
		}
		st.Customers = customers
		st.TotalCustomers--
		// The gateway cascades lead deletion, so the bucket is dropped here
		// too rather than left dangling.
		st.LeadsByCustomer = cloneBuckets(st.LeadsByCustomer)
		delete(st.LeadsByCustomer, a.id)
		return st

	case leadAdded:
		st.LeadsByCustomer = cloneBuckets(st.LeadsByCustomer)
		bucket := st.LeadsByCustomer[a.lead.CustomerID]
		st.LeadsByCustomer[a.lead.CustomerID] = append([]domain.Lead{a.lead}, bucket...)
		return st

	case leadUpdated:
		st.LeadsByCustomer = cloneBuckets(st.LeadsByCustomer)
		bucket := append([]domain.Lead(nil), st.LeadsByCustomer[a.lead.CustomerID]...)
		for i := range bucket {
			if bucket[i].ID == a.lead.ID {
				bucket[i] = a.lead
				break
			}
		}
		st.LeadsByCustomer[a.lead.CustomerID] = bucket
		return st

	case leadDeleted:
		st.LeadsByCustomer = cloneBuckets(st.LeadsByCustomer)
		bucket := st.LeadsByCustomer[a.customerID]
		next := make([]domain.Lead, 0, len(bucket))
		for _, l := range bucket {
			if l.ID != a.leadID {
				next = append(next, l)
			}
		}
		st.LeadsByCustomer[a.customerID] = next
		return st

	default:
		return st
	}
}

// cloneBuckets shallow-copies the bucket map so per-customer slices can be
// swapped without mutating the previous state's map.
func cloneBuckets(in map[string][]domain.Lead) map[string][]domain.Lead {
	out := make(map[string][]domain.Lead, len(in))
	for id, bucket := range in {
		out[id] = bucket
	}
	return out
}
