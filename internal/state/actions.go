package state

import "github.com/leadline/crm-system/internal/core/domain"

// action is the closed variant set of state transitions. Every transition the
// reducer can perform is one of the types below; the compiler enforces the
// set through the unexported marker method.
type action interface {
	isAction()
}

// begin starts a dispatch: clears the error.
type begin struct{}

// fail completes a dispatch with an error message; no data changes.
type fail struct {
	message string
}

// customersFetched replaces the customer page and the total wholesale.
type customersFetched struct {
	customers []domain.Customer
	total     int
}

// leadsFetched replaces a single customer's bucket, leaving the rest alone.
type leadsFetched struct {
	customerID string
	leads      []domain.Lead
}

// allLeadsFetched replaces the flat dashboard snapshot wholesale.
type allLeadsFetched struct {
	leads []domain.Lead
}

// customerAdded prepends and bumps the total.
type customerAdded struct {
	customer domain.Customer
}

// customerUpdated replaces the matching element in place.
type customerUpdated struct {
	customer domain.Customer
}

// customerDeleted removes the matching element, decrements the total and
// drops the customer's lead bucket.
type customerDeleted struct {
	id string
}

// leadAdded prepends into the owning customer's bucket, creating it if absent.
type leadAdded struct {
	lead domain.Lead
}

// leadUpdated replaces the matching lead within its customer's bucket.
type leadUpdated struct {
	lead domain.Lead
}

// leadDeleted removes the lead from the named customer's bucket.
type leadDeleted struct {
	leadID     string
	customerID string
}

func (begin) isAction()            {}
func (fail) isAction()             {}
func (customersFetched) isAction() {}
func (leadsFetched) isAction()     {}
func (allLeadsFetched) isAction()  {}
func (customerAdded) isAction()    {}
func (customerUpdated) isAction()  {}
func (customerDeleted) isAction()  {}
func (leadAdded) isAction()        {}
func (leadUpdated) isAction()      {}
func (leadDeleted) isAction()      {}

// name returns the metric label for an action.
func name(act action) string {
	switch act.(type) {
	case begin:
		return "begin"
	case fail:
		return "fail"
	case customersFetched:
		return "customers_fetched"
	case leadsFetched:
		return "leads_fetched"
	case allLeadsFetched:
		return "all_leads_fetched"
	case customerAdded:
		return "customer_added"
	case customerUpdated:
		return "customer_updated"
	case customerDeleted:
		return "customer_deleted"
	case leadAdded:
		return "lead_added"
	case leadUpdated:
		return "lead_updated"
	case leadDeleted:
		return "lead_deleted"
	default:
		return "unknown"
	}
}
