package memory

import (
	"fmt"
	"time"

	"github.com/leadline/crm-system/internal/core/domain"
)

// Seed is the initial record set injected into a Store.
type Seed struct {
	Users     []domain.User
	Customers []domain.Customer
	Leads     []domain.Lead
}

// DemoSeed returns the deterministic demo data set: two accounts, 25
// customers and a small spread of leads per customer. Deterministic on
// purpose — demo walkthroughs and examples behave the same on every run.
func DemoSeed() Seed {
	users := []domain.User{
		{ID: "1", Name: "Admin User", Email: "admin@test.com", Role: domain.RoleAdmin},
		{ID: "2", Name: "Regular User", Email: "user@test.com", Role: domain.RoleUser},
	}

	customers := make([]domain.Customer, 0, 25)
	for i := 1; i <= 25; i++ {
		customers = append(customers, domain.Customer{
			ID:      fmt.Sprintf("%d", i),
			Name:    fmt.Sprintf("Customer %d", i),
			Email:   fmt.Sprintf("customer%d@example.com", i),
			Phone:   fmt.Sprintf("123-456-78%02d", i-1),
			Company: fmt.Sprintf("Company %d", i),
		})
	}

	base := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)
	var leads []domain.Lead
	for i, c := range customers {
		count := i%3 + 1 // 1..3 leads per customer
		for j := 1; j <= count; j++ {
			leads = append(leads, domain.Lead{
				ID:          fmt.Sprintf("%s-%d", c.ID, j),
				CustomerID:  c.ID,
				Title:       fmt.Sprintf("Opportunity %d for %s", j, c.Name),
				Description: "This is a sample lead description.",
				Status:      domain.LeadStatuses[(i+j)%len(domain.LeadStatuses)],
				Value:       float64(500 + (i*7+j*13)%5000),
				CreatedAt:   base.Add(-time.Duration(i*24+j) * time.Hour),
			})
		}
	}

	return Seed{Users: users, Customers: customers, Leads: leads}
}
