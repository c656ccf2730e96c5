package state

import "github.com/leadline/crm-system/internal/core/domain"

// FilterAll is the sentinel status that disables lead status filtering.
const FilterAll domain.LeadStatus = "All"

// PageInfo is the view-facing pagination summary for one page of results.
// Pages are 1-indexed; RangeStart/RangeEnd is the 1-indexed display range
// ("showing 11–20 of 25"), both zero when there are no results.
type PageInfo struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	RangeStart int
	RangeEnd   int
	HasPrev    bool
	HasNext    bool
}

// NewPageInfo computes the pagination summary for page/limit over total
// matching records. HasNext is false on the last page and when there are no
// pages at all; HasPrev is false on page 1.
func NewPageInfo(page, limit, total int) PageInfo {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	totalPages := (total + limit - 1) / limit

	info := PageInfo{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    totalPages > 0 && page < totalPages,
	}

	if total == 0 {
		return info
	}

	info.RangeStart = (page-1)*limit + 1
	info.RangeEnd = page * limit
	if info.RangeEnd > total {
		info.RangeEnd = total
	}
	if info.RangeStart > total {
		info.RangeStart = 0
		info.RangeEnd = 0
	}
	return info
}

// FilterByStatus returns leads whose status matches exactly, or the input
// unchanged for the FilterAll sentinel. Pure; the returned slice is freshly
// allocated unless status is FilterAll.
func FilterByStatus(leads []domain.Lead, status domain.LeadStatus) []domain.Lead {
	if status == FilterAll {
		return leads
	}
	out := make([]domain.Lead, 0, len(leads))
	for _, l := range leads {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out
}

// DashboardMetrics aggregates the flat lead snapshot by status.
type DashboardMetrics struct {
	TotalLeads    int
	TotalValue    float64
	CountByStatus map[domain.LeadStatus]int
	ValueByStatus map[domain.LeadStatus]float64
	// ConversionRate is count(Converted)/total*100, defined as 0 when there
	// are no leads.
	ConversionRate float64
}

// Aggregate groups leads by status into counts and summed values and computes
// the conversion rate.
func Aggregate(leads []domain.Lead) DashboardMetrics {
	m := DashboardMetrics{
		CountByStatus: make(map[domain.LeadStatus]int),
		ValueByStatus: make(map[domain.LeadStatus]float64),
	}
	for _, l := range leads {
		m.CountByStatus[l.Status]++
		m.ValueByStatus[l.Status] += l.Value
		m.TotalValue += l.Value
	}
	m.TotalLeads = len(leads)
	if m.TotalLeads > 0 {
		m.ConversionRate = float64(m.CountByStatus[domain.StatusConverted]) / float64(m.TotalLeads) * 100
	}
	return m
}
