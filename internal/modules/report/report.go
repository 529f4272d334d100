// Package report derives every dashboard and reporting view from the raw
// collections. All functions here are pure and recomputed on demand; nothing
// is cached. Cross-org reports (funnel, source performance, sales activity,
// team performance) always take the full unfiltered lead set; only the
// dashboards are role-scoped.
package report

import (
	"math"
	"sort"
	"time"

	"dealercrm/internal/domain"
)

func round(x float64) int {
	return int(math.Round(x))
}

// DashboardMetrics are the four cards at the top of the dashboard.
type DashboardMetrics struct {
	TotalLeads     int     `json:"total_leads"`
	ActiveLeads    int     `json:"active_leads"`
	ConversionRate int     `json:"conversion_rate"`
	Revenue        float64 `json:"revenue"`
}

func Metrics(leads []domain.Lead) DashboardMetrics {
	var m DashboardMetrics
	m.TotalLeads = len(leads)

	won := 0
	for _, l := range leads {
		if !l.Status.Terminal() {
			m.ActiveLeads++
		}
		if l.Status == domain.StatusWon {
			won++
			if l.Value != nil {
				m.Revenue += *l.Value
			}
		}
	}
	if m.TotalLeads > 0 {
		m.ConversionRate = round(float64(won) / float64(m.TotalLeads) * 100)
	}
	return m
}

// FunnelStage is one bar of the funnel; DropOff is the percentage lost from
// the previous stage, zero for the first stage and when the previous stage
// was empty.
type FunnelStage struct {
	Stage   domain.LeadStatus `json:"stage"`
	Count   int               `json:"count"`
	DropOff int               `json:"drop_off"`
}

// funnelStages excludes Lost: the funnel tracks progression, not churn.
var funnelStages = []domain.LeadStatus{
	domain.StatusNew, domain.StatusContacted, domain.StatusQualified,
	domain.StatusProposal, domain.StatusNegotiation, domain.StatusWon,
}

func Funnel(leads []domain.Lead) []FunnelStage {
	counts := make(map[domain.LeadStatus]int)
	for _, l := range leads {
		counts[l.Status]++
	}

	out := make([]FunnelStage, 0, len(funnelStages))
	for i, stage := range funnelStages {
		fs := FunnelStage{Stage: stage, Count: counts[stage]}
		if i > 0 {
			prev := counts[funnelStages[i-1]]
			if prev > 0 {
				fs.DropOff = round(float64(prev-fs.Count) / float64(prev) * 100)
			}
		}
		out = append(out, fs)
	}
	return out
}

// SourceRow aggregates one lead source.
type SourceRow struct {
	Source         domain.LeadSource `json:"source"`
	Count          int               `json:"count"`
	Won            int               `json:"won"`
	ConversionRate int               `json:"conversion_rate"`
	Revenue        float64           `json:"revenue"`
}

func SourcePerformance(leads []domain.Lead) []SourceRow {
	bySource := make(map[domain.LeadSource]*SourceRow)
	var order []domain.LeadSource
	for _, l := range leads {
		row, ok := bySource[l.Source]
		if !ok {
			row = &SourceRow{Source: l.Source}
			bySource[l.Source] = row
			order = append(order, l.Source)
		}
		row.Count++
		if l.Status == domain.StatusWon {
			row.Won++
			if l.Value != nil {
				row.Revenue += *l.Value
			}
		}
	}

	out := make([]SourceRow, 0, len(order))
	for _, src := range order {
		row := bySource[src]
		if row.Count > 0 {
			row.ConversionRate = round(float64(row.Won) / float64(row.Count) * 100)
		}
		out = append(out, *row)
	}
	return out
}

// ActivityRow is one line of the sales activity report.
type ActivityRow struct {
	UserID    int64   `json:"user_id"`
	Name      string  `json:"name"`
	Leads     int     `json:"leads"`
	Contacted int     `json:"contacted"`
	Converted int     `json:"converted"`
	Revenue   float64 `json:"revenue"`
}

// SalesActivity reports per-user lead activity over the full collection.
// The seeded administrative account is left out.
func SalesActivity(leads []domain.Lead, users []domain.User) []ActivityRow {
	out := make([]ActivityRow, 0, len(users))
	for _, u := range users {
		if u.Name == "Admin User" {
			continue
		}
		row := ActivityRow{UserID: u.ID, Name: u.Name}
		for _, l := range leads {
			if l.AssignedTo == nil || *l.AssignedTo != u.ID {
				continue
			}
			row.Leads++
			switch l.Status {
			case domain.StatusContacted, domain.StatusQualified, domain.StatusProposal,
				domain.StatusNegotiation, domain.StatusWon:
				row.Contacted++
			}
			if l.Status == domain.StatusWon {
				row.Converted++
				if l.Value != nil {
					row.Revenue += *l.Value
				}
			}
		}
		out = append(out, row)
	}
	return out
}

// TeamRow is one ranked line of the team performance comparison.
type TeamRow struct {
	UserID           int64   `json:"user_id"`
	Name             string  `json:"name"`
	LeadsAssigned    int     `json:"leads_assigned"`
	ContactedPercent int     `json:"contacted_percent"`
	DealsWon         int     `json:"deals_won"`
	ConversionRate   int     `json:"conversion_rate"`
	TotalRevenue     float64 `json:"total_revenue"`
	Rank             int     `json:"rank"`
}

// TeamPerformance ranks every Sales Rep by revenue, deals won, then
// conversion rate. Reps with no leads still appear with zeros.
func TeamPerformance(leads []domain.Lead, users []domain.User) []TeamRow {
	rows := make([]TeamRow, 0, len(users))
	for _, u := range users {
		if u.Role != domain.RoleSalesRep {
			continue
		}
		row := TeamRow{UserID: u.ID, Name: u.Name}
		contacted := 0
		for _, l := range leads {
			if l.AssignedTo == nil || *l.AssignedTo != u.ID {
				continue
			}
			row.LeadsAssigned++
			if l.Status != domain.StatusNew {
				contacted++
			}
			if l.Status == domain.StatusWon {
				row.DealsWon++
				if l.Value != nil {
					row.TotalRevenue += *l.Value
				}
			}
		}
		if row.LeadsAssigned > 0 {
			row.ContactedPercent = round(float64(contacted) / float64(row.LeadsAssigned) * 100)
			row.ConversionRate = round(float64(row.DealsWon) / float64(row.LeadsAssigned) * 100)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalRevenue != rows[j].TotalRevenue {
			return rows[i].TotalRevenue > rows[j].TotalRevenue
		}
		if rows[i].DealsWon != rows[j].DealsWon {
			return rows[i].DealsWon > rows[j].DealsWon
		}
		return rows[i].ConversionRate > rows[j].ConversionRate
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// GreetingBucket returns the salutation for a rep dashboard given the hour.
func GreetingBucket(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 17:
		return "Good evening"
	case h >= 12:
		return "Good afternoon"
	default:
		return "Good morning"
	}
}
