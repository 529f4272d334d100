package report

import (
	"strings"

	"dealercrm/internal/domain"
	"dealercrm/internal/scope"
	"dealercrm/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// AdminDashboard is computed over the full collections; it is only shown to
// management roles.
type AdminDashboard struct {
	Metrics         DashboardMetrics `json:"metrics"`
	TeamPerformance []TeamRow        `json:"team_performance"`
}

func (s *Service) AdminDashboard() (*AdminDashboard, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	return &AdminDashboard{
		Metrics:         Metrics(s.store.Leads),
		TeamPerformance: TeamPerformance(s.store.Leads, s.store.Users),
	}, nil
}

// RepDashboard is computed over the rep's scoped slice.
type RepDashboard struct {
	Greeting     string           `json:"greeting"`
	Metrics      DashboardMetrics `json:"metrics"`
	PendingTasks int              `json:"pending_tasks"`
	Alerts       Alerts           `json:"alerts"`
}

func (s *Service) RepDashboard(currentUserID int64) (*RepDashboard, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	leads := scope.Leads(s.store.Leads, s.store.Users, currentUserID)
	tasks := scope.Tasks(s.store.Tasks, s.store.Leads, s.store.Users, currentUserID)

	pending := 0
	for _, t := range tasks {
		if t.Status == domain.TaskPending {
			pending++
		}
	}

	// Test drives follow lead ownership, same as communications.
	var drives []domain.TestDrive
	owned := make(map[int64]struct{}, len(leads))
	for _, l := range leads {
		owned[l.ID] = struct{}{}
	}
	for _, td := range s.store.TestDrives {
		if _, ok := owned[td.LeadID]; ok {
			drives = append(drives, td)
		}
	}

	now := s.store.Now()
	greeting := GreetingBucket(now)
	if u := s.store.UserByID(currentUserID); u != nil && u.Name != "" {
		first := strings.Fields(u.Name)[0]
		greeting += ", " + first + "!"
	}

	return &RepDashboard{
		Greeting:     greeting,
		Metrics:      Metrics(leads),
		PendingTasks: pending,
		Alerts:       BuildAlerts(leads, tasks, s.store.Communications, drives, now),
	}, nil
}

// FunnelReport, SourceReport and ActivityReport always run over the full
// collections regardless of who asks; the scoping asymmetry is deliberate.
func (s *Service) FunnelReport() ([]FunnelStage, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	return Funnel(s.store.Leads), nil
}

func (s *Service) SourceReport() ([]SourceRow, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	return SourcePerformance(s.store.Leads), nil
}

func (s *Service) ActivityReport() ([]ActivityRow, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	return SalesActivity(s.store.Leads, s.store.Users), nil
}

func (s *Service) TeamReport() ([]TeamRow, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	return TeamPerformance(s.store.Leads, s.store.Users), nil
}
