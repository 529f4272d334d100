package target

import (
	"errors"
	"time"

	"dealercrm/internal/domain"
	"dealercrm/internal/events"
	"dealercrm/internal/store"
)

var ErrValidation = errors.New("required target fields missing")

type SaveRequest struct {
	SalesRepID int64     `json:"sales_rep_id" binding:"required"`
	PeriodType string    `json:"period_type" binding:"required"`
	Amount     float64   `json:"amount" binding:"required"`
	StartDate  time.Time `json:"start_date" binding:"required"`
}

// Progress reports a rep's revenue against their target for the period.
// HasTarget is false when no target covers the period; the caller renders
// "no target set" instead of a gauge.
type Progress struct {
	HasTarget bool           `json:"has_target"`
	Target    *domain.Target `json:"target,omitempty"`
	Actual    float64        `json:"actual"`
	Percent   float64        `json:"percent"`
}

type Service struct {
	store  *store.Store
	notify events.Publisher
}

func NewService(st *store.Store, notify events.Publisher) *Service {
	return &Service{store: st, notify: notify}
}

func (s *Service) List() ([]domain.Target, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	return s.store.Targets, nil
}

func (s *Service) find(repID int64, pt domain.PeriodType, period string) *domain.Target {
	for i := range s.store.Targets {
		t := &s.store.Targets[i]
		if t.SalesRepID == repID && t.PeriodType == pt && t.Period == period {
			return t
		}
	}
	return nil
}

// Save upserts on (rep, period type, period): setting a target for a period
// that already has one replaces its amount rather than adding a second row.
func (s *Service) Save(req *SaveRequest) (*domain.Target, error) {
	pt := domain.PeriodType(req.PeriodType)
	if pt != domain.PeriodMonthly && pt != domain.PeriodQuarterly {
		return nil, ErrValidation
	}
	if req.SalesRepID == 0 || req.Amount <= 0 || req.StartDate.IsZero() {
		events.Failure(s.notify, store.KeyTargets, "Please fill in all required fields")
		return nil, ErrValidation
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	period := domain.PeriodKey(req.StartDate, pt)
	if existing := s.find(req.SalesRepID, pt, period); existing != nil {
		existing.Amount = req.Amount
		existing.StartDate = req.StartDate
		if err := s.store.FlushTargets(); err != nil {
			return nil, err
		}
		events.Success(s.notify, store.KeyTargets, "Target updated successfully")
		return existing, nil
	}

	t := domain.Target{
		ID:         s.store.NextTargetID(),
		SalesRepID: req.SalesRepID,
		PeriodType: pt,
		Period:     period,
		Amount:     req.Amount,
		StartDate:  req.StartDate,
		CreatedAt:  s.store.Now(),
	}
	s.store.Targets = append(s.store.Targets, t)
	if err := s.store.FlushTargets(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyTargets, "Target set successfully")
	return &t, nil
}

// TeamRow is one rep's target-vs-actual line for the management view.
type TeamRow struct {
	SalesRepID int64   `json:"sales_rep_id"`
	Name       string  `json:"name"`
	Period     string  `json:"period"`
	Amount     float64 `json:"amount"`
	Actual     float64 `json:"actual"`
	Percent    float64 `json:"percent"`
}

// TeamProgress lists every rep's progress for the period containing asOf.
// Reps without a target for the period are omitted.
func (s *Service) TeamProgress(pt domain.PeriodType, asOf time.Time) ([]TeamRow, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	period := domain.PeriodKey(asOf, pt)
	var rows []TeamRow
	for i := range s.store.Targets {
		t := &s.store.Targets[i]
		if t.PeriodType != pt || t.Period != period {
			continue
		}

		row := TeamRow{SalesRepID: t.SalesRepID, Period: t.Period, Amount: t.Amount}
		if u := s.store.UserByID(t.SalesRepID); u != nil {
			row.Name = u.Name
		}
		row.Actual = s.actualRevenue(t)
		if t.Amount > 0 {
			row.Percent = row.Actual / t.Amount * 100
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Service) actualRevenue(t *domain.Target) float64 {
	start := t.StartDate
	end := domain.PeriodEnd(t.StartDate, t.PeriodType)

	var actual float64
	for _, l := range s.store.Leads {
		if l.Status != domain.StatusWon || l.AssignedTo == nil || *l.AssignedTo != t.SalesRepID {
			continue
		}
		if l.CloseDate == nil || l.Value == nil {
			continue
		}
		if l.CloseDate.Before(start) || l.CloseDate.After(end) {
			continue
		}
		actual += *l.Value
	}
	return actual
}

// ProgressFor computes a rep's progress against the target covering asOf.
// Actual revenue is the sum of Won lead values whose close date falls inside
// the target period, assigned to that rep.
func (s *Service) ProgressFor(repID int64, pt domain.PeriodType, asOf time.Time) (*Progress, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	period := domain.PeriodKey(asOf, pt)
	t := s.find(repID, pt, period)
	if t == nil {
		return &Progress{}, nil
	}

	actual := s.actualRevenue(t)
	percent := 0.0
	if t.Amount > 0 {
		percent = actual / t.Amount * 100
	}
	return &Progress{HasTarget: true, Target: t, Actual: actual, Percent: percent}, nil
}
