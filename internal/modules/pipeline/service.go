package pipeline

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"dealercrm/internal/domain"
	"dealercrm/internal/events"
	"dealercrm/internal/scope"
	"dealercrm/internal/store"
)

// StageColumn is one board column: the stage, its scoped members and count.
type StageColumn struct {
	Stage domain.LeadStatus `json:"stage"`
	Count int               `json:"count"`
	Leads []domain.Lead     `json:"leads"`
}

// Board is the pipeline view-model: per-stage membership plus the derived
// metrics shown above the columns.
type Board struct {
	Stages         []StageColumn `json:"stages"`
	ConversionRate int           `json:"conversion_rate"`
	AvgPipelineAge int           `json:"avg_pipeline_age_days"`
}

type Service struct {
	store  *store.Store
	notify events.Publisher
}

func NewService(st *store.Store, notify events.Publisher) *Service {
	return &Service{store: st, notify: notify}
}

// BuildBoard recomputes stage membership and metrics over the scoped lead
// set for the given user.
func (s *Service) BuildBoard(currentUserID int64) (*Board, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	leads := scope.Leads(s.store.Leads, s.store.Users, currentUserID)

	board := &Board{Stages: make([]StageColumn, 0, len(domain.PipelineStages))}
	for _, stage := range domain.PipelineStages {
		col := StageColumn{Stage: stage, Leads: []domain.Lead{}}
		for _, l := range leads {
			if l.Status == stage {
				col.Leads = append(col.Leads, l)
			}
		}
		col.Count = len(col.Leads)
		board.Stages = append(board.Stages, col)
	}

	won := 0
	for _, l := range leads {
		if l.Status == domain.StatusWon {
			won++
		}
	}
	if len(leads) > 0 {
		board.ConversionRate = int(math.Round(float64(won) / float64(len(leads)) * 100))
	}

	now := s.store.Now()
	totalDays, active := 0, 0
	for _, l := range leads {
		if l.Status.Terminal() {
			continue
		}
		active++
		totalDays += int(now.Sub(l.CreatedAt).Hours() / 24)
	}
	if active > 0 {
		board.AvgPipelineAge = totalDays / active
	}

	return board, nil
}

// Transition moves a lead to a new stage. Same-status moves are no-ops.
// Entering Won stamps closeDate once and never overwrites it; leaving Won
// keeps the close date. Unknown ids are dropped silently (logged, not
// surfaced) since a stale drag payload is not an error the user can act on.
func (s *Service) Transition(leadID int64, newStatus domain.LeadStatus) (*domain.Lead, bool, error) {
	if !newStatus.Valid() {
		log.Printf("pipeline: ignoring transition to unknown stage %q", newStatus)
		return nil, false, nil
	}

	if err := s.store.Reload(); err != nil {
		return nil, false, err
	}

	l := s.store.LeadByID(leadID)
	if l == nil {
		log.Printf("pipeline: ignoring transition for unknown lead %d", leadID)
		return nil, false, nil
	}
	if l.Status == newStatus {
		return l, false, nil
	}

	l.Status = newStatus
	l.UpdatedAt = s.store.Now()
	if newStatus == domain.StatusWon && l.CloseDate == nil {
		now := s.store.Now()
		l.CloseDate = &now
	}

	if err := s.store.FlushLeads(); err != nil {
		return nil, false, err
	}

	msg := fmt.Sprintf("Lead moved to %s", newStatus)
	if newStatus == domain.StatusWon && l.Value != nil {
		msg = fmt.Sprintf("%s - Revenue: %.0f", msg, *l.Value)
	}
	events.Success(s.notify, store.KeyLeads, msg)
	return l, true, nil
}

type dragPayload struct {
	LeadID json.Number `json:"leadId"`
}

// ParseDragPayload extracts the lead id from a drop event: the plain-text id
// first, then the JSON payload as fallback. A payload that parses to nothing
// returns ok=false and the drop is abandoned silently.
func ParseDragPayload(text, jsonData string) (int64, bool) {
	if id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil && id > 0 {
		return id, true
	}

	if jsonData != "" {
		var p dragPayload
		if err := json.Unmarshal([]byte(jsonData), &p); err == nil {
			if id, err := p.LeadID.Int64(); err == nil && id > 0 {
				return id, true
			}
		}
	}

	return 0, false
}
