package communication

import (
	"errors"

	"dealercrm/internal/domain"
	"dealercrm/internal/events"
	"dealercrm/internal/scope"
	"dealercrm/internal/store"
)

var ErrValidation = errors.New("communication notes required")

type LogRequest struct {
	LeadID  int64  `json:"lead_id" binding:"required"`
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Notes   string `json:"notes" binding:"required"`
	Outcome string `json:"outcome"`
}

// Service appends to the communication log. Entries are immutable: there is
// no update or delete path.
type Service struct {
	store  *store.Store
	notify events.Publisher
}

func NewService(st *store.Store, notify events.Publisher) *Service {
	return &Service{store: st, notify: notify}
}

func (s *Service) List(currentUserID int64) ([]domain.Communication, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	return scope.Communications(s.store.Communications, s.store.Leads, s.store.Users, currentUserID), nil
}

func (s *Service) Log(req *LogRequest) (*domain.Communication, error) {
	if req.Notes == "" {
		events.Failure(s.notify, store.KeyCommunications, "Please enter notes")
		return nil, ErrValidation
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	c := domain.Communication{
		ID:        s.store.NextCommunicationID(),
		LeadID:    req.LeadID,
		Type:      domain.CommType(req.Type),
		Subject:   req.Subject,
		Notes:     req.Notes,
		Outcome:   domain.CommOutcome(req.Outcome),
		CreatedAt: s.store.Now(),
	}

	s.store.Communications = append(s.store.Communications, c)
	if err := s.store.FlushCommunications(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyCommunications, "Communication logged successfully")
	return &c, nil
}
