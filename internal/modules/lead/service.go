package lead

import (
	"sort"

	"dealercrm/internal/domain"
	"dealercrm/internal/events"
	"dealercrm/internal/pkg/names"
	"dealercrm/internal/scope"
	"dealercrm/internal/store"
)

// Service owns lead CRUD, reassignment and the document checklist.
type Service struct {
	store  *store.Store
	notify events.Publisher
}

func NewService(st *store.Store, notify events.Publisher) *Service {
	return &Service{store: st, notify: notify}
}

// List returns the leads visible to the given user, freshest state first
// reloaded from the adapter.
func (s *Service) List(currentUserID int64) ([]domain.Lead, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	return scope.Leads(s.store.Leads, s.store.Users, currentUserID), nil
}

func (s *Service) Get(id int64) (*domain.Lead, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	l := s.store.LeadByID(id)
	if l == nil {
		return nil, ErrLeadNotFound
	}
	return l, nil
}

func (s *Service) validate(req *SaveLeadRequest) error {
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Source == "" || req.Status == "" {
		return ErrValidation
	}
	if !domain.LeadStatus(req.Status).Valid() {
		return ErrValidation
	}
	return nil
}

// resolveValue backfills the deal value from the chosen vehicle's price when
// the form left it empty.
func (s *Service) resolveValue(req *SaveLeadRequest) *float64 {
	if req.Value != nil {
		return req.Value
	}
	if req.VehicleID != nil {
		if v := s.store.VehicleByID(*req.VehicleID); v != nil {
			price := v.Price
			return &price
		}
	}
	return nil
}

func (s *Service) apply(l *domain.Lead, req *SaveLeadRequest) {
	l.Name = names.Normalize(req.Name)
	l.Email = req.Email
	l.Phone = req.Phone
	l.Company = req.Company
	l.JobTitle = req.JobTitle
	l.Source = domain.LeadSource(req.Source)
	l.Status = domain.LeadStatus(req.Status)
	l.AssignedTo = req.AssignedTo
	l.Value = s.resolveValue(req)
	l.CloseDate = req.CloseDate
	l.VehicleID = req.VehicleID
	if req.VehicleID != nil {
		l.VehicleInterest = ""
	} else {
		l.VehicleInterest = req.VehicleInterest
	}
	if req.TradeIn == "yes" {
		l.TradeIn = "yes"
	} else {
		l.TradeIn = "no"
	}
	l.Timeline = req.Timeline
	l.Notes = req.Notes
}

func (s *Service) Create(req *SaveLeadRequest) (*domain.Lead, error) {
	if err := s.validate(req); err != nil {
		events.Failure(s.notify, store.KeyLeads, "Please fill in all required fields")
		return nil, err
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	now := s.store.Now()
	l := domain.Lead{
		ID:        s.store.NextLeadID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.apply(&l, req)

	s.store.Leads = append(s.store.Leads, l)
	if err := s.store.FlushLeads(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyLeads, "Lead saved successfully")
	return &l, nil
}

// Update is a no-op on a missing id: callers get (nil, nil) and skip the
// toast, mirroring the defensive index guards of the original flows.
func (s *Service) Update(id int64, req *SaveLeadRequest) (*domain.Lead, error) {
	if err := s.validate(req); err != nil {
		events.Failure(s.notify, store.KeyLeads, "Please fill in all required fields")
		return nil, err
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	l := s.store.LeadByID(id)
	if l == nil {
		return nil, nil
	}

	s.apply(l, req)
	l.UpdatedAt = s.store.Now()

	if err := s.store.FlushLeads(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyLeads, "Lead saved successfully")
	return l, nil
}

// Delete removes the lead and cascades its tasks and communications. It only
// proceeds when the caller has confirmed the prompt.
func (s *Service) Delete(id int64, confirmed bool) (bool, error) {
	if !confirmed {
		return false, ErrNotConfirmed
	}
	if err := s.store.Reload(); err != nil {
		return false, err
	}

	kept := s.store.Leads[:0]
	found := false
	for _, l := range s.store.Leads {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return false, nil
	}
	s.store.Leads = kept

	tasks := s.store.Tasks[:0]
	for _, t := range s.store.Tasks {
		if t.LeadID != id {
			tasks = append(tasks, t)
		}
	}
	s.store.Tasks = tasks

	comms := s.store.Communications[:0]
	for _, c := range s.store.Communications {
		if c.LeadID != id {
			comms = append(comms, c)
		}
	}
	s.store.Communications = comms

	if err := s.store.FlushLeads(); err != nil {
		return false, err
	}
	if err := s.store.FlushTasks(); err != nil {
		return false, err
	}
	if err := s.store.FlushCommunications(); err != nil {
		return false, err
	}

	events.Success(s.notify, store.KeyLeads, "Lead deleted successfully")
	return true, nil
}

// Reassign moves the lead to another user and appends to the reassignment
// log. Reassigning to the current owner is rejected.
func (s *Service) Reassign(leadID, toUserID, byUserID int64, reason string) (*domain.Lead, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	l := s.store.LeadByID(leadID)
	if l == nil {
		return nil, ErrLeadNotFound
	}
	if l.AssignedTo != nil && *l.AssignedTo == toUserID {
		return nil, ErrAlreadyAssigned
	}

	from := l.AssignedTo
	l.AssignedTo = &toUserID
	l.UpdatedAt = s.store.Now()

	var by *int64
	if u := s.store.UserByID(byUserID); u != nil {
		by = &u.ID
	}
	l.ReassignmentHistory = append(l.ReassignmentHistory, domain.Reassignment{
		FromUserID:   from,
		ToUserID:     toUserID,
		ReassignedBy: by,
		Reason:       reason,
		Timestamp:    s.store.Now(),
	})

	if err := s.store.FlushLeads(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyLeads, "Lead reassigned")
	return l, nil
}

// SetDocument marks one checklist entry complete or clears it again.
func (s *Service) SetDocument(leadID int64, key string, uploaded bool, byUserID int64) (*domain.Lead, error) {
	valid := false
	for _, k := range domain.DocumentKeys {
		if k == key {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrUnknownDocument
	}

	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	l := s.store.LeadByID(leadID)
	if l == nil {
		return nil, ErrLeadNotFound
	}

	if l.Documents == nil {
		l.Documents = make(map[string]domain.DocumentState)
	}

	state := domain.DocumentState{Uploaded: uploaded}
	if uploaded {
		now := s.store.Now()
		state.CompletedAt = &now
		state.CompletedBy = &byUserID
	}
	l.Documents[key] = state
	l.UpdatedAt = s.store.Now()

	if err := s.store.FlushLeads(); err != nil {
		return nil, err
	}

	msg := "Document marked as complete"
	if !uploaded {
		msg = "Document unchecked"
	}
	events.Success(s.notify, store.KeyLeads, msg)
	return l, nil
}

// Detail assembles the side-panel view: the lead, its communications and test
// drives newest first, and checklist progress.
func (s *Service) Detail(id int64) (*Detail, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	l := s.store.LeadByID(id)
	if l == nil {
		return nil, ErrLeadNotFound
	}

	var comms []domain.Communication
	for _, c := range s.store.Communications {
		if c.LeadID == id {
			comms = append(comms, c)
		}
	}
	sort.Slice(comms, func(i, j int) bool { return comms[i].CreatedAt.After(comms[j].CreatedAt) })

	var drives []domain.TestDrive
	for _, td := range s.store.TestDrives {
		if td.LeadID == id {
			drives = append(drives, td)
		}
	}
	sort.Slice(drives, func(i, j int) bool { return drives[i].Datetime.After(drives[j].Datetime) })

	return &Detail{
		Lead:               *l,
		Communications:     comms,
		TestDrives:         drives,
		DocumentsCollected: l.DocumentsCollected(),
		DocumentsTotal:     len(domain.DocumentKeys),
	}, nil
}

// CleanNames runs the name normalizer over every stored lead, persisting only
// when something changed. Runs once at startup.
func (s *Service) CleanNames() error {
	if err := s.store.Reload(); err != nil {
		return err
	}

	changed := false
	for i := range s.store.Leads {
		cleaned := names.Normalize(s.store.Leads[i].Name)
		if cleaned != s.store.Leads[i].Name {
			s.store.Leads[i].Name = cleaned
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.store.FlushLeads()
}
