package testdrive

import (
	"errors"
	"time"

	"dealercrm/internal/domain"
	"dealercrm/internal/events"
	"dealercrm/internal/store"
)

var (
	ErrValidation   = errors.New("required test drive fields missing")
	ErrNotConfirmed = errors.New("delete not confirmed")
)

type SaveRequest struct {
	LeadID     int64     `json:"lead_id" binding:"required"`
	Vehicle    string    `json:"vehicle"`
	Datetime   time.Time `json:"datetime" binding:"required"`
	SalesRepID int64     `json:"sales_rep_id"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
}

type Service struct {
	store  *store.Store
	notify events.Publisher
}

func NewService(st *store.Store, notify events.Publisher) *Service {
	return &Service{store: st, notify: notify}
}

func (s *Service) List() ([]domain.TestDrive, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	return s.store.TestDrives, nil
}

func (s *Service) apply(td *domain.TestDrive, req *SaveRequest, currentUserID int64) {
	td.LeadID = req.LeadID
	td.Vehicle = req.Vehicle
	td.Datetime = req.Datetime
	// The booking rep defaults to whoever is filling the form.
	if req.SalesRepID != 0 {
		td.SalesRepID = req.SalesRepID
	} else {
		td.SalesRepID = currentUserID
	}
	if req.Status != "" {
		td.Status = domain.TestDriveStatus(req.Status)
	} else {
		td.Status = domain.DriveScheduled
	}
	td.Notes = req.Notes
}

func (s *Service) Create(req *SaveRequest, currentUserID int64) (*domain.TestDrive, error) {
	if req.LeadID == 0 || req.Datetime.IsZero() {
		events.Failure(s.notify, store.KeyTestDrives, "Please fill in all required fields")
		return nil, ErrValidation
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	now := s.store.Now()
	td := domain.TestDrive{
		ID:        s.store.NextTestDriveID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.apply(&td, req, currentUserID)

	s.store.TestDrives = append(s.store.TestDrives, td)
	if err := s.store.FlushTestDrives(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyTestDrives, "Test drive saved successfully")
	return &td, nil
}

func (s *Service) Update(id int64, req *SaveRequest, currentUserID int64) (*domain.TestDrive, error) {
	if req.LeadID == 0 || req.Datetime.IsZero() {
		events.Failure(s.notify, store.KeyTestDrives, "Please fill in all required fields")
		return nil, ErrValidation
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	td := s.store.TestDriveByID(id)
	if td == nil {
		return nil, nil
	}

	s.apply(td, req, currentUserID)
	td.UpdatedAt = s.store.Now()

	if err := s.store.FlushTestDrives(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyTestDrives, "Test drive saved successfully")
	return td, nil
}

func (s *Service) Delete(id int64, confirmed bool) (bool, error) {
	if !confirmed {
		return false, ErrNotConfirmed
	}
	if err := s.store.Reload(); err != nil {
		return false, err
	}

	kept := s.store.TestDrives[:0]
	found := false
	for _, td := range s.store.TestDrives {
		if td.ID == id {
			found = true
			continue
		}
		kept = append(kept, td)
	}
	if !found {
		return false, nil
	}
	s.store.TestDrives = kept

	if err := s.store.FlushTestDrives(); err != nil {
		return false, err
	}

	events.Success(s.notify, store.KeyTestDrives, "Test drive deleted successfully")
	return true, nil
}
