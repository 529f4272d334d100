package store

import (
	"encoding/json"
	"strconv"
	"time"

	"dealercrm/internal/domain"
)

// Collection names under which the adapter keeps each document.
const (
	KeyLeads          = "leads"
	KeyTasks          = "tasks"
	KeyCommunications = "communications"
	KeyTestDrives     = "test-drives"
	KeyVehicles       = "vehicles"
	KeyUsers          = "users"
	KeyTargets        = "targets"
	KeyCurrentUser    = "current-user-id"
)

// Store owns the in-memory collections. The adapter holds the durable copy;
// the in-memory slices are a cache that Reload refreshes before any
// read-then-scope operation. Every mutation flushes its collection back
// through the adapter.
type Store struct {
	adapter Adapter

	// Now is the clock for createdAt/updatedAt/closeDate and overdue checks.
	Now func() time.Time

	Leads          []domain.Lead
	Tasks          []domain.Task
	Communications []domain.Communication
	TestDrives     []domain.TestDrive
	Vehicles       []domain.Vehicle
	Users          []domain.User
	Targets        []domain.Target

	CurrentUserID int64
}

func New(adapter Adapter) *Store {
	return &Store{adapter: adapter, Now: time.Now, CurrentUserID: 1}
}

func loadInto[T any](a Adapter, name string, dst *[]T) error {
	doc, err := a.Load(name)
	if err != nil {
		return err
	}
	if doc == nil {
		*dst = nil
		return nil
	}
	return json.Unmarshal(doc, dst)
}

// Reload replaces every in-memory collection with the persisted state.
func (s *Store) Reload() error {
	if err := loadInto(s.adapter, KeyLeads, &s.Leads); err != nil {
		return err
	}
	if err := loadInto(s.adapter, KeyTasks, &s.Tasks); err != nil {
		return err
	}
	if err := loadInto(s.adapter, KeyCommunications, &s.Communications); err != nil {
		return err
	}
	if err := loadInto(s.adapter, KeyTestDrives, &s.TestDrives); err != nil {
		return err
	}
	if err := loadInto(s.adapter, KeyVehicles, &s.Vehicles); err != nil {
		return err
	}
	if err := loadInto(s.adapter, KeyUsers, &s.Users); err != nil {
		return err
	}
	if err := loadInto(s.adapter, KeyTargets, &s.Targets); err != nil {
		return err
	}

	doc, err := s.adapter.Load(KeyCurrentUser)
	if err != nil {
		return err
	}
	if doc != nil {
		if id, err := strconv.ParseInt(string(doc), 10, 64); err == nil {
			s.CurrentUserID = id
		}
	}
	return nil
}

func (s *Store) flush(name string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.adapter.Save(name, doc)
}

func (s *Store) FlushLeads() error          { return s.flush(KeyLeads, s.Leads) }
func (s *Store) FlushTasks() error          { return s.flush(KeyTasks, s.Tasks) }
func (s *Store) FlushCommunications() error { return s.flush(KeyCommunications, s.Communications) }
func (s *Store) FlushTestDrives() error     { return s.flush(KeyTestDrives, s.TestDrives) }
func (s *Store) FlushVehicles() error       { return s.flush(KeyVehicles, s.Vehicles) }
func (s *Store) FlushUsers() error          { return s.flush(KeyUsers, s.Users) }
func (s *Store) FlushTargets() error        { return s.flush(KeyTargets, s.Targets) }

// SetCurrentUser persists the active user id (the role-switch state).
func (s *Store) SetCurrentUser(id int64) error {
	s.CurrentUserID = id
	return s.adapter.Save(KeyCurrentUser, []byte(strconv.FormatInt(id, 10)))
}

// CurrentUser resolves the active user. A stale or missing id falls back to
// the first Admin-role user; if there is none the second result is false and
// scoped reads stay unfiltered.
func (s *Store) CurrentUser() (*domain.User, bool) {
	if u := s.UserByID(s.CurrentUserID); u != nil {
		return u, true
	}
	for i := range s.Users {
		if s.Users[i].Role == domain.RoleAdmin {
			return &s.Users[i], true
		}
	}
	return nil, false
}

func (s *Store) UserByID(id int64) *domain.User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

func (s *Store) LeadByID(id int64) *domain.Lead {
	for i := range s.Leads {
		if s.Leads[i].ID == id {
			return &s.Leads[i]
		}
	}
	return nil
}

func (s *Store) TaskByID(id int64) *domain.Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

func (s *Store) TestDriveByID(id int64) *domain.TestDrive {
	for i := range s.TestDrives {
		if s.TestDrives[i].ID == id {
			return &s.TestDrives[i]
		}
	}
	return nil
}

func (s *Store) VehicleByID(id int64) *domain.Vehicle {
	for i := range s.Vehicles {
		if s.Vehicles[i].ID == id {
			return &s.Vehicles[i]
		}
	}
	return nil
}

func (s *Store) TargetByID(id int64) *domain.Target {
	for i := range s.Targets {
		if s.Targets[i].ID == id {
			return &s.Targets[i]
		}
	}
	return nil
}

// Next ids are derived from the current max, not a monotonic counter: after
// deleting the max-id row the id is handed out again.
func (s *Store) NextLeadID() int64 {
	var max int64
	for i := range s.Leads {
		if s.Leads[i].ID > max {
			max = s.Leads[i].ID
		}
	}
	return max + 1
}

func (s *Store) NextTaskID() int64 {
	var max int64
	for i := range s.Tasks {
		if s.Tasks[i].ID > max {
			max = s.Tasks[i].ID
		}
	}
	return max + 1
}

func (s *Store) NextCommunicationID() int64 {
	var max int64
	for i := range s.Communications {
		if s.Communications[i].ID > max {
			max = s.Communications[i].ID
		}
	}
	return max + 1
}

func (s *Store) NextTestDriveID() int64 {
	var max int64
	for i := range s.TestDrives {
		if s.TestDrives[i].ID > max {
			max = s.TestDrives[i].ID
		}
	}
	return max + 1
}

func (s *Store) NextVehicleID() int64 {
	var max int64
	for i := range s.Vehicles {
		if s.Vehicles[i].ID > max {
			max = s.Vehicles[i].ID
		}
	}
	return max + 1
}

func (s *Store) NextUserID() int64 {
	var max int64
	for i := range s.Users {
		if s.Users[i].ID > max {
			max = s.Users[i].ID
		}
	}
	return max + 1
}

func (s *Store) NextTargetID() int64 {
	var max int64
	for i := range s.Targets {
		if s.Targets[i].ID > max {
			max = s.Targets[i].ID
		}
	}
	return max + 1
}
