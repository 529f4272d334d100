package task

import (
	"errors"
	"time"

	"dealercrm/internal/domain"
	"dealercrm/internal/events"
	"dealercrm/internal/scope"
	"dealercrm/internal/store"
)

var (
	ErrValidation   = errors.New("required task fields missing")
	ErrNotConfirmed = errors.New("delete not confirmed")
)

type SaveTaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	LeadID      int64     `json:"lead_id" binding:"required"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	Priority    string    `json:"priority" binding:"required"`
	AssignedTo  *int64    `json:"assigned_to"`
	Description string    `json:"description"`
}

// TaskView is a task with its derived display status attached.
type TaskView struct {
	domain.Task
	DisplayStatus domain.TaskStatus `json:"display_status"`
}

type Service struct {
	store  *store.Store
	notify events.Publisher
}

func NewService(st *store.Store, notify events.Publisher) *Service {
	return &Service{store: st, notify: notify}
}

// List returns the scoped tasks with Overdue derived for pending tasks past
// their due date.
func (s *Service) List(currentUserID int64) ([]TaskView, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	tasks := scope.Tasks(s.store.Tasks, s.store.Leads, s.store.Users, currentUserID)
	now := s.store.Now()

	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskView{Task: t, DisplayStatus: t.DisplayStatus(now)})
	}
	return out, nil
}

func validate(req *SaveTaskRequest) error {
	if req.Title == "" || req.LeadID == 0 || req.DueDate.IsZero() || req.Priority == "" {
		return ErrValidation
	}
	return nil
}

func (s *Service) Create(req *SaveTaskRequest) (*domain.Task, error) {
	if err := validate(req); err != nil {
		events.Failure(s.notify, store.KeyTasks, "Please fill in all required fields")
		return nil, err
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	now := s.store.Now()
	t := domain.Task{
		ID:          s.store.NextTaskID(),
		Title:       req.Title,
		LeadID:      req.LeadID,
		DueDate:     req.DueDate,
		Priority:    domain.TaskPriority(req.Priority),
		Status:      domain.TaskPending,
		AssignedTo:  req.AssignedTo,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.store.Tasks = append(s.store.Tasks, t)
	if err := s.store.FlushTasks(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyTasks, "Task saved successfully")
	return &t, nil
}

// Update is a silent no-op for a missing id.
func (s *Service) Update(id int64, req *SaveTaskRequest) (*domain.Task, error) {
	if err := validate(req); err != nil {
		events.Failure(s.notify, store.KeyTasks, "Please fill in all required fields")
		return nil, err
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	t := s.store.TaskByID(id)
	if t == nil {
		return nil, nil
	}

	t.Title = req.Title
	t.LeadID = req.LeadID
	t.DueDate = req.DueDate
	t.Priority = domain.TaskPriority(req.Priority)
	t.AssignedTo = req.AssignedTo
	t.Description = req.Description
	t.UpdatedAt = s.store.Now()

	if err := s.store.FlushTasks(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyTasks, "Task saved successfully")
	return t, nil
}

// ToggleStatus flips a task between Pending and Completed.
func (s *Service) ToggleStatus(id int64) (*domain.Task, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	t := s.store.TaskByID(id)
	if t == nil {
		return nil, nil
	}

	if t.Status == domain.TaskCompleted {
		t.Status = domain.TaskPending
	} else {
		t.Status = domain.TaskCompleted
	}
	t.UpdatedAt = s.store.Now()

	if err := s.store.FlushTasks(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyTasks, "Task updated")
	return t, nil
}

func (s *Service) Delete(id int64, confirmed bool) (bool, error) {
	if !confirmed {
		return false, ErrNotConfirmed
	}
	if err := s.store.Reload(); err != nil {
		return false, err
	}

	kept := s.store.Tasks[:0]
	found := false
	for _, t := range s.store.Tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return false, nil
	}
	s.store.Tasks = kept

	if err := s.store.FlushTasks(); err != nil {
		return false, err
	}

	events.Success(s.notify, store.KeyTasks, "Task deleted successfully")
	return true, nil
}
