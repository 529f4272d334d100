package domain

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskCompleted TaskStatus = "Completed"
	// TaskOverdue is a derived display status, never stored.
	TaskOverdue TaskStatus = "Overdue"
)

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title" validate:"required"`
	LeadID      int64        `json:"lead_id" validate:"required"`
	DueDate     time.Time    `json:"due_date"`
	Priority    TaskPriority `json:"priority" validate:"required"`
	Status      TaskStatus   `json:"status"`
	AssignedTo  *int64       `json:"assigned_to"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// DisplayStatus maps a pending task past its due date to Overdue.
func (t *Task) DisplayStatus(now time.Time) TaskStatus {
	if t.Status == TaskPending && t.DueDate.Before(now) {
		return TaskOverdue
	}
	return t.Status
}
