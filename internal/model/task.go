package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	StatusCompleted  = "COMPLETED"
	StatusInProgress = "IN_PROGRESS"
)

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	DueDate     *Date     `json:"dueDate"`
	Priority    *string   `json:"priority"`
	AssignedTo  *string   `json:"assignedTo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskRequest is the body of POST and PUT /api/tasks.
type TaskRequest struct {
	Title       string  `json:"title" validate:"required,notblank"`
	Description *string `json:"description"`
	Status      string  `json:"status" validate:"required,notblank"`
	DueDate     *Date   `json:"dueDate"`
	Priority    *string `json:"priority"`
	AssignedTo  *string `json:"assignedTo"`
}

// Apply copies every mutable field of the request onto t.
func (r TaskRequest) Apply(t *Task) {
	t.Title = r.Title
	t.Description = r.Description
	t.Status = r.Status
	t.DueDate = r.DueDate
	t.Priority = r.Priority
	t.AssignedTo = r.AssignedTo
}

const DateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	d.Time = t
	return nil
}
