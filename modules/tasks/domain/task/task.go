package task

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/iota-console/pkg/resource"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

var Statuses = resource.NewStatusSet(StatusTodo, StatusTodo, StatusInProgress, StatusDone)

const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

type Task struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Assignee      string          `json:"assignee"`
	Priority      int             `json:"priority"`
	EstimateHours decimal.Decimal `json:"estimate_hours"`
	// DueDate is YYYY-MM-DD or empty.
	DueDate   string    `json:"due_date"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func New() Task {
	return Task{Status: StatusTodo, Priority: DefaultPriority}
}

// Overdue reports whether an unfinished task is past its due date on day now.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == "" || t.Status == StatusDone {
		return false
	}
	due, err := time.Parse(time.DateOnly, t.DueDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}
