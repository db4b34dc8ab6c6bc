package model

import (
	"time"
)

type TaskID string

// Priority is a closed set; anything outside it is dropped at the edges.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Statuses returns the board columns in render order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Task is the sole entity. DueDate is a calendar date (YYYY-MM-DD),
// nil when not set; it marshals to JSON null so the wire shape is stable.
type Task struct {
	ID          TaskID    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Priority    Priority  `json:"priority" bson:"priority"`
	Status      Status    `json:"status" bson:"status"`
	DueDate     *string   `json:"dueDate" bson:"dueDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
