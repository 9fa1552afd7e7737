package tasks

import "github.com/mzhadan/pomotrack/internal/server/record"

// Type classifies a task at creation time and never changes afterwards.
type Type string

const (
	TypeTodo        Type = "todo"
	TypeDistraction Type = "distraction"
)

func (t Type) Valid() bool {
	return t == TypeTodo || t == TypeDistraction
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusActive || s == StatusCompleted
}

// Task is a todo or distraction item owned by exactly one user.
type Task struct {
	record.Meta
	Title       string
	Description string
	Type        Type
	Status      Status
}
