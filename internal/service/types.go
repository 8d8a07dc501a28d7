// Package service defines the backend-agnostic interface for task operations.
package service

import "strings"

// Known categories, stored in Spanish.
const (
	CategoryBuy   = "Comprar"
	CategoryDo    = "Hacer"
	CategoryOther = "Otros"
)

// Priority levels.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// Categories lists the known categories in display order.
var Categories = []string{CategoryBuy, CategoryDo, CategoryOther}

// Task represents a single task item.
type Task struct {
	ID        int64  `json:"id,omitempty"` // 0 until the store assigns one
	Title     string `json:"title"`
	Category  string `json:"category"`
	Priority  int    `json:"priority"`
	Completed bool   `json:"completed"`
}

// Persisted reports whether the store has assigned the task an ID.
func (t Task) Persisted() bool {
	return t.ID > 0
}

// Validate checks the fields a store requires before accepting a new task.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return Rejected("title required")
	}
	return nil
}
