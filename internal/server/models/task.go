package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// Priority is the stored task priority.
type Priority string

const (
	PriorityBaixa Priority = "baixa"
	PriorityMedia Priority = "media"
	PriorityAlta  Priority = "alta"
)

// DefaultPriority is applied when a task is created without one.
const DefaultPriority = PriorityBaixa

var priorityAliases = map[string]Priority{
	"baixa":  PriorityBaixa,
	"media":  PriorityMedia,
	"média":  PriorityMedia,
	"alta":   PriorityAlta,
	"low":    PriorityBaixa,
	"medium": PriorityMedia,
	"high":   PriorityAlta,
}

// ParsePriority maps s (Portuguese or English, any case) to a Priority.
// Unknown values fail with common.ErrorValidation.
func ParsePriority(s string) (Priority, error) {
	p, ok := priorityAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: prioridade deve ser baixa, media ou alta", common.ErrorValidation)
	}
	return p, nil
}

// Valid reports whether p is one of the stored enumeration values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityBaixa, PriorityMedia, PriorityAlta:
		return true
	}
	return false
}

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          int64
	UserID      int64
	Description string
	Completed   bool
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Description *string
	Priority    *Priority
	Completed   *bool
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Description == nil && p.Priority == nil && p.Completed == nil
}

// Apply copies the present fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
