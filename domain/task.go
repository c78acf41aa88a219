package domain

import "time"

// Task represents a single entry of the task list.
type Task struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Important bool       `json:"important"`
	DueDate   *Date      `json:"dueDate"`
	CreatedAt time.Time  `json:"createdAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Completed
}

// InTrash reports whether the task carries a deletion stamp.
func (t *Task) InTrash() bool {
	return t != nil && t.DeletedAt != nil
}

// HasDueDate reports whether a due date is set. Any due date counts as "someday".
func (t *Task) HasDueDate() bool {
	return t != nil && t.DueDate != nil
}

// IsOverdue reports whether an incomplete task is due before today.
func (t *Task) IsOverdue(today Date) bool {
	if t == nil || t.Completed || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(today)
}

// Clone returns a copy that shares no pointers with the receiver.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	if t.DeletedAt != nil {
		deleted := *t.DeletedAt
		t.DeletedAt = &deleted
	}
	return t
}
