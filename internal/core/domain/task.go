package domain

import "time"

// TaskStatus is the lifecycle state of a task within a project.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskDone}

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

// Task belongs to exactly one project and is transitively scoped to that
// project's owning customer.
type Task struct {
	ID          string       `gorm:"primarykey;size:36" json:"id"`
	ProjectID   string       `gorm:"size:36;not null;index" json:"project_id"`
	Project     *Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null" json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Assignee    string       `gorm:"size:120" json:"assignee,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }
