package domain

import "time"

// ProjectStatus is the lifecycle state of a client project.
type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "PLANNED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
	ProjectCompleted  ProjectStatus = "COMPLETED"
)

// ProjectStatuses lists the valid project statuses, for validation messages.
var ProjectStatuses = []ProjectStatus{ProjectPlanned, ProjectInProgress, ProjectOnHold, ProjectCompleted}

// Project is a client engagement. Every project is owned by exactly one
// customer (ClientID); non-admin access is always scoped to that owner.
type Project struct {
	ID          string        `gorm:"primarykey;size:36" json:"id"`
	ClientID    string        `gorm:"size:36;not null;index" json:"client_id"`
	Client      *User         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Name        string        `gorm:"size:160;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	Budget      float64       `json:"budget"`
	Tasks       []Task        `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// Progress derives task completion as a whole percentage. A project with no
// tasks reports 0. Never stored; recomputed on every read.
func (p *Project) Progress() int {
	if len(p.Tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range p.Tasks {
		if t.Status == TaskDone {
			done++
		}
	}
	return int(float64(done)/float64(len(p.Tasks))*100 + 0.5)
}
