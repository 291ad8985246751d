package models

import "time"

type TaskState string

const (
	TaskStatePending    TaskState = "PENDING"
	TaskStateInProgress TaskState = "IN_PROGRESS"
	TaskStateDone       TaskState = "DONE"
)

// Task belongs to exactly one user. UserID is set on creation and never
// changes. There is no transition graph on State; updates may set any value.
type Task struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	State     TaskState  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"state"`
	Deadline  *time.Time `json:"deadline"`
	Category  string     `gorm:"type:varchar(255)" json:"category"`
	UserID    uint64     `gorm:"not null" json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Subtasks []Subtask `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
}
