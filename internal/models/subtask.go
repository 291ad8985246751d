package models

import "time"

// Subtask carries no owner column of its own. Ownership is resolved through
// the parent task's UserID, which keeps the two from drifting apart.
type Subtask struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	State     TaskState `gorm:"type:varchar(20);not null;default:'PENDING'" json:"state"`
	TaskID    uint64    `gorm:"not null" json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
