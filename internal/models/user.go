package models

import "time"

type UserState string

const (
	UserStateActive  UserState = "active"
	UserStateDeleted UserState = "deleted"
)

// User owns tasks. Users are never removed physically; deactivation flips
// State to deleted and the row stays behind so tasks keep a valid owner
// reference. The only exception is the compensating delete during a failed
// registration, before the user was ever visible.
type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null;index" json:"email"`
	State     UserState `gorm:"type:varchar(20);not null;default:'active'" json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:UserID" json:"tasks,omitempty"`
}
