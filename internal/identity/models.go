package identity

import "time"

// Account is a login credential record held separately from the user row it
// belongs to. The two are correlated only by UserID; there is no foreign key
// and no shared transaction between the stores.
type Account struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	UserID       uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountRole grants a role to a user's credentials.
type AccountRole struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	Role      string    `gorm:"primarykey;type:varchar(50)" json:"role"`
	GrantedAt time.Time `json:"granted_at"`
}
