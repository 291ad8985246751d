package constants

import "time"

// Context keys shared between middleware and handlers
const (
	ContextKeyCaller = "caller"
)

// Authentication
const (
	MinPasswordLength = 8
	TokenLifetime     = 20 * time.Minute
)

// Notifications
const (
	// NotificationWindow is how far ahead of a deadline a task starts
	// producing expiry notifications.
	NotificationWindow = 24 * time.Hour
)

// Identity roles
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)
