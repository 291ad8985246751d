package auth

// Caller identifies the authenticated principal behind a request.
type Caller struct {
	UserID  uint64
	IsAdmin bool
}

// CanAccess reports whether the caller may touch a resource owned by
// ownerUserID. Admins may touch anything; everyone else only their own
// resources. Pure function, no I/O.
func (c Caller) CanAccess(ownerUserID uint64) bool {
	return c.IsAdmin || c.UserID == ownerUserID
}
