package errors

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned when an authenticated caller is not allowed to act
// on an explicitly named target.
var ErrForbidden = errors.New("access to the resource is forbidden")

// NotFoundError is returned when an entity is absent, or when its existence
// must be hidden from a caller who does not own it.
type NotFoundError struct {
	Entity string
	ID     uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d has not been found", e.Entity, e.ID)
}

// NewNotFound creates a NotFoundError for the given entity kind and id.
func NewNotFound(entity string, id uint64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// UserExistsError is returned when registering an email that an active user
// already holds. Deleted users do not block re-registration.
type UserExistsError struct {
	Email string
}

func (e *UserExistsError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}

// NewUserExists creates a UserExistsError for the given email.
func NewUserExists(email string) *UserExistsError {
	return &UserExistsError{Email: email}
}

// IsUserExists reports whether err is a UserExistsError.
func IsUserExists(err error) bool {
	var ue *UserExistsError
	return errors.As(err, &ue)
}
