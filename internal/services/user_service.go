package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

// CredentialStore is the independent system holding login credentials, keyed
// by user id. Implemented by the identity service.
type CredentialStore interface {
	CreateAccount(email, password string, userID uint64) error
	DeleteAccountsForUser(userID uint64) error
	TryGrantAdmin(userID uint64) error
	HasRole(userID uint64, role string) (bool, error)
}

// UserService handles the user lifecycle. Creating and deactivating a user
// touch both the record store and the credential store; there is no
// transaction spanning the two, only an ordered sequence with a best-effort
// compensating step.
type UserService struct {
	userRepo    repository.UserRepository
	credentials CredentialStore
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, credentials CredentialStore) *UserService {
	return &UserService{
		userRepo:    userRepo,
		credentials: credentials,
	}
}

// CreateUserInput represents the registration contract
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput represents input for updating a user
type UpdateUserInput struct {
	Name string
}

// Create registers a user. The user row is inserted first so the store
// assigns its id, then the credential account is created against that id. If
// the credential store fails, the row is deleted again and the original error
// is returned unchanged. The compensating delete is best effort: if it fails
// too, an orphan user row without credentials remains. There is no retry and
// no outbox.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	exists, err := s.userRepo.ActiveEmailExists(input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.NewUserExists(input.Email)
	}

	user := &models.User{
		Name:  input.Name,
		Email: input.Email,
		State: models.UserStateActive,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.credentials.CreateAccount(input.Email, input.Password, user.ID); err != nil {
		if delErr := s.userRepo.Delete(user); delErr != nil {
			log.Printf("compensating delete of user %d failed: %v", user.ID, delErr)
		}
		return nil, err
	}

	return user, nil
}

// GetAll returns every user that has not been deactivated.
func (s *UserService) GetAll() ([]models.User, error) {
	users, err := s.userRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID returns a user by id.
func (s *UserService) GetByID(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetByEmail returns a user by email, or nil when no such user exists.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Update overwrites the user's mutable fields. Reaching this operation is
// restricted to admins at the route level.
func (s *UserService) Update(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Name = input.Name

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Deactivate marks a user deleted and then removes their credentials. The
// local state change comes first and is authoritative: even if the credential
// deletion fails, the account can no longer be used for task operations, so
// the failure mode leans toward inaccessibility rather than lingering access.
func (s *UserService) Deactivate(id uint64) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("User", id)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.State = models.UserStateDeleted
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	if err := s.credentials.DeleteAccountsForUser(user.ID); err != nil {
		return fmt.Errorf("failed to delete accounts for user %d: %w", user.ID, err)
	}

	return nil
}

// GrantAdminIfNeeded grants the admin role unless the user already holds it.
func (s *UserService) GrantAdminIfNeeded(userID uint64) error {
	if err := s.credentials.TryGrantAdmin(userID); err != nil {
		return fmt.Errorf("failed to grant admin role: %w", err)
	}
	return nil
}
