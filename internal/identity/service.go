package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskmanager/internal/auth"
	"taskmanager/internal/constants"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid token")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// Service is the credential store. It keeps accounts and role grants in its
// own tables, independent from the primary record store.
type Service struct {
	db     *gorm.DB
	secret []byte
}

// NewService creates a credential store over the given database using secret
// to sign tokens.
func NewService(db *gorm.DB, secret string) *Service {
	return &Service{
		db:     db,
		secret: []byte(secret),
	}
}

// Claims are the token claims issued on login.
type Claims struct {
	UserID  uint64 `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// CreateAccount stores a credential record for the given user and grants the
// base role.
func (s *Service) CreateAccount(email, password string, userID uint64) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	account := &Account{
		Email:        email,
		PasswordHash: string(hashedPassword),
		UserID:       userID,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}

		role := &AccountRole{
			UserID:    userID,
			Role:      constants.RoleUser,
			GrantedAt: time.Now(),
		}
		if err := tx.Create(role).Error; err != nil {
			return fmt.Errorf("failed to grant base role: %w", err)
		}

		return nil
	})
}

// DeleteAccountsForUser removes every credential record held by a user.
func (s *Service) DeleteAccountsForUser(userID uint64) error {
	return s.db.Where("user_id = ?", userID).Delete(&Account{}).Error
}

// HasRole reports whether the user's credentials carry the given role.
func (s *Service) HasRole(userID uint64, role string) (bool, error) {
	var count int64
	err := s.db.Model(&AccountRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// TryGrantAdmin grants the admin role unless the user already holds it.
// Idempotent; never revokes anything.
func (s *Service) TryGrantAdmin(userID uint64) error {
	isAdmin, err := s.HasRole(userID, constants.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to check admin role: %w", err)
	}
	if isAdmin {
		return nil
	}

	role := &AccountRole{
		UserID:    userID,
		Role:      constants.RoleAdmin,
		GrantedAt: time.Now(),
	}
	return s.db.Create(role).Error
}

// IssueToken verifies the credentials and returns a signed bearer token.
func (s *Service) IssueToken(email, password string) (string, error) {
	var account Account
	if err := s.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	isAdmin, err := s.HasRole(account.UserID, constants.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("failed to check roles: %w", err)
	}

	now := time.Now()
	claims := Claims{
		UserID:  account.UserID,
		Email:   account.Email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   account.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(constants.TokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a bearer token and returns the caller it identifies.
func (s *Service) ParseToken(tokenString string) (auth.Caller, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return auth.Caller{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return auth.Caller{}, ErrInvalidToken
	}

	return auth.Caller{
		UserID:  claims.UserID,
		IsAdmin: claims.IsAdmin,
	}, nil
}
