package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store-level sentinels.
var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("store: user not found")
	// ErrDuplicateEmail is returned when an insert violates the unique
	// email index.
	ErrDuplicateEmail = errors.New("store: email already registered")
)

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when the record has no id yet.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserStore provides lookup and creation of user records.
type UserStore struct {
	db *gorm.DB
}

// NormalizeEmail folds an email address to its canonical stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail looks a user up by normalized email.
// Returns ErrNotFound when absent.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: find by email: %w", err)
	}
	return &user, nil
}

// Create inserts a new user. The duplicate check is the insert itself: the
// unique index rejects a second record for the same normalized email
// atomically, closing the race between concurrent registrations.
// Returns ErrDuplicateEmail on violation.
func (s *UserStore) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	user := &User{
		Name:         name,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("store: create user: %w", err)
	}
	return user, nil
}

// FindByID looks a user up by id. Returns ErrNotFound when absent.
func (s *UserStore) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: find by id: %w", err)
	}
	return &user, nil
}
