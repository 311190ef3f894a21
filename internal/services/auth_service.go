package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktracker/internal/constants"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/utils"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrInvalidRole          = errors.New("role must be admin or member")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrUserIDsExhausted     = errors.New("user identifiers for this year are exhausted")
)

// AuthService handles authentication and user provisioning.
type AuthService struct {
	userRepo repository.UserRepository
	audit    *AuditLogger
	clock    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, audit *AuditLogger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		audit:    audit,
		clock:    time.Now,
	}
}

// SetClock overrides the service's time source (used for testing)
func (s *AuthService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// CreateUserInput represents the information needed to provision a new user.
type CreateUserInput struct {
	Username   string
	Email      string
	Password   string
	Role       models.UserRole
	Contact    string
	Department string
	Location   string
	CreatorID  string
}

// CreateUser provisions a member or admin account with a freshly allocated
// U-identifier. Only admins reach this path; the handler enforces the gate.
func (s *AuthService) CreateUser(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if input.Role == "" {
		input.Role = models.RoleMember
	}
	if input.Role != models.RoleAdmin && input.Role != models.RoleMember {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Status:       models.UserStatusActive,
		Contact:      input.Contact,
		Department:   input.Department,
		Location:     input.Location,
	}

	if err := s.userRepo.Create(user, utils.YearKey(s.clock().UTC())); err != nil {
		if errors.Is(err, repository.ErrSequenceExhausted) {
			return nil, ErrUserIDsExhausted
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Append(input.CreatorID, fmt.Sprintf("Created user %s (%s)", user.Username, user.UserID))

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, ErrUserInactive
	}

	return user, nil
}

// GetUser retrieves a user by business identifier.
func (s *AuthService) GetUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
