package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/careconnect/careconnect-api/internal/repository"
	"github.com/careconnect/careconnect-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email is already registered")
	ErrPhoneTaken           = errors.New("phone number is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// CaregiverInput carries the caregiver sub-record fields.
type CaregiverInput struct {
	Photo          string
	Gender         string
	CaregivingType string
	HourlyRate     float64
}

// AddressInput carries the mandatory member address fields.
type AddressInput struct {
	HouseNumber string
	Street      string
	Town        string
}

// MemberInput carries the member sub-record fields.
type MemberInput struct {
	HouseRules           string
	DependentDescription string
	Address              AddressInput
}

// RegisterInput represents the information to create a new user, optionally
// with caregiver and/or member roles.
type RegisterInput struct {
	Email              string
	GivenName          string
	Surname            string
	City               string
	PhoneNumber        string
	ProfileDescription string
	Password           string
	Caregiver          *CaregiverInput
	Member             *MemberInput
}

// Register validates every field first, checks uniqueness, then inserts the
// user and its sub-records as a single transaction. Nothing is persisted on
// any failure.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	if err := s.validateRegisterInput(&input); err != nil {
		return nil, err
	}

	if taken, err := s.userRepo.EmailTaken(input.Email, 0); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}
	if taken, err := s.userRepo.PhoneTaken(input.PhoneNumber, 0); err != nil {
		return nil, fmt.Errorf("failed to check phone number: %w", err)
	} else if taken {
		return nil, ErrPhoneTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:              input.Email,
		GivenName:          input.GivenName,
		Surname:            input.Surname,
		City:               input.City,
		PhoneNumber:        input.PhoneNumber,
		ProfileDescription: input.ProfileDescription,
		PasswordHash:       string(hashedPassword),
	}
	if input.Caregiver != nil {
		user.Caregiver = &models.Caregiver{
			Photo:          input.Caregiver.Photo,
			Gender:         input.Caregiver.Gender,
			CaregivingType: models.CaregivingType(input.Caregiver.CaregivingType),
			HourlyRate:     input.Caregiver.HourlyRate,
		}
	}
	if input.Member != nil {
		user.Member = &models.Member{
			HouseRules:           input.Member.HouseRules,
			DependentDescription: input.Member.DependentDescription,
			Address: &models.Address{
				HouseNumber: input.Member.Address.HouseNumber,
				Street:      input.Member.Address.Street,
				Town:        input.Member.Address.Town,
			},
		}
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, translateDuplicate(err)
	}

	return user, nil
}

func (s *AuthService) validateRegisterInput(input *RegisterInput) error {
	input.Email = strings.TrimSpace(input.Email)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)

	if err := validation.Email(input.Email); err != nil {
		return invalid("email", err)
	}
	if strings.TrimSpace(input.GivenName) == "" {
		return &ValidationError{Field: "given_name", Reason: "given name is required"}
	}
	if strings.TrimSpace(input.Surname) == "" {
		return &ValidationError{Field: "surname", Reason: "surname is required"}
	}
	if err := validation.Phone(input.PhoneNumber); err != nil {
		return invalid("phone_number", err)
	}
	if err := validation.Password(input.Password); err != nil {
		return invalid("password", err)
	}
	if input.Caregiver != nil {
		if !models.CaregivingType(input.Caregiver.CaregivingType).Valid() {
			return &ValidationError{Field: "caregiving_type", Reason: "caregiving type must be one of: babysitter, caregiver for elderly, playmate for children"}
		}
		if err := validation.HourlyRate(input.Caregiver.HourlyRate); err != nil {
			return invalid("hourly_rate", err)
		}
	}
	if input.Member != nil {
		addr := input.Member.Address
		if strings.TrimSpace(addr.HouseNumber) == "" {
			return &ValidationError{Field: "house_number", Reason: "house number is required"}
		}
		if strings.TrimSpace(addr.Street) == "" {
			return &ValidationError{Field: "street", Reason: "street is required"}
		}
		if strings.TrimSpace(addr.Town) == "" {
			return &ValidationError{Field: "town", Reason: "town is required"}
		}
	}
	return nil
}

// translateDuplicate maps a storage-level duplicate-key error, the outcome of
// two registrations racing on the same unique index, onto the matching
// uniqueness sentinel.
func translateDuplicate(err error) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return ErrEmailTaken
	case strings.Contains(msg, "phone"):
		return ErrPhoneTaken
	default:
		return err
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user. Legacy rows
// seeded with plaintext passwords are re-hashed in place on first success.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if user.PasswordHash != input.Password {
			return nil, ErrInvalidCredentials
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to upgrade legacy credential: %w", err)
		}
	}

	return user, nil
}

// GetUser retrieves a user with its role sub-records.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Caregiver", "Member", "Member.Address")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Identity resolves the caller identity for a user id.
func (s *AuthService) Identity(id uint64) (Identity, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		UserID:      user.ID,
		IsCaregiver: user.Caregiver != nil,
		IsMember:    user.Member != nil,
	}, nil
}
