package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/careconnect/careconnect-api/internal/repository"
	"github.com/careconnect/careconnect-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrCaregiverNotFound = errors.New("caregiver not found")
	ErrHasDependents     = errors.New("cannot delete, related records exist")
	ErrMemberOnly        = errors.New("only members may search the caregiver directory")
)

// UserService provides profile, listing and role-management logic.
type UserService struct {
	userRepo repository.UserRepository
	cgRepo   repository.CaregiverRepository
	apptRepo repository.AppointmentRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, cgRepo repository.CaregiverRepository, apptRepo repository.AppointmentRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		cgRepo:   cgRepo,
		apptRepo: apptRepo,
	}
}

// ListUsers returns users matching the filter.
func (s *UserService) ListUsers(filter repository.UserFilter) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// CaregiverProfile is a caregiver profile with the visibility decision made.
type CaregiverProfile struct {
	Caregiver   *models.Caregiver
	ShowContact bool
}

// GetCaregiverProfile loads a caregiver profile. Contact details are shown to
// a member only when an accepted appointment links the two, and always to the
// caregiver themselves.
func (s *UserService) GetCaregiverProfile(viewer Identity, caregiverID uint64) (*CaregiverProfile, error) {
	cg, err := s.cgRepo.FindByID(caregiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaregiverNotFound
		}
		return nil, fmt.Errorf("failed to find caregiver: %w", err)
	}

	showContact := false
	switch {
	case viewer.IsCaregiver && viewer.UserID == caregiverID:
		showContact = true
	case viewer.IsMember:
		accepted, err := s.apptRepo.HasAcceptedBetween(viewer.UserID, caregiverID)
		if err != nil {
			return nil, fmt.Errorf("failed to check accepted appointments: %w", err)
		}
		showContact = accepted
	}

	return &CaregiverProfile{Caregiver: cg, ShowContact: showContact}, nil
}

// SearchCaregivers queries the caregiver directory. Only an authenticated
// member identity may search.
func (s *UserService) SearchCaregivers(viewer Identity, filter repository.CaregiverFilter) ([]models.Caregiver, error) {
	if !viewer.IsMember {
		return nil, ErrMemberOnly
	}
	caregivers, err := s.cgRepo.Search(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search caregivers: %w", err)
	}
	return caregivers, nil
}

// UpdateUserInput represents an edit to an existing user. A nil Caregiver or
// Member toggles that role off; a non-nil one creates or updates it.
type UpdateUserInput struct {
	ID                 uint64
	Email              string
	GivenName          string
	Surname            string
	City               string
	PhoneNumber        string
	ProfileDescription string
	Caregiver          *CaregiverInput
	Member             *MemberInput
}

// UpdateUser edits profile fields and toggles sub-roles. Email and phone
// uniqueness are re-checked only when the value actually changes.
func (s *UserService) UpdateUser(input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(input.ID, "Caregiver", "Member", "Member.Address")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	input.Email = strings.TrimSpace(input.Email)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)

	if input.Email != user.Email {
		if err := validation.Email(input.Email); err != nil {
			return nil, invalid("email", err)
		}
		taken, err := s.userRepo.EmailTaken(input.Email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}
	if input.PhoneNumber != user.PhoneNumber {
		if err := validation.Phone(input.PhoneNumber); err != nil {
			return nil, invalid("phone_number", err)
		}
		taken, err := s.userRepo.PhoneTaken(input.PhoneNumber, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check phone number: %w", err)
		}
		if taken {
			return nil, ErrPhoneTaken
		}
	}

	if err := s.applyCaregiverToggle(user, input.Caregiver); err != nil {
		return nil, err
	}
	if err := s.applyMemberToggle(user, input.Member); err != nil {
		return nil, err
	}

	user.Email = input.Email
	user.GivenName = input.GivenName
	user.Surname = input.Surname
	user.City = input.City
	user.PhoneNumber = input.PhoneNumber
	user.ProfileDescription = input.ProfileDescription

	if err := s.userRepo.Update(user); err != nil {
		return nil, translateDuplicate(err)
	}

	return s.GetUser(user.ID)
}

func (s *UserService) applyCaregiverToggle(user *models.User, input *CaregiverInput) error {
	switch {
	case input != nil:
		if !models.CaregivingType(input.CaregivingType).Valid() {
			return &ValidationError{Field: "caregiving_type", Reason: "caregiving type must be one of: babysitter, caregiver for elderly, playmate for children"}
		}
		if err := validation.HourlyRate(input.HourlyRate); err != nil {
			return invalid("hourly_rate", err)
		}
		cg := &models.Caregiver{
			UserID:         user.ID,
			Photo:          input.Photo,
			Gender:         input.Gender,
			CaregivingType: models.CaregivingType(input.CaregivingType),
			HourlyRate:     input.HourlyRate,
		}
		if user.Caregiver == nil {
			if err := s.userRepo.SetCaregiver(cg); err != nil {
				return fmt.Errorf("failed to add caregiver role: %w", err)
			}
		} else {
			user.Caregiver.Photo = cg.Photo
			user.Caregiver.Gender = cg.Gender
			user.Caregiver.CaregivingType = cg.CaregivingType
			user.Caregiver.HourlyRate = cg.HourlyRate
			if err := s.cgRepo.Update(user.Caregiver); err != nil {
				return fmt.Errorf("failed to update caregiver role: %w", err)
			}
		}
	case user.Caregiver != nil:
		if err := s.userRepo.RemoveCaregiver(user.ID); err != nil {
			return fmt.Errorf("failed to remove caregiver role: %w", err)
		}
		user.Caregiver = nil
	}
	return nil
}

func (s *UserService) applyMemberToggle(user *models.User, input *MemberInput) error {
	switch {
	case input != nil:
		addr := input.Address
		if strings.TrimSpace(addr.HouseNumber) == "" || strings.TrimSpace(addr.Street) == "" || strings.TrimSpace(addr.Town) == "" {
			return &ValidationError{Field: "address", Reason: "house number, street and town are required"}
		}
		a := &models.Address{
			HouseNumber: addr.HouseNumber,
			Street:      addr.Street,
			Town:        addr.Town,
		}
		if user.Member == nil {
			m := &models.Member{
				UserID:               user.ID,
				HouseRules:           input.HouseRules,
				DependentDescription: input.DependentDescription,
			}
			if err := s.userRepo.SetMember(m, a); err != nil {
				return fmt.Errorf("failed to add member role: %w", err)
			}
		} else {
			user.Member.HouseRules = input.HouseRules
			user.Member.DependentDescription = input.DependentDescription
			if err := s.userRepo.UpdateMember(user.Member, a); err != nil {
				return fmt.Errorf("failed to update member role: %w", err)
			}
		}
	case user.Member != nil:
		if err := s.userRepo.RemoveMember(user.ID); err != nil {
			return fmt.Errorf("failed to remove member role: %w", err)
		}
		user.Member = nil
	}
	return nil
}

// DeleteUser removes a user and all dependent rows.
func (s *UserService) DeleteUser(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrHasDependents
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// GetUser retrieves a user with its role sub-records.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Caregiver", "Member", "Member.Address")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// DeleteMembersByStreet removes every member living on the street.
func (s *UserService) DeleteMembersByStreet(street string) (int64, error) {
	if strings.TrimSpace(street) == "" {
		return 0, &ValidationError{Field: "street", Reason: "street is required"}
	}
	return s.userRepo.DeleteMembersByStreet(street)
}
