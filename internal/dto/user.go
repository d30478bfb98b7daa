package dto

import (
	"github.com/careconnect/careconnect-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                 uint64        `json:"id"`
	Email              string        `json:"email"`
	GivenName          string        `json:"given_name"`
	Surname            string        `json:"surname"`
	City               string        `json:"city,omitempty"`
	PhoneNumber        string        `json:"phone_number"`
	ProfileDescription string        `json:"profile_description,omitempty"`
	Caregiver          *CaregiverDTO `json:"caregiver,omitempty"`
	Member             *MemberDTO    `json:"member,omitempty"`
}

// CaregiverDTO represents the caregiver role of a user
type CaregiverDTO struct {
	UserID         uint64                `json:"user_id"`
	Photo          string                `json:"photo,omitempty"`
	Gender         string                `json:"gender,omitempty"`
	CaregivingType models.CaregivingType `json:"caregiving_type"`
	HourlyRate     float64               `json:"hourly_rate"`
}

// MemberDTO represents the member role of a user
type MemberDTO struct {
	UserID               uint64      `json:"user_id"`
	HouseRules           string      `json:"house_rules,omitempty"`
	DependentDescription string      `json:"dependent_description,omitempty"`
	Address              *AddressDTO `json:"address,omitempty"`
}

// AddressDTO represents a member's address
type AddressDTO struct {
	HouseNumber string `json:"house_number"`
	Street      string `json:"street"`
	Town        string `json:"town"`
}

// CaregiverProfileDTO is a caregiver profile as shown to a viewer. Contact
// fields stay empty unless the visibility rule grants them.
type CaregiverProfileDTO struct {
	UserID             uint64                `json:"user_id"`
	GivenName          string                `json:"given_name"`
	Surname            string                `json:"surname"`
	City               string                `json:"city,omitempty"`
	ProfileDescription string                `json:"profile_description,omitempty"`
	Photo              string                `json:"photo,omitempty"`
	Gender             string                `json:"gender,omitempty"`
	CaregivingType     models.CaregivingType `json:"caregiving_type"`
	HourlyRate         float64               `json:"hourly_rate"`
	Email              string                `json:"email,omitempty"`
	PhoneNumber        string                `json:"phone_number,omitempty"`
}

// UserListResponse is a paginated list of users
type UserListResponse struct {
	Users      []UserDTO `json:"users"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// Conversion functions

// ToCaregiverDTO converts a Caregiver model to CaregiverDTO
func ToCaregiverDTO(cg models.Caregiver) CaregiverDTO {
	return CaregiverDTO{
		UserID:         cg.UserID,
		Photo:          cg.Photo,
		Gender:         cg.Gender,
		CaregivingType: cg.CaregivingType,
		HourlyRate:     cg.HourlyRate,
	}
}

// ToMemberDTO converts a Member model to MemberDTO
func ToMemberDTO(m models.Member) MemberDTO {
	dto := MemberDTO{
		UserID:               m.UserID,
		HouseRules:           m.HouseRules,
		DependentDescription: m.DependentDescription,
	}
	if m.Address != nil {
		dto.Address = &AddressDTO{
			HouseNumber: m.Address.HouseNumber,
			Street:      m.Address.Street,
			Town:        m.Address.Town,
		}
	}
	return dto
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:                 user.ID,
		Email:              user.Email,
		GivenName:          user.GivenName,
		Surname:            user.Surname,
		City:               user.City,
		PhoneNumber:        user.PhoneNumber,
		ProfileDescription: user.ProfileDescription,
	}
	if user.Caregiver != nil {
		cg := ToCaregiverDTO(*user.Caregiver)
		dto.Caregiver = &cg
	}
	if user.Member != nil {
		m := ToMemberDTO(*user.Member)
		dto.Member = &m
	}
	return dto
}

// ToCaregiverProfileDTO converts a caregiver with its user record to a
// profile, including contact details only when showContact is set.
func ToCaregiverProfileDTO(cg models.Caregiver, showContact bool) CaregiverProfileDTO {
	dto := CaregiverProfileDTO{
		UserID:             cg.UserID,
		GivenName:          cg.User.GivenName,
		Surname:            cg.User.Surname,
		City:               cg.User.City,
		ProfileDescription: cg.User.ProfileDescription,
		Photo:              cg.Photo,
		Gender:             cg.Gender,
		CaregivingType:     cg.CaregivingType,
		HourlyRate:         cg.HourlyRate,
	}
	if showContact {
		dto.Email = cg.User.Email
		dto.PhoneNumber = cg.User.PhoneNumber
	}
	return dto
}

// ToUserListResponse converts users to a paginated response
func ToUserListResponse(users []models.User, page, pageSize int, totalCount int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return UserListResponse{
		Users:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
