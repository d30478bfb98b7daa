package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/careconnect/careconnect-api/internal/repository"
	"github.com/careconnect/careconnect-api/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrNotAppointmentCaregiver = errors.New("only the caregiver on this appointment may respond to it")
	ErrAppointmentResolved     = errors.New("appointment has already been accepted or declined")
	ErrUnknownAction           = errors.New("action must be accept or decline")
	ErrNotMember               = errors.New("only members may request appointments")
)

// AppointmentService provides booking and response logic.
type AppointmentService struct {
	apptRepo repository.AppointmentRepository
	cgRepo   repository.CaregiverRepository
	userRepo repository.UserRepository
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(apptRepo repository.AppointmentRepository, cgRepo repository.CaregiverRepository, userRepo repository.UserRepository) *AppointmentService {
	return &AppointmentService{
		apptRepo: apptRepo,
		cgRepo:   cgRepo,
		userRepo: userRepo,
	}
}

// RequestInput represents a member's appointment request.
type RequestInput struct {
	CaregiverID     uint64
	AppointmentDate time.Time
	AppointmentTime string
	WorkHours       float64
}

// Request creates a pending appointment for the requesting member. The date
// must be strictly in the future and work hours within (0, 24].
func (s *AppointmentService) Request(actor Identity, input RequestInput) (*models.Appointment, error) {
	if !actor.IsMember {
		return nil, ErrNotMember
	}

	if err := validation.AppointmentDate(input.AppointmentDate); err != nil {
		return nil, invalid("appointment_date", err)
	}
	if err := validation.AppointmentTime(input.AppointmentTime); err != nil {
		return nil, invalid("appointment_time", err)
	}
	if err := validation.WorkHours(input.WorkHours); err != nil {
		return nil, invalid("work_hours", err)
	}

	if _, err := s.cgRepo.FindByID(input.CaregiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaregiverNotFound
		}
		return nil, fmt.Errorf("failed to find caregiver: %w", err)
	}

	appt := &models.Appointment{
		CaregiverID:     input.CaregiverID,
		MemberID:        actor.UserID,
		AppointmentDate: input.AppointmentDate,
		AppointmentTime: input.AppointmentTime,
		WorkHours:       input.WorkHours,
		Status:          models.AppointmentStatusPending,
	}
	if err := s.apptRepo.Create(appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt, nil
}

// Respond transitions a pending appointment to accepted or declined. Only the
// caregiver on the appointment may respond, and accepted/declined are
// terminal.
func (s *AppointmentService) Respond(actor Identity, appointmentID uint64, action string) (*models.Appointment, error) {
	appt, err := s.apptRepo.FindByID(appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}

	if !actor.IsCaregiver || actor.UserID != appt.CaregiverID {
		return nil, ErrNotAppointmentCaregiver
	}

	var next models.AppointmentStatus
	switch action {
	case "accept":
		next = models.AppointmentStatusAccepted
	case "decline":
		next = models.AppointmentStatusDeclined
	default:
		return nil, ErrUnknownAction
	}

	if appt.Status != models.AppointmentStatusPending {
		return nil, ErrAppointmentResolved
	}

	if err := s.apptRepo.UpdateStatus(appt.ID, next); err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	appt.Status = next
	return appt, nil
}

// List returns appointments matching the filter.
func (s *AppointmentService) List(filter repository.AppointmentFilter) ([]models.Appointment, error) {
	appointments, err := s.apptRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// ListForMember returns a member's appointments.
func (s *AppointmentService) ListForMember(memberID uint64) ([]models.Appointment, error) {
	return s.List(repository.AppointmentFilter{MemberID: &memberID})
}

// ListForCaregiver returns a caregiver's appointment requests.
func (s *AppointmentService) ListForCaregiver(caregiverID uint64) ([]models.Appointment, error) {
	return s.List(repository.AppointmentFilter{CaregiverID: &caregiverID})
}
