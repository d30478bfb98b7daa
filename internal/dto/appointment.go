package dto

import (
	"time"

	"github.com/careconnect/careconnect-api/internal/models"
)

// AppointmentDTO represents an appointment in API responses
type AppointmentDTO struct {
	ID              uint64                   `json:"id"`
	CaregiverID     uint64                   `json:"caregiver_id"`
	MemberID        uint64                   `json:"member_id"`
	AppointmentDate time.Time                `json:"appointment_date"`
	AppointmentTime string                   `json:"appointment_time"`
	WorkHours       float64                  `json:"work_hours"`
	Status          models.AppointmentStatus `json:"status"`
	CaregiverName   string                   `json:"caregiver_name,omitempty"`
	MemberName      string                   `json:"member_name,omitempty"`
}

// ToAppointmentDTO converts an Appointment model to AppointmentDTO
func ToAppointmentDTO(appt models.Appointment) AppointmentDTO {
	dto := AppointmentDTO{
		ID:              appt.ID,
		CaregiverID:     appt.CaregiverID,
		MemberID:        appt.MemberID,
		AppointmentDate: appt.AppointmentDate,
		AppointmentTime: appt.AppointmentTime,
		WorkHours:       appt.WorkHours,
		Status:          appt.Status,
	}
	if appt.Caregiver.User.ID != 0 {
		dto.CaregiverName = appt.Caregiver.User.FullName()
	}
	if appt.Member.User.ID != 0 {
		dto.MemberName = appt.Member.User.FullName()
	}
	return dto
}

// ToAppointmentDTOs converts a slice of appointments
func ToAppointmentDTOs(appointments []models.Appointment) []AppointmentDTO {
	items := make([]AppointmentDTO, len(appointments))
	for i, appt := range appointments {
		items[i] = ToAppointmentDTO(appt)
	}
	return items
}
