package models

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "pending"
	AppointmentStatusAccepted AppointmentStatus = "accepted"
	AppointmentStatusDeclined AppointmentStatus = "declined"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusAccepted, AppointmentStatusDeclined:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transition.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusAccepted || s == AppointmentStatusDeclined
}

type Appointment struct {
	ID              uint64            `gorm:"primarykey" json:"id"`
	CaregiverID     uint64            `gorm:"not null" json:"caregiver_id"`
	MemberID        uint64            `gorm:"not null" json:"member_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:varchar(8);not null" json:"appointment_time"`
	WorkHours       float64           `gorm:"type:decimal(4,1);not null;check:work_hours > 0 AND work_hours <= 24" json:"work_hours"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// Relations
	Caregiver Caregiver `gorm:"foreignKey:CaregiverID" json:"caregiver,omitempty"`
	Member    Member    `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
