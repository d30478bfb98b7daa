package repository

import (
	"github.com/careconnect/careconnect-api/internal/models"
	"gorm.io/gorm"
)

// GormAppointmentRepository is a GORM implementation of AppointmentRepository
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// Create creates a new appointment
func (r *GormAppointmentRepository) Create(appt *models.Appointment) error {
	return r.db.Create(appt).Error
}

// FindByID finds an appointment by ID
func (r *GormAppointmentRepository) FindByID(id uint64) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.db.First(&appt, id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// List retrieves appointments matching the filter
func (r *GormAppointmentRepository) List(filter AppointmentFilter) ([]models.Appointment, error) {
	query := r.db.Model(&models.Appointment{})

	if filter.CaregiverID != nil {
		query = query.Where("caregiver_id = ?", *filter.CaregiverID)
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.DateFrom != nil {
		query = query.Where("appointment_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("appointment_date <= ?", *filter.DateTo)
	}
	// HH:MM values compare correctly as strings
	if filter.TimeFrom != nil {
		query = query.Where("appointment_time >= ?", *filter.TimeFrom)
	}
	if filter.TimeTo != nil {
		query = query.Where("appointment_time <= ?", *filter.TimeTo)
	}
	if filter.HoursFrom != nil {
		query = query.Where("work_hours >= ?", *filter.HoursFrom)
	}
	if filter.HoursTo != nil {
		query = query.Where("work_hours <= ?", *filter.HoursTo)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var appointments []models.Appointment
	err := query.Preload("Caregiver.User").Preload("Member.User").
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus sets the appointment status
func (r *GormAppointmentRepository) UpdateStatus(id uint64, status models.AppointmentStatus) error {
	return r.db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// HasAcceptedBetween reports whether an accepted appointment links the member
// and the caregiver.
func (r *GormAppointmentRepository) HasAcceptedBetween(memberID, caregiverID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Appointment{}).
		Where("member_id = ? AND caregiver_id = ? AND status = ?",
			memberID, caregiverID, models.AppointmentStatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
