package repository

import (
	"github.com/careconnect/careconnect-api/internal/models"
	"gorm.io/gorm"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

// TotalAcceptedHours sums work_hours over accepted appointments
func (r *GormReportRepository) TotalAcceptedHours() (float64, error) {
	var total float64
	err := r.db.Model(&models.Appointment{}).
		Where("status = ?", models.AppointmentStatusAccepted).
		Select("COALESCE(SUM(work_hours), 0)").
		Scan(&total).Error
	return total, err
}

// AverageAcceptedRate averages hourly_rate over distinct caregivers with at
// least one accepted appointment. Each caregiver counts once no matter how
// many accepted appointments they hold.
func (r *GormReportRepository) AverageAcceptedRate() (*float64, error) {
	acceptedCaregivers := r.db.Model(&models.Appointment{}).
		Select("caregiver_id").
		Where("status = ?", models.AppointmentStatusAccepted)

	var avg *float64
	err := r.db.Model(&models.Caregiver{}).
		Where("user_id IN (?)", acceptedCaregivers).
		Select("AVG(hourly_rate)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}

// AboveAverageEarners lists caregivers with accepted appointments whose rate
// strictly exceeds the average returned by AverageAcceptedRate.
func (r *GormReportRepository) AboveAverageEarners() ([]CaregiverEarnings, error) {
	avg, err := r.AverageAcceptedRate()
	if err != nil {
		return nil, err
	}
	if avg == nil {
		return []CaregiverEarnings{}, nil
	}

	acceptedCaregivers := r.db.Model(&models.Appointment{}).
		Select("caregiver_id").
		Where("status = ?", models.AppointmentStatusAccepted)

	var earners []CaregiverEarnings
	err = r.db.Model(&models.Caregiver{}).
		Select("caregivers.user_id AS caregiver_id, users.given_name, users.surname, caregivers.hourly_rate").
		Joins("JOIN users ON users.id = caregivers.user_id").
		Where("caregivers.user_id IN (?)", acceptedCaregivers).
		Where("caregivers.hourly_rate > ?", *avg).
		Order("caregivers.hourly_rate DESC").
		Scan(&earners).Error
	if err != nil {
		return nil, err
	}
	return earners, nil
}

// CaregiverTotalCosts sums work_hours*hourly_rate per caregiver over accepted
// appointments.
func (r *GormReportRepository) CaregiverTotalCosts() ([]CaregiverCost, error) {
	var costs []CaregiverCost
	err := r.db.Model(&models.Appointment{}).
		Select("appointments.caregiver_id AS caregiver_id, users.given_name, users.surname, SUM(appointments.work_hours * caregivers.hourly_rate) AS total_cost").
		Joins("JOIN caregivers ON caregivers.user_id = appointments.caregiver_id").
		Joins("JOIN users ON users.id = appointments.caregiver_id").
		Where("appointments.status = ?", models.AppointmentStatusAccepted).
		Group("appointments.caregiver_id, users.given_name, users.surname").
		Order("appointments.caregiver_id ASC").
		Scan(&costs).Error
	if err != nil {
		return nil, err
	}
	return costs, nil
}

// JobApplicants reads the job_applicants_view projection
func (r *GormReportRepository) JobApplicants() ([]JobApplicantRow, error) {
	var rows []JobApplicantRow
	err := r.db.Table("job_applicants_view").
		Order("job_id ASC, caregiver_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
