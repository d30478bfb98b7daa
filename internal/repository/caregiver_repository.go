package repository

import (
	"strings"

	"github.com/careconnect/careconnect-api/internal/models"
	"gorm.io/gorm"
)

// GormCaregiverRepository is a GORM implementation of CaregiverRepository
type GormCaregiverRepository struct {
	db *gorm.DB
}

// NewCaregiverRepository creates a new CaregiverRepository
func NewCaregiverRepository(db *gorm.DB) CaregiverRepository {
	return &GormCaregiverRepository{db: db}
}

// FindByID finds a caregiver with its user record
func (r *GormCaregiverRepository) FindByID(userID uint64) (*models.Caregiver, error) {
	var cg models.Caregiver
	if err := r.db.Preload("User").First(&cg, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &cg, nil
}

// Search lists caregivers matching the filter, user preloaded
func (r *GormCaregiverRepository) Search(filter CaregiverFilter) ([]models.Caregiver, error) {
	query := r.db.Model(&models.Caregiver{}).
		Joins("JOIN users ON users.id = caregivers.user_id")

	if filter.Type != nil {
		query = query.Where("caregivers.caregiving_type = ?", *filter.Type)
	}
	if filter.City != nil {
		query = query.Where("LOWER(users.city) LIKE ?", "%"+strings.ToLower(*filter.City)+"%")
	}
	if filter.Gender != nil {
		query = query.Where("caregivers.gender = ?", *filter.Gender)
	}
	if filter.RateFrom != nil {
		query = query.Where("caregivers.hourly_rate >= ?", *filter.RateFrom)
	}
	if filter.RateTo != nil {
		query = query.Where("caregivers.hourly_rate <= ?", *filter.RateTo)
	}

	var caregivers []models.Caregiver
	if err := query.Preload("User").Order("caregivers.user_id ASC").Find(&caregivers).Error; err != nil {
		return nil, err
	}
	return caregivers, nil
}

// Update persists changed caregiver fields
func (r *GormCaregiverRepository) Update(cg *models.Caregiver) error {
	return r.db.Omit("User", "Appointments", "Applications").Save(cg).Error
}

// ApplyCommission adjusts every hourly rate: below 10 gains a flat 0.30, the
// rest gain 10 percent.
func (r *GormCaregiverRepository) ApplyCommission() (int64, error) {
	var adjusted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// The percentage pass runs first: it only raises rates already at or
		// above 10, so it cannot pull rows into the flat-fee range below.
		high := tx.Model(&models.Caregiver{}).
			Where("hourly_rate >= ?", 10.0).
			Update("hourly_rate", gorm.Expr("hourly_rate * 1.10"))
		if high.Error != nil {
			return high.Error
		}
		low := tx.Model(&models.Caregiver{}).
			Where("hourly_rate < ?", 10.0).
			Update("hourly_rate", gorm.Expr("hourly_rate + 0.30"))
		if low.Error != nil {
			return low.Error
		}
		adjusted = low.RowsAffected + high.RowsAffected
		return nil
	})
	return adjusted, err
}
