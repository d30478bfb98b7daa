package repository

import (
	"strings"

	"github.com/careconnect/careconnect-api/internal/models"
	"gorm.io/gorm"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job
func (r *GormJobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

// FindByID finds a job by ID with optional preloading
func (r *GormJobRepository) FindByID(id uint64, preload ...string) (*models.Job, error) {
	var job models.Job
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// List retrieves jobs matching the filter
func (r *GormJobRepository) List(filter JobFilter) ([]models.Job, error) {
	query := r.db.Model(&models.Job{})

	if filter.Type != nil {
		query = query.Where("jobs.required_caregiving_type = ?", *filter.Type)
	}
	if filter.Town != nil {
		townSubQuery := r.db.Model(&models.Address{}).
			Select("1").
			Where("addresses.member_id = jobs.member_id").
			Where("LOWER(addresses.town) = ?", strings.ToLower(*filter.Town))
		query = query.Where("EXISTS (?)", townSubQuery)
	}
	if filter.MemberID != nil {
		query = query.Where("jobs.member_id = ?", *filter.MemberID)
	}
	if filter.PostedFrom != nil {
		query = query.Where("jobs.date_posted >= ?", *filter.PostedFrom)
	}
	if filter.PostedTo != nil {
		query = query.Where("jobs.date_posted <= ?", *filter.PostedTo)
	}
	if filter.Requirements != nil {
		query = query.Where("LOWER(jobs.other_requirements) LIKE ?", "%"+strings.ToLower(*filter.Requirements)+"%")
	}

	var jobs []models.Job
	if err := query.Preload("Member.User").Order("jobs.date_posted DESC, jobs.id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Delete removes the job and its applications in one transaction
func (r *GormJobRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, id).Error
	})
}

// DeleteByMember removes every job a member posted, with applications
func (r *GormJobRepository) DeleteByMember(memberID uint64) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		jobIDs := tx.Model(&models.Job{}).Select("id").Where("member_id = ?", memberID)
		if err := tx.Where("job_id IN (?)", jobIDs).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		result := tx.Where("member_id = ?", memberID).Delete(&models.Job{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

// Apply inserts a job application; the composite primary key turns a repeat
// application into gorm.ErrDuplicatedKey.
func (r *GormJobRepository) Apply(app *models.JobApplication) error {
	return r.db.Create(app).Error
}

// HasApplication reports whether the (caregiver, job) pair already exists
func (r *GormJobRepository) HasApplication(caregiverID, jobID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.JobApplication{}).
		Where("caregiver_id = ? AND job_id = ?", caregiverID, jobID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListApplications retrieves applications matching the filter
func (r *GormJobRepository) ListApplications(filter ApplicationFilter) ([]models.JobApplication, error) {
	query := r.db.Model(&models.JobApplication{}).
		Joins("JOIN jobs ON jobs.id = job_applications.job_id")

	if filter.Type != nil {
		query = query.Where("jobs.required_caregiving_type = ?", *filter.Type)
	}
	if filter.CaregiverID != nil {
		query = query.Where("job_applications.caregiver_id = ?", *filter.CaregiverID)
	}
	if filter.MemberID != nil {
		query = query.Where("jobs.member_id = ?", *filter.MemberID)
	}
	if filter.JobID != nil {
		query = query.Where("job_applications.job_id = ?", *filter.JobID)
	}
	if filter.AppliedFrom != nil {
		query = query.Where("job_applications.date_applied >= ?", *filter.AppliedFrom)
	}
	if filter.AppliedTo != nil {
		query = query.Where("job_applications.date_applied <= ?", *filter.AppliedTo)
	}

	var applications []models.JobApplication
	err := query.Preload("Caregiver.User").Preload("Job").
		Order("job_applications.date_applied DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// ListApplicants returns the applications for one job with applicant users
func (r *GormJobRepository) ListApplicants(jobID uint64) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := r.db.Preload("Caregiver.User").
		Where("job_id = ?", jobID).
		Order("date_applied ASC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// ApplicantCounts counts applications per job with a left join so jobs
// without applicants still appear with a zero count.
func (r *GormJobRepository) ApplicantCounts() ([]JobApplicantCount, error) {
	var counts []JobApplicantCount
	err := r.db.Model(&models.Job{}).
		Select("jobs.id AS job_id, jobs.member_id AS member_id, COUNT(job_applications.job_id) AS applicant_count").
		Joins("LEFT JOIN job_applications ON job_applications.job_id = jobs.id").
		Group("jobs.id, jobs.member_id").
		Order("jobs.id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
