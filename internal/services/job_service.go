package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/careconnect/careconnect-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrAlreadyApplied = errors.New("caregiver has already applied to this job")
	ErrNotJobOwner    = errors.New("only the member who posted this job may manage it")
)

// JobService provides business logic for jobs and applications.
type JobService struct {
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
	cgRepo   repository.CaregiverRepository
}

// NewJobService creates a new JobService.
func NewJobService(jobRepo repository.JobRepository, userRepo repository.UserRepository, cgRepo repository.CaregiverRepository) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		cgRepo:   cgRepo,
	}
}

// PostJobInput represents parameters to post a new job.
type PostJobInput struct {
	MemberID               uint64
	RequiredCaregivingType string
	OtherRequirements      string
	DatePosted             time.Time
}

// PostJob creates a job for an existing member. DatePosted defaults to today.
func (s *JobService) PostJob(input PostJobInput) (*models.Job, error) {
	if !models.CaregivingType(input.RequiredCaregivingType).Valid() {
		return nil, &ValidationError{Field: "required_caregiving_type", Reason: "caregiving type must be one of: babysitter, caregiver for elderly, playmate for children"}
	}

	user, err := s.userRepo.FindByID(input.MemberID, "Member")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if user.Member == nil {
		return nil, ErrMemberNotFound
	}

	datePosted := input.DatePosted
	if datePosted.IsZero() {
		datePosted = time.Now()
	}

	job := &models.Job{
		MemberID:               input.MemberID,
		RequiredCaregivingType: models.CaregivingType(input.RequiredCaregivingType),
		OtherRequirements:      input.OtherRequirements,
		DatePosted:             datePosted,
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// ListJobs returns jobs matching the filter.
func (s *JobService) ListJobs(filter repository.JobFilter) ([]models.Job, error) {
	jobs, err := s.jobRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Apply records a caregiver's application to a job. A repeat application for
// the same (caregiver, job) pair is rejected as a duplicate, never an
// internal error, and leaves the first row untouched.
func (s *JobService) Apply(caregiverID, jobID uint64) (*models.JobApplication, error) {
	if _, err := s.cgRepo.FindByID(caregiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaregiverNotFound
		}
		return nil, fmt.Errorf("failed to find caregiver: %w", err)
	}
	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	if exists, err := s.jobRepo.HasApplication(caregiverID, jobID); err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	} else if exists {
		return nil, ErrAlreadyApplied
	}

	app := &models.JobApplication{
		CaregiverID: caregiverID,
		JobID:       jobID,
		DateApplied: time.Now(),
	}
	if err := s.jobRepo.Apply(app); err != nil {
		// Two racing applications resolve on the composite primary key.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// ListApplicants lists the applications for one job. Only the posting member
// may see them.
func (s *JobService) ListApplicants(actor Identity, jobID uint64) ([]models.JobApplication, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	if !actor.IsMember || actor.UserID != job.MemberID {
		return nil, ErrNotJobOwner
	}

	return s.jobRepo.ListApplicants(jobID)
}

// ListApplications returns applications matching the filter.
func (s *JobService) ListApplications(filter repository.ApplicationFilter) ([]models.JobApplication, error) {
	apps, err := s.jobRepo.ListApplications(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ApplicantCounts reports the number of applicants per job, zero included.
func (s *JobService) ApplicantCounts() ([]repository.JobApplicantCount, error) {
	counts, err := s.jobRepo.ApplicantCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to count applicants: %w", err)
	}
	return counts, nil
}

// DeleteJob removes a job and its applications. Only the posting member may
// delete it.
func (s *JobService) DeleteJob(actor Identity, id uint64) error {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to find job: %w", err)
	}

	if !actor.IsMember || actor.UserID != job.MemberID {
		return ErrNotJobOwner
	}
	if err := s.jobRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrHasDependents
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// DeleteJobsByMember removes every job the member posted.
func (s *JobService) DeleteJobsByMember(memberID uint64) (int64, error) {
	return s.jobRepo.DeleteByMember(memberID)
}
