package repository

import (
	"time"

	"github.com/careconnect/careconnect-api/internal/models"
)

// RolePresence selects users by which sub-roles they hold.
type RolePresence string

const (
	RoleCaregiverOnly RolePresence = "caregiver"
	RoleMemberOnly    RolePresence = "member"
	RoleBoth          RolePresence = "both"
	RoleNeither       RolePresence = "neither"
)

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Search     *string // matched against name, email and phone number
	City       *string
	Role       *RolePresence
	HouseRules *string // substring match on the member's house rules
	Page       int
	PageSize   int
}

// CaregiverFilter holds filtering options for the caregiver directory
type CaregiverFilter struct {
	Type     *models.CaregivingType
	City     *string
	Gender   *string
	RateFrom *float64
	RateTo   *float64
}

// JobFilter holds filtering options for listing jobs
type JobFilter struct {
	Type         *models.CaregivingType
	Town         *string
	MemberID     *uint64
	PostedFrom   *time.Time
	PostedTo     *time.Time
	Requirements *string // substring match on other_requirements
}

// ApplicationFilter holds filtering options for listing job applications
type ApplicationFilter struct {
	Type        *models.CaregivingType
	CaregiverID *uint64
	MemberID    *uint64
	JobID       *uint64
	AppliedFrom *time.Time
	AppliedTo   *time.Time
}

// AppointmentFilter holds filtering options for listing appointments
type AppointmentFilter struct {
	CaregiverID *uint64
	MemberID    *uint64
	DateFrom    *time.Time
	DateTo      *time.Time
	TimeFrom    *string
	TimeTo      *string
	HoursFrom   *float64
	HoursTo     *float64
	Status      *models.AppointmentStatus
}

// JobApplicantCount is one row of the per-job applicant count report.
type JobApplicantCount struct {
	JobID          uint64 `json:"job_id"`
	MemberID       uint64 `json:"member_id"`
	ApplicantCount int64  `json:"applicant_count"`
}

// CaregiverEarnings is one row of the above-average earners report.
type CaregiverEarnings struct {
	CaregiverID uint64  `json:"caregiver_id"`
	GivenName   string  `json:"given_name"`
	Surname     string  `json:"surname"`
	HourlyRate  float64 `json:"hourly_rate"`
}

// CaregiverCost is one row of the per-caregiver total cost report.
type CaregiverCost struct {
	CaregiverID uint64  `json:"caregiver_id"`
	GivenName   string  `json:"given_name"`
	Surname     string  `json:"surname"`
	TotalCost   float64 `json:"total_cost"`
}

// JobApplicantRow is one row of the job_applicants_view projection.
type JobApplicantRow struct {
	JobID                  uint64                `json:"job_id"`
	CaregiverID            uint64                `json:"caregiver_id"`
	MemberID               uint64                `json:"member_id"`
	RequiredCaregivingType models.CaregivingType `json:"required_caregiving_type"`
	OtherRequirements      string                `json:"other_requirements"`
	DatePosted             time.Time             `json:"date_posted"`
	PosterGivenName        string                `json:"poster_given_name"`
	PosterSurname          string                `json:"poster_surname"`
	ApplicantGivenName     string                `json:"applicant_given_name"`
	ApplicantSurname       string                `json:"applicant_surname"`
	CaregivingType         models.CaregivingType `json:"caregiving_type"`
	HourlyRate             float64               `json:"hourly_rate"`
	DateApplied            time.Time             `json:"date_applied"`
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts the user together with any attached caregiver/member
	// sub-records and address in a single transaction. On a primary-key
	// collision caused by a desynchronized id sequence it reconciles the
	// sequence and retries the insert exactly once.
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// EmailTaken reports whether another user (excluding excludeID) holds the email
	EmailTaken(email string, excludeID uint64) (bool, error)

	// PhoneTaken reports whether another user (excluding excludeID) holds the phone number
	PhoneTaken(phone string, excludeID uint64) (bool, error)

	// Update persists changed user fields
	Update(user *models.User) error

	// Delete removes the user and all dependent rows in one transaction
	Delete(id uint64) error

	// List retrieves users with filtering and pagination
	List(filter UserFilter) ([]models.User, int64, error)

	// SetCaregiver attaches a caregiver sub-record to an existing user
	SetCaregiver(cg *models.Caregiver) error

	// RemoveCaregiver deletes the caregiver sub-record and its dependents
	RemoveCaregiver(userID uint64) error

	// SetMember attaches a member sub-record plus its address to an existing user
	SetMember(m *models.Member, addr *models.Address) error

	// UpdateMember persists changed member fields and replaces the address
	UpdateMember(m *models.Member, addr *models.Address) error

	// RemoveMember deletes the member sub-record and its dependents
	RemoveMember(userID uint64) error

	// DeleteMembersByStreet removes every member (and their user account)
	// whose address lies on the given street, cascading fully
	DeleteMembersByStreet(street string) (int64, error)
}

// CaregiverRepository defines the interface for caregiver directory access
type CaregiverRepository interface {
	// FindByID finds a caregiver with its user record
	FindByID(userID uint64) (*models.Caregiver, error)

	// Search lists caregivers matching the filter, user preloaded
	Search(filter CaregiverFilter) ([]models.Caregiver, error)

	// Update persists changed caregiver fields
	Update(cg *models.Caregiver) error

	// ApplyCommission adjusts every hourly rate: below 10 gains a flat 0.30,
	// the rest gain 10 percent. Returns the number of adjusted rows.
	ApplyCommission() (int64, error)
}

// JobRepository defines the interface for job and application data access
type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uint64, preload ...string) (*models.Job, error)
	List(filter JobFilter) ([]models.Job, error)

	// Delete removes the job and its applications in one transaction
	Delete(id uint64) error

	// DeleteByMember removes every job a member posted, with applications
	DeleteByMember(memberID uint64) (int64, error)

	// Apply inserts a job application; a duplicate (caregiver, job) pair
	// surfaces as gorm.ErrDuplicatedKey
	Apply(app *models.JobApplication) error

	HasApplication(caregiverID, jobID uint64) (bool, error)
	ListApplications(filter ApplicationFilter) ([]models.JobApplication, error)

	// ListApplicants returns the applications for one job with applicant users
	ListApplicants(jobID uint64) ([]models.JobApplication, error)

	// ApplicantCounts counts applications per job, including jobs with none
	ApplicantCounts() ([]JobApplicantCount, error)
}

// AppointmentRepository defines the interface for appointment data access
type AppointmentRepository interface {
	Create(appt *models.Appointment) error
	FindByID(id uint64) (*models.Appointment, error)
	List(filter AppointmentFilter) ([]models.Appointment, error)
	UpdateStatus(id uint64, status models.AppointmentStatus) error

	// HasAcceptedBetween reports whether an accepted appointment links the
	// member and the caregiver. Drives the contact-visibility rule.
	HasAcceptedBetween(memberID, caregiverID uint64) (bool, error)
}

// ReportRepository defines the aggregation and projection queries
type ReportRepository interface {
	// TotalAcceptedHours sums work_hours over accepted appointments
	TotalAcceptedHours() (float64, error)

	// AverageAcceptedRate averages hourly_rate over distinct caregivers with
	// at least one accepted appointment; nil when there are none
	AverageAcceptedRate() (*float64, error)

	// AboveAverageEarners lists caregivers with accepted appointments whose
	// rate strictly exceeds AverageAcceptedRate
	AboveAverageEarners() ([]CaregiverEarnings, error)

	// CaregiverTotalCosts sums work_hours*hourly_rate per caregiver over
	// accepted appointments
	CaregiverTotalCosts() ([]CaregiverCost, error)

	// JobApplicants reads the job_applicants_view projection
	JobApplicants() ([]JobApplicantRow, error)
}
