package services

import (
	"testing"
	"time"

	"github.com/careconnect/careconnect-api/internal/database"
	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/careconnect/careconnect-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db          *gorm.DB
	authService *AuthService
	userService *UserService
	jobService  *JobService
	apptService *AppointmentService
	repService  *ReportService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Caregiver{},
		&models.Member{},
		&models.Address{},
		&models.Job{},
		&models.JobApplication{},
		&models.Appointment{},
	)
	require.NoError(t, err)
	require.NoError(t, database.CreateJobApplicantsView(db))

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	cgRepo := repository.NewCaregiverRepository(db)
	jobRepo := repository.NewJobRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return serviceTestEnv{
		db:          db,
		authService: NewAuthService(userRepo),
		userService: NewUserService(userRepo, cgRepo, apptRepo),
		jobService:  NewJobService(jobRepo, userRepo, cgRepo),
		apptService: NewAppointmentService(apptRepo, cgRepo, userRepo),
		repService:  NewReportService(reportRepo, jobRepo, cgRepo),
	}
}

func (env serviceTestEnv) registerMember(t *testing.T, email, phone string) *models.User {
	t.Helper()

	user, err := env.authService.Register(RegisterInput{
		Email:       email,
		GivenName:   "Member",
		Surname:     "User",
		City:        "Astana",
		PhoneNumber: phone,
		Password:    "Sup3rSecret!",
		Member: &MemberInput{
			HouseRules: "no smoking",
			Address: AddressInput{
				HouseNumber: "12",
				Street:      "Turan Avenue",
				Town:        "Astana",
			},
		},
	})
	require.NoError(t, err)
	return user
}

func (env serviceTestEnv) registerCaregiver(t *testing.T, email, phone string, rate float64) *models.User {
	t.Helper()

	user, err := env.authService.Register(RegisterInput{
		Email:       email,
		GivenName:   "Caregiver",
		Surname:     "User",
		City:        "Astana",
		PhoneNumber: phone,
		Password:    "Sup3rSecret!",
		Caregiver: &CaregiverInput{
			Gender:         "female",
			CaregivingType: string(models.CaregivingTypeBabysitter),
			HourlyRate:     rate,
		},
	})
	require.NoError(t, err)
	return user
}

func memberIdentity(user *models.User) Identity {
	return Identity{UserID: user.ID, IsMember: true}
}

func caregiverIdentity(user *models.User) Identity {
	return Identity{UserID: user.ID, IsCaregiver: true}
}

func futureDate(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}
