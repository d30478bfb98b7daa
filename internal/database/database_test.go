package database

import (
	"testing"

	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDatabaseTest(t *testing.T) *gorm.DB {
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
	require.NoError(t, AddIndexes(db))
	require.NoError(t, CreateJobApplicantsView(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestSeed(t *testing.T) {
	db := setupDatabaseTest(t)

	require.NoError(t, Seed(db))

	counts := map[string]int64{}
	for name, model := range map[string]interface{}{
		"users":        &models.User{},
		"caregivers":   &models.Caregiver{},
		"members":      &models.Member{},
		"addresses":    &models.Address{},
		"jobs":         &models.Job{},
		"applications": &models.JobApplication{},
		"appointments": &models.Appointment{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		counts[name] = count
	}
	require.EqualValues(t, 10, counts["users"])
	require.EqualValues(t, 5, counts["caregivers"])
	require.EqualValues(t, 5, counts["members"])
	require.EqualValues(t, 5, counts["addresses"])
	require.EqualValues(t, 5, counts["jobs"])
	require.EqualValues(t, 6, counts["applications"])
	require.EqualValues(t, 5, counts["appointments"])
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupDatabaseTest(t)

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.EqualValues(t, 10, users)
}

func TestJobApplicantsViewRows(t *testing.T) {
	db := setupDatabaseTest(t)
	require.NoError(t, Seed(db))

	type viewRow struct {
		JobID              uint64
		CaregiverID        uint64
		PosterGivenName    string
		ApplicantGivenName string
	}

	var rows []viewRow
	require.NoError(t, db.Table("job_applicants_view").Order("job_id, caregiver_id").Scan(&rows).Error)
	require.Len(t, rows, 6)

	// Job 100 was posted by Amina and drew two applicants.
	require.EqualValues(t, 100, rows[0].JobID)
	require.EqualValues(t, 1, rows[0].CaregiverID)
	require.Equal(t, "Amina", rows[0].PosterGivenName)
	require.Equal(t, "Arman", rows[0].ApplicantGivenName)
	require.EqualValues(t, 5, rows[1].CaregiverID)
}

func TestWorkHoursCheckConstraint(t *testing.T) {
	db := setupDatabaseTest(t)
	require.NoError(t, Seed(db))

	// The bound holds in the schema itself, not only in the validators.
	appt := models.Appointment{
		CaregiverID:     1,
		MemberID:        2,
		AppointmentTime: "10:00",
		WorkHours:       25,
		Status:          models.AppointmentStatusPending,
	}
	require.Error(t, db.Create(&appt).Error)

	appt.ID = 0
	appt.WorkHours = 24
	require.NoError(t, db.Create(&appt).Error)
}

func TestAddIndexesIsIdempotent(t *testing.T) {
	db := setupDatabaseTest(t)

	// A second pass must not fail on the existing indexes.
	require.NoError(t, AddIndexes(db))
}
