package database

import (
	"log"
	"time"

	"github.com/careconnect/careconnect-api/internal/models"
	"gorm.io/gorm"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Seed inserts the sample data set when the database holds fewer than ten
// users. Seed rows carry explicit primary keys, which desynchronizes the id
// sequence on Postgres; the user repository reconciles it on first conflict.
// Seed passwords are legacy plaintext and get re-hashed on first login.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount >= 10 {
		log.Println("Sufficient users already present, skipping seeding")
		return nil
	}

	log.Println("Seeding sample data...")

	return db.Transaction(func(tx *gorm.DB) error {
		users := []models.User{
			{ID: 1, Email: "arman@example.com", GivenName: "Arman", Surname: "Armanov", City: "Astana", PhoneNumber: "+77770000001", ProfileDescription: "Caregiver and parent", PasswordHash: "pass1"},
			{ID: 2, Email: "amina@example.com", GivenName: "Amina", Surname: "Aminova", City: "Astana", PhoneNumber: "+77770000002", ProfileDescription: "Member posting jobs", PasswordHash: "pass2"},
			{ID: 3, Email: "nurs@example.com", GivenName: "Nurs", Surname: "Nurman", City: "Almaty", PhoneNumber: "+77770000003", ProfileDescription: "Caregiver", PasswordHash: "pass3"},
			{ID: 4, Email: "ellie@example.com", GivenName: "Ellie", Surname: "Evans", City: "Astana", PhoneNumber: "+77770000004", ProfileDescription: "Member", PasswordHash: "pass4"},
			{ID: 5, Email: "john@example.com", GivenName: "John", Surname: "Doe", City: "Astana", PhoneNumber: "+77770000005", ProfileDescription: "Caregiver", PasswordHash: "pass5"},
			{ID: 6, Email: "jane@example.com", GivenName: "Jane", Surname: "Roe", City: "Astana", PhoneNumber: "+77770000006", ProfileDescription: "Member", PasswordHash: "pass6"},
			{ID: 7, Email: "sam@example.com", GivenName: "Sam", Surname: "Sagat", City: "Astana", PhoneNumber: "+77770000007", ProfileDescription: "Caregiver", PasswordHash: "pass7"},
			{ID: 8, Email: "liza@example.com", GivenName: "Liza", Surname: "Khan", City: "Astana", PhoneNumber: "+77770000008", ProfileDescription: "Member", PasswordHash: "pass8"},
			{ID: 9, Email: "kate@example.com", GivenName: "Kate", Surname: "Smith", City: "Astana", PhoneNumber: "+77770000009", ProfileDescription: "Caregiver", PasswordHash: "pass9"},
			{ID: 10, Email: "bob@example.com", GivenName: "Bob", Surname: "Brown", City: "Astana", PhoneNumber: "+77770000010", ProfileDescription: "Member", PasswordHash: "pass10"},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		caregivers := []models.Caregiver{
			{UserID: 1, Photo: "/photos/1.jpg", Gender: "M", CaregivingType: models.CaregivingTypeBabysitter, HourlyRate: 9.50},
			{UserID: 3, Photo: "/photos/3.jpg", Gender: "M", CaregivingType: models.CaregivingTypeElderly, HourlyRate: 12.00},
			{UserID: 5, Photo: "/photos/5.jpg", Gender: "M", CaregivingType: models.CaregivingTypeBabysitter, HourlyRate: 8.50},
			{UserID: 7, Photo: "/photos/7.jpg", Gender: "M", CaregivingType: models.CaregivingTypePlaymate, HourlyRate: 11.00},
			{UserID: 9, Photo: "/photos/9.jpg", Gender: "F", CaregivingType: models.CaregivingTypeElderly, HourlyRate: 15.00},
		}
		if err := tx.Create(&caregivers).Error; err != nil {
			return err
		}

		members := []models.Member{
			{UserID: 2, HouseRules: "No pets. Quiet hours 10pm-7am.", DependentDescription: "Toddler, 2 years"},
			{UserID: 4, HouseRules: "No smoking. No pets.", DependentDescription: "Elderly, needs assistance"},
			{UserID: 6, HouseRules: "No pets.", DependentDescription: "Infant care"},
			{UserID: 8, HouseRules: "Pets allowed.", DependentDescription: "Child with special needs"},
			{UserID: 10, HouseRules: "No pets.", DependentDescription: "Elderly with dementia"},
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}

		addresses := []models.Address{
			{MemberID: 2, HouseNumber: "12A", Street: "Kabanbay Batyr", Town: "Astana"},
			{MemberID: 4, HouseNumber: "5", Street: "Abylai Khan", Town: "Astana"},
			{MemberID: 6, HouseNumber: "7", Street: "Kabanbay Batyr", Town: "Astana"},
			{MemberID: 8, HouseNumber: "21", Street: "Tole Bi", Town: "Almaty"},
			{MemberID: 10, HouseNumber: "3", Street: "Main St", Town: "Astana"},
		}
		if err := tx.Create(&addresses).Error; err != nil {
			return err
		}

		jobs := []models.Job{
			{ID: 100, MemberID: 2, RequiredCaregivingType: models.CaregivingTypeBabysitter, OtherRequirements: "soft-spoken, patient", DatePosted: date(2025, 1, 10)},
			{ID: 101, MemberID: 4, RequiredCaregivingType: models.CaregivingTypeElderly, OtherRequirements: "No pets. Experience with dementia", DatePosted: date(2025, 2, 1)},
			{ID: 102, MemberID: 6, RequiredCaregivingType: models.CaregivingTypeBabysitter, OtherRequirements: "soft-spoken", DatePosted: date(2025, 3, 3)},
			{ID: 103, MemberID: 8, RequiredCaregivingType: models.CaregivingTypePlaymate, OtherRequirements: "CPR certified", DatePosted: date(2025, 4, 5)},
			{ID: 104, MemberID: 10, RequiredCaregivingType: models.CaregivingTypeElderly, OtherRequirements: "No pets.", DatePosted: date(2025, 5, 6)},
		}
		if err := tx.Create(&jobs).Error; err != nil {
			return err
		}

		applications := []models.JobApplication{
			{CaregiverID: 1, JobID: 100, DateApplied: date(2025, 1, 11)},
			{CaregiverID: 3, JobID: 101, DateApplied: date(2025, 2, 2)},
			{CaregiverID: 5, JobID: 100, DateApplied: date(2025, 1, 12)},
			{CaregiverID: 7, JobID: 103, DateApplied: date(2025, 4, 6)},
			{CaregiverID: 9, JobID: 104, DateApplied: date(2025, 5, 7)},
			{CaregiverID: 1, JobID: 102, DateApplied: date(2025, 3, 4)},
		}
		if err := tx.Create(&applications).Error; err != nil {
			return err
		}

		appointments := []models.Appointment{
			{ID: 1000, CaregiverID: 1, MemberID: 2, AppointmentDate: date(2025, 1, 15), AppointmentTime: "09:00", WorkHours: 4.0, Status: models.AppointmentStatusAccepted},
			{ID: 1001, CaregiverID: 5, MemberID: 2, AppointmentDate: date(2025, 1, 18), AppointmentTime: "14:00", WorkHours: 3.0, Status: models.AppointmentStatusAccepted},
			{ID: 1002, CaregiverID: 3, MemberID: 4, AppointmentDate: date(2025, 2, 10), AppointmentTime: "10:00", WorkHours: 5.0, Status: models.AppointmentStatusAccepted},
			{ID: 1003, CaregiverID: 7, MemberID: 8, AppointmentDate: date(2025, 4, 10), AppointmentTime: "08:00", WorkHours: 6.0, Status: models.AppointmentStatusPending},
			{ID: 1004, CaregiverID: 9, MemberID: 10, AppointmentDate: date(2025, 5, 10), AppointmentTime: "12:00", WorkHours: 2.5, Status: models.AppointmentStatusAccepted},
		}
		if err := tx.Create(&appointments).Error; err != nil {
			return err
		}

		log.Println("Seeding completed")
		return nil
	})
}
