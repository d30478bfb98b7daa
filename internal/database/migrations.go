package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// AddIndexes adds the indexes backing the listing and reporting queries.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"users", "idx_users_city", "city"},

		{"jobs", "idx_jobs_member_id", "member_id"},
		{"jobs", "idx_jobs_required_caregiving_type", "required_caregiving_type"},
		{"jobs", "idx_jobs_date_posted", "date_posted"},

		{"job_applications", "idx_job_applications_job_id", "job_id"},

		{"appointments", "idx_appointments_caregiver_id", "caregiver_id"},
		{"appointments", "idx_appointments_member_id", "member_id"},
		{"appointments", "idx_appointments_status", "status"},
	}

	for _, idx := range indexes {
		if db.Dialector.Name() == "postgres" {
			var count int64
			err := db.Raw(`
				SELECT COUNT(*)
				FROM pg_indexes
				WHERE tablename = ? AND indexname = ?
			`, idx.table, idx.name).Count(&count).Error
			if err != nil {
				return fmt.Errorf("failed to check index %s: %w", idx.name, err)
			}
			if count > 0 {
				continue
			}
			sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
			if err := db.Exec(sql).Error; err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			// MySQL has no IF NOT EXISTS for indexes before 8.0.29
			if strings.Contains(err.Error(), "Duplicate key name") {
				continue
			}
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// CreateJobApplicantsView creates the read-only reporting projection joining
// applications to the job, its poster and the applicant.
func CreateJobApplicantsView(db *gorm.DB) error {
	const body = `
		SELECT ja.job_id,
		       ja.caregiver_id,
		       j.member_id,
		       j.required_caregiving_type,
		       j.other_requirements,
		       j.date_posted,
		       pu.given_name AS poster_given_name,
		       pu.surname AS poster_surname,
		       au.given_name AS applicant_given_name,
		       au.surname AS applicant_surname,
		       c.caregiving_type,
		       c.hourly_rate,
		       ja.date_applied
		FROM job_applications ja
		JOIN jobs j ON j.id = ja.job_id
		JOIN users pu ON pu.id = j.member_id
		JOIN caregivers c ON c.user_id = ja.caregiver_id
		JOIN users au ON au.id = ja.caregiver_id`

	var sql string
	if db.Dialector.Name() == "sqlite" {
		sql = "CREATE VIEW IF NOT EXISTS job_applicants_view AS" + body
	} else {
		sql = "CREATE OR REPLACE VIEW job_applicants_view AS" + body
	}

	return db.Exec(sql).Error
}
