package models

import "time"

// JobApplication links a caregiver to a job. The composite primary key
// guarantees at most one application per (caregiver, job) pair.
type JobApplication struct {
	CaregiverID uint64    `gorm:"primarykey" json:"caregiver_id"`
	JobID       uint64    `gorm:"primarykey" json:"job_id"`
	DateApplied time.Time `gorm:"type:date;not null" json:"date_applied"`

	// Relations
	Caregiver Caregiver `gorm:"foreignKey:CaregiverID" json:"caregiver,omitempty"`
	Job       Job       `gorm:"foreignKey:JobID" json:"job,omitempty"`
}
