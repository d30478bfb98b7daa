package models

import "time"

type Job struct {
	ID                     uint64         `gorm:"primarykey" json:"id"`
	MemberID               uint64         `gorm:"not null" json:"member_id"`
	RequiredCaregivingType CaregivingType `gorm:"type:varchar(50);not null" json:"required_caregiving_type"`
	OtherRequirements      string         `gorm:"type:text" json:"other_requirements"`
	DatePosted             time.Time      `gorm:"type:date;not null" json:"date_posted"`

	// Relations
	Member       Member           `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Applications []JobApplication `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}
