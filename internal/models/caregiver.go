package models

type CaregivingType string

const (
	CaregivingTypeBabysitter CaregivingType = "babysitter"
	CaregivingTypeElderly    CaregivingType = "caregiver for elderly"
	CaregivingTypePlaymate   CaregivingType = "playmate for children"
)

// CaregivingTypes is the closed set of permitted caregiving types.
var CaregivingTypes = []CaregivingType{
	CaregivingTypeBabysitter,
	CaregivingTypeElderly,
	CaregivingTypePlaymate,
}

func (t CaregivingType) Valid() bool {
	for _, v := range CaregivingTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Caregiver struct {
	UserID         uint64         `gorm:"primarykey" json:"user_id"`
	Photo          string         `gorm:"type:varchar(255)" json:"photo"`
	Gender         string         `gorm:"type:varchar(10)" json:"gender"`
	CaregivingType CaregivingType `gorm:"type:varchar(50);not null" json:"caregiving_type"`
	HourlyRate     float64        `gorm:"type:decimal(6,2);not null" json:"hourly_rate"`

	// Relations
	User         User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment    `gorm:"foreignKey:CaregiverID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
	Applications []JobApplication `gorm:"foreignKey:CaregiverID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}
