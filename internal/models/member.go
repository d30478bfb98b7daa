package models

type Member struct {
	UserID               uint64 `gorm:"primarykey" json:"user_id"`
	HouseRules           string `gorm:"type:text" json:"house_rules"`
	DependentDescription string `gorm:"type:text" json:"dependent_description"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Address      *Address      `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"address,omitempty"`
	Jobs         []Job         `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"jobs,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
}
