package models

import "time"

type User struct {
	ID                 uint64    `gorm:"primarykey" json:"id"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	GivenName          string    `gorm:"type:varchar(50);not null" json:"given_name"`
	Surname            string    `gorm:"type:varchar(50);not null" json:"surname"`
	City               string    `gorm:"type:varchar(100)" json:"city"`
	PhoneNumber        string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone_number"`
	ProfileDescription string    `gorm:"type:text" json:"profile_description"`
	PasswordHash       string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relations
	Caregiver *Caregiver `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"caregiver,omitempty"`
	Member    *Member    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
}

func (u *User) FullName() string {
	return u.GivenName + " " + u.Surname
}
