package models

type Address struct {
	MemberID    uint64 `gorm:"primarykey" json:"member_id"`
	HouseNumber string `gorm:"type:varchar(10);not null" json:"house_number"`
	Street      string `gorm:"type:varchar(100);not null" json:"street"`
	Town        string `gorm:"type:varchar(100);not null" json:"town"`
}
