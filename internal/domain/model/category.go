package model

type Category struct {
	ID       string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Position int    `gorm:"not null;default:0" json:"-"`
}
