package model

import "github.com/shopspring/decimal"

// カタログの商品。読み込み後は変更しない。
type Product struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Category    string          `gorm:"type:varchar(64);not null;index" json:"category"`
	Image       string          `gorm:"type:varchar(512)" json:"image"`
	Position    int             `gorm:"not null;default:0" json:"-"`
}
