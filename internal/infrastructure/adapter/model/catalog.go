package model

import (
	"time"
)

// Plan represents the database model for the product plan catalog
type Plan struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Code      string    `gorm:"not null;size:100;uniqueIndex:idx_plans_product_code"`
	Product   string    `gorm:"not null;size:50;uniqueIndex:idx_plans_product_code"`
	Network   string    `gorm:"size:50"`
	Name      string    `gorm:"size:255"`
	PriceKobo int64     `gorm:"not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Plan
func (Plan) TableName() string {
	return "plans"
}

// GiftCard represents the database model for gift cards
type GiftCard struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	Code       string    `gorm:"uniqueIndex;not null;size:100"`
	AmountKobo int64     `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	IsRedeemed bool      `gorm:"not null;default:false"`
	RedeemedBy *uint64
	RedeemedAt *time.Time
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GiftCard
func (GiftCard) TableName() string {
	return "gift_cards"
}

// CallbackEvent stores every received provider callback payload for audit
type CallbackEvent struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Provider  string    `gorm:"not null;size:50;index"`
	Reference string    `gorm:"size:255;index"`
	Payload   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for CallbackEvent
func (CallbackEvent) TableName() string {
	return "callback_events"
}
