package model

import (
	"time"
)

// Transaction represents the database model for transactions
type Transaction struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	Reference      string    `gorm:"uniqueIndex;not null;size:255"`
	UserID         uint64    `gorm:"not null;index"`
	CounterpartyID *uint64   `gorm:"index"`
	Type           string    `gorm:"not null;size:50;index"`
	Status         string    `gorm:"not null;size:50;index"`
	AmountKobo     int64     `gorm:"not null"`
	APIAmountKobo  *int64
	BalanceBefore  int64     `gorm:"not null"`
	BalanceAfter   int64     `gorm:"not null"`
	Description    string    `gorm:"size:500"`
	Network        string    `gorm:"size:50"`
	Plan           string    `gorm:"size:100"`
	Phone          string    `gorm:"size:50"`
	ProviderRef    string    `gorm:"size:255;index"`
	APIResponse    string    `gorm:"type:text"`
	ErrorMessage   string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"not null"`
	ProcessedAt    *time.Time

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
