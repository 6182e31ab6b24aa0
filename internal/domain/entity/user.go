package entity

import (
	"strings"
	"time"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
)

// User represents a wallet-holding account. Balance and Reward are kept in
// kobo. Reward is a separate accrual bucket that only becomes spendable after
// an explicit reward-to-wallet conversion.
type User struct {
	ID          uint64
	Email       string
	Name        string
	BalanceKobo int64
	RewardKobo  int64
	Role        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// NewUser creates a user with zero balances.
func NewUser(email, name string, timeProvider coreport.TimeProvider) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errs.ErrInvalidEmail
	}

	now := timeProvider.Now()
	return &User{
		Email:     email,
		Name:      strings.TrimSpace(name),
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the spendable balance formatted with 2 decimal places.
func (u *User) Balance() string {
	return KoboToString(u.BalanceKobo)
}

// Reward returns the reward balance formatted with 2 decimal places.
func (u *User) Reward() string {
	return KoboToString(u.RewardKobo)
}

// CanSpend reports whether the user has enough spendable balance.
func (u *User) CanSpend(amountKobo int64) bool {
	return u.BalanceKobo >= amountKobo
}

// NameMatches compares a caller-supplied display name against the stored name,
// ignoring case and whitespace runs. Used as the anti-misdirection check on
// wallet-to-wallet transfers.
func (u *User) NameMatches(supplied string) bool {
	return normalizeName(u.Name) == normalizeName(supplied)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
