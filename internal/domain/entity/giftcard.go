package entity

import "time"

// GiftCard is a prepaid credit code. A code transitions is_redeemed
// false -> true at most once, and only while now() < ExpiresAt.
type GiftCard struct {
	ID         uint64
	Code       string
	AmountKobo int64
	ExpiresAt  time.Time
	IsRedeemed bool
	RedeemedBy *uint64
	RedeemedAt *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the card can no longer be redeemed because of age.
func (g *GiftCard) Expired(now time.Time) bool {
	return !now.Before(g.ExpiresAt)
}
