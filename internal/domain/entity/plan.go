package entity

import "time"

// Plan is a catalog row mapping a product code to its selling price.
// Price resolution happens before any balance check: a missing or inactive
// plan fails the request without touching the ledger.
type Plan struct {
	ID        uint64
	Code      string
	Product   TransactionType
	Network   string
	Name      string
	PriceKobo int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Price returns the selling price formatted with 2 decimal places.
func (p *Plan) Price() string {
	return KoboToString(p.PriceKobo)
}
