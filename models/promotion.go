package models

import "time"

// Promotion is a singleton row (id = 1). The raw Active flag is not the
// truth: a promotion whose EndsAt has passed is expired even when the flag is
// still set. Callers must use Effective, never Active alone.
type Promotion struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Active        bool       `gorm:"not null;default:false" json:"active"`
	DiscountPct   float64    `gorm:"type:decimal(8,4);not null;default:0" json:"discount_pct"`
	BonusYieldPct float64    `gorm:"type:decimal(8,4);not null;default:0" json:"bonus_yield_pct"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	UpdatedAt     time.Time  `json:"-"`
}

func (Promotion) TableName() string {
	return "promotions"
}

// Effective reports whether the promotion applies at the given instant.
func (p *Promotion) Effective(now time.Time) bool {
	if p == nil || !p.Active || p.EndsAt == nil {
		return false
	}
	return now.Before(*p.EndsAt)
}
