package models

import "time"

const (
	ModeWorker   = "worker"
	ModeInvestor = "investor"

	StatusActive  = "active"
	StatusPaused  = "paused"
	StatusMatured = "matured"
	StatusClosed  = "closed"
)

// Position is one owned asset instance. Mode is immutable after purchase.
// HealthPct and LastMaintainedAt are only meaningful for worker mode,
// MaturityAt only for investor mode. BonusYieldPct and AppliedDiscountPct are
// snapshots of the promotion that was effective at purchase time; they never
// track the current promotion afterwards.
type Position struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	AccountID          uint       `gorm:"not null;index" json:"account_id"`
	CatalogID          uint       `gorm:"not null;index" json:"catalog_id"`
	Mode               string     `gorm:"type:varchar(16);not null" json:"mode"`
	Status             string     `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`
	PurchasedAt        time.Time  `gorm:"not null" json:"purchased_at"`
	LastServicedAt     time.Time  `gorm:"not null" json:"last_serviced_at"`
	LastMaintainedAt   *time.Time `json:"last_maintained_at,omitempty"`
	HealthPct          float64    `gorm:"type:decimal(7,4);not null;default:100" json:"health_pct"`
	MaturityAt         *time.Time `json:"maturity_at,omitempty"`
	BonusYieldPct      float64    `gorm:"type:decimal(8,4);not null;default:0" json:"bonus_yield_pct"`
	AppliedDiscountPct float64    `gorm:"type:decimal(8,4);not null;default:0" json:"applied_discount_pct"`
	CreatedAt          time.Time  `json:"-"`
	UpdatedAt          time.Time  `json:"-"`

	// Relations
	Catalog *AssetCatalogEntry `gorm:"foreignKey:CatalogID" json:"catalog,omitempty"`
}

func (Position) TableName() string {
	return "positions"
}

// EffectiveStatus derives the status at the given instant. An active
// investor position whose lock period has elapsed reads as matured even
// before a sweep or release has touched the row; every other state passes
// through unchanged.
func (p *Position) EffectiveStatus(now time.Time) string {
	if p.Mode == ModeInvestor && p.Status == StatusActive &&
		p.MaturityAt != nil && !now.Before(*p.MaturityAt) {
		return StatusMatured
	}
	return p.Status
}
