package models

import "time"

// AssetCatalogEntry is the per-asset-type configuration. Rows are written
// only by the admin catalog endpoints; the engine treats them as read-only.
// Yield and fee percentages are monthly, the investor yield is per 30-day
// term.
type AssetCatalogEntry struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Name                  string    `gorm:"size:100;not null" json:"name"`
	Description           string    `gorm:"size:255" json:"description"`
	Icon                  string    `gorm:"size:16" json:"icon"`
	BasePriceCoins        float64   `gorm:"type:decimal(20,4);not null" json:"base_price_coins"`
	WorkerGrossYieldPct   float64   `gorm:"type:decimal(8,4);not null" json:"worker_gross_yield_pct"`
	MaintenanceFeePct     float64   `gorm:"type:decimal(8,4);not null;default:0" json:"maintenance_fee_pct"`
	InvestorFixedYieldPct float64   `gorm:"type:decimal(8,4);not null;default:0" json:"investor_fixed_yield_pct"`
	Active                bool      `gorm:"not null;default:true" json:"active"`
	SortOrder             int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (AssetCatalogEntry) TableName() string {
	return "asset_catalog"
}
