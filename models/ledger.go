package models

import "time"

// Ledger entry kinds. Purchase, repair and maintenance entries carry negative
// amounts; collection, gap, maturity and positive adjustments carry positive
// amounts. The sum of a single account's entries equals its current balance.
const (
	KindPurchase        = "purchase"
	KindCollection      = "collection"
	KindGap             = "gap"
	KindRepair          = "repair"
	KindMaintenance     = "maintenance"
	KindMaturity        = "maturity"
	KindAdminAdjustment = "admin_adjustment"
)

// LedgerEntry is an append-only record of one signed balance change. Rows are
// only ever inserted, in the same transaction as the balance update they
// describe.
type LedgerEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AccountID  uint      `gorm:"not null;index" json:"account_id"`
	Amount     float64   `gorm:"type:decimal(20,4);not null" json:"amount"`
	Kind       string    `gorm:"type:varchar(32);not null;index" json:"kind"`
	OrderID    string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"order_id"`
	PositionID *uint     `gorm:"index" json:"position_id,omitempty"`
	Note       *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
