package models

import "time"

// Account holds a user's DGC coin balance. The balance column is never
// written directly by handlers; every mutation goes through the economy
// package inside a transaction together with its ledger entry.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Balance   float64   `gorm:"type:decimal(20,4);not null;default:0" json:"balance"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	Role      string    `gorm:"type:varchar(16);not null;default:'user';index" json:"role"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}
