package economy

import (
	"gorm.io/gorm"

	"github.com/Marjangazi/DigiWorko-V1/models"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

// AdjustReceipt reports an administrative balance adjustment.
type AdjustReceipt struct {
	AccountID  uint    `json:"account_id"`
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"new_balance"`
}

// Adjust applies an already-authorized administrative credit or debit with a
// note. The referral subsystem's commission credits come through here too;
// the engine only guarantees balance/ledger consistency, not authorization.
// Amounts are taken at coin precision; anything that rounds to zero is
// rejected rather than written as a dust entry.
func Adjust(db *gorm.DB, accountID uint, amount float64, note string) (*AdjustReceipt, error) {
	amount = utils.RoundFloat(amount, 4)
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	var receipt *AdjustReceipt
	err := db.Transaction(func(tx *gorm.DB) error {
		acc, err := lockAccount(tx, accountID)
		if err != nil {
			return err
		}
		if err := apply(tx, acc, amount, models.KindAdminAdjustment, nil, note); err != nil {
			return err
		}
		receipt = &AdjustReceipt{AccountID: accountID, Amount: amount, NewBalance: acc.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
