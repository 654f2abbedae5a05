package economy

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Marjangazi/DigiWorko-V1/models"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

// forUpdate adds a SELECT ... FOR UPDATE clause on MySQL. The sqlite driver
// used by the test suite is single-writer and rejects the clause, so row
// locking only applies against the real database.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// lockAccount loads an account row under lock for read-modify-write.
func lockAccount(tx *gorm.DB, accountID uint) (*models.Account, error) {
	var acc models.Account
	if err := forUpdate(tx).First(&acc, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// apply mutates an account balance and appends the matching ledger entry in
// the caller's transaction. amount is signed and rounded to coin precision
// before anything else, so the ledger entry always records exactly the delta
// the balance took; debits that would push the balance negative fail with
// ErrInsufficientBalance. The caller must hold the account row lock.
func apply(tx *gorm.DB, acc *models.Account, amount float64, kind string, positionID *uint, note string) error {
	amount = utils.RoundFloat(amount, 4)
	newBalance := utils.RoundFloat(acc.Balance+amount, 4)
	if newBalance < 0 {
		return ErrInsufficientBalance
	}
	if err := tx.Model(&models.Account{}).Where("id = ?", acc.ID).
		Update("balance", newBalance).Error; err != nil {
		return err
	}
	acc.Balance = newBalance

	entry := models.LedgerEntry{
		AccountID:  acc.ID,
		Amount:     amount,
		Kind:       kind,
		OrderID:    utils.GenerateOrderID(acc.ID),
		PositionID: positionID,
	}
	if note != "" {
		entry.Note = &note
	}
	return tx.Create(&entry).Error
}

// houseAccount returns the system-owned vault account that receives gap
// yield and maintenance fees. It is seeded at startup.
func houseAccount(tx *gorm.DB) (*models.Account, error) {
	var acc models.Account
	if err := forUpdate(tx).Where("role = ?", "house").First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("house vault account missing: %w", err)
		}
		return nil, err
	}
	return &acc, nil
}

// EnsureHouseAccount seeds the vault account if it does not exist yet.
func EnsureHouseAccount(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Account{}).Where("role = ?", "house").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	house := models.Account{
		Username: "house-vault",
		Email:    "vault@system.local",
		Password: "-",
		Role:     "house",
		Verified: true,
	}
	return db.Create(&house).Error
}

// Reconciliation compares an account balance against the sum of its ledger
// entries. The two must always agree; a mismatch means a balance was mutated
// outside the engine.
type Reconciliation struct {
	AccountID uint    `json:"account_id"`
	Balance   float64 `json:"balance"`
	LedgerSum float64 `json:"ledger_sum"`
	Balanced  bool    `json:"balanced"`
}

// Reconcile checks the ledger reconciliation invariant for one account.
func Reconcile(db *gorm.DB, accountID uint) (*Reconciliation, error) {
	var acc models.Account
	if err := db.First(&acc, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var sum float64
	row := db.Model(&models.LedgerEntry{}).
		Where("account_id = ?", accountID).
		Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&sum); err != nil {
		return nil, err
	}
	sum = utils.RoundFloat(sum, 4)
	return &Reconciliation{
		AccountID: accountID,
		Balance:   acc.Balance,
		LedgerSum: sum,
		Balanced:  sum == acc.Balance,
	}, nil
}
