package economy

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Marjangazi/DigiWorko-V1/models"
)

// MinCollectInterval is the "too soon" floor for collections. The interval
// exists to keep spam collections of near-zero amounts off the ledger;
// override with COLLECT_MIN_SECONDS.
var MinCollectInterval = 3600 * time.Second

func init() {
	if s := os.Getenv("COLLECT_MIN_SECONDS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			MinCollectInterval = time.Duration(v) * time.Second
		}
	}
}

// CollectReceipt is returned by a successful collection.
type CollectReceipt struct {
	PositionID uint    `json:"position_id"`
	Payable    float64 `json:"payable"`
	Gap        float64 `json:"gap"`
	NewBalance float64 `json:"new_balance"`
}

// Collect realizes a worker position's accrued yield into the owner's
// balance. It is the only path that does so. At most one collection per
// position runs at a time: a concurrent call fails fast with
// ErrAlreadyInProgress instead of double-paying. All effects are one
// transaction; on any failure the position stays collectible.
func Collect(db *gorm.DB, positionID, requesterID uint) (*CollectReceipt, error) {
	release, err := acquirePosition(positionID)
	if err != nil {
		return nil, err
	}
	defer release()

	var receipt *CollectReceipt
	err = db.Transaction(func(tx *gorm.DB) error {
		var pos models.Position
		if err := forUpdate(tx).First(&pos, positionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if pos.AccountID != requesterID {
			return ErrNotOwner
		}
		if pos.Mode != models.ModeWorker {
			return ErrInvalidMode
		}
		if pos.Status != models.StatusActive {
			return ErrInvalidState
		}

		now := timeNow()
		if now.Sub(pos.LastServicedAt) < MinCollectInterval {
			return ErrTooSoon
		}

		var entry models.AssetCatalogEntry
		if err := tx.First(&entry, pos.CatalogID).Error; err != nil {
			return err
		}

		acc, err := Accrued(&pos, &entry, now)
		if err != nil {
			return err
		}

		owner, err := lockAccount(tx, pos.AccountID)
		if err != nil {
			return err
		}
		note := fmt.Sprintf("Yield from %s", entry.Name)
		if err := apply(tx, owner, acc.Payable, models.KindCollection, &pos.ID, note); err != nil {
			return err
		}

		if acc.Gap > 0 {
			house, err := houseAccount(tx)
			if err != nil {
				return err
			}
			gapNote := fmt.Sprintf("Unclaimed yield, position %d", pos.ID)
			if err := apply(tx, house, acc.Gap, models.KindGap, &pos.ID, gapNote); err != nil {
				return err
			}
		}

		if err := tx.Model(&pos).Update("last_serviced_at", now).Error; err != nil {
			return err
		}

		receipt = &CollectReceipt{
			PositionID: pos.ID,
			Payable:    acc.Payable,
			Gap:        acc.Gap,
			NewBalance: owner.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
