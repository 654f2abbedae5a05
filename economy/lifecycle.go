package economy

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Marjangazi/DigiWorko-V1/models"
)

// lockOwnedPosition loads a position under lock and checks ownership.
func lockOwnedPosition(tx *gorm.DB, positionID, requesterID uint) (*models.Position, error) {
	var pos models.Position
	if err := forUpdate(tx).First(&pos, positionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if pos.AccountID != requesterID {
		return nil, ErrNotOwner
	}
	return &pos, nil
}

// RepairReceipt reports a successful repair.
type RepairReceipt struct {
	PositionID uint    `json:"position_id"`
	Cost       float64 `json:"cost"`
	NewBalance float64 `json:"new_balance"`
}

// Repair restores a damaged worker position to full health for a flat 10% of
// the catalog base price and reactivates it if it was paused. Collection at
// partial health runs at the full rate; only a paused position stops earning,
// so repair is worth doing before health bottoms out.
func Repair(db *gorm.DB, positionID, requesterID uint) (*RepairReceipt, error) {
	release, err := acquirePosition(positionID)
	if err != nil {
		return nil, err
	}
	defer release()

	var receipt *RepairReceipt
	err = db.Transaction(func(tx *gorm.DB) error {
		pos, err := lockOwnedPosition(tx, positionID, requesterID)
		if err != nil {
			return err
		}
		if pos.Mode != models.ModeWorker {
			return ErrInvalidMode
		}
		if pos.Status == models.StatusClosed {
			return ErrInvalidState
		}
		if pos.HealthPct >= 100 && pos.Status != models.StatusPaused {
			return ErrNotDamaged
		}

		var entry models.AssetCatalogEntry
		if err := tx.First(&entry, pos.CatalogID).Error; err != nil {
			return err
		}
		cost := RepairCost(&entry)

		owner, err := lockAccount(tx, pos.AccountID)
		if err != nil {
			return err
		}
		note := fmt.Sprintf("Repair %s", entry.Name)
		if err := apply(tx, owner, -cost, models.KindRepair, &pos.ID, note); err != nil {
			return err
		}

		now := timeNow()
		updates := map[string]interface{}{
			"health_pct": 100,
			"status":     models.StatusActive,
		}
		if pos.Status == models.StatusPaused {
			// A paused position earned nothing while broken; restart the
			// accrual window now instead of paying for downtime.
			updates["last_serviced_at"] = now
		}
		if err := tx.Model(pos).Updates(updates).Error; err != nil {
			return err
		}

		receipt = &RepairReceipt{PositionID: pos.ID, Cost: cost, NewBalance: owner.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Close retires a worker position. No refund; any uncollected accrual is
// forfeited.
func Close(db *gorm.DB, positionID, requesterID uint) error {
	release, err := acquirePosition(positionID)
	if err != nil {
		return err
	}
	defer release()

	return db.Transaction(func(tx *gorm.DB) error {
		pos, err := lockOwnedPosition(tx, positionID, requesterID)
		if err != nil {
			return err
		}
		if pos.Mode != models.ModeWorker {
			return ErrInvalidMode
		}
		if pos.Status == models.StatusClosed {
			return ErrInvalidState
		}
		return tx.Model(pos).Update("status", models.StatusClosed).Error
	})
}

// MaturityReceipt reports an investor payout.
type MaturityReceipt struct {
	PositionID uint    `json:"position_id"`
	Payout     float64 `json:"payout"`
	NewBalance float64 `json:"new_balance"`
}

// releaseMatured pays out a matured investor position and closes it. The
// status check runs inside the same transaction as the credit, which is what
// makes re-invocation a no-op rather than a double payment.
func releaseMatured(tx *gorm.DB, pos *models.Position, now time.Time) (*MaturityReceipt, error) {
	if pos.Mode != models.ModeInvestor {
		return nil, ErrInvalidMode
	}
	if pos.Status == models.StatusClosed {
		return nil, ErrInvalidState
	}
	if pos.MaturityAt == nil || now.Before(*pos.MaturityAt) {
		return nil, ErrNotMatured
	}

	var entry models.AssetCatalogEntry
	if err := tx.First(&entry, pos.CatalogID).Error; err != nil {
		return nil, err
	}
	payout := InvestorPayout(&entry)

	owner, err := lockAccount(tx, pos.AccountID)
	if err != nil {
		return nil, err
	}
	note := fmt.Sprintf("Matured %s, principal plus %.2f%%", entry.Name, entry.InvestorFixedYieldPct)
	if err := apply(tx, owner, payout, models.KindMaturity, &pos.ID, note); err != nil {
		return nil, err
	}
	if err := tx.Model(pos).Update("status", models.StatusClosed).Error; err != nil {
		return nil, err
	}
	return &MaturityReceipt{PositionID: pos.ID, Payout: payout, NewBalance: owner.Balance}, nil
}

// Release is the owner-triggered maturity payout for one investor position.
func Release(db *gorm.DB, positionID, requesterID uint) (*MaturityReceipt, error) {
	release, err := acquirePosition(positionID)
	if err != nil {
		return nil, err
	}
	defer release()

	var receipt *MaturityReceipt
	err = db.Transaction(func(tx *gorm.DB) error {
		pos, err := lockOwnedPosition(tx, positionID, requesterID)
		if err != nil {
			return err
		}
		receipt, err = releaseMatured(tx, pos, timeNow())
		return err
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// MaturitySweep pays out every investor position whose lock period has
// elapsed. Safe to re-run: already-closed positions are skipped inside their
// own transaction. Returns the number of positions credited.
func MaturitySweep(db *gorm.DB) (int, error) {
	now := timeNow()
	var due []models.Position
	if err := db.Where("mode = ? AND status IN ? AND maturity_at IS NOT NULL AND maturity_at <= ?",
		models.ModeInvestor, []string{models.StatusActive, models.StatusMatured}, now).
		Find(&due).Error; err != nil {
		return 0, err
	}

	credited := 0
	for i := range due {
		id := due[i].ID
		err := func() error {
			release, err := acquirePosition(id)
			if err != nil {
				return err
			}
			defer release()
			return db.Transaction(func(tx *gorm.DB) error {
				var pos models.Position
				if err := forUpdate(tx).First(&pos, id).Error; err != nil {
					return err
				}
				_, err := releaseMatured(tx, &pos, now)
				return err
			})
		}()
		if err != nil {
			// Skipped rows stay due and the next sweep retries them.
			continue
		}
		credited++
	}
	return credited, nil
}

// MaintenanceDecay runs the daily upkeep pass over active worker positions:
// debit the owner for the daily maintenance fee (credited to the house
// vault) and wear the asset down by its maintenance percentage in health
// points. Owners who cannot cover the fee get paused, not charged. Safe to
// re-run; positions maintained within the last 24h are skipped.
func MaintenanceDecay(db *gorm.DB) (processed, paused int, err error) {
	now := timeNow()
	cutoff := now.Add(-24 * time.Hour)
	var due []models.Position
	if err := db.Where("mode = ? AND status = ? AND (last_maintained_at IS NULL OR last_maintained_at <= ?)",
		models.ModeWorker, models.StatusActive, cutoff).
		Find(&due).Error; err != nil {
		return 0, 0, err
	}

	for i := range due {
		id := due[i].ID
		wasPaused := false
		err := func() error {
			release, err := acquirePosition(id)
			if err != nil {
				return err
			}
			defer release()
			return db.Transaction(func(tx *gorm.DB) error {
				var pos models.Position
				if err := forUpdate(tx).First(&pos, id).Error; err != nil {
					return err
				}
				if pos.Status != models.StatusActive {
					return ErrInvalidState
				}
				if pos.LastMaintainedAt != nil && pos.LastMaintainedAt.After(cutoff) {
					return ErrInvalidState
				}

				var entry models.AssetCatalogEntry
				if err := tx.First(&entry, pos.CatalogID).Error; err != nil {
					return err
				}
				fee := DailyMaintenanceFee(&entry)

				owner, err := lockAccount(tx, pos.AccountID)
				if err != nil {
					return err
				}

				updates := map[string]interface{}{"last_maintained_at": now}

				if fee > 0 && owner.Balance < fee {
					updates["status"] = models.StatusPaused
					wasPaused = true
					return tx.Model(&pos).Updates(updates).Error
				}

				if fee > 0 {
					note := fmt.Sprintf("Upkeep %s", entry.Name)
					if err := apply(tx, owner, -fee, models.KindMaintenance, &pos.ID, note); err != nil {
						return err
					}
					house, err := houseAccount(tx)
					if err != nil {
						return err
					}
					if err := apply(tx, house, fee, models.KindMaintenance, &pos.ID, note); err != nil {
						return err
					}
				}

				health := pos.HealthPct - entry.MaintenanceFeePct
				if health <= 0 {
					health = 0
					updates["status"] = models.StatusPaused
					wasPaused = true
				}
				updates["health_pct"] = health
				return tx.Model(&pos).Updates(updates).Error
			})
		}()
		if err != nil {
			continue
		}
		processed++
		if wasPaused {
			paused++
		}
	}
	return processed, paused, nil
}
