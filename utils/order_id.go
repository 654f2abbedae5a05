package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var mu sync.Mutex
var seededRand *rand.Rand

func init() {
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
}

// GenerateOrderID produces a unique ledger reference for an account. The
// ledger table has a unique index on it, so a duplicate insert fails loudly
// instead of silently double-writing.
func GenerateOrderID(accountID uint) string {
	mu.Lock()
	defer mu.Unlock()

	nowNano := time.Now().UnixNano()
	nanoPart := nowNano % 1000000000

	randPart := seededRand.Intn(9000) + 1000

	return fmt.Sprintf("DWK-%09d%04d%d", nanoPart, randPart, accountID)
}
