package economy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Marjangazi/DigiWorko-V1/utils"
)

// positionLocks serializes mutating operations per position within this
// process. When Redis is configured the same guard is extended across
// instances with a SETNX lease, so two replicas cannot run concurrent
// collections against one position either way.
var positionLocks = struct {
	mu   sync.Mutex
	held map[uint]bool
}{held: make(map[uint]bool)}

const redisLockTTL = 10 * time.Second

// acquirePosition takes the per-position lock or fails fast with
// ErrAlreadyInProgress. The returned release func must be called after the
// surrounding transaction has committed or rolled back.
func acquirePosition(positionID uint) (func(), error) {
	positionLocks.mu.Lock()
	if positionLocks.held[positionID] {
		positionLocks.mu.Unlock()
		return nil, ErrAlreadyInProgress
	}
	positionLocks.held[positionID] = true
	positionLocks.mu.Unlock()

	releaseLocal := func() {
		positionLocks.mu.Lock()
		delete(positionLocks.held, positionID)
		positionLocks.mu.Unlock()
	}

	if utils.RedisClient == nil {
		return releaseLocal, nil
	}

	ctx := context.Background()
	key := fmt.Sprintf("economy:lock:pos:%d", positionID)
	ok, err := utils.RedisClient.SetNX(ctx, key, "1", redisLockTTL).Result()
	if err != nil {
		// Redis outage must not take collections down; the local lock
		// still holds for this instance.
		return releaseLocal, nil
	}
	if !ok {
		releaseLocal()
		return nil, ErrAlreadyInProgress
	}
	return func() {
		_ = utils.RedisClient.Del(ctx, key).Err()
		releaseLocal()
	}, nil
}
