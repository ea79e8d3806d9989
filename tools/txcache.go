package tools

import (
	"errors"
	"sync/atomic"
)

// ErrInvalidCacheCapacity is returned when constructing a cache with a non positive capacity.
var ErrInvalidCacheCapacity = errors.New("invalid cache capacity")

// NewCachedSeenTxs new cached seen txs
func NewCachedSeenTxs(capacity int) (*CachedSeenTxs, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCacheCapacity
	}
	return &CachedSeenTxs{
		capacity: capacity,
		txs:      make(map[string]uint64),
	}, nil
}

// CachedSeenTxs caches seen tx hashes with the height each hash was first
// seen at. When the entry count reaches capacity the whole cache is cleared,
// so a duplicate whose first occurrence was just flushed away goes undetected.
type CachedSeenTxs struct {
	capacity int
	txs      map[string]uint64 // tx hash -> first seen height
	flushes  uint64
}

// RecordSeenTx records the tx hash as seen at the given height.
// If the hash is already recorded, returns the height it was first seen at
// and true, keeping the earlier record untouched.
func (c *CachedSeenTxs) RecordSeenTx(txHash string, height uint64) (firstHeight uint64, duplicate bool) {
	if len(c.txs) >= c.capacity {
		c.txs = make(map[string]uint64)
		atomic.AddUint64(&c.flushes, 1)
	}
	if first, exist := c.txs[txHash]; exist {
		return first, true
	}
	c.txs[txHash] = height
	return height, false
}

// Size return current entry count
func (c *CachedSeenTxs) Size() int {
	return len(c.txs)
}

// Flushes return how many times the cache was cleared on reaching capacity
func (c *CachedSeenTxs) Flushes() uint64 {
	return atomic.LoadUint64(&c.flushes)
}
