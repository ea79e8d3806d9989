package tools

import (
	"container/ring"
	"sync"
)

// BlockSummary brief record of one scanned block
type BlockSummary struct {
	Height    uint64
	BlockHash string
	TxCount   int
}

// SummaryRing bounded ring buffer of block summaries,
// oldest entries are dropped when full
type SummaryRing struct {
	ring     *ring.Ring
	lock     sync.RWMutex
	capacity int
}

// NewSummaryRing constructor
func NewSummaryRing(capacity int) *SummaryRing {
	return &SummaryRing{
		capacity: capacity,
	}
}

// Add add block summary
func (r *SummaryRing) Add(s *BlockSummary) {
	if r.capacity <= 0 {
		return
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	item := ring.New(1)
	item.Value = s

	if r.ring.Len() == 0 || r.capacity == 1 {
		r.ring = item
	} else {
		if r.ring.Len() == r.capacity {
			r.delCurrent()
		}
		r.ring.Prev().Link(item)
	}
}

func (r *SummaryRing) delCurrent() {
	if r.ring.Len() > 1 {
		r.ring = r.ring.Prev()
		r.ring.Unlink(1)
		r.ring = r.ring.Next()
	} else {
		r.ring = nil
	}
}

// Drain remove and visit all summaries, oldest first
func (r *SummaryRing) Drain(do func(*BlockSummary)) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for r.ring.Len() > 0 {
		if s, ok := r.ring.Value.(*BlockSummary); ok {
			do(s)
		}
		r.delCurrent()
	}
}
