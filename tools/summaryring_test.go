package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryRingAddAndDrain(t *testing.T) {
	r := NewSummaryRing(3)

	for h := uint64(1); h <= 5; h++ {
		r.Add(&BlockSummary{Height: h, TxCount: int(h)})
	}

	// only the newest 3 summaries survive, drained oldest first
	var heights []uint64
	r.Drain(func(s *BlockSummary) {
		heights = append(heights, s.Height)
	})
	assert.Equal(t, []uint64{3, 4, 5}, heights)

	// drained empty
	count := 0
	r.Drain(func(*BlockSummary) { count++ })
	assert.Equal(t, 0, count)

	// usable again after draining
	r.Add(&BlockSummary{Height: 6})
	heights = nil
	r.Drain(func(s *BlockSummary) {
		heights = append(heights, s.Height)
	})
	assert.Equal(t, []uint64{6}, heights)
}

func TestSummaryRingZeroCapacity(t *testing.T) {
	r := NewSummaryRing(0)
	r.Add(&BlockSummary{Height: 1})
	count := 0
	r.Drain(func(*BlockSummary) { count++ })
	assert.Equal(t, 0, count)
}
