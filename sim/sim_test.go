/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 23 15:30:18 2026 utkarsh
 * Last modified: Mon Aug 24 13:10:47 2026 utkarsh
 * Edit time:     88 min
 *
 */

package sim

import (
	"strings"
	"testing"

	"github.com/28utkarsh/scarab/pref"
	"github.com/stvp/assert"
)

func TestCacheBasics(t *testing.T) {
	t.Parallel()

	c := NewCache(2, 2)
	r := c.Access(0x1000)
	assert.True(t, !r.Hit)
	assert.True(t, !r.Evicted)
	r = c.Access(0x1000)
	assert.True(t, r.Hit)
	assert.True(t, !r.PrefetchHit)
	assert.True(t, c.Contains(0x1000))
	assert.True(t, c.Contains(0x103f))
	assert.True(t, !c.Contains(0x1040))
}

func TestCacheLRUEviction(t *testing.T) {
	t.Parallel()

	// one set, two ways: third distinct line evicts the LRU one
	c := NewCache(1, 2)
	c.Access(0x1000)
	c.Access(0x2000)
	c.Access(0x1000) // 0x2000 now LRU
	r := c.Access(0x3000)
	assert.True(t, !r.Hit)
	assert.True(t, r.Evicted)
	assert.Equal(t, r.EvictedAddr, pref.Addr(0x2000))
}

func TestCacheFill(t *testing.T) {
	t.Parallel()

	c := NewCache(1, 2)
	evicted, _ := c.Fill(0x1000 >> pref.BlockSizeBits)
	assert.True(t, !evicted)
	assert.True(t, c.Contains(0x1000))

	// filling a resident line is a no-op
	c.Access(0x1000)
	evicted, _ = c.Fill(0x1000 >> pref.BlockSizeBits)
	assert.True(t, !evicted)

	r := c.Access(0x1000)
	assert.True(t, r.Hit)
	// prefetched flag consumed by the first demand hit
	assert.True(t, !r.PrefetchHit)
}

func TestCachePrefetchHit(t *testing.T) {
	t.Parallel()

	c := NewCache(1, 2)
	c.Fill(0x2000 >> pref.BlockSizeBits)
	r := c.Access(0x2000)
	assert.True(t, r.Hit)
	assert.True(t, r.PrefetchHit)
	r = c.Access(0x2000)
	assert.True(t, r.Hit)
	assert.True(t, !r.PrefetchHit)
}

func TestRequestQueue(t *testing.T) {
	t.Parallel()

	q := &RequestQueue{}
	q.Submit(1, 10, 7)
	q.Submit(1, 20, 7)
	assert.Equal(t, q.Len(), 2)
	var lines []uint64
	q.Drain(func(r Request) {
		lines = append(lines, r.LineIndex)
		assert.Equal(t, r.RequesterID, 1)
		assert.Equal(t, r.PrefetcherID, 7)
	})
	assert.Equal(t, lines, []uint64{10, 20})
	assert.Equal(t, q.Len(), 0)
}

func TestParseTrace(t *testing.T) {
	t.Parallel()

	input := `
# comment
0x400000 0x1000
400000 1040
`
	var pcs, addrs []pref.Addr
	err := ParseTrace(strings.NewReader(input), func(pc, addr pref.Addr) error {
		pcs = append(pcs, pc)
		addrs = append(addrs, addr)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, pcs, []pref.Addr{0x400000, 0x400000})
	assert.Equal(t, addrs, []pref.Addr{0x1000, 0x1040})

	err = ParseTrace(strings.NewReader("zzz"), func(pc, addr pref.Addr) error {
		return nil
	})
	assert.True(t, err != nil)
}

// Train on a two-block footprint, force the page out, then watch the
// replayed prefetches turn a later access into a useful hit.
func TestSimulatorEndToEnd(t *testing.T) {
	t.Parallel()

	s := NewSimulator(1, 2, pref.Config{RequesterID: 1, PrefetcherID: 7})
	const pc = pref.Addr(0x400000)

	// learn: two blocks of page 1
	s.Access(pc, 0x1000)
	s.Access(pc, 0x1040)
	// conflict evicts 0x1000 -> footprint {0,1} promoted under
	// keyA = pc + line index of 0x1000
	s.Access(pc, 0x2000)
	assert.Equal(t, s.Engine.History().Len(), 1)

	// a miss whose pc+offset matches the promoted key replays the
	// footprint onto page 0
	s.Access(pc, 0x1000>>pref.BlockSizeBits)
	assert.Equal(t, s.Stats.Prefetches, uint64(2))
	assert.True(t, s.Cache.Contains(0))

	// and the prefetched block turns a would-be miss into a hit
	s.Access(pc, 0)
	assert.Equal(t, s.Stats.UsefulPrefetches, uint64(1))

	assert.Equal(t, s.Stats.Accesses, uint64(5))
	assert.True(t, s.Stats.String() != "")
}
