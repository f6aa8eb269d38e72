/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Tue Mar 17 10:12:45 2026 utkarsh
 * Last modified: Fri Aug 21 17:03:12 2026 utkarsh
 * Edit time:     118 min
 *
 */

package pref

import (
	"testing"

	"github.com/stvp/assert"
)

type recordingQueue struct {
	lines []uint64
}

func (self *recordingQueue) Submit(requesterID int, lineIndex uint64, prefetcherID int) {
	self.lines = append(self.lines, lineIndex)
}

func newTestEngine() (*Engine, *recordingQueue) {
	q := &recordingQueue{}
	e := NewEngine(Config{RequesterID: 1, PrefetcherID: 7}, q)
	return e, q
}

func TestObservationStore(t *testing.T) {
	t.Parallel()

	s := NewObservationStore(16)
	s.Touch(1, 0x1000, 0x400000, 0)
	s.Touch(1, 0x1040, 0x999999, 1) // later pc does not replace trigger
	s.Touch(2, 0x2000, 0x400000, 0)
	assert.Equal(t, s.Len(), 2)

	obs, found := s.Take(1)
	assert.True(t, found)
	assert.Equal(t, obs.TriggerAddr, Addr(0x1000))
	assert.Equal(t, obs.PC, Addr(0x400000))
	assert.True(t, obs.Footprint.Test(0))
	assert.True(t, obs.Footprint.Test(1))
	assert.Equal(t, obs.Footprint.Count(), 2)
	assert.Equal(t, s.Len(), 1)

	_, found = s.Take(1)
	assert.True(t, !found)
}

// Learn a two-block footprint on one page, evict it, and check the
// remembered footprint is replayed on a later miss from the same
// instruction context.
func TestEngineLearnAndPredict(t *testing.T) {
	t.Parallel()

	e, q := newTestEngine()
	const pc = Addr(0x400000)
	const a0 = Addr(0x1000) // page 1, block 0

	// no history yet: both misses only learn
	e.OnMiss(a0, pc)
	e.OnMiss(a0+BlockSize, pc)
	assert.Equal(t, len(q.lines), 0)
	assert.Equal(t, e.Observations().Len(), 1)

	// eviction promotes the footprint exactly once
	e.OnEvict(a0)
	assert.Equal(t, e.Observations().Len(), 0)
	assert.Equal(t, e.History().Len(), 1)
	e.OnEvict(a0)
	assert.Equal(t, e.History().Len(), 1)

	// history landed under pc + line index of the evicted address
	bucket, found := e.History().Get(pc + a0>>BlockSizeBits)
	assert.True(t, found)
	assert.Equal(t, bucket.Size(), 1)
	r, _ := bucket.FindAny()
	assert.Equal(t, r.KeyB, pc+a0)
	assert.Equal(t, r.Footprint.Count(), 2)

	// a miss whose pc+offset key matches replays both blocks of
	// the *new* page, lowest block first
	miss := a0 >> BlockSizeBits // 0x40: page 0, block 1
	e.OnMiss(miss, pc)
	assert.Equal(t, q.lines, []uint64{0, 1})
	// prediction path does not learn
	assert.Equal(t, e.Observations().Len(), 0)
}

func TestEngineHitNeverPredicts(t *testing.T) {
	t.Parallel()

	e, q := newTestEngine()
	const pc = Addr(0x400000)

	// plant history that a miss at 0x1040 would match exactly
	keyA := pc + 0x1040
	var fp Footprint
	fp.Set(3)
	e.History().Upsert(keyA, HistoryRecord{KeyA: keyA, KeyB: pc + 0x1040, Footprint: fp})

	e.OnHit(0x1040, pc)
	assert.Equal(t, len(q.lines), 0)
	assert.Equal(t, e.Observations().Len(), 1)
}

func TestEngineExactMatchPreferred(t *testing.T) {
	t.Parallel()

	e, q := newTestEngine()
	const pc = Addr(0)
	const addr = Addr(0x1040) // aligned, so keyA == keyB == 0x1040

	keyA := addr
	var fpExact, fpOther Footprint
	fpExact.Set(3)
	fpOther.Set(5)
	e.History().Upsert(keyA, HistoryRecord{KeyA: keyA, KeyB: addr, Footprint: fpExact})
	// a more recent record under the same keyA
	e.History().Upsert(keyA, HistoryRecord{KeyA: keyA, KeyB: 0x9999, Footprint: fpOther})

	e.OnMiss(addr, pc)

	// exact keyB match won over the MRU fallback: block 3 of page 1
	assert.Equal(t, q.lines, []uint64{(0x1000 + 3*BlockSize) >> BlockSizeBits})

	// and the predicted record got promoted to MRU
	bucket, _ := e.History().Get(keyA)
	r, _ := bucket.FindAny()
	assert.Equal(t, r.KeyB, addr)
}

func TestEngineFallbackIsMRU(t *testing.T) {
	t.Parallel()

	e, q := newTestEngine()
	const keyA = Addr(0x5000)

	var fpOld, fpNew Footprint
	fpOld.Set(1)
	fpNew.Set(2)
	e.History().Upsert(keyA, HistoryRecord{KeyA: keyA, KeyB: 0x111, Footprint: fpOld})
	e.History().Upsert(keyA, HistoryRecord{KeyA: keyA, KeyB: 0x222, Footprint: fpNew})

	// pc 0, aligned addr 0x5000: keyA matches, keyB (0x5000)
	// matches neither record, so the MRU one is used
	e.OnMiss(0x5000, 0)
	assert.Equal(t, q.lines, []uint64{(0x5000 + 2*BlockSize) >> BlockSizeBits})
}

func TestEngineColdStartLearns(t *testing.T) {
	t.Parallel()

	e, q := newTestEngine()
	e.OnMiss(0x3000, 0x77)
	assert.Equal(t, len(q.lines), 0)
	obs, found := e.Observations().Take(PageNumber(0x3000))
	assert.True(t, found)
	assert.Equal(t, obs.TriggerAddr, Addr(0x3000))
	assert.Equal(t, obs.PC, Addr(0x77))
	assert.True(t, obs.Footprint.Test(0))
}

func TestEngineEmitOrderDeterministic(t *testing.T) {
	t.Parallel()

	e, q := newTestEngine()
	var fp Footprint
	fp.Set(62)
	fp.Set(0)
	fp.Set(17)
	e.emitPrefetches(fp, 2) // page 2, base 0x2000

	base := uint64(0x2000 >> BlockSizeBits)
	assert.Equal(t, q.lines, []uint64{base, base + 17, base + 62})
}
