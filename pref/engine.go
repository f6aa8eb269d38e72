/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 16 13:40:05 2026 utkarsh
 * Last modified: Fri Aug 21 16:22:09 2026 utkarsh
 * Edit time:     142 min
 *
 */

// pref implements a spatial-correlation prefetch engine. It watches
// the hit/miss/evict stream of one cache level, accumulates
// per-page footprints of which blocks each triggering instruction
// touches, commits those footprints to a per-(pc+offset) history when
// the page leaves the cache, and on later misses from the same
// context replays the remembered footprint as prefetch requests.
//
// The engine is single-threaded by design: the host delivers events
// in program access order and every handler runs to completion, so
// there is no locking anywhere in this package.
package pref

import (
	"github.com/28utkarsh/scarab/mlog"
)

// RequestQueue is where the engine drops its block fetch requests.
// Fire and forget; deduplication against already-resident lines is
// the host cache's business, not ours.
type RequestQueue interface {
	Submit(requesterID int, lineIndex uint64, prefetcherID int)
}

// Config carries the host-supplied constants. Architectural sizes
// (page, block, bucket ways) are compile-time constants in this
// package; only identity and table sizing vary per host.
type Config struct {
	// RequesterID and PrefetcherID tag submitted requests so the
	// host can attribute them.
	RequesterID  int
	PrefetcherID int

	// LineSizeBits is log2 of the host cache line size, used to
	// turn absolute block addresses into line indexes for the
	// request queue. Zero means BlockSizeBits.
	LineSizeBits uint

	// HistoryTableSize / ObservationTableSize bound the two
	// stores. Zero means DefaultTableSize.
	HistoryTableSize     int
	ObservationTableSize int
}

// DefaultTableSize bounds either store when the host does not say.
const DefaultTableSize = 2048

// Engine owns the two stores and handles the three events. One
// instance per tracked cache level; no package-level state.
type Engine struct {
	config       Config
	queue        RequestQueue
	observations *ObservationStore
	history      *HistoryStore
	enabled      bool
}

func NewEngine(config Config, queue RequestQueue) *Engine {
	if config.LineSizeBits == 0 {
		config.LineSizeBits = BlockSizeBits
	}
	if config.HistoryTableSize == 0 {
		config.HistoryTableSize = DefaultTableSize
	}
	if config.ObservationTableSize == 0 {
		config.ObservationTableSize = DefaultTableSize
	}
	self := &Engine{config: config, queue: queue}
	self.observations = NewObservationStore(config.ObservationTableSize)
	self.history = NewHistoryStore(config.HistoryTableSize)
	self.enabled = true
	mlog.Printf2("pref/engine", "engine initialized (history:%d observations:%d)",
		config.HistoryTableSize, config.ObservationTableSize)
	return self
}

// History exposes the durable store for snapshotting.
func (self *Engine) History() *HistoryStore {
	return self.history
}

// Observations exposes the transient store, mostly for inspection.
func (self *Engine) Observations() *ObservationStore {
	return self.observations
}

// OnHit handles an access that hit the tracked level. Only learning
// happens here: the access already succeeded, so there is nothing to
// predict.
func (self *Engine) OnHit(addr, pc Addr) {
	if !self.enabled {
		return
	}
	page := PageNumber(addr)
	blockIndex := BlockIndex(addr)
	mlog.Printf2("pref/engine", "OnHit addr:%x pc:%x page:%x block:%d", addr, pc, page, blockIndex)
	self.observations.Touch(page, addr, pc, blockIndex)
}

// OnMiss handles an access that missed the tracked level:
//
// 1) exact pc+address match in history wins,
// 2) else the most recent record under the same pc+offset,
// 3) else keep learning exactly as a hit would.
//
// A successful prediction replays the record's footprint as prefetch
// requests and promotes the record to MRU; no learning write happens
// on that path.
func (self *Engine) OnMiss(addr, pc Addr) {
	if !self.enabled {
		return
	}
	alignedAddr := (addr >> BlockSizeBits) << BlockSizeBits
	keyA := pc + alignedAddr
	keyB := pc + addr
	page := PageNumber(addr)
	blockIndex := BlockIndex(addr)
	mlog.Printf2("pref/engine", "OnMiss addr:%x pc:%x keyA:%x keyB:%x", addr, pc, keyA, keyB)

	bucket, found := self.history.Get(keyA)
	if !found {
		mlog.Printf2("pref/engine", " no history; learning")
		self.observations.Touch(page, addr, pc, blockIndex)
		return
	}

	record, found := bucket.FindByKeyB(keyB)
	if !found {
		// MRU fallback: any record here already shares keyA
		record, found = bucket.FindAny()
	}

	if found {
		mlog.Printf2("pref/engine", " predicting from keyB:%x %s", record.KeyB, record.Footprint)
		self.emitPrefetches(record.Footprint, page)
		bucket.Touch(record.KeyB)
		return
	}

	mlog.Printf2("pref/engine", " empty bucket; learning")
	self.observations.Touch(page, addr, pc, blockIndex)
}

// OnEvict handles eviction of a line from the tracked level. If the
// line's page was under observation, the accumulated footprint is
// promoted into history, keyed by the observing pc plus the evicted
// line's index. This is the only path from transient observation to
// durable history, and it runs exactly once per tracked page.
func (self *Engine) OnEvict(addr Addr) {
	if !self.enabled {
		return
	}
	page := PageNumber(addr)
	obs, found := self.observations.Take(page)
	if !found {
		return
	}

	// The offset component here is the raw line index, not the
	// aligned line address OnMiss uses for its lookups. The
	// asymmetry is inherited behavior and load bearing; do not
	// "fix" one side without the other.
	lineIndex := addr >> BlockSizeBits
	keyA := obs.PC + lineIndex
	keyB := obs.PC + addr
	mlog.Printf2("pref/engine", "OnEvict addr:%x page:%x -> keyA:%x keyB:%x %s",
		addr, page, keyA, keyB, obs.Footprint)

	self.history.Upsert(keyA, HistoryRecord{KeyA: keyA, KeyB: keyB, Footprint: obs.Footprint})
}

// emitPrefetches issues one fetch per set footprint bit, in
// increasing block index order, for the corresponding block of page.
func (self *Engine) emitPrefetches(footprint Footprint, page Addr) {
	base := PageBase(page)
	for i := 0; i < BlocksPerPage; i++ {
		if !footprint.Test(i) {
			continue
		}
		lineAddr := base + Addr(i)<<BlockSizeBits
		lineIndex := uint64(lineAddr >> self.config.LineSizeBits)
		mlog.Printf2("pref/engine", " prefetch block %d line %x", i, lineIndex)
		self.queue.Submit(self.config.RequesterID, lineIndex, self.config.PrefetcherID)
	}
}
