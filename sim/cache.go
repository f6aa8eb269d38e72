/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 23 09:10:28 2026 utkarsh
 * Last modified: Mon Aug 24 10:40:16 2026 utkarsh
 * Edit time:     82 min
 *
 */

package sim

import (
	"github.com/28utkarsh/scarab/mlog"
	"github.com/28utkarsh/scarab/pref"
)

// line is one resident cache line.
type line struct {
	tag        uint64
	valid      bool
	prefetched bool
	lastUse    uint64
}

// AccessResult reports what one demand access did to the cache.
type AccessResult struct {
	Hit bool
	// PrefetchHit marks a hit on a line the prefetcher brought in
	// that had not been demanded before.
	PrefetchHit bool
	Evicted     bool
	EvictedAddr pref.Addr
}

// Cache is a set-associative model of the tracked cache level, LRU
// within each set, line size = pref.BlockSize. It exists to turn an
// address stream into the hit/miss/evict events the engine feeds on;
// no data movement or latency is modeled.
type Cache struct {
	numSets int
	numWays int
	sets    [][]line
	tick    uint64
}

func NewCache(numSets, numWays int) *Cache {
	self := &Cache{numSets: numSets, numWays: numWays}
	self.sets = make([][]line, numSets)
	for i := range self.sets {
		self.sets[i] = make([]line, numWays)
	}
	return self
}

func (self *Cache) setFor(lineAddr uint64) []line {
	return self.sets[lineAddr%uint64(self.numSets)]
}

// victimIn picks the way to fill: an invalid one if any, else LRU.
func victimIn(set []line) *line {
	victim := &set[0]
	for i := range set {
		if !set[i].valid {
			return &set[i]
		}
		if set[i].lastUse < victim.lastUse {
			victim = &set[i]
		}
	}
	return victim
}

// Access performs one demand access.
func (self *Cache) Access(addr pref.Addr) (result AccessResult) {
	self.tick++
	lineAddr := uint64(addr) >> pref.BlockSizeBits
	set := self.setFor(lineAddr)
	for i := range set {
		if set[i].valid && set[i].tag == lineAddr {
			result.Hit = true
			result.PrefetchHit = set[i].prefetched
			set[i].prefetched = false
			set[i].lastUse = self.tick
			return
		}
	}

	victim := victimIn(set)
	if victim.valid {
		result.Evicted = true
		result.EvictedAddr = pref.Addr(victim.tag << pref.BlockSizeBits)
		mlog.Printf2("sim/cache", "cache evict %x for %x", result.EvictedAddr, addr)
	}
	*victim = line{tag: lineAddr, valid: true, lastUse: self.tick}
	return
}

// Fill installs a prefetched line. A line already resident is left
// alone (the host would drop the duplicate request on the floor).
func (self *Cache) Fill(lineIndex uint64) (evicted bool, evictedAddr pref.Addr) {
	self.tick++
	set := self.setFor(lineIndex)
	for i := range set {
		if set[i].valid && set[i].tag == lineIndex {
			return
		}
	}
	victim := victimIn(set)
	if victim.valid {
		evicted = true
		evictedAddr = pref.Addr(victim.tag << pref.BlockSizeBits)
		mlog.Printf2("sim/cache", "cache evict %x for prefetch %x", evictedAddr, lineIndex)
	}
	*victim = line{tag: lineIndex, valid: true, prefetched: true, lastUse: self.tick}
	return
}

// Contains reports whether addr's line is resident.
func (self *Cache) Contains(addr pref.Addr) bool {
	lineAddr := uint64(addr) >> pref.BlockSizeBits
	set := self.setFor(lineAddr)
	for i := range set {
		if set[i].valid && set[i].tag == lineAddr {
			return true
		}
	}
	return false
}
