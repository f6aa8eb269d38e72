/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 23 14:10:37 2026 utkarsh
 * Last modified: Mon Aug 24 11:45:22 2026 utkarsh
 * Edit time:     56 min
 *
 */

// sim is the host side of the prefetch engine: a small
// set-associative cache model that turns an address stream into
// hit/miss/evict events, the request queue prefetches flow through,
// and counters. It stands in for the cycle simulator the engine
// normally lives inside.
package sim

import (
	"io"

	"github.com/28utkarsh/scarab/pref"
)

// Simulator wires cache, engine and queue together and drives them
// access by access. Single-threaded, like the engine it hosts.
type Simulator struct {
	Cache  *Cache
	Queue  *RequestQueue
	Engine *pref.Engine
	Stats  Stats
}

func NewSimulator(numSets, numWays int, config pref.Config) *Simulator {
	self := &Simulator{}
	self.Cache = NewCache(numSets, numWays)
	self.Queue = &RequestQueue{}
	self.Engine = pref.NewEngine(config, self.Queue)
	return self
}

// Access runs one demand access through the cache and the engine,
// then services whatever prefetches the engine asked for.
func (self *Simulator) Access(pc, addr pref.Addr) {
	self.Stats.Accesses++
	result := self.Cache.Access(addr)
	if result.Hit {
		self.Stats.Hits++
		if result.PrefetchHit {
			self.Stats.UsefulPrefetches++
		}
		self.Engine.OnHit(addr, pc)
	} else {
		self.Stats.Misses++
		self.Engine.OnMiss(addr, pc)
		if result.Evicted {
			self.Stats.Evictions++
			self.Engine.OnEvict(result.EvictedAddr)
		}
	}

	self.Queue.Drain(func(request Request) {
		self.Stats.Prefetches++
		evicted, evictedAddr := self.Cache.Fill(request.LineIndex)
		if evicted {
			self.Stats.Evictions++
			self.Engine.OnEvict(evictedAddr)
		}
	})
}

// Run feeds a whole trace through Access.
func (self *Simulator) Run(r io.Reader) error {
	return ParseTrace(r, func(pc, addr pref.Addr) error {
		self.Access(pc, addr)
		return nil
	})
}
