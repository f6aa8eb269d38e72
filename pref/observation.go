/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 16 10:02:33 2026 utkarsh
 * Last modified: Wed Aug 19 10:31:58 2026 utkarsh
 * Edit time:     35 min
 *
 */

package pref

import (
	"github.com/28utkarsh/scarab/mlog"
	"github.com/28utkarsh/scarab/table"
)

// Observation is the in-flight footprint accumulation for one
// currently resident page: the address and pc that first touched the
// page, plus every block touched since. It lives in the observation
// store until the page is evicted and it is promoted to history.
type Observation struct {
	// TriggerAddr is the first address that created this observation.
	TriggerAddr Addr
	// PC is the instruction address of the triggering access.
	PC        Addr
	Footprint Footprint
}

// ObservationStore maps page number to the at most one live
// observation for that page.
type ObservationStore struct {
	t *table.Table[*Observation]
}

func NewObservationStore(maximumSize int) *ObservationStore {
	self := &ObservationStore{}
	self.t = table.New[*Observation](maximumSize)
	return self
}

// Touch records an access to blockIndex of page. The first touch of
// an untracked page creates the observation with addr/pc as trigger;
// later touches only grow the footprint.
func (self *ObservationStore) Touch(page, addr, pc Addr, blockIndex int) {
	obs, found := self.t.Get(uint64(page))
	if found {
		obs.Footprint.Set(blockIndex)
		mlog.Printf2("pref/observation", "obs.Touch page:%x block:%d -> %s", page, blockIndex, obs.Footprint)
		return
	}
	obs = &Observation{TriggerAddr: addr, PC: pc}
	obs.Footprint.Set(blockIndex)
	self.t.Set(uint64(page), obs)
	mlog.Printf2("pref/observation", "obs.Touch new page:%x trigger:%x pc:%x block:%d", page, addr, pc, blockIndex)
}

// Take removes and returns the observation for page. Absence is a
// normal outcome (page was never tracked, or the backing table
// dropped it).
func (self *ObservationStore) Take(page Addr) (obs Observation, found bool) {
	p, found := self.t.Get(uint64(page))
	if !found {
		return
	}
	self.t.Delete(uint64(page))
	mlog.Printf2("pref/observation", "obs.Take page:%x %s", page, p.Footprint)
	return *p, true
}

// Len returns the number of pages currently under observation.
func (self *ObservationStore) Len() int {
	return self.t.Len()
}
