/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 16 09:20:41 2026 utkarsh
 * Last modified: Mon Mar 16 09:48:12 2026 utkarsh
 * Edit time:     14 min
 *
 */

package pref

import (
	"fmt"
	"math/bits"
)

// Footprint records which blocks of one page have been touched, one
// bit per block, bit i = block i. Bits are only ever set, never
// cleared, for the lifetime of one observation.
type Footprint uint64

func (self *Footprint) Set(blockIndex int) {
	*self |= 1 << uint(blockIndex)
}

func (self Footprint) Test(blockIndex int) bool {
	return self&(1<<uint(blockIndex)) != 0
}

// Count returns the number of touched blocks.
func (self Footprint) Count() int {
	return bits.OnesCount64(uint64(self))
}

func (self Footprint) String() string {
	return fmt.Sprintf("fp{%016x}", uint64(self))
}
