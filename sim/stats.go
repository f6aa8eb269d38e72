/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 23 11:05:12 2026 utkarsh
 * Last modified: Mon Mar 23 11:30:46 2026 utkarsh
 * Edit time:     18 min
 *
 */

package sim

import "fmt"

// Stats counts what the simulation did. Plain counters; the CLI
// prints them at the end of the run.
type Stats struct {
	Accesses  uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64

	Prefetches       uint64
	UsefulPrefetches uint64
}

func (self *Stats) String() string {
	hitRate := 0.0
	if self.Accesses > 0 {
		hitRate = float64(self.Hits) / float64(self.Accesses) * 100
	}
	accuracy := 0.0
	if self.Prefetches > 0 {
		accuracy = float64(self.UsefulPrefetches) / float64(self.Prefetches) * 100
	}
	return fmt.Sprintf(
		"accesses:%d hits:%d (%.1f%%) misses:%d evictions:%d prefetches:%d useful:%d (%.1f%%)",
		self.Accesses, self.Hits, hitRate, self.Misses, self.Evictions,
		self.Prefetches, self.UsefulPrefetches, accuracy)
}
