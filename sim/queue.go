/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 23 10:35:44 2026 utkarsh
 * Last modified: Mon Mar 23 10:58:20 2026 utkarsh
 * Edit time:     15 min
 *
 */

package sim

import (
	"github.com/28utkarsh/scarab/mlog"
)

// Request is one pending prefetch.
type Request struct {
	RequesterID  int
	LineIndex    uint64
	PrefetcherID int
}

// RequestQueue collects the engine's fire-and-forget prefetch
// requests until the host drains them into the cache.
type RequestQueue struct {
	pending []Request
}

func (self *RequestQueue) Submit(requesterID int, lineIndex uint64, prefetcherID int) {
	mlog.Printf2("sim/queue", "queue.Submit line %x", lineIndex)
	self.pending = append(self.pending, Request{
		RequesterID:  requesterID,
		LineIndex:    lineIndex,
		PrefetcherID: prefetcherID})
}

func (self *RequestQueue) Len() int {
	return len(self.pending)
}

// Drain hands every pending request to cb in submission order,
// including any submitted while draining.
func (self *RequestQueue) Drain(cb func(request Request)) {
	for len(self.pending) > 0 {
		r := self.pending[0]
		self.pending = self.pending[1:]
		cb(r)
	}
}
