/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Fri Mar 13 11:10:08 2026 utkarsh
 * Last modified: Tue Aug 18 14:26:31 2026 utkarsh
 * Edit time:     131 min
 *
 */

// table provides the bounded key→value store the prediction engine
// keeps its transient and durable state in. Keys are uint64 (page
// numbers, pc+offset composites); values are whatever the caller
// stores. Capacity is fixed at Init time and the table evicts on its
// own using CART (Clock with Adaptive Replacement and Temporal
// filtering); the caller never observes an insert failing.
//
// For details about CART, see:
// Bansal & Modha 2004, CAR: Clock with Adaptive Replacement paper.
//
// The type is not threadsafe.
//
// variables are as close as possible to ones in paper
package table

import (
	"fmt"

	"github.com/28utkarsh/scarab/mlog"
	"github.com/28utkarsh/scarab/util"
)

// Table is the CART map of uint64 to V.
type Table[V any] struct {
	// cache is the lookup map for entries in T[n] / B[n]
	cache map[uint64]*entry[V]

	t1, t2, b1, b2 entryList[V]

	c, p, q, ns, nl int
	// c = maximum size
	// p = maximum length of t1
	// q = maximum length of b1
	// ns = number of short-lived entries (in t1+t2)
	// nl = number of long-lived entries (in t1+t2)
}

// entry represents a single table entry; the map points at it under key
type entry[V any] struct {
	key                uint64
	e                  entryListElement[V]
	refbit, filterlong bool
	frequentbit        bool // if it is in 2 series of lists
	value              *V
}

func (self *entry[V]) String() string {
	return fmt.Sprintf("te{%x,r:%v,l:%v,f:%v}", self.key, self.refbit, self.filterlong, self.frequentbit)
}

func New[V any](maximumSize int) *Table[V] {
	self := &Table[V]{}
	self.cache = make(map[uint64]*entry[V])
	self.c = maximumSize
	return self
}

// Len returns the number of resident entries.
func (self *Table[V]) Len() int {
	return self.t1.Length + self.t2.Length
}

func (self *Table[V]) Get(key uint64) (value V, found bool) {
	mlog.Printf2("table/table", "table.Get %x", key)
	e, found := self.cache[key]
	if !found {
		mlog.Printf2("table/table", " not in t/b")
		return
	}
	if e.value == nil {
		mlog.Printf2("table/table", " not in t")
		found = false
		return
	}
	mlog.Printf2("table/table", " found")
	e.refbit = true
	value = *e.value
	return
}

// GetOrCreate returns the resident value for key, running factory and
// inserting its result if there is none.
func (self *Table[V]) GetOrCreate(key uint64, factory func(key uint64) V) (value V, created bool) {
	value, found := self.Get(key)
	if found {
		return value, false
	}
	value = factory(key)
	self.Set(key, value)
	return value, true
}

// Set inserts or replaces the value under key. Insertion never fails;
// a full table evicts by CART policy.
func (self *Table[V]) Set(key uint64, value V) {
	mlog.Printf2("table/table", "table.Set %x", key)
	if self.c == 0 {
		mlog.Printf2("table/table", " not enabled")
		return
	}
	e, found := self.cache[key]
	if found && e.value != nil {
		// resident hit; replace in place
		e.refbit = true
		e.value = &value
		return
	}
	if self.t1.Length+self.t2.Length == self.c {
		mlog.Printf2("table/table", " table full")
		// table full; replace a page from cache
		self.replace()

		// also clear history space if it missed altogether
		// and history is full
		if !found && self.b1.Length+self.b2.Length > self.c {
			if self.b1.Length > self.q || self.b2.Length == 0 {
				mlog.Printf2("table/table", " bumped from b1")
				delete(self.cache, self.b1.Front.Value.key)
				self.b1.RemoveElement(self.b1.Front)
			} else {
				mlog.Printf2("table/table", " bumped from b2")
				delete(self.cache, self.b2.Front.Value.key)
				self.b2.RemoveElement(self.b2.Front)
			}
		}
	}

	if !found {
		mlog.Printf2("table/table", " added fresh")
		e := &entry[V]{key: key, value: &value}
		self.cache[key] = e
		e.e.Value = e
		self.t1.PushBackElement(&e.e)
		self.ns++
		return
	}

	if !e.frequentbit {
		mlog.Printf2("table/table", " b1->t1")
		self.p = util.IMin(self.p+util.IMax(1, self.ns/self.b1.Length), self.c)
		e.filterlong = true
		self.b1.RemoveElement(&e.e)
	} else {
		mlog.Printf2("table/table", " b2->t1")
		e.frequentbit = false
		self.p = util.IMax(self.p-util.IMax(1, self.nl/self.b2.Length), 0)
		self.b2.RemoveElement(&e.e)
		if self.t2.Length+self.b2.Length+self.t1.Length-self.ns >= self.c {
			self.q = util.IMin(self.q+1, 2*self.c-self.t1.Length)
		}
	}
	self.t1.PushBackElement(&e.e)
	e.value = &value
	e.refbit = false
	self.nl++
}

// Delete removes key from the table entirely (resident or history).
// Deleting an absent key is a no-op.
func (self *Table[V]) Delete(key uint64) {
	mlog.Printf2("table/table", "table.Delete %x", key)
	e, found := self.cache[key]
	if !found {
		return
	}
	if e.value != nil {
		if e.frequentbit {
			self.t2.RemoveElement(&e.e)
		} else {
			self.t1.RemoveElement(&e.e)
		}
		if e.filterlong {
			self.nl--
		} else {
			self.ns--
		}
	} else {
		if e.frequentbit {
			self.b2.RemoveElement(&e.e)
		} else {
			self.b1.RemoveElement(&e.e)
		}
	}
	delete(self.cache, key)
}

// Iterate calls cb for every resident entry, in no particular order.
func (self *Table[V]) Iterate(cb func(key uint64, value V)) {
	add := func(e *entry[V]) {
		cb(e.key, *e.value)
	}
	self.t1.Iterate(add)
	self.t2.Iterate(add)
}

func (self *Table[V]) replace() {
	// replace() in the paper p11
	mlog.Printf2("table/table", "replace()")
	for self.t2.Front != nil && self.t2.Front.Value.refbit {
		e := self.t2.Front.Value
		mlog.Printf2("table/table", " moving %s t2->t1", e)
		self.t2.RemoveElement(self.t2.Front)

		e.refbit = false
		e.frequentbit = false
		self.t1.PushBackElement(&e.e)

		if self.t2.Length+self.b2.Length+self.t1.Length-self.ns >= self.c {
			self.q = util.IMin(self.q+1, self.c*2-self.t1.Length)
		}
	}
	for self.t1.Front != nil && (self.t1.Front.Value.filterlong || self.t1.Front.Value.refbit) {
		e := self.t1.Front.Value
		if e.refbit {
			mlog.Printf2("table/table", " moving to head of t1 %v", e)
			self.t1.RemoveElement(&e.e)
			self.t1.PushBackElement(&e.e)
			e.refbit = false
			if self.t1.Length >= util.IMin(self.p+1, self.b1.Length) && !e.filterlong {
				e.filterlong = true
				self.ns--
				self.nl++
			}
		} else {
			mlog.Printf2("table/table", " promoting t1->t2 %v", e)
			self.t1.RemoveElement(&e.e)

			self.t2.PushBackElement(&e.e)
			self.q = util.IMax(self.q-1, self.c-self.t1.Length)
			e.frequentbit = true
		}
	}
	if self.t1.Length >= util.IMax(1, self.p) {
		e := self.t1.Front.Value
		mlog.Printf2("table/table", " evicting %v from t1", e)
		e.value = nil
		self.t1.RemoveElement(&e.e)
		self.b1.PushBackElement(&e.e)
		self.ns--
	} else {
		e := self.t2.Front.Value
		mlog.Printf2("table/table", " evicting %v from t2", e)
		e.value = nil
		self.t2.RemoveElement(&e.e)
		self.b2.PushBackElement(&e.e)
		self.nl--
	}
}
