/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Fri Mar 13 10:30:19 2026 utkarsh
 * Last modified: Fri Mar 13 11:02:46 2026 utkarsh
 * Edit time:     18 min
 *
 */

package table

// entryList is a doubly linked list of table entries which does not
// have inefficient operations, is typesafe, and does no extra
// allocations: the element lives inside the entry itself and is
// pushed/removed by reference. The list is obviously not threadsafe.
type entryList[V any] struct {
	Back, Front *entryListElement[V]
	Length      int
}

type entryListElement[V any] struct {
	Prev, Next *entryListElement[V]
	Value      *entry[V]
}

func (self *entryList[V]) PushBackElement(e *entryListElement[V]) {
	e.Next = nil
	e.Prev = self.Back
	if self.Back != nil {
		self.Back.Next = e
	}
	if self.Front == nil {
		self.Front = e
	}
	self.Back = e
	self.Length++
}

func (self *entryList[V]) PushFrontElement(e *entryListElement[V]) {
	e.Prev = nil
	e.Next = self.Front
	if self.Front != nil {
		self.Front.Prev = e
	}
	if self.Back == nil {
		self.Back = e
	}
	self.Front = e
	self.Length++
}

func (self *entryList[V]) RemoveElement(e *entryListElement[V]) {
	if e.Prev != nil {
		e.Prev.Next = e.Next
	} else {
		self.Front = e.Next
	}
	if e.Next != nil {
		e.Next.Prev = e.Prev
	} else {
		self.Back = e.Prev
	}
	self.Length--
}

func (self *entryList[V]) Iterate(cb func(e *entry[V])) {
	for e := self.Front; e != nil; e = e.Next {
		cb(e.Value)
	}
}
