/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 16 11:15:27 2026 utkarsh
 * Last modified: Thu Aug 20 09:05:44 2026 utkarsh
 * Edit time:     96 min
 *
 */

package pref

import (
	"github.com/28utkarsh/scarab/mlog"
	"github.com/28utkarsh/scarab/table"
)

// HistoryRecord is one committed page footprint. Immutable once
// created; only its position in its bucket's recency order changes.
type HistoryRecord struct {
	// KeyA groups records by instruction + intra-page offset; all
	// records in one bucket share it.
	KeyA Addr
	// KeyB identifies this record precisely (instruction + full
	// trigger address) for exact-match lookup.
	KeyB      Addr
	Footprint Footprint
}

// HistoryBucket is a fixed-capacity set of records sharing one KeyA,
// with an explicit recency order over the occupied slots. usageOrder
// is a permutation of the occupied slot indices, most recently used
// first; it governs both eviction (tail goes) and the fallback match
// (head wins).
type HistoryBucket struct {
	records    [BucketWays]HistoryRecord
	usageOrder [BucketWays]int
	size       int
}

// Size returns the number of occupied slots.
func (self *HistoryBucket) Size() int {
	return self.size
}

// Insert adds record as most recently used, evicting the least
// recently used slot if the bucket is full. Insertion never fails.
func (self *HistoryBucket) Insert(record HistoryRecord) {
	var index int
	used := self.size

	if used < BucketWays {
		index = used
		self.size++
		used++
	} else {
		index = self.usageOrder[BucketWays-1]
		used = BucketWays
	}

	self.records[index] = record

	for i := used - 1; i > 0; i-- {
		self.usageOrder[i] = self.usageOrder[i-1]
	}
	self.usageOrder[0] = index
	mlog.Printf2("pref/history", "bucket.Insert keyB:%x at slot %d (%d used)", record.KeyB, index, self.size)
}

// FindByKeyB returns the most recently used record with the given
// KeyB. Occupied slots are scanned in recency order, so if duplicate
// KeyBs exist the most recent one wins.
func (self *HistoryBucket) FindByKeyB(keyB Addr) (record HistoryRecord, found bool) {
	for i := 0; i < self.size; i++ {
		index := self.usageOrder[i]
		if self.records[index].KeyB == keyB {
			return self.records[index], true
		}
	}
	return
}

// FindAny returns the most recently used occupied record. Every
// record here shares the bucket's KeyA by construction, so "most
// recent record with the same KeyA" genuinely reduces to the MRU
// entry; downstream prediction quality depends on it being the MRU
// one specifically, not an arbitrary occupied slot.
func (self *HistoryBucket) FindAny() (record HistoryRecord, found bool) {
	if self.size == 0 {
		return
	}
	return self.records[self.usageOrder[0]], true
}

// Touch moves the record holding keyB to the front of the recency
// order, leaving the relative order of the rest intact. No-op if no
// record has that keyB.
func (self *HistoryBucket) Touch(keyB Addr) {
	foundIndex := -1
	for i := 0; i < self.size; i++ {
		if self.records[i].KeyB == keyB {
			foundIndex = i
			break
		}
	}
	if foundIndex == -1 {
		return
	}

	for i := 0; i < self.size; i++ {
		if self.usageOrder[i] == foundIndex {
			for j := i; j > 0; j-- {
				self.usageOrder[j] = self.usageOrder[j-1]
			}
			self.usageOrder[0] = foundIndex
			mlog.Printf2("pref/history", "bucket.Touch keyB:%x -> MRU", keyB)
			break
		}
	}
}

// Iterate calls cb for every occupied record in recency order, most
// recently used first.
func (self *HistoryBucket) Iterate(cb func(record HistoryRecord)) {
	for i := 0; i < self.size; i++ {
		cb(self.records[self.usageOrder[i]])
	}
}

// HistoryStore maps KeyA to the bucket of footprints committed under
// it. Buckets are created lazily on first promotion and never
// explicitly deleted; the backing table's own eviction bounds them.
type HistoryStore struct {
	t *table.Table[*HistoryBucket]
}

func NewHistoryStore(maximumSize int) *HistoryStore {
	self := &HistoryStore{}
	self.t = table.New[*HistoryBucket](maximumSize)
	return self
}

// Get returns the bucket for keyA if one was ever created.
func (self *HistoryStore) Get(keyA Addr) (bucket *HistoryBucket, found bool) {
	return self.t.Get(uint64(keyA))
}

// Upsert gets or creates the bucket for keyA and inserts record into
// it as most recently used.
func (self *HistoryStore) Upsert(keyA Addr, record HistoryRecord) {
	bucket, created := self.t.GetOrCreate(uint64(keyA), func(key uint64) *HistoryBucket {
		return &HistoryBucket{}
	})
	if created {
		mlog.Printf2("pref/history", "history.Upsert new bucket keyA:%x", keyA)
	}
	bucket.Insert(record)
}

// Iterate calls cb for every resident bucket, in no particular order.
func (self *HistoryStore) Iterate(cb func(keyA Addr, bucket *HistoryBucket)) {
	self.t.Iterate(func(key uint64, bucket *HistoryBucket) {
		cb(Addr(key), bucket)
	})
}

// Len returns the number of resident buckets.
func (self *HistoryStore) Len() int {
	return self.t.Len()
}
