/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Tue Mar 17 08:30:14 2026 utkarsh
 * Last modified: Thu Aug 20 09:55:26 2026 utkarsh
 * Edit time:     67 min
 *
 */

package pref

import (
	"testing"

	"github.com/stvp/assert"
)

func rec(keyB Addr) HistoryRecord {
	var fp Footprint
	fp.Set(int(keyB) % BlocksPerPage)
	return HistoryRecord{KeyA: 0x100, KeyB: keyB, Footprint: fp}
}

func bucketOrder(b *HistoryBucket) (keys []Addr) {
	b.Iterate(func(r HistoryRecord) {
		keys = append(keys, r.KeyB)
	})
	return
}

func ensureSaneBucket(t *testing.T, b *HistoryBucket) {
	assert.True(t, b.size <= BucketWays)
	seen := make(map[int]bool)
	for i := 0; i < b.size; i++ {
		index := b.usageOrder[i]
		assert.True(t, index >= 0 && index < b.size, "slot index out of range")
		assert.True(t, !seen[index], "usage order not a permutation")
		seen[index] = true
	}
}

func TestBucketInsertEvict(t *testing.T) {
	t.Parallel()

	b := &HistoryBucket{}
	_, found := b.FindAny()
	assert.True(t, !found)

	for i := 0; i < 20; i++ {
		b.Insert(rec(Addr(i)))
		ensureSaneBucket(t, b)
		assert.True(t, b.Size() <= BucketWays)
		// most recent insert is always the MRU
		r, found := b.FindAny()
		assert.True(t, found)
		assert.Equal(t, r.KeyB, Addr(i))
	}
	assert.Equal(t, b.Size(), BucketWays)

	// the four oldest got evicted, in insertion order
	for i := 0; i < 4; i++ {
		_, found := b.FindByKeyB(Addr(i))
		assert.True(t, !found, "expected ", i, " evicted")
	}
	for i := 4; i < 20; i++ {
		r, found := b.FindByKeyB(Addr(i))
		assert.True(t, found, "expected ", i, " present")
		assert.Equal(t, r.KeyB, Addr(i))
	}
}

func TestBucketTouch(t *testing.T) {
	t.Parallel()

	b := &HistoryBucket{}
	b.Insert(rec(1))
	b.Insert(rec(2))
	b.Insert(rec(3))
	assert.Equal(t, bucketOrder(b), []Addr{3, 2, 1})

	// promotion moves only the touched record
	b.Touch(1)
	assert.Equal(t, bucketOrder(b), []Addr{1, 3, 2})
	ensureSaneBucket(t, b)

	// touching the MRU is a no-op
	b.Touch(1)
	assert.Equal(t, bucketOrder(b), []Addr{1, 3, 2})

	// unknown keyB is a no-op
	b.Touch(42)
	assert.Equal(t, bucketOrder(b), []Addr{1, 3, 2})

	// LRU after touch is 2, so it is the eviction victim when full
	for i := 10; i < 10+BucketWays-3; i++ {
		b.Insert(rec(Addr(i)))
	}
	assert.Equal(t, b.Size(), BucketWays)
	b.Insert(rec(100))
	_, found := b.FindByKeyB(2)
	assert.True(t, !found)
	_, found = b.FindByKeyB(1)
	assert.True(t, found)
	ensureSaneBucket(t, b)
}

func TestBucketFindPrefersExact(t *testing.T) {
	t.Parallel()

	b := &HistoryBucket{}
	b.Insert(rec(7))
	b.Insert(rec(8)) // MRU

	r, found := b.FindByKeyB(7)
	assert.True(t, found)
	assert.Equal(t, r.KeyB, Addr(7))

	// fallback is the MRU entry
	r, found = b.FindAny()
	assert.True(t, found)
	assert.Equal(t, r.KeyB, Addr(8))
}

func TestBucketDuplicateKeyB(t *testing.T) {
	t.Parallel()

	b := &HistoryBucket{}
	old := HistoryRecord{KeyA: 0x100, KeyB: 5, Footprint: 1}
	newer := HistoryRecord{KeyA: 0x100, KeyB: 5, Footprint: 3}
	b.Insert(old)
	b.Insert(rec(6))
	b.Insert(newer)

	// duplicates are possible; first match in recency order wins
	r, found := b.FindByKeyB(5)
	assert.True(t, found)
	assert.Equal(t, r.Footprint, Footprint(3))
}

func TestHistoryStore(t *testing.T) {
	t.Parallel()

	h := NewHistoryStore(16)
	_, found := h.Get(0x100)
	assert.True(t, !found)

	h.Upsert(0x100, rec(1))
	h.Upsert(0x100, rec(2))
	h.Upsert(0x200, rec(3))
	assert.Equal(t, h.Len(), 2)

	b, found := h.Get(0x100)
	assert.True(t, found)
	assert.Equal(t, b.Size(), 2)

	n := 0
	h.Iterate(func(keyA Addr, bucket *HistoryBucket) {
		n += bucket.Size()
	})
	assert.Equal(t, n, 3)
}
