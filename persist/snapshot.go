/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Thu Mar 19 09:30:07 2026 utkarsh
 * Last modified: Sat Aug 22 14:02:33 2026 utkarsh
 * Edit time:     73 min
 *
 */

package persist

import (
	"fmt"

	"github.com/28utkarsh/scarab/codec"
	"github.com/28utkarsh/scarab/mlog"
	"github.com/28utkarsh/scarab/pref"
	ucodec "github.com/ugorji/go/codec"
)

// SnapshotVersion guards the cbor layout below.
const SnapshotVersion = 1

// SnapshotRecord is one committed footprint in wire form.
type SnapshotRecord struct {
	KeyA, KeyB uint64
	Footprint  uint64
}

// Snapshot is the full dump of a history store. Records are ordered
// least recently used first within each bucket, so replaying them
// through Upsert reconstructs the exact recency order.
type Snapshot struct {
	Version int
	Records []SnapshotRecord
}

var cborHandle ucodec.CborHandle

// SaveHistory dumps history through c into be under name and returns
// the stored blob's content id.
func SaveHistory(be Backend, c codec.Codec, name string, history *pref.HistoryStore) (id string, err error) {
	snap := Snapshot{Version: SnapshotVersion}
	history.Iterate(func(keyA pref.Addr, bucket *pref.HistoryBucket) {
		mru := make([]SnapshotRecord, 0, bucket.Size())
		bucket.Iterate(func(r pref.HistoryRecord) {
			mru = append(mru, SnapshotRecord{
				KeyA:      uint64(r.KeyA),
				KeyB:      uint64(r.KeyB),
				Footprint: uint64(r.Footprint)})
		})
		// LRU first so replay ends with the same MRU
		for i := len(mru) - 1; i >= 0; i-- {
			snap.Records = append(snap.Records, mru[i])
		}
	})

	var raw []byte
	err = ucodec.NewEncoderBytes(&raw, &cborHandle).Encode(&snap)
	if err != nil {
		return
	}
	blob, err := c.EncodeBytes(raw, []byte(name))
	if err != nil {
		return
	}
	id, err = be.SaveSnapshot(name, blob)
	mlog.Printf2("persist/snapshot", "SaveHistory %s: %d records, %d bytes, id %s",
		name, len(snap.Records), len(blob), id)
	return
}

// LoadHistory replays the snapshot saved under name into history,
// returning the number of records replayed. A name never saved loads
// zero records without error.
func LoadHistory(be Backend, c codec.Codec, name string, history *pref.HistoryStore) (n int, err error) {
	blob, err := be.LoadSnapshot(name)
	if err != nil || blob == nil {
		return
	}
	raw, err := c.DecodeBytes(blob, []byte(name))
	if err != nil {
		return
	}
	var snap Snapshot
	err = ucodec.NewDecoderBytes(raw, &cborHandle).Decode(&snap)
	if err != nil {
		return
	}
	if snap.Version != SnapshotVersion {
		return 0, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	for _, r := range snap.Records {
		history.Upsert(pref.Addr(r.KeyA), pref.HistoryRecord{
			KeyA:      pref.Addr(r.KeyA),
			KeyB:      pref.Addr(r.KeyB),
			Footprint: pref.Footprint(r.Footprint)})
	}
	mlog.Printf2("persist/snapshot", "LoadHistory %s: %d records", name, len(snap.Records))
	return len(snap.Records), nil
}
