/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Thu Mar 19 08:44:21 2026 utkarsh
 * Last modified: Sat Aug 22 13:25:50 2026 utkarsh
 * Edit time:     41 min
 *
 */

// persist stores trained prefetch history between simulator runs, so
// a later run can start with a warm predictor instead of re-learning
// every footprint. A snapshot is one opaque blob per logical name;
// backends only move blobs around, the snapshot format and the codec
// chain it goes through live in this package.
package persist

import (
	"encoding/hex"

	"github.com/minio/sha256-simd"
)

// Backend stores named snapshot blobs somewhere durable (or not; see
// the inmemory one). Implementations must tolerate LoadSnapshot for a
// name never saved and signal it with a nil blob, not an error.
type Backend interface {
	// SaveSnapshot stores blob under name, returning its content id.
	SaveSnapshot(name string, blob []byte) (id string, err error)

	// LoadSnapshot returns the blob last saved under name, or nil
	// if there is none.
	LoadSnapshot(name string) (blob []byte, err error)

	// Close the backend
	Close()
}

// BlobID is the content id snapshots are stored under: hex sha256 of
// the blob.
func BlobID(blob []byte) string {
	h := sha256.Sum256(blob)
	return hex.EncodeToString(h[:])
}
