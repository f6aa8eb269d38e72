/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Thu Mar 19 13:15:52 2026 utkarsh
 * Last modified: Sat Aug 22 14:30:08 2026 utkarsh
 * Edit time:     29 min
 *
 */

package file

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/28utkarsh/scarab/mlog"
	"github.com/28utkarsh/scarab/persist"
)

// fileBackend stores snapshots in a flat directory:
//
// - <id>.snap holds the blob, named by content id
// - <name>.name holds the current id for the logical name
//
// Blobs are verified against their id on load so a corrupt file
// surfaces as an error, not garbage history.
type fileBackend struct {
	dir string
}

var _ persist.Backend = &fileBackend{}

func NewFileBackend(dir string) persist.Backend {
	self := &fileBackend{dir: dir}
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Fatal("MkdirAll", err)
	}
	return self
}

func (self *fileBackend) Close() {
}

func (self *fileBackend) SaveSnapshot(name string, blob []byte) (id string, err error) {
	id = persist.BlobID(blob)
	mlog.Printf2("persist/file/file", "fb.SaveSnapshot %s %s (%d b)", name, id, len(blob))
	err = os.WriteFile(filepath.Join(self.dir, id+".snap"), blob, 0600)
	if err != nil {
		return
	}
	err = os.WriteFile(filepath.Join(self.dir, name+".name"), []byte(id), 0600)
	return
}

func (self *fileBackend) LoadSnapshot(name string) (blob []byte, err error) {
	idb, err := os.ReadFile(filepath.Join(self.dir, name+".name"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return
	}
	id := string(idb)
	blob, err = os.ReadFile(filepath.Join(self.dir, id+".snap"))
	if err != nil {
		return
	}
	if persist.BlobID(blob) != id {
		return nil, fmt.Errorf("snapshot %s does not match id %s", name, id)
	}
	mlog.Printf2("persist/file/file", "fb.LoadSnapshot %s %s (%d b)", name, id, len(blob))
	return
}
