/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Thu Mar 19 11:02:40 2026 utkarsh
 * Last modified: Thu Mar 19 11:20:15 2026 utkarsh
 * Edit time:     12 min
 *
 */

package inmemory

import (
	"github.com/28utkarsh/scarab/mlog"
	"github.com/28utkarsh/scarab/persist"
	"github.com/28utkarsh/scarab/util"
)

// inMemoryBackend keeps snapshots in maps. Useful for tests and for
// runs that do not want warm-start state to survive the process.
type inMemoryBackend struct {
	id2Blob map[string][]byte
	name2Id map[string]string
	lock    util.MutexLocked
}

var _ persist.Backend = &inMemoryBackend{}

func NewInMemoryBackend() persist.Backend {
	self := &inMemoryBackend{}
	self.id2Blob = make(map[string][]byte)
	self.name2Id = make(map[string]string)
	return self
}

func (self *inMemoryBackend) Close() {
}

func (self *inMemoryBackend) SaveSnapshot(name string, blob []byte) (id string, err error) {
	defer self.lock.Locked()()
	id = persist.BlobID(blob)
	mlog.Printf2("persist/inmemory/inmemory", "im.SaveSnapshot %s %s", name, id)
	self.id2Blob[id] = blob
	self.name2Id[name] = id
	return
}

func (self *inMemoryBackend) LoadSnapshot(name string) (blob []byte, err error) {
	defer self.lock.Locked()()
	id, found := self.name2Id[name]
	if !found {
		return nil, nil
	}
	return self.id2Blob[id], nil
}
