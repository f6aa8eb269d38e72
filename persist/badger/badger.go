/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Fri Mar 20 10:05:48 2026 utkarsh
 * Last modified: Sat Aug 22 15:10:40 2026 utkarsh
 * Edit time:     31 min
 *
 */

package badger

import (
	"log"

	"github.com/dgraph-io/badger"

	"github.com/28utkarsh/scarab/mlog"
	"github.com/28utkarsh/scarab/persist"
)

// badgerBackend provides on-disk snapshot storage.
//
// - key prefix 2 + content id -> blob (essentially immutable)
// - key prefix 3 + name -> content id
type badgerBackend struct {
	db *badger.DB
}

var _ persist.Backend = &badgerBackend{}

func NewBadgerBackend(dir string) persist.Backend {
	self := &badgerBackend{}
	opts := badger.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = dir
	db, err := badger.Open(opts)
	if err != nil {
		log.Panic("badger.Open", err)
	}
	self.db = db
	return self
}

func (self *badgerBackend) Close() {
	self.db.Close()
}

func (self *badgerBackend) getKKValue(prefix, suffix []byte) (v []byte, err error) {
	err = self.db.View(func(txn *badger.Txn) error {
		k := append(prefix, suffix...)
		i, err := txn.Get(k)
		if err == nil {
			v, err = i.ValueCopy(nil)
		}
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	return
}

func (self *badgerBackend) setKKValue(prefix, suffix, value []byte) error {
	return self.db.Update(func(txn *badger.Txn) error {
		k := append(prefix, suffix...)
		return txn.Set(k, value)
	})
}

func (self *badgerBackend) SaveSnapshot(name string, blob []byte) (id string, err error) {
	id = persist.BlobID(blob)
	mlog.Printf2("persist/badger/badger", "bad.SaveSnapshot %s %s (%d b)", name, id, len(blob))
	err = self.setKKValue([]byte("2"), []byte(id), blob)
	if err != nil {
		return
	}
	err = self.setKKValue([]byte("3"), []byte(name), []byte(id))
	return
}

func (self *badgerBackend) LoadSnapshot(name string) (blob []byte, err error) {
	id, err := self.getKKValue([]byte("3"), []byte(name))
	if err != nil || id == nil {
		return nil, err
	}
	blob, err = self.getKKValue([]byte("2"), id)
	if blob != nil {
		mlog.Printf2("persist/badger/badger", "bad.LoadSnapshot %s (%d b)", name, len(blob))
	}
	return
}
