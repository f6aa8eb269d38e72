/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Fri Mar 20 08:50:33 2026 utkarsh
 * Last modified: Sat Aug 22 14:51:17 2026 utkarsh
 * Edit time:     26 min
 *
 */

package bolt

import (
	"fmt"
	"log"

	bbolt "github.com/coreos/bbolt"

	"github.com/28utkarsh/scarab/mlog"
	"github.com/28utkarsh/scarab/persist"
)

var dataKey = []byte("data")
var nameKey = []byte("name")

// boltBackend provides on-disk snapshot storage.
//
// - "data" bucket: content id -> blob (essentially immutable)
// - "name" bucket: logical name -> content id
type boltBackend struct {
	db *bbolt.DB
}

var _ persist.Backend = &boltBackend{}

func NewBoltBackend(dir string) persist.Backend {
	self := &boltBackend{}
	db, err := bbolt.Open(fmt.Sprintf("%s/history.db", dir), 0600, nil)
	if err != nil {
		log.Fatal("bbolt.Open", err)
	}
	self.db = db
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(dataKey)
		if err != nil {
			log.Panic(err)
		}
		_, err = tx.CreateBucketIfNotExists(nameKey)
		if err != nil {
			log.Panic(err)
		}
		return nil
	})
	if err != nil {
		log.Panic(err)
	}
	return self
}

func (self *boltBackend) Close() {
	self.db.Close()
}

func (self *boltBackend) SaveSnapshot(name string, blob []byte) (id string, err error) {
	id = persist.BlobID(blob)
	mlog.Printf2("persist/bolt/bolt", "bb.SaveSnapshot %s %s (%d b)", name, id, len(blob))
	err = self.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(dataKey).Put([]byte(id), blob); err != nil {
			return err
		}
		return tx.Bucket(nameKey).Put([]byte(name), []byte(id))
	})
	return
}

func (self *boltBackend) LoadSnapshot(name string) (blob []byte, err error) {
	err = self.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket(nameKey).Get([]byte(name))
		if id == nil {
			return nil
		}
		v := tx.Bucket(dataKey).Get(id)
		if v != nil {
			// v is only valid inside the transaction
			blob = append([]byte(nil), v...)
		}
		return nil
	})
	if blob != nil {
		mlog.Printf2("persist/bolt/bolt", "bb.LoadSnapshot %s (%d b)", name, len(blob))
	}
	return
}
