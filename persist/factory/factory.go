/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Fri Mar 20 11:22:19 2026 utkarsh
 * Last modified: Sat Aug 22 15:32:55 2026 utkarsh
 * Edit time:     24 min
 *
 */

package factory

import (
	"github.com/28utkarsh/scarab/codec"
	"github.com/28utkarsh/scarab/mlog"
	"github.com/28utkarsh/scarab/persist"
	"github.com/28utkarsh/scarab/persist/badger"
	"github.com/28utkarsh/scarab/persist/bolt"
	"github.com/28utkarsh/scarab/persist/file"
	"github.com/28utkarsh/scarab/persist/inmemory"
)

type factoryCallback func(dir string) persist.Backend

var backendFactories = map[string]factoryCallback{
	"inmemory": func(dir string) persist.Backend {
		return inmemory.NewInMemoryBackend()
	},
	"file": func(dir string) persist.Backend {
		return file.NewFileBackend(dir)
	},
	"bolt": func(dir string) persist.Backend {
		return bolt.NewBoltBackend(dir)
	},
	"badger": func(dir string) persist.Backend {
		return badger.NewBadgerBackend(dir)
	}}

func List() []string {
	keys := make([]string, 0, len(backendFactories))
	for k := range backendFactories {
		keys = append(keys, k)
	}
	return keys
}

func New(name, dir string) persist.Backend {
	mlog.Printf2("persist/factory/factory", "f.New %v %v", name, dir)
	return backendFactories[name](dir)
}

// SnapshotCodecConfiguration selects the codec chain snapshots go
// through: always compressed, encrypted when a password is given.
type SnapshotCodecConfiguration struct {
	Password, Salt string
	Iterations     int
}

func NewSnapshotCodec(config SnapshotCodecConfiguration) codec.Codec {
	iterations := config.Iterations
	if iterations == 0 {
		iterations = 12345
	}
	salt := config.Salt
	if salt == "" {
		salt = "asdf"
	}
	if config.Password != "" {
		mlog.Printf2("persist/factory/factory", " with encryption + compression")
		c1 := codec.EncryptingCodec{}.Init([]byte(config.Password), []byte(salt), iterations)
		c2 := &codec.CompressingCodec{}
		return codec.CodecChain{}.Init(c1, c2)
	}
	mlog.Printf2("persist/factory/factory", " only compression")
	return codec.CodecChain{}.Init(&codec.CompressingCodec{})
}
