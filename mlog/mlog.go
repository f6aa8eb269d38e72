/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Thu Mar 12 08:20:14 2026 utkarsh
 * Last modified: Mon Aug 17 21:43:50 2026 utkarsh
 * Edit time:     74 min
 *
 */

// mlog is maybe-log: a small wrapper of the standard 'log' that only
// implements Printf, with two twists:
//
// - environment-variable-based ('MLOG') and flag ('-mlog') selection
// of what to print, by file/line regular expression; whatever is not
// selected costs close to nothing at runtime (by default everything
// is off)
//
// - call stack depth is used to indent output automatically, which
// makes event traces through the engine easy to follow
package mlog

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/28utkarsh/scarab/util/gid"
)

var logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)

const (
	stateUninitialized int32 = iota
	stateInitializing
	stateDisabled
	stateEnabled
)

var status int32 = stateUninitialized

var mutex sync.Mutex

// Everything below must be accessed only with mutex held
var flagPattern *string
var pattern string
var patternRegexp *regexp.Regexp
var file2Debug map[string]*bool
var minDepth int
var callers []uintptr
var dumpGids bool

const maxDepth = 100

func init() {
	flagPattern = flag.String("mlog", "", "Enable logging based on the given file/line regular expression")
	Reset()
}

// Reset returns the module to its factory default state; the first
// subsequent log call re-initializes the internal state.
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	atomic.StoreInt32(&status, stateUninitialized)
	minDepth = maxDepth
	callers = make([]uintptr, maxDepth)
}

// IsEnabled can be used to check if mlog is in use at all before
// doing something expensive.
func IsEnabled() bool {
	return atomic.LoadInt32(&status) != stateDisabled
}

// SetLogger overrides the logger mlog forwards Printf to. The
// returned undo function restores the old one.
func SetLogger(l *log.Logger) (undo func()) {
	mutex.Lock()
	defer mutex.Unlock()
	oldLogger := logger
	logger = l
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		logger = oldLogger
	}
}

// SetPattern sets the mlog pattern by hand, overriding the
// environment variable-provided value. The returned undo function
// restores the old state.
func SetPattern(p string) (undo func()) {
	mutex.Lock()
	defer mutex.Unlock()
	oldPattern := pattern
	initializeWithPattern(p)
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		initializeWithPattern(oldPattern)
	}
}

// SetDumpGids controls whether the goroutine id is baked into every
// output line. Off by default; the engine is single-goroutine anyway.
func SetDumpGids(value bool) (undo func()) {
	mutex.Lock()
	defer mutex.Unlock()
	old := dumpGids
	dumpGids = value
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		dumpGids = old
	}
}

func initializeWithPattern(p string) {
	if p == "" {
		atomic.StoreInt32(&status, stateDisabled)
		pattern = p
		return
	}
	patternRegexp = regexp.MustCompile(p)
	file2Debug = make(map[string]*bool)
	atomic.StoreInt32(&status, stateEnabled)
	pattern = p
}

func initialize() {
	if !atomic.CompareAndSwapInt32(&status, stateUninitialized, stateInitializing) {
		return
	}
	pattern := os.Getenv("MLOG")
	if *flagPattern != "" {
		pattern = *flagPattern
	}
	initializeWithPattern(pattern)
}

// Printf is drop-in replacement of log.Printf. It still does
// runtime.Caller() if MLOG is enabled at all, which may be
// suboptimal; prefer Printf2 in hot paths.
func Printf(format string, args ...interface{}) {
	if atomic.LoadInt32(&status) == stateDisabled {
		return
	}
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		return
	}
	Printf2(file, format, args...)
}

// Printf2 is the premier choice instead of Printf. It is supplied
// with the name of the file, and therefore has no runtime penalty to
// speak of when using only partial MLOG match.
func Printf2(file string, format string, args ...interface{}) {
	st := atomic.LoadInt32(&status)
	if st == stateDisabled {
		return
	}
	mutex.Lock()
	defer mutex.Unlock()
	if st < stateDisabled {
		initialize()
		st = atomic.LoadInt32(&status)
		if st <= stateDisabled {
			return
		}
	}
	debugp := file2Debug[file]
	var debug bool
	if debugp == nil {
		debug = patternRegexp.Find([]byte(file)) != nil
		file2Debug[file] = &debug
	} else {
		debug = *debugp
	}
	if !debug {
		return
	}
	depth := runtime.Callers(1, callers)
	if depth < minDepth {
		minDepth = depth
	}
	depth -= minDepth
	if depth > 0 {
		format = fmt.Sprint(strings.Repeat(".", depth), format)
	}
	if dumpGids {
		format = fmt.Sprintf("%8d %s", gid.GetGoroutineID(), format)
	}
	logger.Printf(format, args...)
}
