/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Wed Mar 11 10:12:09 2026 utkarsh
 * Last modified: Wed Mar 11 10:14:55 2026 utkarsh
 * Edit time:     2 min
 *
 */

package gid

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoroutineID parses the current goroutine id out of the stack
// header. Slow; for debug output only.
// From http://blog.sgmansfield.com/2015/12/goroutine-ids/
func GetGoroutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}
