/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Wed Mar 11 09:55:31 2026 utkarsh
 * Last modified: Wed Mar 11 10:01:12 2026 utkarsh
 * Edit time:     4 min
 *
 */

package util

import "sync"

// MutexLocked is a mutex with a convenience method so callers can
// just defer x.Locked()().
type MutexLocked sync.Mutex

func (self *MutexLocked) Locked() (unlock func()) {
	mut := (*sync.Mutex)(self)
	mut.Lock()
	return func() {
		mut.Unlock()
	}
}
