/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Thu Mar 12 09:02:51 2026 utkarsh
 * Last modified: Thu Mar 12 09:44:28 2026 utkarsh
 * Edit time:     21 min
 *
 */

package mlog

import (
	"bytes"
	"log"
	"testing"

	"github.com/stvp/assert"
)

func TestMlog(t *testing.T) {
	add := func(pattern string, outputted bool) {
		t.Run(pattern, func(t *testing.T) {
			var b bytes.Buffer
			logger := log.New(&b, "", 0)
			defer SetLogger(logger)()
			defer SetPattern(pattern)()
			Printf("foo %s", "bar")
			assert.True(t, len(b.Bytes()) == 0 == !outputted)
			if outputted {
				assert.Equal(t, string(b.Bytes()), "foo bar\n")
			}
		})
	}
	add("", false)
	add("zzzglorb", false)
	add("mlog_test", true)
}

func TestMlogRecursion(t *testing.T) {
	var b bytes.Buffer
	logger := log.New(&b, "", 0)
	Reset()
	defer SetLogger(logger)()
	defer SetPattern(".")()
	Printf("d0")
	func() {
		Printf("d1")
		func() {
			Printf("d2")
		}()
		Printf("D1")
	}()
	Printf("D0")
	assert.Equal(t, string(b.Bytes()), "d0\n.d1\n..d2\n.D1\nD0\n")
}

func BenchmarkMlogDisabled(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Printf("x")
	}
}

func BenchmarkMlogDisabledPrintf2(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Printf2("x", "y", 42)
	}
}

func BenchmarkMlogNotMatching(b *testing.B) {
	defer SetPattern("zzglorb")()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Printf("x")
	}
}
