/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Mon Mar 23 13:20:09 2026 utkarsh
 * Last modified: Mon Aug 24 11:02:51 2026 utkarsh
 * Edit time:     24 min
 *
 */

package sim

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/28utkarsh/scarab/pref"
)

// ParseTrace reads an access trace: one access per line, "<pc>
// <addr>" in hex (0x prefix optional), '#' comments and blank lines
// skipped. cb is called once per access; a non-nil cb error aborts
// the parse.
func ParseTrace(r io.Reader, cb func(pc, addr pref.Addr) error) error {
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return fmt.Errorf("trace line %d: expected 2 fields, got %d", lineno, len(fields))
		}
		pc, err := parseHex(fields[0])
		if err != nil {
			return fmt.Errorf("trace line %d: %v", lineno, err)
		}
		addr, err := parseHex(fields[1])
		if err != nil {
			return fmt.Errorf("trace line %d: %v", lineno, err)
		}
		if err := cb(pref.Addr(pc), pref.Addr(addr)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseHex(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
}
