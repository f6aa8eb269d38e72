/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Wed Mar 11 09:40:02 2026 utkarsh
 * Last modified: Wed Mar 11 09:51:44 2026 utkarsh
 * Edit time:     6 min
 *
 */

package util

import (
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"
)

// GetSeededRng returns a rand.Rand seeded either from the SEED
// environment variable (for reproducing test failures) or the clock.
func GetSeededRng() *rand.Rand {
	seed := os.Getenv("SEED")

	seedvalue := time.Now().UnixNano()
	if seed != "" {
		v, err := strconv.Atoi(seed)
		if err != nil {
			log.Panic(err)
		}
		seedvalue = int64(v)
	}
	log.Printf("Seed: %v (use SEED= to fix)", seedvalue)
	return rand.New(rand.NewSource(seedvalue))
}
