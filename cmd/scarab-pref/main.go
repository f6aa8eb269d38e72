/*
 * Author: Utkarsh <28utkarsh@users.noreply.github.com>
 *
 * Copyright (c) 2026 Utkarsh
 *
 * Created:       Tue Mar 24 09:15:40 2026 utkarsh
 * Last modified: Tue Aug 25 10:20:33 2026 utkarsh
 * Edit time:     47 min
 *
 */

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/28utkarsh/scarab/persist"
	"github.com/28utkarsh/scarab/persist/factory"
	"github.com/28utkarsh/scarab/pref"
	"github.com/28utkarsh/scarab/sim"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n\n%s [options] [TRACEFILE]\n\nTrace is read from stdin if no file is given.\n", os.Args[0])
		flag.PrintDefaults()
	}
	backendp := flag.String("backend", "file",
		fmt.Sprintf("Snapshot backend to use (possible: %v)", factory.List()))
	statedir := flag.String("statedir", "", "Directory for warm-start history snapshots (empty = no snapshotting)")
	password := flag.String("password", "", "Password for encrypting snapshots (empty = compression only)")
	salt := flag.String("salt", "salt", "Salt")
	snapname := flag.String("snapshotname", "history", "Name of the history snapshot")
	sets := flag.Int("sets", 64, "Number of cache sets")
	ways := flag.Int("ways", 8, "Number of cache ways")
	cpuprofile := flag.String("cpuprofile", "", "CPU profile file")
	memprofile := flag.String("memprofile", "", "Memory profile file")

	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	input := os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		input = f
	}

	s := sim.NewSimulator(*sets, *ways, pref.Config{PrefetcherID: 1})

	var be persist.Backend
	var codec = factory.NewSnapshotCodec(factory.SnapshotCodecConfiguration{
		Password: *password, Salt: *salt})
	if *statedir != "" {
		be = factory.New(*backendp, *statedir)
		n, err := persist.LoadHistory(be, codec, *snapname, s.Engine.History())
		if err != nil {
			log.Fatal("loading snapshot: ", err)
		}
		if n > 0 {
			log.Printf("warm start: %d history records", n)
		}
	}

	if err := s.Run(input); err != nil {
		log.Fatal(err)
	}

	fmt.Println(s.Stats.String())

	if be != nil {
		id, err := persist.SaveHistory(be, codec, *snapname, s.Engine.History())
		if err != nil {
			log.Fatal("saving snapshot: ", err)
		}
		log.Printf("saved history snapshot %s", id)
		be.Close()
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
