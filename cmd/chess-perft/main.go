// Command chess-perft counts leaf nodes of the legal move tree to a fixed
// depth, optionally split by root move and cached between runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/DecklynKern/chess/internal/board"
	"github.com/DecklynKern/chess/internal/storage"
)

var (
	fen        = flag.String("fen", board.StartFEN, "position to count from")
	depth      = flag.Int("depth", 5, "depth in plies")
	divide     = flag.Bool("divide", false, "print node counts per root move")
	cache      = flag.Bool("cache", false, "read and write results in the perft cache ($"+storage.CacheDirEnv+")")
	verbosity  = flag.Int("v", 0, "log verbosity")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("perft")

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", "path", profilePath)
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal(err)
	}
	if *depth < 0 {
		log.Fatalf("negative depth %d", *depth)
	}
	key := b.FEN()

	var store *storage.PerftStore
	if *cache {
		store, err = storage.OpenDefault()
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()

		if entry := lookup(logger, store, key); entry != nil {
			report(entry)
			return
		}
	}

	entry := run(b, key)
	report(entry)

	if store != nil {
		if err := store.Put(entry); err != nil {
			logger.Error(err, "could not cache result")
		} else {
			logger.V(1).Info("cached result", "fen", key, "depth", entry.Depth)
		}
	}
}

// lookup returns a cached result usable for the requested output, or nil.
func lookup(logger logr.Logger, store *storage.PerftStore, key string) *storage.PerftEntry {
	entry, ok, err := store.Get(key, *depth)
	if err != nil {
		logger.Error(err, "cache read failed")
		return nil
	}
	if !ok || (*divide && entry.Divide == nil) {
		logger.V(1).Info("cache miss", "fen", key, "depth", *depth)
		return nil
	}
	logger.V(1).Info("cache hit", "fen", key, "depth", *depth, "recorded", entry.Recorded)
	return entry
}

func run(b *board.Board, key string) *storage.PerftEntry {
	entry := &storage.PerftEntry{FEN: key, Depth: *depth}
	start := time.Now()

	if *divide && *depth > 0 {
		entry.Divide = make(map[string]uint64)
		for _, d := range board.PerftDivide(b, *depth) {
			entry.Divide[d.Move.String()] = d.Nodes
			entry.Nodes += d.Nodes
		}
	} else {
		entry.Nodes = board.Perft(b, *depth)
	}

	entry.Elapsed = time.Since(start)
	return entry
}

func report(entry *storage.PerftEntry) {
	if entry.Divide != nil {
		b, err := board.ParseFEN(entry.FEN)
		if err != nil {
			log.Fatal(err)
		}
		// Print in generation order, as PerftDivide reports it.
		for _, m := range b.LegalMoves().Slice() {
			if n, ok := entry.Divide[m.String()]; ok {
				fmt.Printf("%s: %d\n", m, n)
			}
		}
		fmt.Println()
	}

	fmt.Printf("Nodes searched: %s\n", humanize.Comma(int64(entry.Nodes)))
	if secs := entry.Elapsed.Seconds(); secs > 0 {
		nps := float64(entry.Nodes) / secs
		fmt.Printf("Time: %v (%s nodes/s)\n", entry.Elapsed.Round(time.Millisecond), humanize.Comma(int64(nps)))
	}
}
