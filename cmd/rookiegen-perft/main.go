// Command rookiegen-perft is a thin harness around internal/board and
// internal/perft: it does not play or analyse games, only parses a
// position and reports its perft count, the way the teacher's
// cmd/chessplay-uci/main.go is a thin harness around the engine.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kervinck/rookiegen/internal/board"
	"github.com/kervinck/rookiegen/internal/perft"
)

const startingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	fen        = flag.String("fen", startingFEN, "FEN or EPD position to count from")
	depth      = flag.Int("depth", 5, "perft depth")
	divide     = flag.Bool("divide", false, "break the count down by root move")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

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
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("parsing %q: %v", *fen, err)
	}
	if *depth < 0 {
		log.Fatalf("depth must be non-negative, got %d", *depth)
	}

	start := time.Now()
	if *divide {
		runDivide(pos, *depth, start)
		return
	}
	runCount(pos, *depth, start)
}

func runCount(pos *board.Position, depth int, start time.Time) {
	nodes := perft.Count(pos, depth)
	elapsed := time.Since(start)
	fmt.Printf("perft(%d) = %s\n", depth, humanize.Comma(nodes))
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Printf("%s in %s (%s nodes/sec)\n",
			humanize.Comma(nodes), elapsed, humanize.Comma(int64(nps)))
	}
}

func runDivide(pos *board.Position, depth int, start time.Time) {
	if depth < 1 {
		log.Fatal("-divide requires depth >= 1")
	}
	entries, total := perft.Divide(pos, depth)
	for _, e := range entries {
		fmt.Printf("%-6s %s\n", e.Move, humanize.Comma(e.Nodes))
	}
	elapsed := time.Since(start)
	fmt.Printf("\ntotal %s in %s\n", humanize.Comma(total), elapsed)
}
