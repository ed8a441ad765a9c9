// Command chess-bestmove searches a position and prints the engine's move.
//
//	chess-bestmove -moves "e2e4 e7e5 g1f3" -depth 5
//	chess-bestmove -fen "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1" -strategy alphabeta
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/stdr"

	"github.com/DecklynKern/chess/internal/board"
	"github.com/DecklynKern/chess/internal/engine"
)

var (
	fen       = flag.String("fen", "", "position to search (default: start position)")
	moves     = flag.String("moves", "", "space-separated long algebraic moves played from the start position")
	depth     = flag.Int("depth", 0, "search depth in plies (0: engine default, or unlimited with -movetime)")
	movetime  = flag.Duration("movetime", 0, "time budget for iterative deepening")
	strategy  = flag.String("strategy", engine.StrategyIterativeDeepening.String(), "iterative, alphabeta or minimax")
	eval      = flag.String("eval", engine.EvalPieceSquare.String(), "material or pst")
	hashBits  = flag.Int("hash", engine.DefaultTableBits, "log2 of the hash table bucket count")
	verbosity = flag.Int("v", 0, "log verbosity; 1 logs every search pass")
)

func main() {
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	cfg := engine.DefaultConfig()
	cfg.HashBits = *hashBits
	cfg.Logger = logger

	var err error
	if cfg.Strategy, err = engine.ParseStrategyKind(*strategy); err != nil {
		log.Fatal(err)
	}
	if cfg.Eval, err = engine.ParseEvalKind(*eval); err != nil {
		log.Fatal(err)
	}

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *fen != "" && *moves != "":
		log.Fatal("-fen and -moves are mutually exclusive")
	case *fen != "":
		err = eng.SetPositionFEN(*fen)
	case *moves != "":
		err = eng.SetPositionMoves(strings.Fields(*moves))
	}
	if err != nil {
		log.Fatal(err)
	}

	// SAN needs the position before the move is made.
	root := eng.Board().Copy()

	start := time.Now()
	res := eng.Search(engine.SearchLimits{Depth: *depth, MoveTime: *movetime})
	elapsed := time.Since(start)

	if !res.Found {
		fmt.Println("bestmove (none)")
		if root.InCheck() {
			fmt.Println("info checkmate")
		} else {
			fmt.Println("info stalemate")
		}
		return
	}

	fmt.Printf("info depth %d score %s nodes %s time %v\n",
		res.Depth, engine.ScoreToString(res.Score), humanize.Comma(int64(res.Nodes)), elapsed.Round(time.Millisecond))
	fmt.Printf("info san %s\n", board.SAN(root, res.Move))
	fmt.Printf("bestmove %s\n", res.Move)
}
