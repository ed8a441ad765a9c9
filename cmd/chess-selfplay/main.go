// Command chess-selfplay plays the engine against itself, with a separate
// strategy and evaluation for each side, and prints the game in SAN.
//
//	chess-selfplay -white iterative -black alphabeta -depth 4
//	chess-selfplay -opening "e4 e5 Nf3" -movetime 1s -max 200
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/DecklynKern/chess/internal/board"
	"github.com/DecklynKern/chess/internal/engine"
)

var (
	fen        = flag.String("fen", "", "starting position (default: start position)")
	opening    = flag.String("opening", "", "space-separated SAN moves played before the engines take over")
	white      = flag.String("white", engine.StrategyIterativeDeepening.String(), "white strategy: iterative, alphabeta or minimax")
	black      = flag.String("black", engine.StrategyAlphaBeta.String(), "black strategy: iterative, alphabeta or minimax")
	whiteEval  = flag.String("white-eval", engine.EvalPieceSquare.String(), "white evaluation: material or pst")
	blackEval  = flag.String("black-eval", engine.EvalMaterial.String(), "black evaluation: material or pst")
	difficulty = flag.String("difficulty", "medium", "search preset when -depth and -movetime are unset: easy, medium or hard")
	depth      = flag.Int("depth", 0, "search depth in plies for both sides")
	movetime   = flag.Duration("movetime", 0, "time budget per move for iterative deepening")
	maxPlies   = flag.Int("max", 300, "stop after this many plies (0: no limit)")
	showBoard  = flag.Bool("board", false, "print the board after every move")
	verbosity  = flag.Int("v", 0, "log verbosity; 1 logs every move and search pass")
)

var difficulties = map[string]engine.Difficulty{
	"easy":   engine.Easy,
	"medium": engine.Medium,
	"hard":   engine.Hard,
}

func newEngine(logger logr.Logger, strategy, eval string) *engine.Engine {
	cfg := engine.DefaultConfig()
	cfg.Logger = logger

	var err error
	if cfg.Strategy, err = engine.ParseStrategyKind(strategy); err != nil {
		log.Fatal(err)
	}
	if cfg.Eval, err = engine.ParseEvalKind(eval); err != nil {
		log.Fatal(err)
	}

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	return eng
}

func main() {
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	level, ok := difficulties[*difficulty]
	if !ok {
		log.Fatalf("unknown difficulty %q", *difficulty)
	}

	whiteEng := newEngine(logger.WithName("white"), *white, *whiteEval)
	blackEng := newEngine(logger.WithName("black"), *black, *blackEval)
	whiteEng.SetDifficulty(level)
	blackEng.SetDifficulty(level)

	game, err := engine.NewGame(whiteEng, blackEng, *fen)
	if err != nil {
		log.Fatal(err)
	}
	first := game.Board().Copy()
	game.Limits = engine.SearchLimits{Depth: *depth, MoveTime: *movetime}
	game.MaxPlies = *maxPlies

	for _, s := range strings.Fields(*opening) {
		if err := game.PlaySAN(s); err != nil {
			log.Fatalf("opening move %q: %v", s, err)
		}
	}

	game.OnMove = func(ply int, m board.Move, san string) {
		mover := game.Board().SideToMove().Other()
		fmt.Printf("%3d %s %s (%s)\n", ply, mover, san, m)
		if *showBoard {
			fmt.Println(game.Board())
		}
	}

	res, err := game.Play()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println()
	fmt.Println(formatGame(first, game.SAN(), res.Score()))
	fmt.Printf("%s after %d plies\n", res.Termination, res.Plies)
	fmt.Printf("final position: %s\n", res.FEN)
}

// formatGame numbers the moves the way PGN movetext does, starting from the
// game's first position.
func formatGame(first *board.Board, san []string, score string) string {
	var sb strings.Builder
	move := first.FullMoveNumber()

	i := 0
	if first.SideToMove() == board.Black && len(san) > 0 {
		fmt.Fprintf(&sb, "%d... %s ", move, san[0])
		move++
		i = 1
	}
	for ; i < len(san); i += 2 {
		fmt.Fprintf(&sb, "%d. %s ", move, san[i])
		if i+1 < len(san) {
			sb.WriteString(san[i+1])
			sb.WriteByte(' ')
		}
		move++
	}
	sb.WriteString(score)
	return sb.String()
}
