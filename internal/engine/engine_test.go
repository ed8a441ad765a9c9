package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"

	"github.com/DecklynKern/chess/internal/board"
)

func newTestEngine(t *testing.T, k StrategyKind) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Strategy = k
	cfg.HashBits = 12
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestEngineBestMove(t *testing.T) {
	e := newTestEngine(t, StrategyIterativeDeepening)
	if err := e.SetPositionFEN("rnb1kbnr/pppppppp/8/8/3Qq3/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1"); err != nil {
		t.Fatal(err)
	}

	m, ok := e.BestMove(SearchLimits{Depth: 3})
	if !ok || m != "d4e4" {
		t.Errorf("BestMove = %q, %v; want d4e4, true", m, ok)
	}
}

func TestEngineStartingPosition(t *testing.T) {
	e := newTestEngine(t, StrategyIterativeDeepening)
	e.SetDifficulty(Easy)

	res := e.Think()
	if !res.Found {
		t.Fatal("no move from the starting position")
	}
	if _, err := board.ParseMove(board.NewBoard(), res.Move.String()); err != nil {
		t.Errorf("illegal move %s: %v", res.Move, err)
	}
	if e.Nodes() == 0 {
		t.Error("no nodes counted")
	}
}

func TestEngineSetPositionMoves(t *testing.T) {
	e := newTestEngine(t, StrategyAlphaBeta)

	if err := e.SetPositionMoves([]string{"e2e4", "e7e5", "g1f3", "b8c6"}); err != nil {
		t.Fatal(err)
	}
	const want = "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3"
	if got := e.Board().FEN(); got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}

	err := e.SetPositionMoves([]string{"e2e4", "e2e4"})
	if !errors.Is(err, board.ErrMoveNotFound) {
		t.Fatalf("err = %v, want ErrMoveNotFound", err)
	}
	if !strings.Contains(err.Error(), "move 2") {
		t.Errorf("error %q does not name the move", err)
	}
	if got := e.Board().FEN(); got != want {
		t.Errorf("rejected move list changed the position to %q", got)
	}
}

func TestEngineSetPositionFENError(t *testing.T) {
	e := newTestEngine(t, StrategyAlphaBeta)
	if err := e.SetPositionFEN("not a fen"); err == nil {
		t.Fatal("invalid FEN accepted")
	}
	if got := e.Board().FEN(); got != board.StartFEN {
		t.Errorf("position changed to %q", got)
	}
}

func TestEngineNoMove(t *testing.T) {
	e := newTestEngine(t, StrategyIterativeDeepening)
	if err := e.SetPositionFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1"); err != nil {
		t.Fatal(err)
	}

	if m, ok := e.BestMove(SearchLimits{Depth: 2}); ok {
		t.Errorf("BestMove = %q in checkmate", m)
	}
	if _, err := e.Move(SearchLimits{Depth: 2}); !errors.Is(err, ErrNoMove) {
		t.Errorf("Move err = %v, want ErrNoMove", err)
	}
}

func TestEngineOnInfo(t *testing.T) {
	e := newTestEngine(t, StrategyIterativeDeepening)

	var passes []SearchInfo
	e.OnInfo = func(info SearchInfo) { passes = append(passes, info) }

	e.Search(SearchLimits{Depth: 3})
	if len(passes) != 3 {
		t.Fatalf("OnInfo called %d times, want 3", len(passes))
	}
	for i, info := range passes {
		if info.Depth != i+1 {
			t.Errorf("pass %d reported depth %d", i, info.Depth)
		}
	}
}

func TestEngineLogsSearch(t *testing.T) {
	var lines []string
	cfg := DefaultConfig()
	cfg.HashBits = 10
	cfg.Logger = funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 1})

	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.Search(SearchLimits{Depth: 2})

	var passes, done int
	for _, l := range lines {
		if !strings.HasPrefix(l, "engine ") {
			t.Errorf("log line without engine name: %s", l)
		}
		if strings.Contains(l, `"search pass complete"`) {
			passes++
		}
		if strings.Contains(l, `"search done"`) {
			done++
		}
	}
	if passes != 2 || done != 1 {
		t.Errorf("logged %d passes and %d searches:\n%s", passes, done, strings.Join(lines, "\n"))
	}
}

func TestEngineCustomScore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HashBits = 10
	calls := 0
	cfg.Score = func(b *board.Board) int {
		calls++
		return 0
	}
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if got := e.Evaluate(); got != 0 || calls != 1 {
		t.Errorf("Evaluate = %d after %d calls", got, calls)
	}
	e.Search(SearchLimits{Depth: 1})
	if calls != 21 {
		t.Errorf("depth 1 evaluated %d leaves, want 20", calls-1)
	}
}

func TestEngineUnknownStrategy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyKind(42)
	if _, err := New(cfg); err == nil {
		t.Error("New accepted an unknown strategy")
	}
}

func TestEngineMoveTime(t *testing.T) {
	e := newTestEngine(t, StrategyIterativeDeepening)
	start := time.Now()
	res := e.Search(SearchLimits{MoveTime: 50 * time.Millisecond})
	if !res.Found {
		t.Fatal("no move within the time budget")
	}
	// Passes are never interrupted, so allow for the one in flight.
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("search took %v", elapsed)
	}
}

func TestEnginePerft(t *testing.T) {
	e := newTestEngine(t, StrategyAlphaBeta)
	if got := e.Perft(3); got != 8902 {
		t.Errorf("Perft(3) = %d, want 8902", got)
	}
}

func TestParseStrategyKind(t *testing.T) {
	for _, k := range allStrategies {
		got, err := ParseStrategyKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseStrategyKind(%q) = %v, %v", k.String(), got, err)
		}
		if s := newTestStrategy(t, k); s.Name() != k.String() {
			t.Errorf("strategy %v named %q", k, s.Name())
		}
	}
	if _, err := ParseStrategyKind("mcts"); err == nil {
		t.Error("ParseStrategyKind accepted an unknown name")
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "0.00"},
		{150, "1.50"},
		{-35, "-0.35"},
		{MateScore - 1, "Mate in 1"},
		{MateScore - 3, "Mate in 2"},
		{-(MateScore - 2), "Mated in 1"},
	}
	for _, tt := range tests {
		if got := ScoreToString(tt.score); got != tt.want {
			t.Errorf("ScoreToString(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
