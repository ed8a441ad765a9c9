package engine

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-logr/logr"

	"github.com/DecklynKern/chess/internal/board"
)

// SearchInfo contains information about a completed search pass.
type SearchInfo struct {
	Depth   int
	Score   int
	Nodes   uint64
	Time    time.Duration
	PV      []board.Move
	HitRate float64 // Score table hit rate in percent
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = no limit when MoveTime is set)
	MoveTime time.Duration // Time for this move (0 = no limit)
}

// Result is the outcome of a search. Found is false when the side to move
// has no legal move; Score then reports 0 for stalemate or -MateScore for
// checkmate.
type Result struct {
	Move  board.Move
	Score int
	Depth int
	Nodes uint64
	Found bool
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // ~2-3 ply, 500ms
	Medium                   // ~4 ply, 2s
	Hard                     // ~6 ply, 5s
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 3, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: 4, MoveTime: 2 * time.Second},
	Hard:   {Depth: 6, MoveTime: 5 * time.Second},
}

// Config configures an Engine.
type Config struct {
	Strategy StrategyKind
	Eval     EvalKind
	// Score overrides Eval when set.
	Score ScoreFunc
	// HashBits is log2 of the bucket count of the score and PV tables.
	HashBits int
	// Seed seeds the Zobrist keys; 0 selects board.DefaultZobristSeed.
	Seed   uint64
	Logger logr.Logger
}

// DefaultConfig returns an iterative-deepening, piece-square configuration
// with a 2^20-bucket table and logging discarded.
func DefaultConfig() Config {
	return Config{
		Strategy: StrategyIterativeDeepening,
		Eval:     EvalPieceSquare,
		HashBits: DefaultTableBits,
		Logger:   logr.Discard(),
	}
}

// Engine is the chess AI engine. It owns the current position and the
// search state, and is not safe for concurrent use except for Stop.
type Engine struct {
	board    *board.Board
	searcher *Searcher
	strategy Strategy
	log      logr.Logger

	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// New creates an engine at the starting position.
func New(cfg Config) (*Engine, error) {
	score := cfg.Score
	if score == nil {
		score = cfg.Eval.ScoreFunc()
	}

	searcher := NewSearcher(score, board.NewZobrist(cfg.Seed), cfg.HashBits)
	strategy, err := NewStrategy(cfg.Strategy, searcher)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	e := &Engine{
		board:      board.NewBoard(),
		searcher:   searcher,
		strategy:   strategy,
		log:        log.WithName("engine"),
		difficulty: Medium,
	}
	searcher.OnIteration = e.report

	e.log.V(1).Info("engine ready", "strategy", strategy.Name(), "eval", cfg.Eval,
		"hashBits", clamp(cfg.HashBits, MinTableBits, MaxTableBits))
	return e, nil
}

// report logs a completed search pass and forwards it to OnInfo.
func (e *Engine) report(info SearchInfo) {
	e.log.V(1).Info("search pass complete",
		"depth", info.Depth,
		"score", ScoreToString(info.Score),
		"nodes", info.Nodes,
		"elapsed", info.Time,
		"hitRate", fmt.Sprintf("%.1f%%", info.HitRate))

	if e.OnInfo != nil {
		e.OnInfo(info)
	}
}

// Board returns the engine's current position.
func (e *Engine) Board() *board.Board {
	return e.board
}

// Strategy returns the configured search strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// SetPositionFEN sets the current position from a FEN string. On error the
// previous position is kept.
func (e *Engine) SetPositionFEN(fen string) error {
	b, err := board.ParseFEN(fen)
	if err != nil {
		e.log.Error(err, "rejected position", "fen", fen)
		return err
	}
	e.board = b
	return nil
}

// SetPositionMoves sets the current position by replaying long algebraic
// moves from the starting position. On error the previous position is kept
// and the error wraps board.ErrMoveNotFound.
func (e *Engine) SetPositionMoves(moves []string) error {
	b := board.NewBoard()
	for i, s := range moves {
		m, err := board.ParseMove(b, s)
		if err != nil {
			err = fmt.Errorf("move %d: %w", i+1, err)
			e.log.Error(err, "rejected move list", "move", s)
			return err
		}
		b.Apply(m)
	}
	e.board = b
	return nil
}

// Search runs the configured strategy on the current position.
func (e *Engine) Search(limits SearchLimits) Result {
	start := time.Now()
	result := e.strategy.Search(e.board, limits)

	e.log.V(1).Info("search done",
		"strategy", e.strategy.Name(),
		"move", result.Move.String(),
		"found", result.Found,
		"depth", result.Depth,
		"elapsed", time.Since(start))
	return result
}

// BestMove returns the best move for the current position in long algebraic
// notation, or false when the side to move has no legal move.
func (e *Engine) BestMove(limits SearchLimits) (string, bool) {
	result := e.Search(limits)
	if !result.Found {
		return "", false
	}
	return result.Move.String(), true
}

// Move is BestMove returning the full move snapshot. It returns ErrNoMove
// when the side to move has no legal move.
func (e *Engine) Move(limits SearchLimits) (board.Move, error) {
	result := e.Search(limits)
	if !result.Found {
		return board.NoMove, ErrNoMove
	}
	return result.Move, nil
}

// Think searches with the limits of the current difficulty.
func (e *Engine) Think() Result {
	return e.Search(DifficultySettings[e.difficulty])
}

// Stop stops an iterative search after its current pass.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Nodes returns the number of nodes visited by the last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// Perft performs a perft test on the current position.
func (e *Engine) Perft(depth int) uint64 {
	return board.Perft(e.board, depth)
}

// Evaluate returns the static evaluation of the current position.
func (e *Engine) Evaluate() int {
	return e.searcher.eval(e.board)
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if IsMateScore(score) {
		if d := MateDistance(score); d > 0 {
			return "Mate in " + strconv.Itoa(d)
		}
		return "Mated in " + strconv.Itoa(-MateDistance(score))
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
	}
	score = abs(score)
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
