package engine

import (
	"fmt"

	"github.com/DecklynKern/chess/internal/board"
)

// Strategy chooses a move for a position within the given limits. The board
// is restored before Search returns.
type Strategy interface {
	Name() string
	Search(b *board.Board, limits SearchLimits) Result
}

// StrategyKind selects a built-in Strategy.
type StrategyKind int

const (
	StrategyIterativeDeepening StrategyKind = iota
	StrategyAlphaBeta
	StrategyMinimax
)

// String returns the strategy name.
func (k StrategyKind) String() string {
	switch k {
	case StrategyIterativeDeepening:
		return "iterative"
	case StrategyAlphaBeta:
		return "alphabeta"
	case StrategyMinimax:
		return "minimax"
	default:
		return fmt.Sprintf("StrategyKind(%d)", int(k))
	}
}

// ParseStrategyKind parses a strategy name as printed by StrategyKind.String.
func ParseStrategyKind(s string) (StrategyKind, error) {
	switch s {
	case "iterative":
		return StrategyIterativeDeepening, nil
	case "alphabeta":
		return StrategyAlphaBeta, nil
	case "minimax":
		return StrategyMinimax, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

// NewStrategy builds the strategy of kind k over searcher s.
func NewStrategy(k StrategyKind, s *Searcher) (Strategy, error) {
	switch k {
	case StrategyIterativeDeepening:
		return &IterativeDeepening{searcher: s}, nil
	case StrategyAlphaBeta:
		return &AlphaBeta{searcher: s}, nil
	case StrategyMinimax:
		return &Minimax{searcher: s}, nil
	}
	return nil, fmt.Errorf("unknown strategy %v", k)
}

// fixedDepth returns the pass depth for a fixed-depth strategy.
func fixedDepth(limits SearchLimits) int {
	if limits.Depth > 0 {
		return limits.Depth
	}
	return DefaultDepth
}

// Minimax searches every line to a fixed depth without pruning.
// MoveTime is ignored.
type Minimax struct {
	searcher *Searcher
}

func (m *Minimax) Name() string { return "minimax" }

func (m *Minimax) Search(b *board.Board, limits SearchLimits) Result {
	m.searcher.prune = false
	defer func() { m.searcher.prune = true }()
	return m.searcher.SearchFixed(b, fixedDepth(limits))
}

// AlphaBeta runs a single alpha-beta pass to a fixed depth.
// MoveTime is ignored.
type AlphaBeta struct {
	searcher *Searcher
}

func (a *AlphaBeta) Name() string { return "alphabeta" }

func (a *AlphaBeta) Search(b *board.Board, limits SearchLimits) Result {
	a.searcher.prune = true
	return a.searcher.SearchFixed(b, fixedDepth(limits))
}

// IterativeDeepening repeats alpha-beta passes at increasing depth until the
// depth limit or the time budget is reached, ordering each pass by the
// principal variation of the one before.
type IterativeDeepening struct {
	searcher *Searcher
}

func (id *IterativeDeepening) Name() string { return "iterative" }

func (id *IterativeDeepening) Search(b *board.Board, limits SearchLimits) Result {
	id.searcher.prune = true
	return id.searcher.Iterate(b, limits)
}
