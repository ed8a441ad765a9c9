package engine

import (
	"sync/atomic"
	"time"

	"github.com/DecklynKern/chess/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// DefaultDepth is used when SearchLimits sets neither a depth nor a time.
const DefaultDepth = 4

// Searcher performs negamax alpha-beta search over a board with an injected
// evaluation. The score table maps a position hash to the negamax score of
// that position for its side to move; the PV table maps a position hash to
// the best move found there in the previous iteration.
//
// A Searcher is single-threaded: it mutates the board it is given through
// Apply and Undo and restores it before returning.
type Searcher struct {
	eval    ScoreFunc
	zobrist *board.Zobrist
	scores  *Table[int]
	pv      *Table[board.Move]

	prune    bool
	nodes    uint64
	stopFlag atomic.Bool

	// Per-ply scratch so the search does not allocate.
	moves      [MaxPly + 1]board.MoveList
	moveScores [MaxPly + 1][256]int

	// OnIteration is called after every completed search pass.
	OnIteration func(SearchInfo)
}

// NewSearcher creates a searcher with score and PV tables of 2^hashBits buckets.
func NewSearcher(eval ScoreFunc, zobrist *board.Zobrist, hashBits int) *Searcher {
	if eval == nil {
		eval = MaterialScore
	}
	if zobrist == nil {
		zobrist = board.DefaultZobrist()
	}
	return &Searcher{
		eval:    eval,
		zobrist: zobrist,
		scores:  NewTable[int](hashBits),
		pv:      NewTable[board.Move](hashBits),
		prune:   true,
	}
}

// Nodes returns the number of nodes searched since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// ScoreTable returns the position score table.
func (s *Searcher) ScoreTable() *Table[int] {
	return s.scores
}

// Stop signals an iterative search to finish after the current pass.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// IsStopped returns true if the search has been stopped.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load()
}

// Reset prepares the searcher for a new search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes = 0
	s.scores.Clear()
	s.pv.Clear()
}

// SearchDepth runs one full-width search pass to depth from the root and
// returns the best move and its score. The best move is NoMove when the side
// to move has no legal move; the score is then 0 for stalemate or -MateScore
// for checkmate.
func (s *Searcher) SearchDepth(b *board.Board, depth int) (board.Move, int) {
	depth = clamp(depth, 1, MaxPly)
	score, move := s.negamax(b, s.zobrist.Hash(b), depth, 0, -Infinity, Infinity)
	return move, score
}

// negamax returns the score of b for the side to move and the move that
// achieved it. Scores of children are read from and written to the score
// table; only leaf evaluations and scores that fell strictly inside the
// child's window are stored, since a cutoff score is only a bound.
func (s *Searcher) negamax(b *board.Board, hash uint64, depth, ply, alpha, beta int) (int, board.Move) {
	s.nodes++

	if depth == 0 {
		return s.eval(b), board.NoMove
	}

	moves := &s.moves[ply]
	info := b.GenerateLegalMoves(moves)

	if moves.Len() == 0 {
		if info.InCheck() {
			return -(MateScore - ply), board.NoMove
		}
		return 0, board.NoMove
	}

	pvMove, _ := s.pv.Get(hash)
	scores := s.moveScores[ply][:moves.Len()]
	OrderMoves(moves, pvMove, scores)

	best := -Infinity
	bestMove := board.NoMove

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		child := s.zobrist.Update(hash, m)

		b.Apply(m)

		var score int
		if cached, ok := s.scores.Get(child); ok {
			score = -AdjustScoreFromTT(cached, ply+1)
		} else {
			childAlpha, childBeta := -beta, -alpha
			v, _ := s.negamax(b, child, depth-1, ply+1, childAlpha, childBeta)
			if depth == 1 || !s.prune || (v > childAlpha && v < childBeta) {
				s.scores.Set(child, AdjustScoreToTT(v, ply+1))
			}
			score = -v
		}

		b.Undo()

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if s.prune && alpha >= beta {
			break
		}
	}

	s.pv.Set(hash, bestMove)

	return best, bestMove
}

// principalVariation follows the PV table from the root, accepting only
// moves that are legal in the position reached.
func (s *Searcher) principalVariation(b *board.Board, maxLen int) []board.Move {
	var line []board.Move
	hash := s.zobrist.Hash(b)

	for len(line) < maxLen {
		m, ok := s.pv.Get(hash)
		if !ok {
			break
		}
		legal, err := board.ParseMove(b, m.String())
		if err != nil {
			break
		}
		hash = s.zobrist.Update(hash, legal)
		b.Apply(legal)
		line = append(line, legal)
	}

	for range line {
		b.Undo()
	}
	return line
}

// Iterate runs iterative deepening: full passes at depth 1, 2, ... with the
// score table cleared before each pass and the PV table kept across passes.
// The clock is checked only between passes, so the first pass always
// completes. The result is the move of the deepest completed pass.
func (s *Searcher) Iterate(b *board.Board, limits SearchLimits) Result {
	s.Reset()

	startTime := time.Now()

	// Determine maximum depth
	maxDepth := MaxPly
	if limits.Depth > 0 {
		maxDepth = min(limits.Depth, MaxPly)
	} else if limits.MoveTime <= 0 {
		maxDepth = DefaultDepth
	}

	// Determine deadline
	var deadline time.Time
	if limits.MoveTime > 0 {
		deadline = startTime.Add(limits.MoveTime)
	}

	var result Result
	hash := s.zobrist.Hash(b)

	for depth := 1; depth <= maxDepth; depth++ {
		// Check time before starting new iteration
		if depth > 1 && (s.IsStopped() || (!deadline.IsZero() && time.Now().After(deadline))) {
			break
		}

		s.scores.Clear()
		score, move := s.negamax(b, hash, depth, 0, -Infinity, Infinity)

		result = Result{Move: move, Score: score, Depth: depth, Nodes: s.nodes, Found: !move.IsNull()}
		if !result.Found {
			// No legal move: deeper passes cannot change the outcome.
			break
		}

		if s.OnIteration != nil {
			s.OnIteration(SearchInfo{
				Depth:   depth,
				Score:   score,
				Nodes:   s.nodes,
				Time:    time.Since(startTime),
				PV:      s.principalVariation(b, depth),
				HitRate: s.scores.HitRate(),
			})
		}

		// Early termination: found mate
		if IsMateScore(score) {
			break
		}
	}

	return result
}

// SearchFixed runs a single pass to the given depth with the tables cleared.
func (s *Searcher) SearchFixed(b *board.Board, depth int) Result {
	s.Reset()

	startTime := time.Now()
	depth = clamp(depth, 1, MaxPly)
	move, score := s.SearchDepth(b, depth)

	result := Result{Move: move, Score: score, Depth: depth, Nodes: s.nodes, Found: !move.IsNull()}
	if result.Found && s.OnIteration != nil {
		s.OnIteration(SearchInfo{
			Depth:   depth,
			Score:   score,
			Nodes:   s.nodes,
			Time:    time.Since(startTime),
			PV:      s.principalVariation(b, depth),
			HitRate: s.scores.HitRate(),
		})
	}
	return result
}
