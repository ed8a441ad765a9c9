package engine

import (
	"github.com/DecklynKern/chess/internal/board"
)

// Move ordering priorities
const (
	PVMoveScore     = 10000000 // PV move from the previous iteration
	GoodCaptureBase = 1000000  // Base score for captures
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker) scores
// Higher score = search first
// Score = victimValue * 10 - attackerValue
var mvvLva = [6][6]int{
	//       P    N    B    R    Q    K  (attacker)
	/* P */ {15, 14, 14, 13, 12, 11}, // Pawn victim
	/* N */ {25, 24, 24, 23, 22, 21}, // Knight victim
	/* B */ {35, 34, 34, 33, 32, 31}, // Bishop victim
	/* R */ {45, 44, 44, 43, 42, 41}, // Rook victim
	/* Q */ {55, 54, 54, 53, 52, 51}, // Queen victim
	/* K */ {0, 0, 0, 0, 0, 0},       // King can't be captured
}

// scoreMove returns the ordering score of m.
func scoreMove(m, pvMove board.Move) int {
	if !pvMove.IsNull() && m.SameAs(pvMove) {
		return PVMoveScore
	}
	if m.IsCapture() {
		victim := m.Captured.Type() - 1
		attacker := m.Piece.Type() - 1
		return GoodCaptureBase + mvvLva[victim][attacker]
	}
	return 0
}

// ScoreMoves fills scores with the ordering score of every move in moves:
// the PV move first, then captures by MVV-LVA, then quiet moves.
func ScoreMoves(moves *board.MoveList, pvMove board.Move, scores []int) {
	for i := 0; i < moves.Len(); i++ {
		scores[i] = scoreMove(moves.Get(i), pvMove)
	}
}

// SortMoves sorts moves by their scores (descending).
// Moves with equal scores keep their generation order.
func SortMoves(moves *board.MoveList, scores []int) {
	// Insertion sort (sufficient for ~40 moves)
	n := moves.Len()
	for i := 1; i < n; i++ {
		for j := i; j > 0 && scores[j] > scores[j-1]; j-- {
			moves.Swap(j, j-1)
			scores[j], scores[j-1] = scores[j-1], scores[j]
		}
	}
}

// OrderMoves sorts moves for search using the given PV move.
func OrderMoves(moves *board.MoveList, pvMove board.Move, scores []int) {
	ScoreMoves(moves, pvMove, scores)
	SortMoves(moves, scores)
}
