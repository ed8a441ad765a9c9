// Package engine implements the chess AI search engine.
package engine

import (
	"fmt"

	"github.com/DecklynKern/chess/internal/board"
)

// ScoreFunc statically evaluates a position in centipawns from the point of
// view of the side to move. It must not modify the board.
type ScoreFunc func(b *board.Board) int

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 530
	QueenValue  = 960
)

// Piece values array for quick lookup, indexed by board.PieceType
var pieceValues = [7]int{0, PawnValue, KnightValue, BishopValue, RookValue, QueenValue, 0}

// MaterialScore returns the material balance for the side to move.
func MaterialScore(b *board.Board) int {
	score := 0
	for pt := board.Pawn; pt < board.King; pt++ {
		score += b.Count(board.NewPiece(pt, board.White)) * pieceValues[pt]
		score -= b.Count(board.NewPiece(pt, board.Black)) * pieceValues[pt]
	}
	if b.SideToMove() == board.Black {
		return -score
	}
	return score
}

// Piece-Square Tables (PST) for positional evaluation
// Values are from White's perspective with a8 first; mirrored for Black

// Pawn PST - encourages central control and advancement
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// Knight PST - encourages central positioning
var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

// Bishop PST - encourages central diagonals
var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// Rook PST - encourages 7th rank and central files
var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

// Queen PST - slight central preference
var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST - encourages castling
var kingPST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// All PSTs combined for easy lookup, indexed by board.PieceType
var psts = [...]*[64]int{
	nil, &pawnPST, &knightPST, &bishopPST, &rookPST, &queenPST, &kingPST,
}

// pstIndex maps a square to its table slot for the given colour.
func pstIndex(sq board.Square, c board.Colour) int {
	if c == board.White {
		return (7-sq.Rank())*8 + sq.File()
	}
	return sq.Rank()*8 + sq.File()
}

// PieceSquareScore returns material plus piece-square bonuses for the side
// to move.
func PieceSquareScore(b *board.Board) int {
	score := 0
	for _, p := range board.AllPieces {
		pt := p.Type()
		sign := 1
		if p.Colour() == board.Black {
			sign = -1
		}
		for _, sq := range b.Squares(p) {
			score += sign * (pieceValues[pt] + psts[pt][pstIndex(sq, p.Colour())])
		}
	}
	if b.SideToMove() == board.Black {
		return -score
	}
	return score
}

// EvalKind selects a built-in ScoreFunc.
type EvalKind int

const (
	EvalMaterial EvalKind = iota
	EvalPieceSquare
)

// String returns the evaluation name.
func (k EvalKind) String() string {
	switch k {
	case EvalMaterial:
		return "material"
	case EvalPieceSquare:
		return "pst"
	default:
		return fmt.Sprintf("EvalKind(%d)", int(k))
	}
}

// ParseEvalKind parses an evaluation name as printed by EvalKind.String.
func ParseEvalKind(s string) (EvalKind, error) {
	switch s {
	case "material":
		return EvalMaterial, nil
	case "pst":
		return EvalPieceSquare, nil
	}
	return 0, fmt.Errorf("unknown evaluation %q", s)
}

// ScoreFunc returns the evaluation function for k.
func (k EvalKind) ScoreFunc() ScoreFunc {
	if k == EvalPieceSquare {
		return PieceSquareScore
	}
	return MaterialScore
}
