package board

import (
	"fmt"
	"strings"
)

// MoveKind tags the special handling a move needs on apply and undo.
type MoveKind uint8

const (
	Normal MoveKind = iota
	PawnDouble
	EnPassant
	Promotion
	Castle
)

// String returns the move kind name.
func (k MoveKind) String() string {
	switch k {
	case Normal:
		return "Normal"
	case PawnDouble:
		return "PawnDouble"
	case EnPassant:
		return "EnPassant"
	case Promotion:
		return "Promotion"
	case Castle:
		return "Castle"
	default:
		return fmt.Sprintf("MoveKind(%d)", uint8(k))
	}
}

// Move is a self-contained snapshot of a move: everything needed to apply it
// and to reverse it exactly. PrevCastling and PrevEnPassant record the board
// state before the move, since castling loss cannot be recomputed on undo.
type Move struct {
	From      Square
	To        Square
	Piece     Piece // moved piece
	Captured  Piece // Empty if none; the victim pawn for en passant
	Kind      MoveKind
	Promotion Piece // promoted-to piece when Kind == Promotion, else Empty

	PrevCastling  CastlingRights
	PrevEnPassant Square
}

// NoMove is the null move.
var NoMove = Move{From: NoSquare, To: NoSquare, PrevEnPassant: NoSquare}

// newMove builds a move snapshot from the current board state.
func (b *Board) newMove(from, to Square, kind MoveKind) Move {
	m := Move{
		From:          from,
		To:            to,
		Piece:         b.squares[from],
		Captured:      b.squares[to],
		Kind:          kind,
		PrevCastling:  b.castling,
		PrevEnPassant: b.enPassant,
	}
	if kind == EnPassant {
		m.Captured = NewPiece(Pawn, b.sideToMove.Other())
	}
	return m
}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool {
	return m.Piece == Empty
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured != Empty
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Kind == Promotion
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Kind == Castle
}

// CaptureSquare returns the square of the captured piece. It differs from To
// only for en passant.
func (m Move) CaptureSquare() Square {
	if m.Kind == EnPassant {
		return NewSquare(m.To.File(), m.From.Rank())
	}
	return m.To
}

// SameAs reports whether two moves have the same identity: start, end and
// promotion piece.
func (m Move) SameAs(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// String returns the long algebraic form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}

	s := m.From.String() + m.To.String()

	if m.Kind == Promotion {
		s += strings.ToLower(string(m.Promotion.Type().Letter()))
	}

	return s
}

// ParseMove resolves a long algebraic move against the legal moves of the
// position. Text that matches no legal move returns ErrMoveNotFound.
func ParseMove(b *Board, s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrMoveNotFound, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrMoveNotFound, err)
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrMoveNotFound, err)
	}

	promo := Empty
	if len(s) == 5 {
		var pt PieceType
		switch s[4] {
		case 'n':
			pt = Knight
		case 'b':
			pt = Bishop
		case 'r':
			pt = Rook
		case 'q':
			pt = Queen
		default:
			return NoMove, fmt.Errorf("%w: invalid promotion piece %q", ErrMoveNotFound, s[4])
		}
		promo = NewPiece(pt, b.sideToMove)
	}

	want := Move{From: from, To: to, Promotion: promo}
	moves := b.LegalMoves()
	for _, m := range moves.Slice() {
		if m.SameAs(want) {
			return m, nil
		}
	}

	return NoMove, fmt.Errorf("%w: %s", ErrMoveNotFound, s)
}

// maxMoves bounds the number of legal moves in any chess position.
const maxMoves = 256

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [maxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list holds a move with the same identity.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].SameAs(m) {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
