package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Colour, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c Colour, kingSide bool) CastlingRights {
	if c == White {
		if kingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if kingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// castleLoss maps a square to the rights lost when a move starts or ends there.
var castleLoss = func() [256]CastlingRights {
	var t [256]CastlingRights
	t[A1] = WhiteQueenSideCastle
	t[H1] = WhiteKingSideCastle
	t[E1] = WhiteKingSideCastle | WhiteQueenSideCastle
	t[A8] = BlackQueenSideCastle
	t[H8] = BlackKingSideCastle
	t[E8] = BlackKingSideCastle | BlackQueenSideCastle
	return t
}()

// castleRookSquares returns the rook's start and end squares for a castle
// whose king lands on kingTo.
func castleRookSquares(kingTo Square) (from, to Square) {
	if kingTo.File() == 6 {
		return kingTo + 1, kingTo - 1
	}
	return kingTo - 2, kingTo + 1
}

// maxPiecesPerKind bounds a position list: two originals plus eight promotions.
const maxPiecesPerKind = 10

// squareList is an unordered, allocation-free set of squares.
type squareList struct {
	squares [maxPiecesPerKind]Square
	n       int
}

func (l *squareList) add(sq Square) {
	if l.n == maxPiecesPerKind {
		panic(fmt.Sprintf("board: too many pieces of one kind adding %s", sq))
	}
	l.squares[l.n] = sq
	l.n++
}

func (l *squareList) remove(sq Square) {
	for i := 0; i < l.n; i++ {
		if l.squares[i] == sq {
			l.n--
			l.squares[i] = l.squares[l.n]
			return
		}
	}
	panic(fmt.Sprintf("board: position list desync, %s not found", sq))
}

func (l *squareList) replace(from, to Square) {
	for i := 0; i < l.n; i++ {
		if l.squares[i] == from {
			l.squares[i] = to
			return
		}
	}
	panic(fmt.Sprintf("board: position list desync, %s not found", from))
}

func (l *squareList) slice() []Square {
	return l.squares[:l.n]
}

// Board is a mailbox chess position. squares is indexed directly by the
// 8-bit Square; every cell off the 0x88 board holds Border, so offset
// arithmetic never needs a bounds check. Board is mutated only through
// Apply and Undo, which must be called in matching pairs.
type Board struct {
	squares [256]Piece
	lists   [pieceIndexCount]squareList

	sideToMove Colour
	castling   CastlingRights
	enPassant  Square // target square for en passant, NoSquare if none
	kings      [2]Square

	history  []Move
	fullMove int // full move number of the root position
}

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoard creates the starting position.
func NewBoard() *Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// newEmptyBoard returns a board with border sentinels and no pieces.
func newEmptyBoard() *Board {
	b := &Board{
		enPassant: NoSquare,
		kings:     [2]Square{NoSquare, NoSquare},
		fullMove:  1,
		history:   make([]Move, 0, 64),
	}
	for i := range b.squares {
		if Square(i).IsValid() {
			b.squares[i] = Empty
		} else {
			b.squares[i] = Border
		}
	}
	return b
}

// Copy creates a deep copy of the board, history included.
func (b *Board) Copy() *Board {
	nb := *b
	nb.history = append(make([]Move, 0, cap(b.history)), b.history...)
	return &nb
}

// PieceAt returns the piece at the given square: Empty, Border, or a real piece.
func (b *Board) PieceAt(sq Square) Piece {
	return b.squares[sq]
}

// Squares returns the squares occupied by the given piece. The slice aliases
// board state and is only valid until the next Apply or Undo.
func (b *Board) Squares(p Piece) []Square {
	if !p.IsPiece() {
		return nil
	}
	return b.lists[p].slice()
}

// Count returns how many of the given piece are on the board.
func (b *Board) Count(p Piece) int {
	if !p.IsPiece() {
		return 0
	}
	return b.lists[p].n
}

// SideToMove returns the colour to move.
func (b *Board) SideToMove() Colour {
	return b.sideToMove
}

// CastlingRights returns the current castling rights.
func (b *Board) CastlingRights() CastlingRights {
	return b.castling
}

// EnPassant returns the en-passant target square, or NoSquare.
func (b *Board) EnPassant() Square {
	return b.enPassant
}

// KingSquare returns the square of the king of colour c.
func (b *Board) KingSquare(c Colour) Square {
	return b.kings[c]
}

// Ply returns the number of moves applied since the board was created.
func (b *Board) Ply() int {
	return len(b.history)
}

// FullMoveNumber returns the FEN full move counter.
func (b *Board) FullMoveNumber() int {
	plies := len(b.history)
	if b.sideToMove == White && plies%2 == 1 {
		// Black moved last from a root where Black was to move.
		plies++
	}
	return b.fullMove + plies/2
}

// History returns the applied moves, oldest first. The slice aliases board state.
func (b *Board) History() []Move {
	return b.history
}

// LastMove returns the most recently applied move, or NoMove.
func (b *Board) LastMove() Move {
	if len(b.history) == 0 {
		return NoMove
	}
	return b.history[len(b.history)-1]
}

func (b *Board) addPiece(p Piece, sq Square) {
	b.squares[sq] = p
	b.lists[p].add(sq)
	if p.Type() == King {
		b.kings[p.Colour()] = sq
	}
}

func (b *Board) removePiece(sq Square) {
	p := b.squares[sq]
	b.squares[sq] = Empty
	b.lists[p].remove(sq)
}

func (b *Board) movePiece(from, to Square) {
	p := b.squares[from]
	b.squares[from] = Empty
	b.squares[to] = p
	b.lists[p].replace(from, to)
	if p.Type() == King {
		b.kings[p.Colour()] = to
	}
}

// Apply makes a move on the board and pushes it on the history stack.
// The move must come from this board's move generator; applying a move whose
// piece is not on its start square is a programming error and panics.
func (b *Board) Apply(m Move) {
	if b.squares[m.From] != m.Piece || !m.Piece.Is(b.sideToMove) {
		panic(fmt.Sprintf("board: apply %s (%v) does not match position %s", m, m.Kind, b.FEN()))
	}

	switch m.Kind {
	case Normal, PawnDouble:
		if m.Captured != Empty {
			b.removePiece(m.To)
		}
		b.movePiece(m.From, m.To)

	case EnPassant:
		b.removePiece(m.CaptureSquare())
		b.movePiece(m.From, m.To)

	case Promotion:
		if m.Captured != Empty {
			b.removePiece(m.To)
		}
		b.removePiece(m.From)
		b.addPiece(m.Promotion, m.To)

	case Castle:
		rookFrom, rookTo := castleRookSquares(m.To)
		b.movePiece(m.From, m.To)
		b.movePiece(rookFrom, rookTo)
	}

	b.castling &^= castleLoss[m.From] | castleLoss[m.To]

	if m.Kind == PawnDouble {
		b.enPassant = (m.From + m.To) / 2
	} else {
		b.enPassant = NoSquare
	}

	b.sideToMove = b.sideToMove.Other()
	b.history = append(b.history, m)
}

// Undo pops the last applied move and restores the exact prior position.
// Undo on an empty history is a programming error and panics.
func (b *Board) Undo() {
	if len(b.history) == 0 {
		panic("board: undo with empty move history")
	}

	m := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	switch m.Kind {
	case Normal, PawnDouble:
		b.movePiece(m.To, m.From)
		if m.Captured != Empty {
			b.addPiece(m.Captured, m.To)
		}

	case EnPassant:
		b.movePiece(m.To, m.From)
		b.addPiece(m.Captured, m.CaptureSquare())

	case Promotion:
		b.removePiece(m.To)
		b.addPiece(m.Piece, m.From)
		if m.Captured != Empty {
			b.addPiece(m.Captured, m.To)
		}

	case Castle:
		rookFrom, rookTo := castleRookSquares(m.To)
		b.movePiece(rookTo, rookFrom)
		b.movePiece(m.To, m.From)
	}

	b.castling = m.PrevCastling
	b.enPassant = m.PrevEnPassant
	b.sideToMove = b.sideToMove.Other()
}

// IsInsufficientMaterial reports a dead draw by material: no pawns, rooks or
// queens on either side and at most one minor piece each.
func (b *Board) IsInsufficientMaterial() bool {
	for _, c := range [2]Colour{White, Black} {
		if b.Count(NewPiece(Pawn, c)) > 0 || b.Count(NewPiece(Rook, c)) > 0 || b.Count(NewPiece(Queen, c)) > 0 {
			return false
		}
		if b.Count(NewPiece(Knight, c))+b.Count(NewPiece(Bishop, c)) > 1 {
			return false
		}
	}
	return true
}

// Validate checks that the mailbox, position lists and king squares agree.
func (b *Board) Validate() error {
	seen := 0
	for _, p := range AllPieces {
		for _, sq := range b.lists[p].slice() {
			if !sq.IsValid() {
				return fmt.Errorf("%v list holds off-board square %#x", p, uint8(sq))
			}
			if b.squares[sq] != p {
				return fmt.Errorf("%v list holds %s but board has %q", p, sq, b.squares[sq])
			}
			seen++
		}
	}

	occupied := 0
	for i := range b.squares {
		sq := Square(i)
		switch p := b.squares[i]; {
		case !sq.IsValid():
			if p != Border {
				return fmt.Errorf("border cell %#x holds %q", i, p)
			}
		case p == Border:
			return fmt.Errorf("board square %s holds border", sq)
		case p != Empty:
			occupied++
		}
	}
	if occupied != seen {
		return fmt.Errorf("board has %d pieces but lists hold %d", occupied, seen)
	}

	for _, c := range [2]Colour{White, Black} {
		k := NewPiece(King, c)
		if b.lists[k].n != 1 {
			return fmt.Errorf("%s must have exactly one king, has %d", c, b.lists[k].n)
		}
		if b.kings[c] != b.lists[k].squares[0] {
			return fmt.Errorf("%s king square %s does not match board %s", c, b.kings[c], b.lists[k].squares[0])
		}
	}

	return nil
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			p := b.squares[NewSquare(file, rank)]
			if p == Empty {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", b.castling)
	fmt.Fprintf(&sb, "En passant: %s\n", b.enPassant)
	fmt.Fprintf(&sb, "Full move: %d\n", b.FullMoveNumber())
	return sb.String()
}
