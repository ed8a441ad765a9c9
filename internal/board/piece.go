package board

// Colour represents the colour of a piece or player.
type Colour uint8

const (
	White Colour = iota
	Black
)

// Other returns the opposite colour.
func (c Colour) Other() Colour {
	return c ^ 1
}

// String returns the colour name.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Char returns the FEN side-to-move character.
func (c Colour) Char() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// PieceType represents the kind of a chess piece, independent of colour.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Letter returns the upper-case algebraic letter for the piece type.
func (pt PieceType) Letter() byte {
	return " PNBRQK "[pt&7]
}

// PieceValue returns the material value of a piece type in centipawns.
var PieceValue = [8]int{0, 100, 320, 330, 500, 900, 20000, 0}

// Piece packs a PieceType and Colour into a single byte.
// Bits 0-2 hold the type, bit 3 is set for Black.
// Empty marks a vacant square and Border an off-board one.
type Piece uint8

const (
	colourShift = 3

	Empty       Piece = 0
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = Piece(Pawn) | 1<<colourShift
	BlackKnight Piece = Piece(Knight) | 1<<colourShift
	BlackBishop Piece = Piece(Bishop) | 1<<colourShift
	BlackRook   Piece = Piece(Rook) | 1<<colourShift
	BlackQueen  Piece = Piece(Queen) | 1<<colourShift
	BlackKing   Piece = Piece(King) | 1<<colourShift
	Border      Piece = 0xFF

	// pieceIndexCount bounds arrays indexed by a real Piece.
	pieceIndexCount = 16
)

// AllPieces lists the twelve real pieces, White first.
var AllPieces = [12]Piece{
	WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
	BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
}

// NewPiece creates a Piece from a PieceType and Colour.
func NewPiece(pt PieceType, c Colour) Piece {
	if pt == NoPieceType || pt > King {
		return Empty
	}
	return Piece(pt) | Piece(c)<<colourShift
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if !p.IsPiece() {
		return NoPieceType
	}
	return PieceType(p & 7)
}

// Colour returns the Colour of the piece. Only meaningful when IsPiece is true.
func (p Piece) Colour() Colour {
	return Colour(p>>colourShift) & 1
}

// IsPiece reports whether p is one of the twelve real pieces.
func (p Piece) IsPiece() bool {
	return p != Empty && p != Border
}

// Is reports whether p is a real piece of colour c.
func (p Piece) Is(c Colour) bool {
	return p.IsPiece() && p.Colour() == c
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	switch {
	case p == Empty:
		return " "
	case p == Border:
		return "#"
	}
	return string(p.Char())
}

// Char returns the FEN byte for a real piece.
func (p Piece) Char() byte {
	c := p.Type().Letter()
	if p.Colour() == Black {
		c += 'a' - 'A'
	}
	return c
}

// PieceFromChar converts a FEN character to a Piece, or Empty if unknown.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return Empty
	}
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}

// slidesDiagonally reports whether p attacks along diagonals.
func (p Piece) slidesDiagonally() bool {
	t := p.Type()
	return t == Bishop || t == Queen
}

// slidesOrthogonally reports whether p attacks along ranks and files.
func (p Piece) slidesOrthogonally() bool {
	t := p.Type()
	return t == Rook || t == Queen
}
