// Package board implements a mailbox chess board with fully legal move
// generation and Zobrist position hashing.
package board

import "fmt"

// Square is a 0x88 index: the high nibble is the rank and the low nibble the
// file, so A1=0x00, H1=0x07, A8=0x70, H8=0x77. A square is on the board iff
// sq&0x88 == 0. Stepping off the board from a valid square by any king,
// knight or ray offset always produces an invalid index, even after the
// uint8 wraps.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = 0x00 + iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A2 Square = 0x10 + iota
	B2
	C2
	D2
	E2
	F2
	G2
	H2
)

const (
	A3 Square = 0x20 + iota
	B3
	C3
	D3
	E3
	F3
	G3
	H3
)

const (
	A4 Square = 0x30 + iota
	B4
	C4
	D4
	E4
	F4
	G4
	H4
)

const (
	A5 Square = 0x40 + iota
	B5
	C5
	D5
	E5
	F5
	G5
	H5
)

const (
	A6 Square = 0x50 + iota
	B6
	C6
	D6
	E6
	F6
	G6
	H6
)

const (
	A7 Square = 0x60 + iota
	B7
	C7
	D7
	E7
	F7
	G7
	H7
)

const (
	A8 Square = 0x70 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NoSquare marks an absent square (no en-passant target, null move).
const NoSquare Square = 0xFF

// offMask is the 0x88 validity mask.
const offMask = 0x88

// ValidSquares lists the 64 board squares from A1 to H8.
var ValidSquares = func() [64]Square {
	var squares [64]Square
	for i := range squares {
		squares[i] = NewSquare(i&7, i>>3)
	}
	return squares
}()

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank<<4 | file)
}

// IsValid reports whether the square lies on the 8x8 board.
func (sq Square) IsValid() bool {
	return sq&offMask == 0
}

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 4
}

// Index returns the square folded into 0..63 (A1=0, H8=63).
func (sq Square) Index() int {
	return (int(sq) + int(sq)&7) >> 1
}

// Mask returns the single-bit SquareMask for the square.
func (sq Square) Mask() SquareMask {
	return 1 << uint(sq.Index())
}

// Offset returns the square reached by stepping d from sq. The result may be
// off the board; callers check it via the Border sentinel or IsValid.
func (sq Square) Offset(d int) Square {
	return Square(int(sq) + d)
}

// RelativeRank returns the rank from a given colour's perspective.
func (sq Square) RelativeRank(c Colour) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// Mirror flips the square vertically.
func (sq Square) Mirror() Square {
	return sq ^ 0x70
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return NewSquare(file, rank), nil
}

// SquareMask is a set of board squares, one bit per Square.Index.
type SquareMask uint64

// Has reports whether sq is in the set.
func (m SquareMask) Has(sq Square) bool {
	return m&sq.Mask() != 0
}
