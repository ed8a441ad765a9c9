package board

// DefaultZobristSeed seeds the keys returned by DefaultZobrist.
const DefaultZobristSeed uint64 = 0x98F107A2BEEF1234

// Zobrist holds the random words used to hash positions. A Zobrist is
// immutable once built and safe to share between goroutines.
type Zobrist struct {
	pieces      [pieceIndexCount][64]uint64
	blackToMove uint64
	castling    [16]uint64
	enPassant   [8]uint64 // one per file
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// NewZobrist builds a key set from seed. The same seed always yields the
// same keys. A zero seed is replaced by DefaultZobristSeed, since xorshift
// never leaves the zero state.
func NewZobrist(seed uint64) *Zobrist {
	if seed == 0 {
		seed = DefaultZobristSeed
	}
	rng := &prng{state: seed}
	z := &Zobrist{}

	for _, p := range AllPieces {
		for i := range z.pieces[p] {
			z.pieces[p][i] = rng.next()
		}
	}
	z.blackToMove = rng.next()
	for i := range z.castling {
		z.castling[i] = rng.next()
	}
	for i := range z.enPassant {
		z.enPassant[i] = rng.next()
	}

	return z
}

var defaultZobrist = NewZobrist(DefaultZobristSeed)

// DefaultZobrist returns the shared key set built from DefaultZobristSeed.
func DefaultZobrist() *Zobrist {
	return defaultZobrist
}

// Piece returns the key for piece p standing on sq.
func (z *Zobrist) Piece(p Piece, sq Square) uint64 {
	return z.pieces[p&0x0F][sq.Index()]
}

// Hash computes the hash of b from scratch.
func (z *Zobrist) Hash(b *Board) uint64 {
	var h uint64
	for _, p := range AllPieces {
		for _, sq := range b.lists[p].slice() {
			h ^= z.Piece(p, sq)
		}
	}
	if b.sideToMove == Black {
		h ^= z.blackToMove
	}
	h ^= z.castling[b.castling]
	if b.enPassant != NoSquare {
		h ^= z.enPassant[b.enPassant.File()]
	}
	return h
}

// Update returns the hash of the position reached by playing m from a
// position whose hash is hash. It touches only the words the move changes,
// so Update(z.Hash(b), m) equals z.Hash(b) after b.Apply(m).
func (z *Zobrist) Update(hash uint64, m Move) uint64 {
	h := hash ^ z.Piece(m.Piece, m.From)

	if m.Kind == Promotion {
		h ^= z.Piece(m.Promotion, m.To)
	} else {
		h ^= z.Piece(m.Piece, m.To)
	}

	if m.Captured != Empty {
		h ^= z.Piece(m.Captured, m.CaptureSquare())
	}

	if m.Kind == Castle {
		rook := NewPiece(Rook, m.Piece.Colour())
		rookFrom, rookTo := castleRookSquares(m.To)
		h ^= z.Piece(rook, rookFrom) ^ z.Piece(rook, rookTo)
	}

	if m.PrevEnPassant != NoSquare {
		h ^= z.enPassant[m.PrevEnPassant.File()]
	}
	if m.Kind == PawnDouble {
		h ^= z.enPassant[m.From.File()]
	}

	newCastling := m.PrevCastling &^ (castleLoss[m.From] | castleLoss[m.To])
	h ^= z.castling[m.PrevCastling] ^ z.castling[newCastling]

	return h ^ z.blackToMove
}

// Hash returns the position hash under the default key set.
func (b *Board) Hash() uint64 {
	return defaultZobrist.Hash(b)
}
