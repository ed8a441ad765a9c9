package board

// Pin records a piece pinned to its king and the squares it may still move to:
// the ray from the king up to and including the pinning slider.
type Pin struct {
	Square  Square
	Allowed SquareMask
}

// PositionInfo is the check and pin analysis of a position for the side to
// move. It is computed per generation call and never stored.
type PositionInfo struct {
	// Attackers is the number of enemy pieces giving check.
	Attackers int
	// BlockMask holds the squares that resolve a single check: the checker
	// itself and, for sliders, every square between it and the king.
	BlockMask SquareMask
	// Attacked holds every square the opponent attacks, with our king
	// treated as transparent to sliders.
	Attacked SquareMask

	pins  [8]Pin
	nPins int
}

// Pins returns the pinned pieces found by the analysis.
func (pi *PositionInfo) Pins() []Pin {
	return pi.pins[:pi.nPins]
}

// InCheck reports whether the analysed side is in check.
func (pi *PositionInfo) InCheck() bool {
	return pi.Attackers > 0
}

func (pi *PositionInfo) pinAllows(from, to Square) bool {
	for i := 0; i < pi.nPins; i++ {
		if pi.pins[i].Square == from {
			return pi.pins[i].Allowed.Has(to)
		}
	}
	return true
}

// rayOffsets lists the four diagonal steps followed by the four orthogonal ones.
var rayOffsets = [8]int{0x0F, 0x11, -0x0F, -0x11, 0x01, 0x10, -0x01, -0x10}

// Analyse sweeps outward from the side to move's king once, counting
// checkers, building the block mask and recording pins, and collects the
// opponent's attacked squares.
func (b *Board) Analyse() PositionInfo {
	us := b.sideToMove
	them := us.Other()
	king := b.kings[us]

	info := PositionInfo{Attacked: b.attackedBy(them, king)}

	// An enemy pawn checks from the squares our own pawn would capture on.
	pawn := NewPiece(Pawn, them)
	for _, d := range pawnCaptureOffsets[us] {
		if sq := king.Offset(d); b.squares[sq] == pawn {
			info.Attackers++
			info.BlockMask |= sq.Mask()
		}
	}

	knight := NewPiece(Knight, them)
	for _, d := range knightOffsets {
		if sq := king.Offset(d); b.squares[sq] == knight {
			info.Attackers++
			info.BlockMask |= sq.Mask()
		}
	}

	for i, d := range rayOffsets {
		diagonal := i < 4
		var line SquareMask
		pinned := NoSquare

		for sq := king.Offset(d); ; sq = sq.Offset(d) {
			p := b.squares[sq]
			if p == Border {
				break
			}
			line |= sq.Mask()
			if p == Empty {
				continue
			}
			if p.Colour() == us {
				if pinned != NoSquare {
					break // two blockers: no pin on this ray
				}
				pinned = sq
				continue
			}
			if (diagonal && p.slidesDiagonally()) || (!diagonal && p.slidesOrthogonally()) {
				if pinned == NoSquare {
					info.Attackers++
					info.BlockMask |= line
				} else {
					info.pins[info.nPins] = Pin{Square: pinned, Allowed: line}
					info.nPins++
				}
			}
			break
		}
	}

	return info
}

// GenerateLegalMoves fills ml with every legal move and returns the position
// analysis it was filtered with.
func (b *Board) GenerateLegalMoves(ml *MoveList) PositionInfo {
	info := b.Analyse()
	b.generatePseudoLegal(ml, &info)
	b.filterLegal(ml, &info)
	return info
}

// LegalMoves returns a new list of every legal move.
func (b *Board) LegalMoves() *MoveList {
	ml := NewMoveList()
	b.GenerateLegalMoves(ml)
	return ml
}

// PseudoLegalMoves returns moves that obey piece movement rules but may leave
// the king in check. Castling is already restricted to safe paths.
func (b *Board) PseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	info := b.Analyse()
	b.generatePseudoLegal(ml, &info)
	return ml
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (b *Board) HasLegalMoves() bool {
	var ml MoveList
	b.GenerateLegalMoves(&ml)
	return ml.Len() > 0
}

// IsCheckmate returns true if the side to move is checkmated.
func (b *Board) IsCheckmate() bool {
	var ml MoveList
	info := b.GenerateLegalMoves(&ml)
	return ml.Len() == 0 && info.Attackers > 0
}

// IsStalemate returns true if the side to move has no legal move and is not in check.
func (b *Board) IsStalemate() bool {
	var ml MoveList
	info := b.GenerateLegalMoves(&ml)
	return ml.Len() == 0 && info.Attackers == 0
}

// generatePseudoLegal generates all pseudo-legal moves for the side to move.
func (b *Board) generatePseudoLegal(ml *MoveList, info *PositionInfo) {
	ml.Clear()
	us := b.sideToMove

	b.generatePawnMoves(ml, us)

	for _, from := range b.lists[NewPiece(Knight, us)].slice() {
		b.generateSteps(ml, from, knightOffsets[:])
	}
	for _, from := range b.lists[NewPiece(Bishop, us)].slice() {
		b.generateSlides(ml, from, diagonalOffsets[:])
	}
	for _, from := range b.lists[NewPiece(Rook, us)].slice() {
		b.generateSlides(ml, from, orthogonalOffsets[:])
	}
	for _, from := range b.lists[NewPiece(Queen, us)].slice() {
		b.generateSlides(ml, from, diagonalOffsets[:])
		b.generateSlides(ml, from, orthogonalOffsets[:])
	}

	b.generateSteps(ml, b.kings[us], kingOffsets[:])
	b.generateCastling(ml, us, info)
}

func (b *Board) generatePawnMoves(ml *MoveList, us Colour) {
	them := us.Other()
	push := pawnPushOffset[us]
	victim := NewPiece(Pawn, them)

	for _, from := range b.lists[NewPiece(Pawn, us)].slice() {
		to := from.Offset(push)
		if b.squares[to] == Empty {
			b.addPawnMove(ml, from, to, us)

			if from.RelativeRank(us) == 1 {
				if double := to.Offset(push); b.squares[double] == Empty {
					ml.Add(b.newMove(from, double, PawnDouble))
				}
			}
		}

		for _, d := range pawnCaptureOffsets[us] {
			to := from.Offset(d)
			if b.squares[to].Is(them) {
				b.addPawnMove(ml, from, to, us)
			} else if b.enPassant != NoSquare && to == b.enPassant && b.squares[to] == Empty &&
				b.squares[NewSquare(to.File(), from.Rank())] == victim {
				ml.Add(b.newMove(from, to, EnPassant))
			}
		}
	}
}

// addPawnMove adds a pawn push or capture, expanding it into the four
// promotions when it reaches the last rank.
func (b *Board) addPawnMove(ml *MoveList, from, to Square, us Colour) {
	if to.RelativeRank(us) != 7 {
		ml.Add(b.newMove(from, to, Normal))
		return
	}
	for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
		m := b.newMove(from, to, Promotion)
		m.Promotion = NewPiece(pt, us)
		ml.Add(m)
	}
}

func (b *Board) generateSteps(ml *MoveList, from Square, offsets []int) {
	us := b.sideToMove
	for _, d := range offsets {
		to := from.Offset(d)
		if p := b.squares[to]; p == Empty || (p.IsPiece() && p.Colour() != us) {
			ml.Add(b.newMove(from, to, Normal))
		}
	}
}

func (b *Board) generateSlides(ml *MoveList, from Square, offsets []int) {
	them := b.sideToMove.Other()
	for _, d := range offsets {
		for to := from.Offset(d); ; to = to.Offset(d) {
			p := b.squares[to]
			if p == Empty {
				ml.Add(b.newMove(from, to, Normal))
				continue
			}
			if p.Is(them) {
				ml.Add(b.newMove(from, to, Normal))
			}
			break
		}
	}
}

// castlePath describes one castle: the squares that must be empty and the
// squares the king starts on, crosses and lands on.
type castlePath struct {
	kingSide bool
	rook     Square
	kingTo   Square
	empty    []Square
	safe     []Square
}

var castlePaths = [2][2]castlePath{
	White: {
		{kingSide: true, rook: H1, kingTo: G1, empty: []Square{F1, G1}, safe: []Square{E1, F1, G1}},
		{kingSide: false, rook: A1, kingTo: C1, empty: []Square{B1, C1, D1}, safe: []Square{E1, D1, C1}},
	},
	Black: {
		{kingSide: true, rook: H8, kingTo: G8, empty: []Square{F8, G8}, safe: []Square{E8, F8, G8}},
		{kingSide: false, rook: A8, kingTo: C8, empty: []Square{B8, C8, D8}, safe: []Square{E8, D8, C8}},
	},
}

var kingHome = [2]Square{E1, E8}

func (b *Board) generateCastling(ml *MoveList, us Colour, info *PositionInfo) {
	if b.kings[us] != kingHome[us] {
		return
	}

	rook := NewPiece(Rook, us)

castles:
	for _, cp := range castlePaths[us] {
		if !b.castling.CanCastle(us, cp.kingSide) || b.squares[cp.rook] != rook {
			continue
		}
		for _, sq := range cp.empty {
			if b.squares[sq] != Empty {
				continue castles
			}
		}
		for _, sq := range cp.safe {
			if info.Attacked.Has(sq) {
				continue castles
			}
		}
		ml.Add(b.newMove(kingHome[us], cp.kingTo, Castle))
	}
}

// filterLegal removes pseudo-legal moves that leave the king in check, in
// place, according to how many pieces give check.
func (b *Board) filterLegal(ml *MoveList, info *PositionInfo) {
	n := 0
	for i := 0; i < ml.count; i++ {
		m := ml.moves[i]
		if b.isLegal(m, info) {
			ml.moves[n] = m
			n++
		}
	}
	ml.count = n
}

func (b *Board) isLegal(m Move, info *PositionInfo) bool {
	if m.Piece.Type() == King {
		if m.Kind == Castle {
			return info.Attackers == 0
		}
		return !info.Attacked.Has(m.To)
	}

	switch {
	case info.Attackers >= 2:
		return false
	case m.Kind == EnPassant:
		return b.enPassantIsSafe(m)
	case info.Attackers == 1 && !info.BlockMask.Has(m.To):
		return false
	}

	return info.pinAllows(m.From, m.To)
}

// enPassantIsSafe plays an en-passant capture on the mailbox only and checks
// the king. Removing two pawns from one rank can expose the king to a rook
// or queen that no single-piece pin test sees, and the capture may remove a
// checking pawn without landing in the block mask.
func (b *Board) enPassantIsSafe(m Move) bool {
	us := b.sideToMove
	victim := m.CaptureSquare()

	b.squares[m.From] = Empty
	b.squares[victim] = Empty
	b.squares[m.To] = m.Piece

	safe := !b.IsAttacked(b.kings[us], us.Other())

	b.squares[m.To] = Empty
	b.squares[victim] = m.Captured
	b.squares[m.From] = m.Piece

	return safe
}
