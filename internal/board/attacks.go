package board

// 0x88 step offsets. A single step from a valid square either lands on the
// board or on a Border cell.
var (
	knightOffsets     = [8]int{0x21, 0x1F, 0x12, 0x0E, -0x21, -0x1F, -0x12, -0x0E}
	kingOffsets       = [8]int{0x01, 0x0F, 0x10, 0x11, -0x01, -0x0F, -0x10, -0x11}
	diagonalOffsets   = [4]int{0x0F, 0x11, -0x0F, -0x11}
	orthogonalOffsets = [4]int{0x01, 0x10, -0x01, -0x10}

	// pawnCaptureOffsets[c] are the capture steps of a pawn of colour c.
	pawnCaptureOffsets = [2][2]int{{0x0F, 0x11}, {-0x0F, -0x11}}
	pawnPushOffset     = [2]int{0x10, -0x10}
)

// IsAttacked reports whether any piece of colour by attacks sq.
func (b *Board) IsAttacked(sq Square, by Colour) bool {
	pawn := NewPiece(Pawn, by)
	for _, d := range pawnCaptureOffsets[by] {
		if b.squares[sq.Offset(-d)] == pawn {
			return true
		}
	}

	knight := NewPiece(Knight, by)
	for _, d := range knightOffsets {
		if b.squares[sq.Offset(d)] == knight {
			return true
		}
	}

	king := NewPiece(King, by)
	for _, d := range kingOffsets {
		if b.squares[sq.Offset(d)] == king {
			return true
		}
	}

	for _, d := range diagonalOffsets {
		if p := b.firstOnRay(sq, d); p.Is(by) && p.slidesDiagonally() {
			return true
		}
	}
	for _, d := range orthogonalOffsets {
		if p := b.firstOnRay(sq, d); p.Is(by) && p.slidesOrthogonally() {
			return true
		}
	}

	return false
}

// InCheck returns true if the side to move is in check.
func (b *Board) InCheck() bool {
	return b.IsAttacked(b.kings[b.sideToMove], b.sideToMove.Other())
}

// firstOnRay returns the first non-empty cell walking from sq along d.
func (b *Board) firstOnRay(sq Square, d int) Piece {
	for {
		sq = sq.Offset(d)
		if p := b.squares[sq]; p != Empty {
			return p
		}
	}
}

// attackedBy returns every square attacked by colour by. The square
// transparent is treated as empty so that a king cannot step backwards
// along the ray of a slider checking it.
func (b *Board) attackedBy(by Colour, transparent Square) SquareMask {
	var mask SquareMask

	for _, from := range b.lists[NewPiece(Pawn, by)].slice() {
		for _, d := range pawnCaptureOffsets[by] {
			if to := from.Offset(d); to.IsValid() {
				mask |= to.Mask()
			}
		}
	}

	for _, from := range b.lists[NewPiece(Knight, by)].slice() {
		mask |= b.stepTargets(from, knightOffsets[:])
	}

	mask |= b.stepTargets(b.kings[by], kingOffsets[:])

	for _, from := range b.lists[NewPiece(Bishop, by)].slice() {
		mask |= b.rayTargets(from, diagonalOffsets[:], transparent)
	}
	for _, from := range b.lists[NewPiece(Rook, by)].slice() {
		mask |= b.rayTargets(from, orthogonalOffsets[:], transparent)
	}
	for _, from := range b.lists[NewPiece(Queen, by)].slice() {
		mask |= b.rayTargets(from, diagonalOffsets[:], transparent)
		mask |= b.rayTargets(from, orthogonalOffsets[:], transparent)
	}

	return mask
}

func (b *Board) stepTargets(from Square, offsets []int) SquareMask {
	var mask SquareMask
	for _, d := range offsets {
		if to := from.Offset(d); b.squares[to] != Border {
			mask |= to.Mask()
		}
	}
	return mask
}

func (b *Board) rayTargets(from Square, offsets []int, transparent Square) SquareMask {
	var mask SquareMask
	for _, d := range offsets {
		for to := from.Offset(d); b.squares[to] != Border; to = to.Offset(d) {
			mask |= to.Mask()
			if b.squares[to] != Empty && to != transparent {
				break
			}
		}
	}
	return mask
}
