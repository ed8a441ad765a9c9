package board

import (
	"fmt"
	"strings"
)

// SAN converts a legal move of b to Standard Algebraic Notation, including
// the check (+) and checkmate (#) suffixes. The board is left unchanged.
func SAN(b *Board, m Move) string {
	if m.IsNull() {
		return "-"
	}

	var sb strings.Builder

	if m.Kind == Castle {
		if m.To.File() == 6 {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := m.Piece.Type()

		if pt != Pawn {
			sb.WriteByte(pt.Letter())
			sb.WriteString(disambiguation(b, m))
		}

		if m.IsCapture() {
			if pt == Pawn {
				// Pawn captures include the file of origin
				sb.WriteByte('a' + byte(m.From.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(m.To.String())

		if m.Kind == Promotion {
			sb.WriteByte('=')
			sb.WriteByte(m.Promotion.Type().Letter())
		}
	}

	b.Apply(m)
	var ml MoveList
	info := b.GenerateLegalMoves(&ml)
	b.Undo()

	if info.Attackers > 0 {
		if ml.Len() == 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('+')
		}
	}

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same piece kind to the same square.
func disambiguation(b *Board, m Move) string {
	var ml MoveList
	b.GenerateLegalMoves(&ml)

	ambiguous, sameFile, sameRank := false, false, false
	for _, o := range ml.Slice() {
		if o.To != m.To || o.From == m.From || o.Piece != m.Piece {
			continue
		}
		ambiguous = true
		if o.From.File() == m.From.File() {
			sameFile = true
		}
		if o.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + m.From.File()))
	case !sameRank:
		return string(rune('1' + m.From.Rank()))
	default:
		return m.From.String()
	}
}

// ParseSAN resolves a SAN string against the legal moves of b. Check and
// annotation suffixes are ignored. Castling accepts both O-O and 0-0.
func ParseSAN(b *Board, s string) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	var ml MoveList
	b.GenerateLegalMoves(&ml)

	switch s {
	case "O-O", "0-0", "O-O-O", "0-0-0":
		kingSide := len(s) == 3
		for _, m := range ml.Slice() {
			if m.Kind == Castle && (m.To.File() == 6) == kingSide {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("%w: %q", ErrMoveNotFound, orig)
	}

	promo := NoPieceType
	if i := strings.IndexByte(s, '='); i >= 0 {
		if i+1 >= len(s) {
			return NoMove, fmt.Errorf("%w: %q", ErrMoveNotFound, orig)
		}
		promo = pieceTypeFromLetter(s[i+1])
		if promo == NoPieceType || promo == Pawn || promo == King {
			return NoMove, fmt.Errorf("%w: invalid promotion in %q", ErrMoveNotFound, orig)
		}
		s = s[:i]
	}

	capture := strings.IndexByte(s, 'x') >= 0
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		pt = pieceTypeFromLetter(s[0])
		if pt == NoPieceType || pt == Pawn {
			return NoMove, fmt.Errorf("%w: invalid piece in %q", ErrMoveNotFound, orig)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("%w: %q", ErrMoveNotFound, orig)
	}
	to, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrMoveNotFound, err)
	}

	file, rank := -1, -1
	for _, c := range s[:len(s)-2] {
		switch {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		default:
			return NoMove, fmt.Errorf("%w: %q", ErrMoveNotFound, orig)
		}
	}

	found := NoMove
	for _, m := range ml.Slice() {
		if m.To != to || m.Piece.Type() != pt || m.Kind == Castle {
			continue
		}
		if file >= 0 && m.From.File() != file {
			continue
		}
		if rank >= 0 && m.From.Rank() != rank {
			continue
		}
		if capture && !m.IsCapture() {
			continue
		}
		if m.Promotion.Type() != promo {
			continue
		}
		if !found.IsNull() {
			return NoMove, fmt.Errorf("%w: %q is ambiguous", ErrMoveNotFound, orig)
		}
		found = m
	}

	if found.IsNull() {
		return NoMove, fmt.Errorf("%w: %q", ErrMoveNotFound, orig)
	}
	return found, nil
}

func pieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P':
		return Pawn
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	}
	return NoPieceType
}

// MovesToSAN converts a sequence of moves played from b to SAN. The board is
// left unchanged.
func MovesToSAN(b *Board, moves []Move) []string {
	result := make([]string, len(moves))
	for i, m := range moves {
		result[i] = SAN(b, m)
		b.Apply(m)
	}
	for range moves {
		b.Undo()
	}
	return result
}
