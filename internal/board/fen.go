package board

import (
	"strconv"
	"strings"
)

// ParseFEN parses a FEN string and returns a Board. The half-move clock is
// accepted but not tracked. Malformed input returns a *FENError.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fenError("record", fen, "need 4 to 6 fields, got %d", len(parts))
	}

	b := newEmptyBoard()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fenError("side to move", parts[1], "want w or b")
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(b, parts[2]); err != nil {
		return nil, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fenError("en passant", parts[3], "not a square")
		}
		wantRank := 5
		if b.sideToMove == Black {
			wantRank = 2
		}
		if sq.Rank() != wantRank {
			return nil, fenError("en passant", parts[3], "target must be on rank %d", wantRank+1)
		}
		// The pawn that just moved two squares passed over the target.
		them := b.sideToMove.Other()
		push := pawnPushOffset[them]
		if b.squares[sq] != Empty || b.squares[sq.Offset(-push)] != Empty ||
			b.squares[sq.Offset(push)] != NewPiece(Pawn, them) {
			return nil, fenError("en passant", parts[3], "no %s pawn double push through target", them)
		}
		b.enPassant = sq
	}

	// Parse half-move clock (field 4, optional, not enforced)
	if len(parts) > 4 {
		if hmc, err := strconv.Atoi(parts[4]); err != nil || hmc < 0 {
			return nil, fenError("half-move clock", parts[4], "not a non-negative integer")
		}
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return nil, fenError("full-move number", parts[5], "not a positive integer")
		}
		b.fullMove = fmn
	}

	if err := b.Validate(); err != nil {
		return nil, fenError("piece placement", parts[0], "%v", err)
	}

	them := b.sideToMove.Other()
	if b.IsAttacked(b.kings[them], b.sideToMove) {
		return nil, fenError("side to move", parts[1], "%s king is in check with %s to move", them, b.sideToMove)
	}

	return b, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fenError("piece placement", placement, "need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return fenError("piece placement", placement, "too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				// Skip empty squares
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(c)
			if piece == Empty {
				return fenError("piece placement", placement, "invalid piece character %q", c)
			}
			if piece.Type() == Pawn && (rank == 0 || rank == 7) {
				return fenError("piece placement", placement, "pawn on rank %d", rank+1)
			}
			if b.lists[piece].n == maxPiecesPerKind {
				return fenError("piece placement", placement, "too many %v", piece.Type())
			}
			b.addPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fenError("piece placement", placement, "rank %d has %d squares", rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(b *Board, castling string) error {
	if castling == "-" {
		b.castling = NoCastling
		return nil
	}

	for _, c := range castling {
		var right CastlingRights
		switch c {
		case 'K':
			right = WhiteKingSideCastle
		case 'Q':
			right = WhiteQueenSideCastle
		case 'k':
			right = BlackKingSideCastle
		case 'q':
			right = BlackQueenSideCastle
		default:
			return fenError("castling", castling, "invalid character %q", c)
		}
		if b.castling&right != 0 {
			return fenError("castling", castling, "duplicate %q", c)
		}
		b.castling |= right
	}

	return nil
}

// FEN returns the FEN representation of the board. The half-move clock is
// always written as 0.
func (b *Board) FEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := b.squares[NewSquare(file, rank)]
			if piece == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	sb.WriteByte(b.sideToMove.Char())

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(b.castling.String())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())

	// Half-move clock placeholder and full-move number
	sb.WriteString(" 0 ")
	sb.WriteString(strconv.Itoa(b.FullMoveNumber()))

	return sb.String()
}
