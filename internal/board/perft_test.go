package board

import "testing"

type perftCase struct {
	depth    int
	expected uint64
	long     bool // skipped with -short
}

func runPerft(t *testing.T, fen string, tests []perftCase) {
	t.Helper()

	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	before := b.FEN()

	for _, tc := range tests {
		if tc.long && testing.Short() {
			continue
		}
		got := Perft(b, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}

	if after := b.FEN(); after != before {
		t.Errorf("board changed by perft: %s, want %s", after, before)
	}
}

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	runPerft(t, StartFEN, []perftCase{
		{1, 20, false},
		{2, 400, false},
		{3, 8902, false},
		{4, 197281, false},
		{5, 4865609, true},
		{6, 119060324, true},
	})
}

// TestPerftKiwipete tests the Kiwipete position with many edge cases.
func TestPerftKiwipete(t *testing.T) {
	runPerft(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", []perftCase{
		{1, 48, false},
		{2, 2039, false},
		{3, 97862, false},
		{4, 4085603, true},
	})
}

// TestPerftPosition3 covers en passant and rook pins along a rank.
func TestPerftPosition3(t *testing.T) {
	runPerft(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", []perftCase{
		{1, 14, false},
		{2, 191, false},
		{3, 2812, false},
		{4, 43238, false},
		{5, 674624, true},
	})
}

// TestPerftPosition4 covers promotions and castling while in check.
func TestPerftPosition4(t *testing.T) {
	runPerft(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []perftCase{
		{1, 6, false},
		{2, 264, false},
		{3, 9467, false},
		{4, 422333, true},
	})
}

func TestPerftPosition5(t *testing.T) {
	runPerft(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []perftCase{
		{1, 44, false},
		{2, 1486, false},
		{3, 62379, false},
		{4, 2103487, true},
	})
}

func TestPerftPosition6(t *testing.T) {
	runPerft(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", []perftCase{
		{1, 46, false},
		{2, 2079, false},
		{3, 89890, false},
		{4, 3894594, true},
	})
}

// TestPerftEnPassantDiscoveredCheck checks that an en-passant capture which
// removes both pawns from the king's rank is rejected.
func TestPerftEnPassantDiscoveredCheck(t *testing.T) {
	runPerft(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", []perftCase{
		{1, 6, false},
		{2, 94, false},
	})

	b, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	for _, m := range b.LegalMoves().Slice() {
		if m.Kind == EnPassant {
			t.Errorf("en passant %s generated although it exposes the king", m)
		}
	}
}

// TestEnPassantCapturesChecker checks that en passant may remove the pawn
// giving check even though the destination is not on the check line.
func TestEnPassantCapturesChecker(t *testing.T) {
	// Black pawn d7-d5 checks the king on e4; exd6 removes it.
	b, err := ParseFEN("4k3/8/8/3pP3/4K3/8/8/8 w - d6 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if !b.InCheck() {
		t.Fatal("expected white to be in check")
	}

	m, err := ParseMove(b, "e5d6")
	if err != nil {
		t.Fatalf("en passant capture of checking pawn not generated: %v", err)
	}
	if m.Kind != EnPassant {
		t.Errorf("kind = %v, want EnPassant", m.Kind)
	}
}

func TestPerftDivide(t *testing.T) {
	b := NewBoard()

	entries := PerftDivide(b, 3)
	if len(entries) != 20 {
		t.Fatalf("divide returned %d root moves, want 20", len(entries))
	}

	var total uint64
	for _, e := range entries {
		total += e.Nodes
		if e.Move.String() == "e2e4" && e.Nodes != 600 {
			t.Errorf("e2e4 subtree = %d, want 600", e.Nodes)
		}
	}
	if total != 8902 {
		t.Errorf("divide total = %d, want 8902", total)
	}
}

func BenchmarkPerftStart4(b *testing.B) {
	pos := NewBoard()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Perft(pos, 4)
	}
}

func BenchmarkGenerateLegalMoves(b *testing.B) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		b.Fatal(err)
	}
	var ml MoveList

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos.GenerateLegalMoves(&ml)
	}
}
