package engine

import (
	"testing"
	"time"

	"github.com/DecklynKern/chess/internal/board"
)

func mustParse(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func newTestStrategy(t *testing.T, k StrategyKind) Strategy {
	t.Helper()
	s, err := NewStrategy(k, NewSearcher(MaterialScore, nil, 12))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

var allStrategies = []StrategyKind{StrategyIterativeDeepening, StrategyAlphaBeta, StrategyMinimax}

func TestSearchCapturesHangingQueen(t *testing.T) {
	const fen = "rnb1kbnr/pppppppp/8/8/3Qq3/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1"

	for _, k := range allStrategies {
		t.Run(k.String(), func(t *testing.T) {
			b := mustParse(t, fen)
			res := newTestStrategy(t, k).Search(b, SearchLimits{Depth: 3})
			if !res.Found {
				t.Fatal("no move found")
			}
			if got := res.Move.String(); got != "d4e4" {
				t.Errorf("best move = %s, want d4e4", got)
			}
			if res.Score < QueenValue-PawnValue {
				t.Errorf("score = %d, want at least a queen up", res.Score)
			}
		})
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	const fen = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"

	for _, k := range allStrategies {
		t.Run(k.String(), func(t *testing.T) {
			b := mustParse(t, fen)
			res := newTestStrategy(t, k).Search(b, SearchLimits{Depth: 3})
			if got := res.Move.String(); got != "a1a8" {
				t.Errorf("best move = %s, want a1a8", got)
			}
			if res.Score != MateScore-1 {
				t.Errorf("score = %d, want %d", res.Score, MateScore-1)
			}
		})
	}
}

func TestSearchMateStopsIterating(t *testing.T) {
	b := mustParse(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	res := newTestStrategy(t, StrategyIterativeDeepening).Search(b, SearchLimits{Depth: 6})
	if res.Depth != 2 {
		t.Errorf("search continued past the mate: depth %d, want 2", res.Depth)
	}
}

func TestSearchNoLegalMoves(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		score int
	}{
		{"checkmate", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", -MateScore},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 0},
	}

	for _, tt := range tests {
		for _, k := range allStrategies {
			t.Run(tt.name+"/"+k.String(), func(t *testing.T) {
				b := mustParse(t, tt.fen)
				res := newTestStrategy(t, k).Search(b, SearchLimits{Depth: 3})
				if res.Found {
					t.Errorf("found move %s with no legal moves", res.Move)
				}
				if !res.Move.IsNull() {
					t.Errorf("move = %s, want null", res.Move)
				}
				if res.Score != tt.score {
					t.Errorf("score = %d, want %d", res.Score, tt.score)
				}
			})
		}
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkb1r/pp1p1ppp/4pn2/2pP4/2P5/8/PP2PPPP/RNBQKBNR w KQkq c6 0 4",
	}

	for _, fen := range fens {
		for _, k := range allStrategies {
			b := mustParse(t, fen)
			ply := b.Ply()
			newTestStrategy(t, k).Search(b, SearchLimits{Depth: 2})

			if got := b.FEN(); got != fen {
				t.Errorf("%s: board changed to %q", k, got)
			}
			if b.Ply() != ply {
				t.Errorf("%s: ply %d, want %d", k, b.Ply(), ply)
			}
			if err := b.Validate(); err != nil {
				t.Errorf("%s: %v", k, err)
			}
		}
	}
}

func TestStrategiesAgreeOnScore(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	}

	for _, fen := range fens {
		var scores []int
		for _, k := range allStrategies {
			s, err := NewStrategy(k, NewSearcher(PieceSquareScore, nil, 14))
			if err != nil {
				t.Fatal(err)
			}
			res := s.Search(mustParse(t, fen), SearchLimits{Depth: 3})
			scores = append(scores, res.Score)
		}
		for i := 1; i < len(scores); i++ {
			if scores[i] != scores[0] {
				t.Errorf("%q: %s scored %d, %s scored %d",
					fen, allStrategies[0], scores[0], allStrategies[i], scores[i])
			}
		}
	}
}

func TestAlphaBetaVisitsFewerNodes(t *testing.T) {
	b := mustParse(t, board.StartFEN)

	searcher := NewSearcher(PieceSquareScore, nil, 14)
	mm, _ := NewStrategy(StrategyMinimax, searcher)
	ab, _ := NewStrategy(StrategyAlphaBeta, searcher)

	full := mm.Search(b, SearchLimits{Depth: 3}).Nodes
	pruned := ab.Search(b, SearchLimits{Depth: 3}).Nodes
	if pruned >= full {
		t.Errorf("alpha-beta visited %d nodes, minimax %d", pruned, full)
	}
}

func TestIterateRespectsMoveTime(t *testing.T) {
	b := mustParse(t, board.StartFEN)
	s := NewSearcher(MaterialScore, nil, 12)

	// A budget that expires immediately still completes the first pass.
	res := s.Iterate(b, SearchLimits{MoveTime: time.Nanosecond})
	if !res.Found {
		t.Fatal("no move after the first pass")
	}
	if res.Depth != 1 {
		t.Errorf("depth = %d, want 1", res.Depth)
	}
}

func TestIterateStopped(t *testing.T) {
	b := mustParse(t, board.StartFEN)
	s := NewSearcher(MaterialScore, nil, 12)

	s.OnIteration = func(info SearchInfo) {
		if info.Depth == 2 {
			s.Stop()
		}
	}
	res := s.Iterate(b, SearchLimits{Depth: 6})
	if res.Depth != 2 {
		t.Errorf("depth = %d after Stop, want 2", res.Depth)
	}
	if !s.IsStopped() {
		t.Error("IsStopped = false")
	}

	// The next search starts fresh.
	s.OnIteration = nil
	if res := s.Iterate(b, SearchLimits{Depth: 2}); res.Depth != 2 {
		t.Errorf("depth = %d after restart, want 2", res.Depth)
	}
}

func TestIterateReportsEachPass(t *testing.T) {
	b := mustParse(t, board.StartFEN)
	s := NewSearcher(PieceSquareScore, nil, 12)

	var depths []int
	s.OnIteration = func(info SearchInfo) {
		depths = append(depths, info.Depth)
		if len(info.PV) == 0 || len(info.PV) > info.Depth {
			t.Errorf("depth %d: PV length %d", info.Depth, len(info.PV))
		}
		if info.Nodes == 0 {
			t.Errorf("depth %d: no nodes counted", info.Depth)
		}
	}

	res := s.Iterate(b, SearchLimits{Depth: 3})
	if len(depths) != 3 || depths[0] != 1 || depths[2] != 3 {
		t.Errorf("passes reported: %v", depths)
	}
	if res.Nodes != s.Nodes() {
		t.Errorf("result nodes %d, searcher nodes %d", res.Nodes, s.Nodes())
	}
}

func TestPrincipalVariationIsLegal(t *testing.T) {
	b := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	s := NewSearcher(PieceSquareScore, nil, 14)

	res := s.SearchFixed(b, 3)
	pv := s.principalVariation(b, 3)
	if len(pv) == 0 {
		t.Fatal("empty principal variation")
	}
	if !pv[0].SameAs(res.Move) {
		t.Errorf("PV starts with %s, best move %s", pv[0], res.Move)
	}

	for _, m := range pv {
		if _, err := board.ParseMove(b, m.String()); err != nil {
			t.Fatalf("PV move %s: %v", m, err)
		}
		b.Apply(m)
	}
}

func TestOrderMoves(t *testing.T) {
	b := mustParse(t, "4k3/8/8/3q4/4P3/2N5/8/4K3 w - - 0 1")
	moves := b.LegalMoves()

	pv, err := board.ParseMove(b, "e1f1")
	if err != nil {
		t.Fatal(err)
	}
	scores := make([]int, moves.Len())
	OrderMoves(moves, pv, scores)

	if got := moves.Get(0).String(); got != "e1f1" {
		t.Errorf("first move = %s, want the PV move", got)
	}
	// Pawn takes queen ahead of knight takes queen.
	if got := moves.Get(1).String(); got != "e4d5" {
		t.Errorf("second move = %s, want e4d5", got)
	}
	if got := moves.Get(2).String(); got != "c3d5" {
		t.Errorf("third move = %s, want c3d5", got)
	}
	for i := 3; i < moves.Len(); i++ {
		if moves.Get(i).IsCapture() {
			t.Errorf("capture %s ordered after quiet moves", moves.Get(i))
		}
	}
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[i-1] {
			t.Fatalf("scores not descending at %d: %v", i, scores)
		}
	}
}

func BenchmarkAlphaBetaDepth4(b *testing.B) {
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		b.Fatal(err)
	}
	s := NewSearcher(PieceSquareScore, nil, 16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SearchFixed(pos, 4)
	}
}
