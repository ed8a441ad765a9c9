package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It is the standard way to verify move generation.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	var ml MoveList
	b.GenerateLegalMoves(&ml)
	if depth == 1 {
		return uint64(ml.Len())
	}

	var nodes uint64
	for _, m := range ml.Slice() {
		b.Apply(m)
		nodes += Perft(b, depth-1)
		b.Undo()
	}
	return nodes
}

// DivideEntry is the subtree count below one root move.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// PerftDivide runs Perft below each root move in generation order.
func PerftDivide(b *Board, depth int) []DivideEntry {
	if depth <= 0 {
		return nil
	}

	var ml MoveList
	b.GenerateLegalMoves(&ml)

	entries := make([]DivideEntry, 0, ml.Len())
	for _, m := range ml.Slice() {
		b.Apply(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: Perft(b, depth-1)})
		b.Undo()
	}
	return entries
}
