package board

// Perft counts the leaf positions reachable from s in exactly depth
// plies. Depth 1 is answered by the size of the move list; deeper
// levels recurse through MakeMove.
func Perft(s *State, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := s.LegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for i := range moves {
		nodes += Perft(s.MakeMove(moves[i]), depth-1)
	}
	return nodes
}

// PerftDivide returns the perft count under each root move, keyed by
// the move's coordinate form, along with the total. Useful for hunting
// down a generation discrepancy one root move at a time.
func PerftDivide(s *State, depth int) (map[string]int64, int64) {
	counts := make(map[string]int64)
	var total int64
	for _, m := range s.LegalMoves() {
		n := Perft(s.MakeMove(m), depth-1)
		counts[m.String()] = n
		total += n
	}
	return counts, total
}
