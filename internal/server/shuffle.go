package server

// shuffleLineups orders the catalog for display with a pseudo-random but
// stable permutation: the LCG is seeded by the item count, so the order only
// changes when the dataset does. The recurrence must stay exactly as written
// to keep the ordering identical across ports of the site.
func shuffleLineups(lineups []Lineup) []Lineup {
	out := make([]Lineup, len(lineups))
	copy(out, lineups)
	seed := int64(len(out))
	for i := len(out) - 1; i > 0; i-- {
		seed = (seed*1103515245 + 12345) % (1 << 31)
		j := int(seed % int64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
