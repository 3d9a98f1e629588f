package search

import "sort"

// Scored pairs an item with its score.
type Scored[T any] struct {
	Item  T
	Score int
}

// RankByScore orders items by descending score. Ties keep input order and
// items scoring below min are dropped.
func RankByScore[T any](items []T, min int, score func(T) int) []Scored[T] {
	out := make([]Scored[T], 0, len(items))
	for _, it := range items {
		s := score(it)
		if s < min {
			continue
		}
		out = append(out, Scored[T]{Item: it, Score: s})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
