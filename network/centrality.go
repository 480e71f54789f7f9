package network

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
)

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-8
)

// PageRank scores every phenotype. Each undirected edge is entered in both
// directions; isolated phenotypes still receive the teleport share.
func PageRank(agg *Aggregator, edges []Edge) map[string]float64 {
	phenotypes := agg.Phenotypes()
	out := make(map[string]float64, len(phenotypes))
	if len(phenotypes) == 0 {
		return out
	}

	id := make(map[string]int64, len(phenotypes))
	g := simple.NewDirectedGraph()
	for i, p := range phenotypes {
		id[p] = int64(i)
		g.AddNode(simple.Node(i))
	}

	for _, e := range edges {
		s, t := simple.Node(id[e.Source]), simple.Node(id[e.Target])
		g.SetEdge(simple.Edge{F: s, T: t})
		g.SetEdge(simple.Edge{F: t, T: s})
	}

	scores := network.PageRank(g, pageRankDamping, pageRankTolerance)
	for p, i := range id {
		out[p] = scores[i]
	}

	return out
}

// TopRanked returns up to n phenotypes by descending score, ties broken by
// name.
func TopRanked(scores map[string]float64, n int) []string {
	out := make([]string, 0, len(scores))
	for p := range scores {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if scores[out[i]] != scores[out[j]] {
			return scores[out[i]] > scores[out[j]]
		}
		return out[i] < out[j]
	})

	if n < len(out) {
		out = out[:n]
	}

	return out
}
