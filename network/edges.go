package network

import (
	"sort"

	"gopkg.in/guregu/null.v3"
)

// Edge connects two phenotypes that share at least one SNP. Shared is sorted.
type Edge struct {
	Source  string
	Target  string
	Shared  []string
	FisherP null.Float
}

func (e Edge) Weight() int {
	return len(e.Shared)
}

// pairKey is an unordered phenotype pair in canonical (sorted) form.
type pairKey struct {
	lo, hi string
}

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// BuildEdges evaluates every unordered pair of phenotypes and keeps those
// with a nonempty SNP intersection. This is P^2 set intersections for P
// phenotypes, which is what limits how large an input can be processed; see
// BuildEdgesIndexed for the equivalent that only touches co-occurring pairs.
//
// Edges come out in first-encounter order of the source phenotype, then of
// the target.
func BuildEdges(agg *Aggregator) []Edge {
	phenotypes := agg.Phenotypes()
	seen := make(map[pairKey]struct{})
	edges := make([]Edge, 0)

	for _, a := range phenotypes {
		setA, _ := agg.SNPSet(a)

		for _, b := range phenotypes {
			if a == b {
				continue
			}

			key := newPairKey(a, b)
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}

			setB, _ := agg.SNPSet(b)
			if shared := intersect(setA, setB); len(shared) > 0 {
				edges = append(edges, Edge{Source: a, Target: b, Shared: shared})
			}
		}
	}

	return edges
}

func intersect(a, b map[string]struct{}) []string {
	if len(b) < len(a) {
		a, b = b, a
	}

	out := make([]string, 0)
	for snp := range a {
		if _, exists := b[snp]; exists {
			out = append(out, snp)
		}
	}
	sort.Strings(out)

	return out
}

type indexPair struct {
	i, j int
}

// BuildEdgesIndexed produces exactly the same edges as BuildEdges, in the same
// order, by inverting the map to SNP -> phenotypes and only visiting pairs that
// co-occur on some SNP. Very common SNPs still make this quadratic in the
// number of phenotypes that carry them.
func BuildEdgesIndexed(agg *Aggregator) []Edge {
	phenotypes := agg.Phenotypes()

	index := make(map[string][]int)
	for i, p := range phenotypes {
		set, _ := agg.SNPSet(p)
		for snp := range set {
			index[snp] = append(index[snp], i)
		}
	}

	shared := make(map[indexPair][]string)
	for snp, carriers := range index {
		sort.Ints(carriers)
		for x := 0; x < len(carriers); x++ {
			for y := x + 1; y < len(carriers); y++ {
				key := indexPair{i: carriers[x], j: carriers[y]}
				shared[key] = append(shared[key], snp)
			}
		}
	}

	pairs := make([]indexPair, 0, len(shared))
	for k := range shared {
		pairs = append(pairs, k)
	}
	sort.Slice(pairs, func(x, y int) bool {
		if pairs[x].i != pairs[y].i {
			return pairs[x].i < pairs[y].i
		}
		return pairs[x].j < pairs[y].j
	})

	edges := make([]Edge, 0, len(pairs))
	for _, k := range pairs {
		snps := shared[k]
		sort.Strings(snps)
		edges = append(edges, Edge{Source: phenotypes[k.i], Target: phenotypes[k.j], Shared: snps})
	}

	return edges
}
