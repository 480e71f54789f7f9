package network

import "github.com/theodesp/unionfind"

// Components labels each phenotype with a connected component ID. IDs start
// at 0 and are assigned in first-encounter order, so isolated phenotypes get
// their own component.
func Components(agg *Aggregator, edges []Edge) map[string]int {
	phenotypes := agg.Phenotypes()

	position := make(map[string]int, len(phenotypes))
	for i, p := range phenotypes {
		position[p] = i
	}

	uf := unionfind.New(len(phenotypes))
	for _, e := range edges {
		uf.Union(position[e.Source], position[e.Target])
	}

	out := make(map[string]int, len(phenotypes))
	labels := make(map[int]int)
	for i, p := range phenotypes {
		root := uf.Root(i)
		label, exists := labels[root]
		if !exists {
			label = len(labels)
			labels[root] = label
		}
		out[p] = label
	}

	return out
}

// ComponentCount is the number of distinct labels.
func ComponentCount(components map[string]int) int {
	seen := make(map[int]struct{})
	for _, v := range components {
		seen[v] = struct{}{}
	}

	return len(seen)
}
