package network

import (
	"github.com/BenLubar/memoize"
	fet "github.com/glycerine/golang-fisher-exact"
	"gopkg.in/guregu/null.v3"
)

// Many pairs have identical 2x2 tables (small phenotypes sharing one SNP), so
// the test is memoized.
var memoizedFisher = memoize.Memoize(fisherTwoSided)

func fisherTwoSided(n11, n12, n21, n22 int) float64 {
	//  twop = the two-sided p-value for the h0: odds-ratio is different from 1
	_, _, _, twop := fet.FisherExactTest(n11, n12, n21, n22)

	return twop
}

// OverlapFisherP is the two-sided Fisher exact p-value for two SNP sets of the
// given sizes sharing `shared` SNPs, out of a universe of `universe` SNPs.
func OverlapFisherP(shared, sizeA, sizeB, universe int) float64 {
	onlyA := sizeA - shared
	onlyB := sizeB - shared
	neither := universe - sizeA - sizeB + shared
	if neither < 0 {
		neither = 0
	}

	return memoizedFisher.(func(int, int, int, int) float64)(shared, onlyA, onlyB, neither)
}

// AnnotateFisher sets FisherP on every edge. The universe is every SNP that
// survived filtering, across all phenotypes.
func AnnotateFisher(edges []Edge, agg *Aggregator) {
	universe := agg.UniverseSize()

	for k, e := range edges {
		setA, _ := agg.SNPSet(e.Source)
		setB, _ := agg.SNPSet(e.Target)
		edges[k].FisherP = null.FloatFrom(OverlapFisherP(e.Weight(), len(setA), len(setB), universe))
	}
}
