package network

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/montanaflynn/stats"
)

type Summary struct {
	Phenotypes   int
	Edges        int
	Components   int
	MeanWeight   float64
	MedianWeight float64
	MaxWeight    float64
	MeanDegree   float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%d phenotypes, %d edges, %d connected components. Edge weight mean %.3f, median %.1f, max %.0f. Mean degree %.3f.",
		s.Phenotypes, s.Edges, s.Components, s.MeanWeight, s.MedianWeight, s.MaxWeight, s.MeanDegree)
}

// Summarize describes the network. Weight statistics are zero when there are
// no edges.
func Summarize(agg *Aggregator, edges []Edge, components map[string]int) (Summary, error) {
	phenotypes := agg.Phenotypes()

	out := Summary{
		Phenotypes: len(phenotypes),
		Edges:      len(edges),
		Components: ComponentCount(components),
	}

	if len(phenotypes) > 0 {
		degree := make(map[string]int, len(phenotypes))
		for _, e := range edges {
			degree[e.Source]++
			degree[e.Target]++
		}

		degrees := make(stats.Float64Data, 0, len(phenotypes))
		for _, p := range phenotypes {
			degrees = append(degrees, float64(degree[p]))
		}

		var err error
		if out.MeanDegree, err = degrees.Mean(); err != nil {
			return out, err
		}
	}

	if len(edges) == 0 {
		return out, nil
	}

	weights := edgeWeights(edges)

	var err error
	if out.MeanWeight, err = weights.Mean(); err != nil {
		return out, err
	}
	if out.MedianWeight, err = weights.Median(); err != nil {
		return out, err
	}
	if out.MaxWeight, err = weights.Max(); err != nil {
		return out, err
	}

	return out, nil
}

func edgeWeights(edges []Edge) stats.Float64Data {
	weights := make(stats.Float64Data, 0, len(edges))
	for _, e := range edges {
		weights = append(weights, float64(e.Weight()))
	}

	return weights
}

// PrintWeightHistogram draws the distribution of edge weights. Nothing is
// printed when there are no edges.
func PrintWeightHistogram(w io.Writer, edges []Edge, bins int) error {
	if len(edges) == 0 {
		return nil
	}

	hist := histogram.Hist(bins, edgeWeights(edges))

	return histogram.Fprint(w, hist, histogram.Linear(40))
}
