// Package export republishes the node and edge tables into SQLite or
// BigQuery, for people who would rather query the network than load it into
// Gephi.
package export

import (
	"github.com/carbocation/phewasnet/network"
	"gopkg.in/guregu/null.v3"
)

type NodeRecord struct {
	Phenotype string  `db:"phenotype" json:"phenotype"`
	SNPs      string  `db:"snps" json:"snps"`
	NSNPs     int     `db:"n_snps" json:"n_snps"`
	Component int     `db:"component" json:"component"`
	PageRank  float64 `db:"pagerank" json:"pagerank"`
}

type EdgeRecord struct {
	Source     string     `db:"source" json:"source"`
	Target     string     `db:"target" json:"target"`
	Weight     int        `db:"weight" json:"weight"`
	SharedSNPs string     `db:"shared_snps" json:"shared_snps"`
	FisherP    null.Float `db:"fisher_p" json:"fisher_p"`
}

// NodeRecords builds one record per node phenotype, in the same order and with
// the same SNP rendering as the node table. NSNPs counts distinct SNPs.
func NodeRecords(agg *network.Aggregator, components map[string]int, pageRank map[string]float64) []NodeRecord {
	phenotypes := agg.NodePhenotypes()

	out := make([]NodeRecord, 0, len(phenotypes))
	for _, p := range phenotypes {
		snps, _ := agg.SNPCollection(p)
		set, _ := agg.SNPSet(p)
		out = append(out, NodeRecord{
			Phenotype: p,
			SNPs:      network.FormatList(snps),
			NSNPs:     len(set),
			Component: components[p],
			PageRank:  pageRank[p],
		})
	}

	return out
}

func EdgeRecords(edges []network.Edge) []EdgeRecord {
	out := make([]EdgeRecord, 0, len(edges))
	for _, e := range edges {
		out = append(out, EdgeRecord{
			Source:     e.Source,
			Target:     e.Target,
			Weight:     e.Weight(),
			SharedSNPs: network.FormatList(e.Shared),
			FisherP:    e.FisherP,
		})
	}

	return out
}
