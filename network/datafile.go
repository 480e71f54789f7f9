package network

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

type dataFileRow struct {
	Phenotype      string `csv:"Phenotype"`
	AssociatedSNPs string `csv:"AssociatedSNPs"`
}

// WriteDataFile writes every phenotype's qualifying associations, in input
// order, as [['rs1', p, maf], ...]. P-value and MAF only appear when their
// columns were found.
func WriteDataFile(w io.Writer, agg *Aggregator) error {
	rows := make([]*dataFileRow, 0, len(agg.order))
	for _, phenotype := range agg.Phenotypes() {
		assocs := agg.Associations(phenotype)

		parts := make([]string, 0, len(assocs))
		for _, a := range assocs {
			parts = append(parts, formatAssociation(a))
		}

		rows = append(rows, &dataFileRow{
			Phenotype:      phenotype,
			AssociatedSNPs: "[" + strings.Join(parts, ", ") + "]",
		})
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	return gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(cw))
}
