package network

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrEmptyNodeMap = errors.New("node map input has no header row")

// WriteFreshNodes emits one row per phenotype with its SNP collection.
func WriteFreshNodes(w io.Writer, agg *Aggregator) (int, error) {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "phenotype\tassociatedSNPs\n"); err != nil {
		return 0, err
	}

	n := 0
	for _, phenotype := range agg.NodePhenotypes() {
		snps, _ := agg.SNPCollection(phenotype)
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", phenotype, FormatList(snps)); err != nil {
			return n, err
		}
		n++
	}

	return n, bw.Flush()
}

// AugmentNodes reads a comma-delimited node map whose first column is the
// phenotype and writes it back tab-delimited with an associatedSNPs column.
// Rows for phenotypes we have no SNPs for are dropped.
func AugmentNodes(w io.Writer, r io.Reader, agg *Aggregator) (kept, dropped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	// Descriptions such as `Type 2 "diabetes" NOS` carry bare quotes
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return 0, 0, ErrEmptyNodeMap
	} else if err != nil {
		return 0, 0, fmt.Errorf("reading node map header: %w", err)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, strings.Join(append(header, "associatedSNPs"), "\t")); err != nil {
		return 0, 0, err
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return kept, dropped, fmt.Errorf("reading node map: %w", err)
		}

		if len(row) == 0 {
			continue
		}

		snps, exists := agg.SNPCollection(row[0])
		if !exists {
			dropped++
			continue
		}

		if _, err := fmt.Fprintln(bw, strings.Join(append(row, FormatList(snps)), "\t")); err != nil {
			return kept, dropped, err
		}
		kept++
	}

	return kept, dropped, bw.Flush()
}

// WriteEdges emits the edge table. With withFisher, a FisherP column is
// appended.
func WriteEdges(w io.Writer, edges []Edge, withFisher bool) error {
	bw := bufio.NewWriter(w)

	header := "Source\tTarget\tWeight\tlistOfSharedSNPs"
	if withFisher {
		header += "\tFisherP"
	}
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}

	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\t%s", e.Source, e.Target, e.Weight(), FormatList(e.Shared)); err != nil {
			return err
		}

		if withFisher {
			p := "NA"
			if e.FisherP.Valid {
				p = formatFloat(e.FisherP.Float64)
			}
			if _, err := fmt.Fprintf(bw, "\t%s", p); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}

	return bw.Flush()
}
