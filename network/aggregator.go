// Package network turns filtered PheWAS associations into a phenotype graph:
// phenotypes are nodes and two phenotypes are connected when they share at
// least one associated SNP.
package network

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/phewasnet/phewas"
	"gopkg.in/guregu/null.v3"
)

var ErrFinalized = errors.New("aggregator has already been finalized")

// Config controls how sources are parsed and filtered.
type Config struct {
	Names      phewas.ColumnNames
	Thresholds phewas.Thresholds

	// Delimiter is used for any Source that does not carry its own.
	Delimiter string

	// RequirePhenotype makes a missing phenotype column fatal. Joining onto a
	// node map needs a phenotype key from the data itself.
	RequirePhenotype bool

	Verbose bool
}

// Source is one delimited input: a header line followed by data lines.
type Source struct {
	Name      string
	Reader    io.Reader
	Delimiter string

	// If set, the header and each line that passes the filters are copied
	// here unchanged.
	Filtered io.Writer
}

// Association is a single qualifying row, kept in input order.
type Association struct {
	SNP    string
	PValue null.Float
	MAF    null.Float
}

// Aggregator owns the phenotype->SNP maps. It is not safe for concurrent use.
type Aggregator struct {
	config Config

	// First-encounter order of phenotype keys
	order  []string
	sets   map[string]map[string]struct{}
	assocs map[string][]Association

	// Set once any qualifying row carries a p-value
	anyPValue bool
	ranked    map[string][]string

	finalized bool
}

func NewAggregator(config Config) *Aggregator {
	return &Aggregator{
		config: config,
		order:  make([]string, 0),
		sets:   make(map[string]map[string]struct{}),
		assocs: make(map[string][]Association),
		ranked: make(map[string][]string),
	}
}

// PhenotypeFromSourceName is the default phenotype key for a file: its base
// name without the extension.
func PhenotypeFromSourceName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Add consumes one source. Schema resolution happens once, against the
// source's own header.
func (a *Aggregator) Add(src Source) error {
	if a.finalized {
		return ErrFinalized
	}

	delim := src.Delimiter
	if delim == "" {
		delim = a.config.Delimiter
	}

	scanner := bufio.NewScanner(src.Reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("%s: %w", src.Name, err)
		}

		// An empty file has no header to resolve
		return &phewas.MissingColumnError{Source: src.Name, Role: phewas.RoleSNP, Name: a.config.Names.SNP}
	}

	headerLine := scanner.Text()
	cols, err := phewas.ResolveColumns(src.Name, phewas.SplitRecord(headerLine, delim), a.config.Names, a.config.RequirePhenotype)
	if err != nil {
		return err
	}
	if a.config.Verbose {
		log.Println("Identified column indices from", src.Name)
	}

	if src.Filtered != nil {
		if _, err := fmt.Fprintln(src.Filtered, headerLine); err != nil {
			return err
		}
	}

	phenotype := PhenotypeFromSourceName(src.Name)
	minFields := cols.MaxIndex() + 1

	for lineNumber := 2; scanner.Scan(); lineNumber++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec := phewas.SplitRecord(line, delim)
		if len(rec) < minFields {
			return &MalformedRecordError{Source: src.Name, Line: lineNumber, Fields: len(rec), Want: minFields}
		}

		if cols.Phenotype.Valid {
			phenotype = rec.Field(cols.Phenotype.Int64)
		}

		ok, err := a.config.Thresholds.Passes(rec, cols)
		if err != nil {
			return &RecordError{Source: src.Name, Line: lineNumber, Err: err}
		}
		if !ok {
			continue
		}

		assoc := Association{SNP: rec.Field(cols.SNP.Int64)}

		if cols.PValue.Valid {
			p, err := phewas.ParseFloat(rec, cols.PValue, phewas.RolePValue)
			if err != nil {
				return &RecordError{Source: src.Name, Line: lineNumber, Err: err}
			}
			assoc.PValue = null.FloatFrom(p)
		}

		// MAF is informational unless it is filtered on, in which case
		// Passes has already rejected unparseable values.
		if cols.MAF.Valid {
			if maf, err := phewas.ParseFloat(rec, cols.MAF, phewas.RoleMAF); err == nil {
				assoc.MAF = null.FloatFrom(maf)
			}
		}

		a.add(phenotype, assoc)

		if src.Filtered != nil {
			if _, err := fmt.Fprintln(src.Filtered, line); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", src.Name, err)
	}

	return nil
}

func (a *Aggregator) add(phenotype string, assoc Association) {
	set, exists := a.sets[phenotype]
	if !exists {
		set = make(map[string]struct{})
		a.sets[phenotype] = set
		a.order = append(a.order, phenotype)
	}
	set[assoc.SNP] = struct{}{}

	a.assocs[phenotype] = append(a.assocs[phenotype], assoc)

	if assoc.PValue.Valid {
		a.anyPValue = true
	}
}

// Finalize sorts each phenotype's SNPs by ascending p-value. Ties keep input
// order. Duplicate SNPs within a phenotype are kept in the ranked list. Calling
// Finalize more than once is a no-op.
//
// Once any row has a p-value, every phenotype gets a ranked list, so the ranked
// and set maps always share their keys. Rows without a p-value (for example
// from a source lacking the column) rank after all rows that have one, in
// input order.
func (a *Aggregator) Finalize() {
	if a.finalized {
		return
	}
	a.finalized = true

	if !a.anyPValue {
		return
	}

	for _, phenotype := range a.order {
		assocs := make([]Association, len(a.assocs[phenotype]))
		copy(assocs, a.assocs[phenotype])

		sort.SliceStable(assocs, func(i, j int) bool {
			pi, pj := assocs[i].PValue, assocs[j].PValue
			if pi.Valid != pj.Valid {
				return pi.Valid
			}
			return pi.Valid && pi.Float64 < pj.Float64
		})

		snps := make([]string, 0, len(assocs))
		for _, v := range assocs {
			snps = append(snps, v.SNP)
		}
		a.ranked[phenotype] = snps
	}
}

// Phenotypes lists every key of the SNP-set map in first-encounter order.
func (a *Aggregator) Phenotypes() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// SNPSet returns the deduplicated SNPs for a phenotype.
func (a *Aggregator) SNPSet(phenotype string) (map[string]struct{}, bool) {
	set, exists := a.sets[phenotype]
	return set, exists
}

// SortedSNPs returns the phenotype's SNP set as a sorted slice.
func (a *Aggregator) SortedSNPs(phenotype string) []string {
	set := a.sets[phenotype]
	out := make([]string, 0, len(set))
	for snp := range set {
		out = append(out, snp)
	}
	sort.Strings(out)

	return out
}

// HasRanked reports whether any p-value ranked lists exist. Only meaningful
// after Finalize.
func (a *Aggregator) HasRanked() bool {
	return len(a.ranked) > 0
}

// RankedPhenotypes lists the keys of the ranked map in first-encounter order.
func (a *Aggregator) RankedPhenotypes() []string {
	out := make([]string, 0, len(a.ranked))
	for _, p := range a.order {
		if _, exists := a.ranked[p]; exists {
			out = append(out, p)
		}
	}
	return out
}

// RankedSNPs returns the p-value ordered SNPs (duplicates included).
func (a *Aggregator) RankedSNPs(phenotype string) ([]string, bool) {
	snps, exists := a.ranked[phenotype]
	return snps, exists
}

// Associations returns every qualifying row for the phenotype in input order.
func (a *Aggregator) Associations(phenotype string) []Association {
	return a.assocs[phenotype]
}

// SNPCollection is the SNP list shown for a node: the ranked list when the
// ranked map is populated, otherwise the sorted set.
func (a *Aggregator) SNPCollection(phenotype string) ([]string, bool) {
	if a.HasRanked() {
		return a.RankedSNPs(phenotype)
	}

	if _, exists := a.sets[phenotype]; !exists {
		return nil, false
	}

	return a.SortedSNPs(phenotype), true
}

// NodePhenotypes are the phenotypes that get a node row: ranked keys when the
// ranked map is populated, otherwise set keys.
func (a *Aggregator) NodePhenotypes() []string {
	if a.HasRanked() {
		return a.RankedPhenotypes()
	}

	return a.Phenotypes()
}

// UniverseSize is the number of distinct SNPs across all phenotypes.
func (a *Aggregator) UniverseSize() int {
	seen := make(map[string]struct{})
	for _, set := range a.sets {
		for snp := range set {
			seen[snp] = struct{}{}
		}
	}

	return len(seen)
}
