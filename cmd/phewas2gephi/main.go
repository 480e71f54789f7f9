// phewas2gephi turns a set of PheWAS result files into Gephi node and edge
// tables. Phenotypes are nodes; two phenotypes share an edge weighted by the
// number of SNPs associated with both.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/phewasnet"
	_ "github.com/carbocation/phewasnet/compileinfoprint"
	"github.com/carbocation/phewasnet/phewas"
)

func main() {
	var opts options
	var inputs phewasnet.FlagSlice
	var maf, caseCount, pValue phewasnet.NullFloatFlag

	flag.Var(&inputs, "input", "Path to a PheWAS result file. May be passed more than once. Local or gs:// paths; gzip/zip/xz/bzip2/zlib are detected automatically.")
	flag.StringVar(&opts.inputs.Dir, "input-dir", "", "Directory (local or gs://bucket/prefix/) whose files are all PheWAS result files.")
	flag.StringVar(&opts.inputs.Glob, "input-glob", "", "Glob pattern, e.g., /data/phewas/*.tsv.gz, matching the PheWAS result files.")
	flag.StringVar(&opts.nodesOut, "nodes-out", "", "Path to write the node table.")
	flag.StringVar(&opts.edgesOut, "edges-out", "", "Path to write the edge table.")
	flag.StringVar(&opts.nodesIn, "nodes-in", "", "Optional. Comma-delimited node map whose first column is the phenotype. If set, the node table is this map plus an associatedSNPs column. Requires --phenotype-name.")
	flag.StringVar(&opts.filteredOut, "filtered-out", "", "Optional. Directory into which a filtered_<name> copy of each input is written, keeping only passing rows.")
	flag.Var(&maf, "maf", "Optional. Keep rows whose minor allele frequency is at least this value.")
	flag.Var(&caseCount, "casecount", "Optional. Keep rows whose case count is at least this value.")
	flag.Var(&pValue, "pvalue", "Optional. Keep rows whose p-value is at most this value.")
	flag.StringVar(&opts.names.Phenotype, "phenotype-name", "", "Optional. Name of the column holding the phenotype. If absent, the file name without its extension is used.")
	flag.StringVar(&opts.names.SNP, "snp-name", "", "Name of the column holding the SNP identifier.")
	flag.StringVar(&opts.names.MAF, "maf-name", "", "Optional. Name of the column holding the minor allele frequency.")
	flag.StringVar(&opts.names.CaseCount, "casecount-name", "", "Optional. Name of the column holding the case count.")
	flag.StringVar(&opts.names.PValue, "pvalue-name", "", "Optional. Name of the column holding the p-value. If found, each node's SNPs are listed from most to least significant.")
	flag.StringVar(&opts.delim, "delim", "", `Field delimiter. \t for tab, \s for space, or 'auto' to detect it for each file.`)
	flag.BoolVar(&opts.indexed, "indexed", false, "Build edges through a SNP->phenotype index instead of comparing every pair of phenotypes. Same output, faster for sparse networks.")
	flag.BoolVar(&opts.fisher, "fisher", false, "Add a FisherP column to the edge table: the two-sided Fisher exact p-value of each overlap.")
	flag.IntVar(&opts.histogramBins, "histogram", 0, "If positive, print a histogram of edge weights with this many bins to stderr.")
	flag.StringVar(&opts.sqlite, "sqlite", "", "Optional. Also write the node and edge tables into this SQLite database.")
	flag.StringVar(&opts.bqProject, "bq-project", "", "Optional. Google Cloud project for a BigQuery export. Requires --bq-dataset.")
	flag.StringVar(&opts.bqDataset, "bq-dataset", "", "Optional. BigQuery dataset into which the phewas_node and phewas_edge tables are loaded.")
	flag.BoolVar(&opts.verbose, "verbose", false, "Log progress for each input file.")
	flag.Parse()

	opts.inputs.Files = inputs
	opts.thresholds = phewas.Thresholds{MAF: maf.Float, CaseCount: caseCount.Float, PValue: pValue.Float}

	if err := opts.validate(); err != nil {
		flag.PrintDefaults()
		log.Fatalln(err)
	}

	var client *storage.Client
	if phewasnet.NeedsStorageClient(append(opts.inputs.Paths(), opts.nodesOut, opts.edgesOut, opts.nodesIn, opts.filteredOut)...) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	if err := run(opts, client, os.Stderr); err != nil {
		log.Fatalln(err)
	}
}
