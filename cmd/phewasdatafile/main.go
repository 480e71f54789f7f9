// phewasdatafile writes, for each phenotype, every association that survives
// the filters along with its p-value and minor allele frequency. It reads the
// same inputs as phewas2gephi.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/phewasnet"
	_ "github.com/carbocation/phewasnet/compileinfoprint"
	"github.com/carbocation/phewasnet/network"
	"github.com/carbocation/phewasnet/phewas"
)

func main() {
	var inputs phewasnet.FlagSlice
	var sel phewasnet.InputSelection
	var output, delim string
	var names phewas.ColumnNames
	var maf, caseCount, pValue phewasnet.NullFloatFlag

	flag.Var(&inputs, "input", "Path to a PheWAS result file. May be passed more than once.")
	flag.StringVar(&sel.Dir, "input-dir", "", "Directory (local or gs://) whose files are all PheWAS result files.")
	flag.StringVar(&sel.Glob, "input-glob", "", "Glob pattern matching the PheWAS result files.")
	flag.StringVar(&output, "output", "", "Path to write the tab-delimited association data file.")
	flag.StringVar(&names.Phenotype, "phenotype-name", "", "Optional. Name of the column holding the phenotype.")
	flag.StringVar(&names.SNP, "snp-name", "", "Name of the column holding the SNP identifier.")
	flag.StringVar(&names.MAF, "maf-name", "", "Optional. Name of the column holding the minor allele frequency.")
	flag.StringVar(&names.CaseCount, "casecount-name", "", "Optional. Name of the column holding the case count.")
	flag.StringVar(&names.PValue, "pvalue-name", "", "Optional. Name of the column holding the p-value.")
	flag.StringVar(&delim, "delim", "", `Field delimiter. \t for tab, \s for space, or 'auto'.`)
	flag.Var(&maf, "maf", "Optional. Minimum minor allele frequency.")
	flag.Var(&caseCount, "casecount", "Optional. Minimum case count.")
	flag.Var(&pValue, "pvalue", "Optional. Maximum p-value.")
	flag.Parse()

	sel.Files = inputs

	if output == "" {
		flag.PrintDefaults()
		log.Fatalln(errors.New("--output is required"))
	}

	var err error
	if delim, err = phewasnet.ParseDelimiter(delim); err != nil {
		flag.PrintDefaults()
		log.Fatalln(err)
	}

	if err := names.Validate(false); err != nil {
		flag.PrintDefaults()
		log.Fatalln(err)
	}

	var client *storage.Client
	if phewasnet.NeedsStorageClient(append(sel.Paths(), output)...) {
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	thresholds := phewas.Thresholds{MAF: maf.Float, CaseCount: caseCount.Float, PValue: pValue.Float}
	if err := run(sel, output, names, thresholds, delim, client); err != nil {
		log.Fatalln(err)
	}
}

func run(sel phewasnet.InputSelection, output string, names phewas.ColumnNames, thresholds phewas.Thresholds, delim string, client *storage.Client) error {
	paths, err := phewasnet.ListInputs(sel, client)
	if err != nil {
		return err
	}

	agg := network.NewAggregator(network.Config{
		Names:      names,
		Thresholds: thresholds,
		Delimiter:  delim,
	})

	if _, err := phewasnet.AggregateFiles(agg, paths, delim, client, false); err != nil {
		return err
	}
	agg.Finalize()

	if err := phewasnet.WriteOutput(output, client, func(w io.Writer) error {
		return network.WriteDataFile(w, agg)
	}); err != nil {
		return err
	}

	log.Printf("Wrote associations for %d phenotypes from %d files to %s\n", len(agg.Phenotypes()), len(paths), output)

	return nil
}
