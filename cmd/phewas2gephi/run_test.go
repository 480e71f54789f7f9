package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/phewasnet"
	"github.com/carbocation/phewasnet/phewas"
	"gopkg.in/guregu/null.v3"
)

func writeInputs(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"A.tsv": "SNP\tP\tMAF\nrs1\t1e-9\t0.2\nrs2\t1e-10\t0.3\nrs3\t0.5\t0.1\n",
		"B.tsv": "SNP\tP\tMAF\nrs2\t0.01\t0.3\nrs4\t1e-9\t0.001\n",
		"C.tsv": "SNP\tP\tMAF\nrs1\t1e-12\t0.2\nrs2\t1e-11\t0.3\n",
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestRun(t *testing.T) {
	in := writeInputs(t)
	out := t.TempDir()

	o := options{
		inputs:      phewasnet.InputSelection{Dir: in},
		nodesOut:    filepath.Join(out, "nodes.tsv"),
		edgesOut:    filepath.Join(out, "edges.tsv"),
		filteredOut: out,
		names:       phewas.ColumnNames{SNP: "SNP", PValue: "P", MAF: "MAF"},
		thresholds:  phewas.Thresholds{MAF: null.FloatFrom(0.01), PValue: null.FloatFrom(1e-5)},
		delim:       `\t`,
		sqlite:      filepath.Join(out, "network.sqlite"),
	}
	if err := o.validate(); err != nil {
		t.Fatal(err)
	}

	if err := run(o, nil, io.Discard); err != nil {
		t.Fatal(err)
	}

	expectedNodes := "phenotype\tassociatedSNPs\n" +
		"A\t['rs2', 'rs1']\n" +
		"C\t['rs1', 'rs2']\n"
	if got := readFile(t, o.nodesOut); got != expectedNodes {
		t.Errorf("Expected nodes\n%s\ngot\n%s", expectedNodes, got)
	}

	expectedEdges := "Source\tTarget\tWeight\tlistOfSharedSNPs\n" +
		"A\tC\t2\t['rs1', 'rs2']\n"
	if got := readFile(t, o.edgesOut); got != expectedEdges {
		t.Errorf("Expected edges\n%s\ngot\n%s", expectedEdges, got)
	}

	// B's rows all fail a filter, so only its header is copied
	if got := readFile(t, filepath.Join(out, "filtered_B.tsv")); got != "SNP\tP\tMAF\n" {
		t.Errorf("Unexpected filtered copy %q", got)
	}

	if _, err := os.Stat(o.sqlite); err != nil {
		t.Errorf("Expected a SQLite database: %v", err)
	}

	// Rerunning replaces rather than appends
	if err := run(o, nil, io.Discard); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, o.edgesOut); got != expectedEdges {
		t.Errorf("Expected the rerun to produce identical edges, got\n%s", got)
	}
}

func TestRunAugmentNodes(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	data := "pheno\tsnp\np1\trs1\np1\trs2\np2\trs2\n"
	if err := os.WriteFile(filepath.Join(in, "all.tsv"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	nodesIn := filepath.Join(in, "nodes.csv")
	if err := os.WriteFile(nodesIn, []byte("id,label\np1,Phenotype 1\np3,Phenotype 3\np2,Phenotype 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	o := options{
		inputs:   phewasnet.InputSelection{Files: []string{filepath.Join(in, "all.tsv")}},
		nodesOut: filepath.Join(out, "nodes.tsv"),
		edgesOut: filepath.Join(out, "edges.tsv"),
		nodesIn:  nodesIn,
		names:    phewas.ColumnNames{Phenotype: "pheno", SNP: "snp"},
		delim:    `\t`,
		fisher:   true,
	}
	if err := o.validate(); err != nil {
		t.Fatal(err)
	}
	if err := run(o, nil, io.Discard); err != nil {
		t.Fatal(err)
	}

	expectedNodes := "id\tlabel\tassociatedSNPs\n" +
		"p1\tPhenotype 1\t['rs1', 'rs2']\n" +
		"p2\tPhenotype 2\t['rs2']\n"
	if got := readFile(t, o.nodesOut); got != expectedNodes {
		t.Errorf("Expected nodes\n%s\ngot\n%s", expectedNodes, got)
	}

	if got := readFile(t, o.edgesOut); !strings.HasPrefix(got, "Source\tTarget\tWeight\tlistOfSharedSNPs\tFisherP\np1\tp2\t1\t['rs2']\t") {
		t.Errorf("Unexpected edges %q", got)
	}
}

func TestValidate(t *testing.T) {
	base := options{nodesOut: "n", edgesOut: "e", names: phewas.ColumnNames{SNP: "snp"}, delim: `\s`}

	o := base
	if err := o.validate(); err != nil || o.delim != " " {
		t.Errorf("Expected a space delimiter and no error, got %q, %v", o.delim, err)
	}

	o = base
	o.delim = ""
	if err := o.validate(); !errors.Is(err, phewasnet.ErrNoDelimiter) {
		t.Errorf("Expected ErrNoDelimiter, got %v", err)
	}

	o = base
	o.nodesIn = "nodes.csv"
	if err := o.validate(); !errors.Is(err, phewas.ErrMissingPhenotypeColumn) {
		t.Errorf("Expected a missing phenotype column error, got %v", err)
	}

	o = base
	o.names.SNP = ""
	if err := o.validate(); !errors.Is(err, phewas.ErrMissingSNPColumn) {
		t.Errorf("Expected a missing SNP column error, got %v", err)
	}

	o = base
	o.bqProject = "proj"
	if err := o.validate(); err == nil {
		t.Error("Expected an error when only --bq-project is set")
	}
}

func TestRunNoInputs(t *testing.T) {
	out := t.TempDir()
	o := options{
		inputs:   phewasnet.InputSelection{Glob: filepath.Join(t.TempDir(), "*.tsv")},
		nodesOut: filepath.Join(out, "nodes.tsv"),
		edgesOut: filepath.Join(out, "edges.tsv"),
		names:    phewas.ColumnNames{SNP: "snp"},
		delim:    "\t",
	}

	if err := run(o, nil, io.Discard); !errors.Is(err, phewasnet.ErrNoInputFiles) {
		t.Errorf("Expected ErrNoInputFiles, got %v", err)
	}

	// Configuration errors leave no output behind
	if _, err := os.Stat(o.nodesOut); !os.IsNotExist(err) {
		t.Errorf("Expected no node table, got %v", err)
	}
}
