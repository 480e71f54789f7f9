package export

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/carbocation/phewasnet/network"
	"github.com/carbocation/phewasnet/phewas"
	"github.com/jmoiron/sqlx"
)

func testNetwork(t *testing.T) ([]NodeRecord, []EdgeRecord) {
	agg := network.NewAggregator(network.Config{
		Names:     phewas.ColumnNames{Phenotype: "pheno", SNP: "snp", PValue: "p"},
		Delimiter: " ",
	})
	err := agg.Add(network.Source{Name: "f", Reader: strings.NewReader("pheno snp p\nA rs1 0.1\nA rs2 0.01\nB rs2 0.5\nC rs9 0.2\n")})
	if err != nil {
		t.Fatal(err)
	}
	agg.Finalize()

	edges := network.BuildEdges(agg)
	network.AnnotateFisher(edges, agg)

	return NodeRecords(agg, network.Components(agg, edges), map[string]float64{"A": 0.4, "B": 0.4, "C": 0.2}), EdgeRecords(edges)
}

func TestRecords(t *testing.T) {
	nodes, edges := testNetwork(t)

	expectedNodes := []NodeRecord{
		{Phenotype: "A", SNPs: "['rs2', 'rs1']", NSNPs: 2, Component: 0, PageRank: 0.4},
		{Phenotype: "B", SNPs: "['rs2']", NSNPs: 1, Component: 0, PageRank: 0.4},
		{Phenotype: "C", SNPs: "['rs9']", NSNPs: 1, Component: 1, PageRank: 0.2},
	}
	if !reflect.DeepEqual(nodes, expectedNodes) {
		t.Errorf("Expected %+v, got %+v", expectedNodes, nodes)
	}

	if len(edges) != 1 || edges[0].Source != "A" || edges[0].Target != "B" || edges[0].Weight != 1 || !edges[0].FisherP.Valid {
		t.Errorf("Unexpected edges %+v", edges)
	}
}

func TestWriteSQLite(t *testing.T) {
	nodes, edges := testNetwork(t)
	path := filepath.Join(t.TempDir(), "network.sqlite")

	// Writing twice must not duplicate rows
	for i := 0; i < 2; i++ {
		if err := WriteSQLite(path, nodes, edges); err != nil {
			t.Fatal(err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var gotNodes []NodeRecord
	if err := db.Select(&gotNodes, "SELECT phenotype, snps, n_snps, component, pagerank FROM node ORDER BY phenotype"); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gotNodes, nodes) {
		t.Errorf("Expected %+v, got %+v", nodes, gotNodes)
	}

	var gotEdges []EdgeRecord
	if err := db.Select(&gotEdges, "SELECT source, target, weight, shared_snps, fisher_p FROM edge"); err != nil {
		t.Fatal(err)
	}
	if len(gotEdges) != 1 || gotEdges[0].SharedSNPs != "['rs2']" || !gotEdges[0].FisherP.Valid {
		t.Errorf("Unexpected edges %+v", gotEdges)
	}
}

func TestNewlineDelimitedJSON(t *testing.T) {
	nodes, edges := testNetwork(t)
	edges = append(edges, EdgeRecord{Source: "X", Target: "Y", Weight: 1, SharedSNPs: "['rs5']"})

	data, err := newlineDelimitedJSON(nodes)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d: %s", len(lines), data)
	}

	data, err = newlineDelimitedJSON(edges)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"fisher_p":null`) {
		t.Errorf("Expected a null fisher_p, got %s", data)
	}

	if _, err := newlineDelimitedJSON([]string{"nope"}); err == nil {
		t.Error("Expected an error for an unsupported row type")
	}
}
