package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/phewasnet"
	"github.com/carbocation/phewasnet/export"
	"github.com/carbocation/phewasnet/network"
	"github.com/carbocation/phewasnet/phewas"
)

type options struct {
	inputs phewasnet.InputSelection

	nodesOut    string
	edgesOut    string
	nodesIn     string
	filteredOut string

	names      phewas.ColumnNames
	thresholds phewas.Thresholds
	delim      string

	indexed       bool
	fisher        bool
	histogramBins int

	sqlite    string
	bqProject string
	bqDataset string

	verbose bool
}

// validate catches configuration errors before any input is read.
func (o *options) validate() error {
	delim, err := phewasnet.ParseDelimiter(o.delim)
	if err != nil {
		return err
	}
	o.delim = delim

	if o.nodesOut == "" || o.edgesOut == "" {
		return errors.New("--nodes-out and --edges-out are required")
	}

	if (o.bqProject == "") != (o.bqDataset == "") {
		return errors.New("--bq-project and --bq-dataset must be set together")
	}

	// Joining onto a node map needs the phenotype to come from the data
	return o.names.Validate(o.nodesIn != "")
}

func run(o options, client *storage.Client, logOut io.Writer) error {
	paths, err := phewasnet.ListInputs(o.inputs, client)
	if err != nil {
		return err
	}
	log.Printf("Reading %d PheWAS files\n", len(paths))

	agg := network.NewAggregator(network.Config{
		Names:            o.names,
		Thresholds:       o.thresholds,
		Delimiter:        o.delim,
		RequirePhenotype: o.nodesIn != "",
		Verbose:          o.verbose,
	})

	filtered, err := phewasnet.AggregateFiles(agg, paths, o.delim, client, o.filteredOut != "")
	if err != nil {
		return err
	}
	agg.Finalize()

	var edges []network.Edge
	if o.indexed {
		edges = network.BuildEdgesIndexed(agg)
	} else {
		edges = network.BuildEdges(agg)
	}
	if o.fisher {
		network.AnnotateFisher(edges, agg)
	}
	components := network.Components(agg, edges)

	// Nothing has been written yet. From here on, only IO can fail.

	if err := writeNodes(o, agg, client); err != nil {
		return err
	}

	if err := phewasnet.WriteOutput(o.edgesOut, client, func(w io.Writer) error {
		return network.WriteEdges(w, edges, o.fisher)
	}); err != nil {
		return err
	}

	if filtered != nil {
		if err := phewasnet.WriteFiltered(o.filteredOut, filtered, client); err != nil {
			return err
		}
	}

	pageRank := network.PageRank(agg, edges)

	if err := exportTables(o, agg, edges, components, pageRank); err != nil {
		return err
	}

	summary, err := network.Summarize(agg, edges, components)
	if err != nil {
		return err
	}
	log.Println(summary)
	if top := network.TopRanked(pageRank, 5); len(top) > 0 {
		log.Printf("Most central phenotypes by PageRank: %v\n", top)
	}

	if o.histogramBins > 0 {
		if err := network.PrintWeightHistogram(logOut, edges, o.histogramBins); err != nil {
			return err
		}
	}

	return nil
}

func writeNodes(o options, agg *network.Aggregator, client *storage.Client) error {
	if o.nodesIn == "" {
		return phewasnet.WriteOutput(o.nodesOut, client, func(w io.Writer) error {
			n, err := network.WriteFreshNodes(w, agg)
			log.Printf("Wrote %d nodes\n", n)
			return err
		})
	}

	// Read the node map fully first, since it may be the same file as the
	// output.
	r, err := phewasnet.OpenInput(o.nodesIn, client)
	if err != nil {
		return err
	}
	nodeMap, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", o.nodesIn, err)
	}

	return phewasnet.WriteOutput(o.nodesOut, client, func(w io.Writer) error {
		kept, dropped, err := network.AugmentNodes(w, bytes.NewReader(nodeMap), agg)
		if err != nil {
			return err
		}
		log.Printf("Kept %d nodes from %s; dropped %d with no qualifying SNPs\n", kept, o.nodesIn, dropped)
		return nil
	})
}

func exportTables(o options, agg *network.Aggregator, edges []network.Edge, components map[string]int, pageRank map[string]float64) error {
	if o.sqlite == "" && o.bqProject == "" {
		return nil
	}

	nodes := export.NodeRecords(agg, components, pageRank)
	edgeRecords := export.EdgeRecords(edges)

	if o.sqlite != "" {
		if err := export.WriteSQLite(phewasnet.ExpandHome(o.sqlite), nodes, edgeRecords); err != nil {
			return err
		}
		log.Printf("Wrote SQLite tables to %s\n", o.sqlite)
	}

	if o.bqProject != "" {
		wbq, err := export.NewWrappedBigQuery(o.bqProject, o.bqDataset)
		if err != nil {
			return err
		}
		defer wbq.Close()

		if err := wbq.Upload(nodes, edgeRecords); err != nil {
			return err
		}
	}

	return nil
}
