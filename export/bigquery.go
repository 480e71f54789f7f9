package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/pfx"
)

const (
	NodeTableName = "phewas_node"
	EdgeTableName = "phewas_edge"
)

var nodeSchema = bigquery.Schema{
	{Name: "phenotype", Type: bigquery.StringFieldType, Required: true},
	{Name: "snps", Type: bigquery.StringFieldType, Required: true},
	{Name: "n_snps", Type: bigquery.IntegerFieldType, Required: true},
	{Name: "component", Type: bigquery.IntegerFieldType, Required: true},
	{Name: "pagerank", Type: bigquery.FloatFieldType, Required: true},
}

var edgeSchema = bigquery.Schema{
	{Name: "source", Type: bigquery.StringFieldType, Required: true},
	{Name: "target", Type: bigquery.StringFieldType, Required: true},
	{Name: "weight", Type: bigquery.IntegerFieldType, Required: true},
	{Name: "shared_snps", Type: bigquery.StringFieldType, Required: true},
	{Name: "fisher_p", Type: bigquery.FloatFieldType},
}

type WrappedBigQuery struct {
	Context context.Context
	Client  *bigquery.Client
	Project string
	Dataset string
}

// NewWrappedBigQuery connects to BigQuery with default credentials.
func NewWrappedBigQuery(project, dataset string) (*WrappedBigQuery, error) {
	wbq := &WrappedBigQuery{
		Context: context.Background(),
		Project: project,
		Dataset: dataset,
	}

	var err error
	wbq.Client, err = bigquery.NewClient(wbq.Context, wbq.Project)
	if err != nil {
		return nil, fmt.Errorf("connecting to BigQuery: %v", err)
	}

	return wbq, nil
}

func (wbq *WrappedBigQuery) Close() error {
	return wbq.Client.Close()
}

// Upload replaces the node and edge tables in the dataset. Load jobs with
// WRITE_TRUNCATE are used instead of streaming inserts so that reruns are
// idempotent.
func (wbq *WrappedBigQuery) Upload(nodes []NodeRecord, edges []EdgeRecord) error {
	if err := wbq.load(NodeTableName, nodeSchema, nodes); err != nil {
		return err
	}

	return wbq.load(EdgeTableName, edgeSchema, edges)
}

func (wbq *WrappedBigQuery) load(table string, schema bigquery.Schema, rows interface{}) error {
	data, err := newlineDelimitedJSON(rows)
	if err != nil {
		return pfx.Err(err)
	}

	source := bigquery.NewReaderSource(bytes.NewReader(data))
	source.SourceFormat = bigquery.JSON
	source.Schema = schema

	loader := wbq.Client.Dataset(wbq.Dataset).Table(table).LoaderFrom(source)
	loader.CreateDisposition = bigquery.CreateIfNeeded
	loader.WriteDisposition = bigquery.WriteTruncate

	job, err := loader.Run(wbq.Context)
	if err != nil {
		return pfx.Err(fmt.Errorf("%s.%s: %w", wbq.Dataset, table, err))
	}

	status, err := job.Wait(wbq.Context)
	if err != nil {
		return pfx.Err(fmt.Errorf("%s.%s: %w", wbq.Dataset, table, err))
	}
	if err := status.Err(); err != nil {
		return pfx.Err(fmt.Errorf("%s.%s: %w", wbq.Dataset, table, err))
	}

	log.Printf("Loaded %s.%s.%s\n", wbq.Project, wbq.Dataset, table)

	return nil
}

// newlineDelimitedJSON encodes a slice of records one JSON object per line.
func newlineDelimitedJSON(rows interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	switch v := rows.(type) {
	case []NodeRecord:
		for _, row := range v {
			if err := enc.Encode(row); err != nil {
				return nil, err
			}
		}
	case []EdgeRecord:
		for _, row := range v {
			if err := enc.Encode(row); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("unsupported row type %T", rows)
	}

	return buf.Bytes(), nil
}
