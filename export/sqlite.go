package export

import (
	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Tables are rebuilt on every run so that a rerun replaces, rather than
// duplicates, the previous export.
const sqliteSchema = `
DROP TABLE IF EXISTS node;
DROP TABLE IF EXISTS edge;
CREATE TABLE node (
	phenotype TEXT NOT NULL PRIMARY KEY,
	snps TEXT NOT NULL,
	n_snps INTEGER NOT NULL,
	component INTEGER NOT NULL,
	pagerank REAL NOT NULL
);
CREATE TABLE edge (
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	weight INTEGER NOT NULL,
	shared_snps TEXT NOT NULL,
	fisher_p REAL,
	PRIMARY KEY (source, target)
);
CREATE INDEX edge_target ON edge (target);
`

const (
	insertNode = `INSERT INTO node (phenotype, snps, n_snps, component, pagerank) VALUES (:phenotype, :snps, :n_snps, :component, :pagerank)`
	insertEdge = `INSERT INTO edge (source, target, weight, shared_snps, fisher_p) VALUES (:source, :target, :weight, :shared_snps, :fisher_p)`
)

// WriteSQLite writes both tables to the SQLite database at path in a single
// transaction.
func WriteSQLite(path string, nodes []NodeRecord, edges []EdgeRecord) error {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return pfx.Err(err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return pfx.Err(err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return pfx.Err(err)
	}

	for _, n := range nodes {
		if _, err := tx.NamedExec(insertNode, n); err != nil {
			tx.Rollback()
			return pfx.Err(err)
		}
	}

	for _, e := range edges {
		if _, err := tx.NamedExec(insertEdge, e); err != nil {
			tx.Rollback()
			return pfx.Err(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
