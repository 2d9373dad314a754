// Package store publishes simplified control flow graphs to a Neo4j
// database using batch UNWIND queries.
package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/verigraph/verigraph/pkg/cfg"
)

// Loader loads graph snapshots into a Neo4j database.
type Loader struct {
	driver neo4j.DriverWithContext
	ctx    context.Context
}

// New connects to Neo4j and returns a ready-to-use loader.
func New(ctx context.Context, uri, user, password string) (*Loader, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	return &Loader{driver: driver, ctx: ctx}, nil
}

// Close releases the underlying Neo4j driver resources.
func (l *Loader) Close() {
	l.driver.Close(l.ctx)
}

// runCypher runs a single Cypher statement with optional parameters.
func (l *Loader) runCypher(cypher string, params map[string]any) error {
	_, err := neo4j.ExecuteQuery(l.ctx, l.driver, cypher, params, neo4j.EagerResultTransformer)
	return err
}

// Clean removes all previously published CFG nodes and relationships.
func (l *Loader) Clean() error {
	queries := []string{
		"MATCH ()-[r:FLOWS_TO]->() DELETE r",
		"MATCH (n:CfgNode) DETACH DELETE n",
	}
	for _, q := range queries {
		if err := l.runCypher(q, nil); err != nil {
			return err
		}
	}
	return nil
}

// EnsureIndexes ensures the required Neo4j indexes exist.
func (l *Loader) EnsureIndexes() error {
	indexes := []string{
		"CREATE INDEX cfg_node_key IF NOT EXISTS FOR (n:CfgNode) ON (n.key)",
		"CREATE INDEX cfg_node_source IF NOT EXISTS FOR (n:CfgNode) ON (n.source)",
	}
	for _, q := range indexes {
		if err := l.runCypher(q, nil); err != nil {
			return err
		}
	}
	return nil
}

// Publish upserts the nodes and edges of one graph snapshot. Node keys are
// namespaced by the snapshot's source so that repeated runs over the same
// input are idempotent.
func (l *Loader) Publish(ex cfg.Export) error {
	nodes := make([]map[string]any, 0, len(ex.Nodes))
	for _, n := range ex.Nodes {
		nodes = append(nodes, map[string]any{
			"key":    fmt.Sprintf("%s#%d", ex.Source, n.ID),
			"id":     n.ID,
			"kind":   n.Kind,
			"text":   n.Text,
			"source": ex.Source,
		})
	}
	err := l.runCypher(
		`UNWIND $batch AS row
		 MERGE (n:CfgNode {key: row.key})
		 SET n.id = row.id, n.kind = row.kind, n.text = row.text, n.source = row.source`,
		map[string]any{"batch": nodes},
	)
	if err != nil {
		return err
	}

	edges := make([]map[string]any, 0, len(ex.Edges))
	for _, e := range ex.Edges {
		edges = append(edges, map[string]any{
			"from":  fmt.Sprintf("%s#%d", ex.Source, e.From),
			"to":    fmt.Sprintf("%s#%d", ex.Source, e.To),
			"label": e.Label,
		})
	}
	return l.runCypher(
		`UNWIND $batch AS row
		 MATCH (a:CfgNode {key: row.from}), (b:CfgNode {key: row.to})
		 MERGE (a)-[r:FLOWS_TO {label: row.label}]->(b)`,
		map[string]any{"batch": edges},
	)
}
