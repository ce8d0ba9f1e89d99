package explorer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/CharlieGitDB/database-studio/database"
)

// NodeKind classifies a tree node.
type NodeKind string

const (
	NodeConnection NodeKind = "connection"
	NodeSchema     NodeKind = "schema"
	NodeTable      NodeKind = "table"
	NodeColumn     NodeKind = "column"
	NodeCollection NodeKind = "collection"
	NodeField      NodeKind = "field"
	NodeKey        NodeKind = "key"
)

// Node is one entry in the explorer tree. ID encodes the node's path so a
// later Children call can resume expansion without server-side tree state.
type Node struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Kind        NodeKind `json:"kind"`
	HasChildren bool     `json:"hasChildren"`
	Detail      string   `json:"detail,omitempty"`
}

// ConnSource hands out open connections by name. *database.Pool satisfies
// it; tests substitute a fake.
type ConnSource interface {
	Names() []string
	Get(name string) (*database.Conn, error)
}

// Tree is the lazy tree provider: each Children call fetches exactly one
// level of metadata from the engine behind the node's connection.
type Tree struct {
	conns        ConnSource
	maxRedisKeys int
}

// NewTree creates a tree over the given connection source.
func NewTree(conns ConnSource) *Tree {
	return &Tree{conns: conns, maxRedisKeys: 100}
}

// Roots returns one collapsed node per configured connection. No engine is
// contacted until a root is expanded.
func (t *Tree) Roots() []Node {
	names := t.conns.Names()
	nodes := make([]Node, len(names))
	for i, name := range names {
		nodes[i] = Node{
			ID:          nodeID(name),
			Label:       name,
			Kind:        NodeConnection,
			HasChildren: true,
		}
	}
	return nodes
}

// Children expands one node, dialing the connection on first touch.
func (t *Tree) Children(ctx context.Context, id string) ([]Node, error) {
	segments, err := splitNodeID(id)
	if err != nil {
		return nil, err
	}

	conn, err := t.conns.Get(segments[0])
	if err != nil {
		return nil, err
	}

	switch {
	case conn.IsSQL():
		return t.sqlChildren(ctx, conn, segments)
	case conn.Mongo != nil:
		return t.mongoChildren(ctx, conn, segments)
	case conn.Redis != nil:
		return t.redisChildren(ctx, conn, segments)
	default:
		return nil, fmt.Errorf("connection %s has no backing client", conn.Name)
	}
}

func (t *Tree) sqlChildren(ctx context.Context, conn *database.Conn, segments []string) ([]Node, error) {
	si := NewSQLIntrospector(conn.SQL)

	switch len(segments) {
	case 1:
		schemas, err := si.Schemas(ctx)
		if err != nil {
			return nil, err
		}
		nodes := make([]Node, len(schemas))
		for i, schema := range schemas {
			nodes[i] = Node{
				ID:          nodeID(segments[0], schema),
				Label:       schema,
				Kind:        NodeSchema,
				HasChildren: true,
			}
		}
		return nodes, nil
	case 2:
		tables, err := si.Tables(ctx, segments[1])
		if err != nil {
			return nil, err
		}
		nodes := make([]Node, len(tables))
		for i, table := range tables {
			nodes[i] = Node{
				ID:          nodeID(segments[0], segments[1], table),
				Label:       table,
				Kind:        NodeTable,
				HasChildren: true,
			}
		}
		return nodes, nil
	case 3:
		details, err := si.Details(ctx, segments[1], segments[2])
		if err != nil {
			return nil, err
		}
		nodes := make([]Node, len(details.Columns))
		for i, col := range details.Columns {
			nodes[i] = Node{
				ID:     nodeID(segments[0], segments[1], segments[2], col.Name),
				Label:  col.Name,
				Kind:   NodeColumn,
				Detail: columnDetail(col),
			}
		}
		return nodes, nil
	default:
		return nil, fmt.Errorf("node %s has no children", nodeID(segments...))
	}
}

func (t *Tree) mongoChildren(ctx context.Context, conn *database.Conn, segments []string) ([]Node, error) {
	mi := NewMongoIntrospector(conn.Mongo.Database())

	switch len(segments) {
	case 1:
		collections, err := mi.Collections(ctx)
		if err != nil {
			return nil, err
		}
		nodes := make([]Node, len(collections))
		for i, coll := range collections {
			nodes[i] = Node{
				ID:          nodeID(segments[0], coll),
				Label:       coll,
				Kind:        NodeCollection,
				HasChildren: true,
			}
		}
		return nodes, nil
	case 2:
		fields, err := mi.Fields(ctx, segments[1])
		if err != nil {
			return nil, err
		}
		nodes := make([]Node, len(fields))
		for i, field := range fields {
			nodes[i] = Node{
				ID:     nodeID(segments[0], segments[1], field.Name),
				Label:  field.Name,
				Kind:   NodeField,
				Detail: field.BSONType,
			}
		}
		return nodes, nil
	default:
		return nil, fmt.Errorf("node %s has no children", nodeID(segments...))
	}
}

func (t *Tree) redisChildren(ctx context.Context, conn *database.Conn, segments []string) ([]Node, error) {
	if len(segments) != 1 {
		return nil, fmt.Errorf("node %s has no children", nodeID(segments...))
	}

	rb := NewRedisBrowser(conn.Redis.Raw())
	keys, err := rb.Keys(ctx, "*", t.maxRedisKeys)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(keys))
	for i, key := range keys {
		nodes[i] = Node{
			ID:     nodeID(segments[0], key.Key),
			Label:  key.Key,
			Kind:   NodeKey,
			Detail: key.Type,
		}
	}
	return nodes, nil
}

func columnDetail(col Column) string {
	detail := col.DataType
	if col.PrimaryKey {
		detail += " PK"
	}
	if col.ForeignKey {
		detail += fmt.Sprintf(" FK(%s.%s)", col.ReferencedTable, col.ReferencedColumn)
	}
	if col.Nullable {
		detail += " NULL"
	}
	return detail
}

// nodeID joins path segments into a stable node identifier. Segments are
// escaped so names containing the separator survive the round trip.
func nodeID(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

func splitNodeID(id string) ([]string, error) {
	if id == "" {
		return nil, fmt.Errorf("empty node id")
	}
	parts := strings.Split(id, "/")
	segments := make([]string, len(parts))
	for i, p := range parts {
		s, err := url.PathUnescape(p)
		if err != nil {
			return nil, fmt.Errorf("malformed node id %q: %w", id, err)
		}
		segments[i] = s
	}
	return segments, nil
}
