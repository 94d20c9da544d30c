// Copyright 2024 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plan

import (
	"fmt"
	"strings"

	"github.com/pilosa/pilosa/roaring"

	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
)

// StoredTable is a leaf reading a table of the catalog. It defines the
// column expressions referencing the table.
type StoredTable struct {
	nodeBase
	Table   string
	columns []*expression.Column
	// PrunedChunks holds the ids of the chunks that do not need to be read.
	// Pruning rules only ever add to it.
	PrunedChunks *roaring.Bitmap
}

var _ Node = (*StoredTable)(nil)

// NewStoredTable adds a stored table node reading the given columns of t.
// Column ids are resolved against the table schema, so a node may read any
// subset of the columns in any order. It panics with ErrTableColumnNotFound
// if t has no column with one of the names.
func (g *Graph) NewStoredTable(t sql.Table, columns ...string) sql.NodeID {
	n := &StoredTable{
		nodeBase:     newNodeBase(),
		Table:        t.Name(),
		PrunedChunks: roaring.NewBitmap(),
	}
	id := g.add(n)
	n.columns = make([]*expression.Column, len(columns))
	for i, name := range columns {
		col, ok := t.ColumnID(name)
		if !ok {
			panic(sql.ErrTableColumnNotFound.New(t.Name(), name))
		}
		n.columns[i] = expression.NewColumn(id, col, t.Name()+"."+name)
	}
	return id
}

// NewStoredTableFrom adds a stored table node reading every column of t.
func (g *Graph) NewStoredTableFrom(t sql.Table) sql.NodeID {
	schema := t.Schema()
	names := make([]string, len(schema))
	for i, c := range schema {
		names[i] = c.Name
	}
	return g.NewStoredTable(t, names...)
}

func (*StoredTable) inputCount() int { return 0 }

// Columns returns the column expressions defined by the node.
func (t *StoredTable) Columns() []*expression.Column {
	return t.columns
}

// Column returns the column with the given schema id, or nil if the node
// does not read it.
func (t *StoredTable) Column(id sql.ColumnID) *expression.Column {
	for _, c := range t.columns {
		if c.ColumnID() == id {
			return c
		}
	}
	return nil
}

// ColumnName returns the name of the column in the table schema.
func (t *StoredTable) ColumnName(c *expression.Column) string {
	return strings.TrimPrefix(c.Name(), t.Table+".")
}

// ColumnByName returns the column with the given name, or nil.
func (t *StoredTable) ColumnByName(name string) *expression.Column {
	for _, c := range t.columns {
		if c.Name() == name || c.Name() == t.Table+"."+name {
			return c
		}
	}
	return nil
}

// IsChunkPruned returns whether the chunk was pruned.
func (t *StoredTable) IsChunkPruned(id sql.ChunkID) bool {
	return t.PrunedChunks.Contains(uint64(id))
}

// PruneChunks adds the given chunks to the pruned set and returns whether the
// set changed.
func (t *StoredTable) PruneChunks(ids ...sql.ChunkID) bool {
	vals := make([]uint64, len(ids))
	for i, id := range ids {
		vals[i] = uint64(id)
	}
	changed, err := t.PrunedChunks.Add(vals...)
	if err != nil {
		// only raised for op log writes, which are not enabled
		panic(err)
	}
	return changed
}

// PrunedChunkIDs returns the pruned chunks in ascending order.
func (t *StoredTable) PrunedChunkIDs() []sql.ChunkID {
	vals := t.PrunedChunks.Slice()
	ids := make([]sql.ChunkID, len(vals))
	for i, v := range vals {
		ids[i] = sql.ChunkID(v)
	}
	return ids
}

// Expressions implements the Node interface.
func (*StoredTable) Expressions() []sql.Expression { return nil }

// Describe implements the Node interface.
func (t *StoredTable) Describe() string {
	if t.PrunedChunks.Count() == 0 {
		return fmt.Sprintf("StoredTable(%s)", t.Table)
	}
	ids := t.PrunedChunkIDs()
	pruned := make([]string, len(ids))
	for i, id := range ids {
		pruned[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("StoredTable(%s, pruned chunks: [%s])", t.Table, strings.Join(pruned, ", "))
}

func (t *StoredTable) clone() Node {
	nt := *t
	nt.nodeBase = t.nodeBase.copy()
	nt.PrunedChunks = roaring.NewBitmap(t.PrunedChunks.Slice()...)
	return &nt
}
