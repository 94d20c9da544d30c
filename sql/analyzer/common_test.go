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

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-mysql-optimizer/memory"
	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
)

func column(g *plan.Graph, table sql.NodeID, name string) *expression.Column {
	return g.Node(table).(*plan.StoredTable).ColumnByName(name)
}

// storedTable adds a stored table node reading the given columns of the
// catalog table with the given name.
func storedTable(g *plan.Graph, cat sql.Catalog, name string, columns ...string) sql.NodeID {
	table, ok := cat.Table(name)
	if !ok {
		panic(sql.ErrTableNotFound.New(name))
	}
	return g.NewStoredTable(table, columns...)
}

func eq(left, right sql.Expression) sql.Expression {
	return expression.NewEquals(left, right)
}

func lit(v sql.Value) *expression.Literal {
	return expression.NewLiteral(v)
}

// applyRule runs the rule over the plan wrapped in a root node and returns
// the node the root points to afterwards.
func applyRule(t *testing.T, a *Analyzer, rule RuleFunc, g *plan.Graph, root sql.NodeID) sql.NodeID {
	t.Helper()
	top := g.NewRoot(root)
	require.NoError(t, rule(sql.NewEmptyContext(), a, g, top))
	result := g.Input(top, plan.LeftInput)
	g.SetInput(top, plan.LeftInput, sql.InvalidNodeID)
	return result
}

func requirePanicsWith(t *testing.T, kind *errors.Kind, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "expected an error, got %v", r)
		require.True(t, kind.Is(err), "unexpected error: %s", err)
	}()
	f()
}

// customersAndOrders returns a catalog where customers.id is a primary key
// and customers.name holds a duplicate. Customers are stored two per chunk.
func customersAndOrders(t *testing.T) *memory.Database {
	t.Helper()
	db := memory.NewDatabase("mydb")

	customers, err := db.CreateTable("customers", sql.Schema{
		{Name: "id", Type: sql.Int64},
		{Name: "name", Type: sql.Text},
	},
		memory.WithChunkSize(2),
		memory.WithKeyConstraint(sql.NewTableKeyConstraint(sql.PrimaryKey, false, 0)),
	)
	require.NoError(t, err)
	require.NoError(t, customers.Insert(
		[]sql.Value{int64(1), "alice"},
		[]sql.Value{int64(2), "bob"},
		[]sql.Value{int64(3), "alice"},
	))

	orders, err := db.CreateTable("orders", sql.Schema{
		{Name: "id", Type: sql.Int64},
		{Name: "customer_id", Type: sql.Int64},
	}, memory.WithChunkSize(2))
	require.NoError(t, err)
	require.NoError(t, orders.Insert(
		[]sql.Value{int64(10), int64(1)},
		[]sql.Value{int64(11), int64(1)},
		[]sql.Value{int64(12), int64(3)},
	))

	return db
}

// intTable creates a table with a single int column x filled with the given
// values, two per chunk.
func intTable(t *testing.T, db *memory.Database, name string, values ...int64) *memory.Table {
	t.Helper()
	table, err := db.CreateTable(name, sql.Schema{{Name: "x", Type: sql.Int64}}, memory.WithChunkSize(2))
	require.NoError(t, err)
	rows := make([][]sql.Value, len(values))
	for i, v := range values {
		rows[i] = []sql.Value{v}
	}
	require.NoError(t, table.Insert(rows...))
	return table
}

func prunedChunks(g *plan.Graph, table sql.NodeID) []sql.ChunkID {
	return g.Node(table).(*plan.StoredTable).PrunedChunkIDs()
}
