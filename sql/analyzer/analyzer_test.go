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
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-mysql-optimizer/memory"
	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
)

// ordersOfCustomer builds
//
//	SELECT o.id FROM orders o JOIN customers c ON o.customer_id = c.id WHERE c.id = 1
func ordersOfCustomer(g *plan.Graph, cat sql.Catalog) (root, join sql.NodeID) {
	o := storedTable(g, cat, "orders", "id", "customer_id")
	c := storedTable(g, cat, "customers", "id", "name")
	filter := g.NewPredicate(eq(column(g, c, "id"), lit(int64(1))), c)
	join = g.NewJoin(plan.InnerJoin, []sql.Expression{eq(column(g, o, "customer_id"), column(g, c, "id"))}, o, filter)
	return g.NewProjection([]sql.Expression{column(g, o, "id")}, join), join
}

func TestOptimize(t *testing.T) {
	require := require.New(t)
	a := NewDefault(customersAndOrders(t))
	ctx := sql.NewEmptyContext()

	g := plan.NewGraph()
	root, _ := ordersOfCustomer(g, a.Catalog)

	result, err := a.Optimize(ctx, g, root)
	require.NoError(err)

	// the predicate in the subquery prunes the chunk of customers 3
	expected := "Projection(orders.id)\n" +
		" └─ Predicate(orders.customer_id = SUBQUERY(#6))\n" +
		"     ├─ StoredTable(orders)\n" +
		"     └─ Subquery(#6)\n" +
		"         └─ Projection(customers.id)\n" +
		"             └─ Predicate(customers.id = 1)\n" +
		"                 └─ StoredTable(customers, pruned chunks: [1])\n"
	require.Equal(expected, plan.String(g, result))

	// everything else was reclaimed
	require.Equal(len(g.Reachable(result)), g.Len())

	fingerprint, err := plan.Fingerprint(g, result)
	require.NoError(err)

	again, err := a.Optimize(ctx, g, result)
	require.NoError(err)
	require.Equal(result, again)
	require.Equal(expected, plan.String(g, again))

	refingerprint, err := plan.Fingerprint(g, again)
	require.NoError(err)
	require.Equal(fingerprint, refingerprint)
}

func TestOptimizeInvalidPlan(t *testing.T) {
	require := require.New(t)
	a := NewDefault(customersAndOrders(t))

	g := plan.NewGraph()
	root, join := ordersOfCustomer(g, a.Catalog)
	g.SetInput(join, plan.RightInput, sql.InvalidNodeID)

	require.Panics(func() {
		_, _ = a.Optimize(sql.NewEmptyContext(), g, root)
	})
}

func TestOptimizeTableMismatch(t *testing.T) {
	a := NewDefault(customersAndOrders(t))

	// columns swapped with respect to the catalog table
	stale := memory.NewTable("customers", sql.Schema{
		{Name: "name", Type: sql.Text},
		{Name: "id", Type: sql.Int64},
	})
	g := plan.NewGraph()
	c := g.NewStoredTable(stale, "id")
	root := g.NewPredicate(eq(column(g, c, "id"), lit(int64(1))), c)

	requirePanicsWith(t, sql.ErrInvalidPlan, func() {
		_, _ = a.Optimize(sql.NewEmptyContext(), g, root)
	})

	g = plan.NewGraph()
	unknown := g.NewStoredTable(memory.NewTable("suppliers", sql.Schema{{Name: "id", Type: sql.Int64}}), "id")
	requirePanicsWith(t, sql.ErrInvalidPlan, func() {
		_, _ = a.Optimize(sql.NewEmptyContext(), g, unknown)
	})
}

func TestBuilderWithoutRules(t *testing.T) {
	require := require.New(t)
	a := NewBuilder(customersAndOrders(t)).WithoutRules(JoinToPredicateRule).Build()

	var names []string
	for _, r := range a.Batches[1].Rules {
		names = append(names, r.Name)
	}
	require.Equal([]string{ChunkPruningRule, DipsPruningRule}, names)

	g := plan.NewGraph()
	root, join := ordersOfCustomer(g, a.Catalog)
	result, err := a.Optimize(sql.NewEmptyContext(), g, root)
	require.NoError(err)
	require.Equal(root, result)
	require.Contains(g.Reachable(result), join)
}

func TestOptimizeCustomRules(t *testing.T) {
	require := require.New(t)

	var pre, post int
	// no subqueries, so that each rule runs once per iteration
	a := NewBuilder(customersAndOrders(t)).
		WithoutRules(JoinToPredicateRule).
		AddPreOptimizationRule("count", func(ctx *sql.Context, a *Analyzer, g *plan.Graph, root sql.NodeID) error {
			pre++
			return nil
		}).
		// never reaches a fixed point
		AddPostOptimizationRule("validate", func(ctx *sql.Context, a *Analyzer, g *plan.Graph, root sql.NodeID) error {
			post++
			g.SetInput(root, plan.LeftInput, g.NewValidate(g.Input(root, plan.LeftInput)))
			return nil
		}).
		Build()

	g := plan.NewGraph()
	root, _ := ordersOfCustomer(g, a.Catalog)
	result, err := a.Optimize(sql.NewEmptyContext(), g, root)
	require.NoError(err)

	require.Equal(1, pre)
	require.Equal(maxAnalysisIterations, post)

	var validates int
	for id := range g.Reachable(result) {
		if _, ok := g.Node(id).(*plan.Validate); ok {
			validates++
		}
	}
	require.Equal(maxAnalysisIterations, validates)
}

func TestOptimizeRuleError(t *testing.T) {
	require := require.New(t)
	a := NewBuilder(customersAndOrders(t)).
		AddPreOptimizationRule("fail", func(*sql.Context, *Analyzer, *plan.Graph, sql.NodeID) error {
			return fmt.Errorf("rule failed")
		}).
		Build()

	g := plan.NewGraph()
	root, _ := ordersOfCustomer(g, a.Catalog)
	result, err := a.Optimize(sql.NewEmptyContext(), g, root)
	require.EqualError(err, "rule failed")
	require.Equal(sql.InvalidNodeID, result)
}

func TestRulesApplyToSubqueries(t *testing.T) {
	require := require.New(t)
	a := NewBuilder(customersAndOrders(t)).WithoutRules(ChunkPruningRule, DipsPruningRule).Build()

	g := plan.NewGraph()
	sq, join := ordersOfCustomer(g, a.Catalog)
	c := storedTable(g, a.Catalog, "customers", "id", "name")
	root := g.NewPredicate(eq(column(g, c, "id"), expression.NewSubquery(sq)), c)

	result, err := a.Optimize(sql.NewEmptyContext(), g, root)
	require.NoError(err)
	require.Equal(root, result)
	require.NotContains(g.Reachable(result), join)
	require.Contains(plan.String(g, result), "Predicate(orders.customer_id = SUBQUERY(")
}
