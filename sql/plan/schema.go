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
	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
)

// OutputExpressions returns the expressions a node presents to its parents.
// Every parent of a shared node sees the same output expressions.
func (g *Graph) OutputExpressions(id sql.NodeID) []sql.Expression {
	switch n := g.Node(id).(type) {
	case *StoredTable:
		exprs := make([]sql.Expression, len(n.columns))
		for i, c := range n.columns {
			exprs[i] = c
		}
		return exprs
	case *Projection:
		return n.Projections
	case *Aggregate:
		return n.Expressions()
	case *Join:
		left := g.OutputExpressions(n.Left())
		if n.Mode == SemiJoin || n.Mode == AntiSemiJoin {
			return left
		}
		exprs := append([]sql.Expression(nil), left...)
		return append(exprs, g.OutputExpressions(n.Right())...)
	case *Delete:
		return nil
	case *Root, *Predicate, *Sort, *Union, *Validate, *Limit:
		return g.OutputExpressions(n.Left())
	default:
		panic(sql.ErrInvalidPlan.New("unknown node type"))
	}
}

// RequiredExpressions returns the expressions a node needs from its inputs.
// Nodes that forward whole rows (Root, Union, Delete) require every output
// expression of their inputs.
func (g *Graph) RequiredExpressions(id sql.NodeID) []sql.Expression {
	n := g.Node(id)
	switch n.(type) {
	case *Root, *Delete:
		return g.OutputExpressions(n.Left())
	case *Union:
		exprs := append([]sql.Expression(nil), g.OutputExpressions(n.Left())...)
		return append(exprs, g.OutputExpressions(n.Right())...)
	default:
		return n.Expressions()
	}
}

// IsColumnAvailable returns whether the column is part of the output
// expressions of the node.
func (g *Graph) IsColumnAvailable(col *expression.Column, id sql.NodeID) bool {
	for _, e := range g.OutputExpressions(id) {
		if c, ok := e.(*expression.Column); ok && c.Equals(col) {
			return true
		}
	}
	return false
}

// ExpressionEvaluableOn returns whether expr can be computed from the output
// of the node: either the node outputs expr itself, or every column expr
// references is available.
func (g *Graph) ExpressionEvaluableOn(expr sql.Expression, id sql.NodeID) bool {
	outputs := g.OutputExpressions(id)
	for _, e := range outputs {
		if e == expr {
			return true
		}
	}

	if _, ok := expr.(*expression.Subquery); ok {
		return false
	}

	for _, col := range expression.Columns(expr) {
		var found bool
		for _, e := range outputs {
			if c, ok := e.(*expression.Column); ok && c.Equals(col) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// StoredTableOf returns the stored table node defining the column.
func (g *Graph) StoredTableOf(col *expression.Column) *StoredTable {
	t, ok := g.Node(col.Node()).(*StoredTable)
	if !ok {
		panic(sql.ErrInvalidPlan.New("column " + col.String() + " is not defined by a stored table"))
	}
	return t
}
