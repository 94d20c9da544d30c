// Copyright 2020-2024 Dolthub, Inc.
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

package transform

import (
	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
)

// TreeIdentity tells whether a transformation changed its input.
type TreeIdentity bool

const (
	SameTree TreeIdentity = true
	NewTree  TreeIdentity = false
)

// ExprFunc is a function that given an expression will return that
// expression as is or transformed, along with whether it was changed.
type ExprFunc func(e sql.Expression) (sql.Expression, TreeIdentity, error)

// Expr applies a transformation function to the given expression
// tree from the bottom up. Each callback [f] returns a TreeIdentity
// that is aggregated into a final output indicating whether the
// expression tree was changed.
func Expr(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	children := e.Children()
	if len(children) == 0 {
		return f(e)
	}

	var (
		newChildren []sql.Expression
		err         error
	)

	for i, c := range children {
		c, same, err := Expr(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		if !same {
			if newChildren == nil {
				newChildren = make([]sql.Expression, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = c
		}
	}

	sameC := SameTree
	if len(newChildren) > 0 {
		sameC = NewTree
		e, err = e.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
	}

	e, sameN, err := f(e)
	if err != nil {
		return nil, SameTree, err
	}
	return e, sameC && sameN, nil
}

// Exprs applies Expr to every expression of the slice. The slice is only
// copied if some expression changed.
func Exprs(exprs []sql.Expression, f ExprFunc) ([]sql.Expression, TreeIdentity, error) {
	var result []sql.Expression
	for i, e := range exprs {
		ne, same, err := Expr(e, f)
		if err != nil {
			return nil, SameTree, err
		}
		if !same {
			if result == nil {
				result = append([]sql.Expression(nil), exprs...)
			}
			result[i] = ne
		}
	}
	if result == nil {
		return exprs, SameTree, nil
	}
	return result, NewTree, nil
}

// NodeExprs rewrites the expressions held by the node in place. Nodes are
// mutated, not rebuilt, so their handle and edges are preserved.
func NodeExprs(g *plan.Graph, id sql.NodeID, f ExprFunc) (TreeIdentity, error) {
	var err error
	same := SameTree
	switch n := g.Node(id).(type) {
	case *plan.Predicate:
		n.Predicate, same, err = Expr(n.Predicate, f)
	case *plan.Join:
		n.Predicates, same, err = Exprs(n.Predicates, f)
	case *plan.Projection:
		n.Projections, same, err = Exprs(n.Projections, f)
	case *plan.Aggregate:
		var sameG, sameA TreeIdentity
		if n.GroupBy, sameG, err = Exprs(n.GroupBy, f); err != nil {
			return SameTree, err
		}
		n.Aggregates, sameA, err = Exprs(n.Aggregates, f)
		same = sameG && sameA
	case *plan.Sort:
		n.SortFields, same, err = Exprs(n.SortFields, f)
	case *plan.Limit:
		n.Limit, same, err = Expr(n.Limit, f)
	}
	if err != nil {
		return SameTree, err
	}
	return same, nil
}

// ReplaceSubqueryRoot makes every subquery expression of the plan rooted at
// root that points to old point to replacement instead.
func ReplaceSubqueryRoot(g *plan.Graph, root, old, replacement sql.NodeID) error {
	var err error
	Visit(g, root, func(id sql.NodeID, _ plan.Node) Visitation {
		_, err = NodeExprs(g, id, func(e sql.Expression) (sql.Expression, TreeIdentity, error) {
			if s, ok := e.(*expression.Subquery); ok && s.Root == old {
				return expression.NewSubquery(replacement), NewTree, nil
			}
			return e, SameTree, nil
		})
		if err != nil {
			return DoNotVisitInputs
		}
		return VisitInputs
	})
	return err
}
