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
	"golang.org/x/exp/slices"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
	"github.com/dolthub/go-mysql-optimizer/sql/transform"
)

var (
	// ErrJoinWithoutPredicate is raised when a join that is not a cross join
	// has no join predicate.
	ErrJoinWithoutPredicate = errors.NewKind("%s join %s has no join predicate")

	// ErrNoExchangeableColumn is raised when the operands of an equality join
	// predicate can't be split between the removable and the used side.
	ErrNoExchangeableColumn = errors.NewKind("join predicate %s must have exactly one operand evaluable on %s, got %d")
)

// joinToPredicate replaces a join whose removable side is filtered down to
// at most one row by a predicate comparing the join column of the used side
// to a scalar subquery over the removable side:
//
//	Join(a.x = b.y)              Predicate(a.x = SUBQUERY)
//	 ├─ A                ==>      └─ A
//	 └─ Predicate(b.z = 5)       SUBQUERY: Projection(b.y)
//	     └─ B                              └─ Predicate(b.z = 5)
//
// A side is removable if nothing above the join uses its columns (inner
// joins) or if it is the right side of a semi join. The rewrite requires
// the exchangeable column b.y to be unique on the removable side, and the
// filter column b.z to be either b.y or unique as well.
func joinToPredicate(ctx *sql.Context, a *Analyzer, g *plan.Graph, root sql.NodeID) error {
	span, ctx := ctx.Span("join_to_predicate")
	defer span.Finish()

	var joins []sql.NodeID
	transform.Visit(g, root, func(id sql.NodeID, n plan.Node) transform.Visitation {
		if j, ok := n.(*plan.Join); ok && (j.Mode == plan.InnerJoin || j.Mode == plan.SemiJoin) {
			joins = append(joins, id)
		}
		return transform.VisitInputs
	})

	for _, id := range joins {
		// an earlier rewrite may have removed the join, or moved it into a
		// new subquery plan, which is rewritten on its own
		if !slices.Contains(transform.Nodes(g, root), id) {
			continue
		}
		if rewriteJoin(a, g, root, id) {
			a.Log("join %s replaced by a predicate", id)
		}
	}

	return nil
}

func rewriteJoin(a *Analyzer, g *plan.Graph, root, id sql.NodeID) bool {
	j := g.Node(id).(*plan.Join)
	if len(j.Predicates) == 0 {
		panic(ErrJoinWithoutPredicate.New(j.Mode, id))
	}
	// dropping the other predicates would make the rewrite unsound
	if len(j.Predicates) > 1 {
		return false
	}
	p, ok := j.Predicates[0].(*expression.BinaryPredicate)
	if !ok || p.Condition != expression.Equals {
		return false
	}

	var sides []plan.InputSide
	switch j.Mode {
	case plan.SemiJoin:
		sides = []plan.InputSide{plan.RightInput}
	case plan.InnerJoin:
		used := usedColumns(g, root, id)
		for _, side := range []plan.InputSide{plan.RightInput, plan.LeftInput} {
			if !anyColumnAvailable(g, used, g.Input(id, side)) {
				sides = append(sides, side)
			}
		}
	}

	for _, side := range sides {
		if rewriteJoinSide(a, g, id, p, side) {
			return true
		}
	}
	return false
}

func rewriteJoinSide(a *Analyzer, g *plan.Graph, id sql.NodeID, p *expression.BinaryPredicate, side plan.InputSide) bool {
	removable := g.Input(id, side)
	usedSide := plan.LeftInput
	if side == plan.LeftInput {
		usedSide = plan.RightInput
	}
	used := g.Input(id, usedSide)

	exchangeable, usedOperand := exchangeableOperand(g, p, removable)
	col, ok := exchangeable.(*expression.Column)
	if !ok {
		return false
	}

	if !plan.HasMatchingUniqueColumnCombination(g, a.Catalog, removable, col) {
		a.Log("%s is not unique on %s", col, removable)
		return false
	}

	filter, ok := findSingleRowFilter(a, g, removable, col)
	if !ok {
		a.Log("no equality filter on a unique column below %s", removable)
		return false
	}

	projection := g.NewProjection([]sql.Expression{col}, filter)
	condition := expression.NewEquals(usedOperand, expression.NewSubquery(projection))
	predicate := g.NewPredicate(condition, used)
	g.ReplaceNode(id, predicate)
	return true
}

// exchangeableOperand splits the operands of the predicate into the one
// evaluable on the removable side and the other one.
func exchangeableOperand(g *plan.Graph, p *expression.BinaryPredicate, removable sql.NodeID) (exchangeable, other sql.Expression) {
	left := evaluableOnInput(g, p.Left, removable)
	right := evaluableOnInput(g, p.Right, removable)
	switch {
	case left && !right:
		return p.Left, p.Right
	case right && !left:
		return p.Right, p.Left
	case left && right:
		panic(ErrNoExchangeableColumn.New(p, removable, 2))
	default:
		panic(ErrNoExchangeableColumn.New(p, removable, 0))
	}
}

// evaluableOnInput is like ExpressionEvaluableOn, but constants don't belong
// to any input.
func evaluableOnInput(g *plan.Graph, e sql.Expression, id sql.NodeID) bool {
	if _, ok := e.(*expression.Subquery); !ok && len(expression.Columns(e)) == 0 {
		return false
	}
	return g.ExpressionEvaluableOn(e, id)
}

// findSingleRowFilter returns the first predicate node below removable, in
// depth-first order, that compares a column to a constant, where the
// column is either col or unique, and col is still evaluable on it.
func findSingleRowFilter(a *Analyzer, g *plan.Graph, removable sql.NodeID, col *expression.Column) (sql.NodeID, bool) {
	result := sql.InvalidNodeID
	transform.Visit(g, removable, func(id sql.NodeID, n plan.Node) transform.Visitation {
		if result.IsValid() {
			return transform.DoNotVisitInputs
		}
		p, ok := n.(*plan.Predicate)
		if !ok {
			return transform.VisitInputs
		}
		filterCol, _, ok := expression.ColumnEqualsValue(p.Predicate)
		if !ok || !g.IsColumnAvailable(filterCol, id) || !g.IsColumnAvailable(col, id) {
			return transform.VisitInputs
		}
		if filterCol.Equals(col) || plan.HasMatchingUniqueColumnCombination(g, a.Catalog, id, filterCol) {
			result = id
			return transform.DoNotVisitInputs
		}
		return transform.VisitInputs
	})
	return result, result.IsValid()
}

// usedColumns returns the columns required by the live ancestors of the
// node, including the columns referenced from subquery plans held by them.
func usedColumns(g *plan.Graph, root, id sql.NodeID) []*expression.Column {
	live := g.Reachable(root)
	var cols []*expression.Column
	seen := map[sql.NodeID]struct{}{id: {}}
	queue := []sql.NodeID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, out := range g.Outputs(cur) {
			if _, ok := live[out.Node]; !ok {
				continue
			}
			if _, ok := seen[out.Node]; ok {
				continue
			}
			seen[out.Node] = struct{}{}
			queue = append(queue, out.Node)
			cols = append(cols, referencedColumns(g, g.RequiredExpressions(out.Node))...)
		}
	}
	return cols
}

// referencedColumns returns the columns of the expressions and of every
// node of the subquery plans they hold.
func referencedColumns(g *plan.Graph, exprs []sql.Expression) []*expression.Column {
	cols := expression.Columns(exprs...)
	for _, sq := range expression.Subqueries(exprs...) {
		transform.InspectExpressions(g, sq.Root, func(e sql.Expression) bool {
			switch e := e.(type) {
			case *expression.Column:
				cols = append(cols, e)
			case *expression.Subquery:
				cols = append(cols, referencedColumns(g, []sql.Expression{e})...)
			}
			return true
		})
	}
	return cols
}

func anyColumnAvailable(g *plan.Graph, cols []*expression.Column, id sql.NodeID) bool {
	for _, c := range cols {
		if g.IsColumnAvailable(c, id) {
			return true
		}
	}
	return false
}
