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

package transform

import (
	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
)

// Visitation tells Visit whether to descend into the inputs of a node.
type Visitation uint8

const (
	// VisitInputs makes Visit continue with the inputs of the node.
	VisitInputs Visitation = iota
	// DoNotVisitInputs stops the walk below the node.
	DoNotVisitInputs
)

// Visitor is invoked for each node encountered by Visit.
type Visitor func(id sql.NodeID, n plan.Node) Visitation

// Visit traverses the plan rooted at root in depth-first pre-order, left
// input first. Each node is passed to the visitor exactly once, even when it
// is reachable through several parents. Inputs of a node are only visited if
// the visitor returned VisitInputs for it. Subquery plans are never entered.
func Visit(g *plan.Graph, root sql.NodeID, v Visitor) {
	visited := make(map[sql.NodeID]struct{})
	stack := []sql.NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}

		n := g.Node(id)
		if v(id, n) != VisitInputs {
			continue
		}

		// right is pushed first so that left is visited first
		if right := n.Right(); right.IsValid() {
			stack = append(stack, right)
		}
		if left := n.Left(); left.IsValid() {
			stack = append(stack, left)
		}
	}
}

// Inspect is a shorthand for Visit with a visitor returning a boolean: true
// visits the inputs.
func Inspect(g *plan.Graph, root sql.NodeID, f func(sql.NodeID, plan.Node) bool) {
	Visit(g, root, func(id sql.NodeID, n plan.Node) Visitation {
		if f(id, n) {
			return VisitInputs
		}
		return DoNotVisitInputs
	})
}

// Nodes returns the nodes of the plan in visiting order.
func Nodes(g *plan.Graph, root sql.NodeID) []sql.NodeID {
	var ids []sql.NodeID
	Visit(g, root, func(id sql.NodeID, _ plan.Node) Visitation {
		ids = append(ids, id)
		return VisitInputs
	})
	return ids
}

// Subqueries returns the roots of the subquery plans referenced by the
// expressions of the plan rooted at root. Subqueries nested inside those
// plans are not included.
func Subqueries(g *plan.Graph, root sql.NodeID) []sql.NodeID {
	var roots []sql.NodeID
	seen := make(map[sql.NodeID]struct{})
	Visit(g, root, func(_ sql.NodeID, n plan.Node) Visitation {
		for _, s := range expression.Subqueries(n.Expressions()...) {
			if _, ok := seen[s.Root]; ok {
				continue
			}
			seen[s.Root] = struct{}{}
			roots = append(roots, s.Root)
		}
		return VisitInputs
	})
	return roots
}

// InspectExpressions calls f for every expression held by the nodes of the
// plan, including nested operands. Returning false from f stops the descent
// into the operands of that expression.
func InspectExpressions(g *plan.Graph, root sql.NodeID, f func(sql.Expression) bool) {
	Visit(g, root, func(_ sql.NodeID, n plan.Node) Visitation {
		for _, e := range n.Expressions() {
			expression.Inspect(e, f)
		}
		return VisitInputs
	})
}
