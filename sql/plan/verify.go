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

	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
)

// Verify checks that the plan rooted at root, and every subquery plan it
// references, is well formed: every handle is live, every node has the
// inputs its kind requires and no more, and input and output edges agree.
func Verify(g *Graph, root sql.NodeID) error {
	seen := make(map[sql.NodeID]struct{})
	stack := []sql.NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if !g.Contains(id) {
			return sql.ErrInvalidPlan.New(fmt.Sprintf("node %s does not exist but is still referenced", id))
		}
		n := g.Node(id)
		b := n.base()

		for side, in := range b.inputs {
			required := side < n.inputCount()
			if required && !in.IsValid() {
				return sql.ErrInvalidPlan.New(fmt.Sprintf("%s %s is missing its %s input", n.Describe(), id, InputSide(side)))
			}
			if !required && in.IsValid() {
				return sql.ErrInvalidPlan.New(fmt.Sprintf("%s %s has an unexpected %s input", n.Describe(), id, InputSide(side)))
			}
			if !in.IsValid() {
				continue
			}
			if !g.Contains(in) {
				return sql.ErrInvalidPlan.New(fmt.Sprintf("%s input of %s does not exist", InputSide(side), id))
			}
			if !hasOutput(g.Node(in).base(), id, InputSide(side)) {
				return sql.ErrInvalidPlan.New(fmt.Sprintf("%s is not registered as an output of %s", id, in))
			}
			stack = append(stack, in)
		}

		for _, col := range expression.Columns(n.Expressions()...) {
			if !g.Contains(col.Node()) {
				return sql.ErrInvalidPlan.New(fmt.Sprintf("column %s of %s references a missing node", col, id))
			}
			if _, ok := g.Node(col.Node()).(*StoredTable); !ok {
				return sql.ErrInvalidPlan.New(fmt.Sprintf("column %s of %s does not reference a stored table", col, id))
			}
		}

		for _, sq := range expression.Subqueries(n.Expressions()...) {
			stack = append(stack, sq.Root)
		}
	}
	return nil
}

func hasOutput(b *nodeBase, parent sql.NodeID, side InputSide) bool {
	for _, out := range b.outputs {
		if out.Node == parent && out.Side == side {
			return true
		}
	}
	return false
}

// VerifyTables checks the stored tables of the plan rooted at root, and of
// every subquery plan it references, against the catalog: each table must
// exist and each column a node reads must resolve to the same id in the
// table schema.
func VerifyTables(g *Graph, cat sql.Catalog, root sql.NodeID) error {
	seen := make(map[sql.NodeID]struct{})
	stack := []sql.NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		n := g.Node(id)
		if st, ok := n.(*StoredTable); ok {
			t, ok := cat.Table(st.Table)
			if !ok {
				return sql.ErrInvalidPlan.New(fmt.Sprintf("%s %s reads a table missing from the catalog", st.Describe(), id))
			}
			for _, c := range st.Columns() {
				name := st.ColumnName(c)
				col, ok := t.ColumnID(name)
				if !ok {
					return sql.ErrInvalidPlan.New(sql.ErrTableColumnNotFound.New(st.Table, name).Error())
				}
				if col != c.ColumnID() {
					return sql.ErrInvalidPlan.New(fmt.Sprintf("column %s of %s has id %d, table schema has %d", c, id, c.ColumnID(), col))
				}
			}
		}

		for _, in := range n.base().inputs {
			if in.IsValid() {
				stack = append(stack, in)
			}
		}
		for _, sq := range expression.Subqueries(n.Expressions()...) {
			stack = append(stack, sq.Root)
		}
	}
	return nil
}
