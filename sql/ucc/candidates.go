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

package ucc

import (
	"fmt"
	"sort"

	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
	"github.com/dolthub/go-mysql-optimizer/sql/transform"
)

// Candidate is a column of a stored table that may turn out to be unique.
type Candidate struct {
	Table  string
	Column sql.ColumnID
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s.%d", c.Table, c.Column)
}

// Candidates is a set of candidates.
type Candidates map[Candidate]struct{}

// NewCandidates returns an empty candidate set.
func NewCandidates() Candidates {
	return make(Candidates)
}

// Add adds the candidate for the column.
func (c Candidates) Add(g *plan.Graph, col *expression.Column) {
	t := g.StoredTableOf(col)
	c[Candidate{Table: t.Table, Column: col.ColumnID()}] = struct{}{}
}

// Contains returns whether the candidate is in the set.
func (c Candidates) Contains(cand Candidate) bool {
	_, ok := c[cand]
	return ok
}

// Sorted returns the candidates ordered by table and column.
func (c Candidates) Sorted() []Candidate {
	result := make([]Candidate, 0, len(c))
	for cand := range c {
		result = append(result, cand)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Table != result[j].Table {
			return result[i].Table < result[j].Table
		}
		return result[i].Column < result[j].Column
	})
	return result
}

// AddFromPlan collects the candidates suggested by the plan rooted at root
// and by its subquery plans.
func (c Candidates) AddFromPlan(g *plan.Graph, root sql.NodeID) {
	transform.Visit(g, root, func(_ sql.NodeID, n plan.Node) transform.Visitation {
		switch n := n.(type) {
		case *plan.Aggregate:
			c.addFromAggregate(g, n)
		case *plan.Join:
			c.addFromJoin(g, n)
		}
		return transform.VisitInputs
	})

	for _, sq := range transform.Subqueries(g, root) {
		c.AddFromPlan(g, sq)
	}
}

// addFromAggregate adds every group-by column: if it is unique, the
// aggregation can be simplified.
func (c Candidates) addFromAggregate(g *plan.Graph, a *plan.Aggregate) {
	for _, e := range a.GroupBy {
		if col, ok := e.(*expression.Column); ok {
			c.Add(g, col)
		}
	}
}

// addFromJoin adds the join columns of the sides the join mode would allow
// to eliminate, and the columns of the same table that are filtered by
// equality to a constant below those sides.
func (c Candidates) addFromJoin(g *plan.Graph, j *plan.Join) {
	for _, p := range j.EqualityPredicates() {
		leftCol, rightCol, ok := joinColumns(g, j, p)
		if !ok {
			continue
		}

		switch j.Mode {
		case plan.InnerJoin:
			c.addFromRemovableInput(g, j.Left(), leftCol)
			c.addFromRemovableInput(g, j.Right(), rightCol)
		case plan.LeftJoin, plan.SemiJoin:
			c.addFromRemovableInput(g, j.Right(), rightCol)
		case plan.RightJoin:
			c.addFromRemovableInput(g, j.Left(), leftCol)
		}
	}
}

func (c Candidates) addFromRemovableInput(g *plan.Graph, input sql.NodeID, joinCol *expression.Column) {
	c.Add(g, joinCol)
	joinTable := g.StoredTableOf(joinCol).Table

	transform.Visit(g, input, func(_ sql.NodeID, n plan.Node) transform.Visitation {
		p, ok := n.(*plan.Predicate)
		if !ok {
			return transform.VisitInputs
		}
		col, _, ok := expression.ColumnEqualsValue(p.Predicate)
		if !ok || col.Equals(joinCol) {
			return transform.VisitInputs
		}
		if g.StoredTableOf(col).Table == joinTable {
			c.Add(g, col)
			c.Add(g, joinCol)
		}
		return transform.VisitInputs
	})
}

// joinColumns returns the operands of an equality join predicate ordered by
// the join input they come from.
func joinColumns(g *plan.Graph, j *plan.Join, p *expression.BinaryPredicate) (left, right *expression.Column, ok bool) {
	l, lok := p.Left.(*expression.Column)
	r, rok := p.Right.(*expression.Column)
	if !lok || !rok {
		return nil, nil, false
	}
	switch {
	case g.IsColumnAvailable(l, j.Left()) && g.IsColumnAvailable(r, j.Right()):
		return l, r, true
	case g.IsColumnAvailable(r, j.Left()) && g.IsColumnAvailable(l, j.Right()):
		return r, l, true
	default:
		return nil, nil, false
	}
}
