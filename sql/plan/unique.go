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

// UniqueColumnCombination is a set of columns whose value tuples are unique
// in the output of a node.
type UniqueColumnCombination []*expression.Column

// CoveredBy returns whether every column of the combination is in cols.
func (u UniqueColumnCombination) CoveredBy(cols []*expression.Column) bool {
	for _, c := range u {
		if !containsColumn(cols, c) {
			return false
		}
	}
	return true
}

func containsColumn(cols []*expression.Column, col *expression.Column) bool {
	for _, c := range cols {
		if c.Equals(col) {
			return true
		}
	}
	return false
}

// UniqueColumnCombinations derives the unique column combinations that hold
// for the output of the node, starting from the key constraints registered
// on the stored tables of the catalog.
func UniqueColumnCombinations(g *Graph, cat sql.Catalog, id sql.NodeID) []UniqueColumnCombination {
	switch n := g.Node(id).(type) {
	case *StoredTable:
		t, ok := cat.Table(n.Table)
		if !ok {
			return nil
		}
		var uccs []UniqueColumnCombination
		for _, kc := range t.KeyConstraints() {
			ucc := make(UniqueColumnCombination, 0, len(kc.Columns))
			for _, col := range kc.Columns {
				c := n.Column(col)
				if c == nil {
					ucc = nil
					break
				}
				ucc = append(ucc, c)
			}
			if len(ucc) > 0 {
				uccs = append(uccs, ucc)
			}
		}
		return uccs

	case *Root, *Predicate, *Sort, *Validate, *Limit:
		return UniqueColumnCombinations(g, cat, n.Left())

	case *Projection:
		return filterAvailable(g, UniqueColumnCombinations(g, cat, n.Left()), id)

	case *Aggregate:
		var uccs []UniqueColumnCombination
		groupBy := make(UniqueColumnCombination, 0, len(n.GroupBy))
		for _, e := range n.GroupBy {
			c, ok := e.(*expression.Column)
			if !ok {
				groupBy = nil
				break
			}
			groupBy = append(groupBy, c)
		}
		if len(groupBy) > 0 {
			uccs = append(uccs, groupBy)
			for _, u := range UniqueColumnCombinations(g, cat, n.Left()) {
				if len(u) < len(groupBy) && u.CoveredBy(groupBy) {
					uccs = append(uccs, u)
				}
			}
		}
		return uccs

	case *Join:
		return joinUniqueColumnCombinations(g, cat, n)

	default:
		return nil
	}
}

// joinUniqueColumnCombinations keeps the combinations of a side when every
// row of that side matches at most one row of the other side, that is when
// the join columns of the other side are unique.
func joinUniqueColumnCombinations(g *Graph, cat sql.Catalog, j *Join) []UniqueColumnCombination {
	left := UniqueColumnCombinations(g, cat, j.Left())
	if j.Mode == SemiJoin || j.Mode == AntiSemiJoin {
		return left
	}
	if j.Mode == CrossJoin || j.Mode == FullOuterJoin {
		return nil
	}

	right := UniqueColumnCombinations(g, cat, j.Right())
	var leftKeys, rightKeys []*expression.Column
	for _, p := range j.EqualityPredicates() {
		l, lok := p.Left.(*expression.Column)
		r, rok := p.Right.(*expression.Column)
		if !lok || !rok {
			continue
		}
		if g.IsColumnAvailable(l, j.Left()) && g.IsColumnAvailable(r, j.Right()) {
			leftKeys, rightKeys = append(leftKeys, l), append(rightKeys, r)
		} else if g.IsColumnAvailable(r, j.Left()) && g.IsColumnAvailable(l, j.Right()) {
			leftKeys, rightKeys = append(leftKeys, r), append(rightKeys, l)
		}
	}

	rightKeyUnique := matchesAny(right, rightKeys)
	leftKeyUnique := matchesAny(left, leftKeys)

	var uccs []UniqueColumnCombination
	switch j.Mode {
	case InnerJoin:
		if rightKeyUnique {
			uccs = append(uccs, left...)
		}
		if leftKeyUnique {
			uccs = append(uccs, right...)
		}
	case LeftJoin:
		if rightKeyUnique {
			uccs = append(uccs, left...)
		}
	case RightJoin:
		if leftKeyUnique {
			uccs = append(uccs, right...)
		}
	}
	return uccs
}

func matchesAny(uccs []UniqueColumnCombination, cols []*expression.Column) bool {
	if len(cols) == 0 {
		return false
	}
	for _, u := range uccs {
		if u.CoveredBy(cols) {
			return true
		}
	}
	return false
}

func filterAvailable(g *Graph, uccs []UniqueColumnCombination, id sql.NodeID) []UniqueColumnCombination {
	var result []UniqueColumnCombination
	for _, u := range uccs {
		available := true
		for _, c := range u {
			if !g.IsColumnAvailable(c, id) {
				available = false
				break
			}
		}
		if available {
			result = append(result, u)
		}
	}
	return result
}

// HasMatchingUniqueColumnCombination returns whether some unique column
// combination of the node is covered by the given columns.
func HasMatchingUniqueColumnCombination(g *Graph, cat sql.Catalog, id sql.NodeID, cols ...*expression.Column) bool {
	return matchesAny(UniqueColumnCombinations(g, cat, id), cols)
}
