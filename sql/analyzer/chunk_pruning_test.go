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

	"github.com/dolthub/go-mysql-optimizer/memory"
	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
	"github.com/dolthub/go-mysql-optimizer/sql/stats"
)

func TestPruneChunksByPredicate(t *testing.T) {
	db := memory.NewDatabase("mydb")
	// chunk ranges: [1, 2] [5, 6] [9, 10]
	intTable(t, db, "t", 1, 2, 5, 6, 9, 10)
	a := NewDefault(db)

	tests := []struct {
		name     string
		pred     func(x *expression.Column) sql.Expression
		expected []sql.ChunkID
	}{
		{
			name:     "equality",
			pred:     func(x *expression.Column) sql.Expression { return eq(x, lit(int64(5))) },
			expected: []sql.ChunkID{0, 2},
		},
		{
			name: "greater than",
			pred: func(x *expression.Column) sql.Expression {
				return expression.NewGreaterThan(x, lit(int64(6)))
			},
			expected: []sql.ChunkID{0, 1},
		},
		{
			name: "literal on the left",
			pred: func(x *expression.Column) sql.Expression {
				return expression.NewLessThan(lit(int64(6)), x)
			},
			expected: []sql.ChunkID{0, 1},
		},
		{
			name: "less than or equal",
			pred: func(x *expression.Column) sql.Expression {
				return expression.NewBinaryPredicate(expression.LessThanOrEqual, x, lit(int64(2)))
			},
			expected: []sql.ChunkID{1, 2},
		},
		{
			name: "not equals",
			pred: func(x *expression.Column) sql.Expression {
				return expression.NewBinaryPredicate(expression.NotEquals, x, lit(int64(1)))
			},
			expected: []sql.ChunkID{},
		},
		{
			name:     "value out of every range",
			pred:     func(x *expression.Column) sql.Expression { return eq(x, lit(int64(42))) },
			expected: []sql.ChunkID{0, 1, 2},
		},
		{
			name:     "NULL literal",
			pred:     func(x *expression.Column) sql.Expression { return eq(x, lit(nil)) },
			expected: []sql.ChunkID{},
		},
		{
			name:     "incomparable literal",
			pred:     func(x *expression.Column) sql.Expression { return eq(x, lit("5")) },
			expected: []sql.ChunkID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			g := plan.NewGraph()
			table := storedTable(g, db, "t", "x")
			p := g.NewPredicate(tt.pred(column(g, table, "x")), g.NewValidate(table))

			applyRule(t, a, pruneChunksByPredicate, g, p)
			require.Equal(tt.expected, prunedChunks(g, table))
		})
	}
}

func TestPruneChunksByPredicateSharedTable(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("mydb")
	intTable(t, db, "t", 1, 2, 5, 6)
	a := NewDefault(db)

	g := plan.NewGraph()
	table := storedTable(g, db, "t", "x")
	p := g.NewPredicate(eq(column(g, table, "x"), lit(int64(5))), table)
	root := g.NewUnion(plan.UnionAll, p, table)

	applyRule(t, a, pruneChunksByPredicate, g, root)
	require.Empty(prunedChunks(g, table))
}

func TestPruneChunksByPredicateAboveJoin(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("mydb")
	intTable(t, db, "t", 1, 2, 5, 6)
	intTable(t, db, "u", 1, 2, 5, 6)
	a := NewDefault(db)

	g := plan.NewGraph()
	tt := storedTable(g, db, "t", "x")
	u := storedTable(g, db, "u", "x")
	j := g.NewJoin(plan.CrossJoin, nil, tt, u)
	p := g.NewPredicate(eq(column(g, tt, "x"), lit(int64(5))), j)

	// the join sits between the table and the predicate
	applyRule(t, a, pruneChunksByPredicate, g, p)
	require.Empty(prunedChunks(g, tt))
}

func TestMayMatch(t *testing.T) {
	require := require.New(t)
	r := stats.ValueRange{Min: int64(5), Max: int64(10)}

	require.True(mayMatch(r, expression.Equals, int64(5)))
	require.False(mayMatch(r, expression.Equals, int64(11)))
	require.True(mayMatch(r, expression.LessThan, int64(6)))
	require.False(mayMatch(r, expression.LessThan, int64(5)))
	require.True(mayMatch(r, expression.GreaterThanOrEqual, int64(10)))
	require.False(mayMatch(r, expression.GreaterThan, int64(10)))
	require.False(mayMatch(stats.ValueRange{Min: int64(3), Max: int64(3)}, expression.NotEquals, int64(3)))
	require.True(mayMatch(r, expression.Equals, "x"))
}
