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
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
)

// opaqueSegment has no statistics.
type opaqueSegment int

func (s opaqueSegment) Len() int { return int(s) }

func innerJoinOn(g *plan.Graph, left, right sql.NodeID, pairs ...[2]sql.NodeID) sql.NodeID {
	preds := make([]sql.Expression, len(pairs))
	for i, p := range pairs {
		preds[i] = eq(column(g, p[0], "x"), column(g, p[1], "x"))
	}
	return g.NewJoin(plan.InnerJoin, preds, left, right)
}

func TestDipsPruning(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("mydb")
	// ranges: [1, 5] [8, 10] [10, 12]
	intTable(t, db, "base", 1, 5, 8, 10, 10, 12)
	// ranges: [6, 7] [9, 11] [12, 16]
	intTable(t, db, "partner", 6, 7, 9, 11, 12, 16)
	a := NewDefault(db)

	g := plan.NewGraph()
	base := storedTable(g, db, "base", "x")
	partner := storedTable(g, db, "partner", "x")
	j := innerJoinOn(g, base, partner, [2]sql.NodeID{base, partner})

	applyRule(t, a, dipsPruning, g, j)
	require.Equal([]sql.ChunkID{0}, prunedChunks(g, base))
	require.Equal([]sql.ChunkID{0}, prunedChunks(g, partner))
}

func TestDipsPruningPropagatesPrunedChunks(t *testing.T) {
	tests := []struct {
		name    string
		pruned  string
		swapped bool
	}{
		{name: "left input pruned", pruned: "l"},
		{name: "right input pruned", pruned: "l", swapped: true},
		{name: "root table pruned", pruned: "r"},
		{name: "root table pruned on the left", pruned: "r", swapped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			db := memory.NewDatabase("mydb")
			intTable(t, db, "l", 1, 2, 5, 6)
			intTable(t, db, "r", 1, 2, 5, 6)
			a := NewDefault(db)

			g := plan.NewGraph()
			r := storedTable(g, db, "r", "x")
			l := storedTable(g, db, "l", "x")
			tables := map[string]sql.NodeID{"l": l, "r": r}
			g.Node(tables[tt.pruned]).(*plan.StoredTable).PruneChunks(0)

			var j sql.NodeID
			if tt.swapped {
				j = innerJoinOn(g, r, l, [2]sql.NodeID{r, l})
			} else {
				j = innerJoinOn(g, l, r, [2]sql.NodeID{l, r})
			}

			applyRule(t, a, dipsPruning, g, j)
			require.Equal([]sql.ChunkID{0}, prunedChunks(g, l))
			require.Equal([]sql.ChunkID{0}, prunedChunks(g, r))
		})
	}
}

func TestDipsPruningColumnSubset(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("mydb")
	wide, err := db.CreateTable("t", sql.Schema{
		{Name: "a", Type: sql.Int64},
		{Name: "x", Type: sql.Int64},
	}, memory.WithChunkSize(2))
	require.NoError(err)
	// a is [100, 200] in every chunk, x is [1, 2] then [50, 60]
	require.NoError(wide.Insert(
		[]sql.Value{int64(100), int64(1)},
		[]sql.Value{int64(200), int64(2)},
		[]sql.Value{int64(100), int64(50)},
		[]sql.Value{int64(200), int64(60)},
	))
	intTable(t, db, "u", 1, 2)
	a := NewDefault(db)

	g := plan.NewGraph()
	tt := storedTable(g, db, "t", "x")
	u := storedTable(g, db, "u", "x")
	require.Equal(sql.ColumnID(1), column(g, tt, "x").ColumnID())
	j := innerJoinOn(g, tt, u, [2]sql.NodeID{tt, u})

	applyRule(t, a, dipsPruning, g, j)
	require.Equal([]sql.ChunkID{1}, prunedChunks(g, tt))
	require.Empty(prunedChunks(g, u))
}

func TestDipsPruningTopDown(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("mydb")
	intTable(t, db, "a", 5, 6)
	intTable(t, db, "b", 1, 2, 5, 6)
	intTable(t, db, "c", 1, 2, 5, 6)
	an := NewDefault(db)

	g := plan.NewGraph()
	ta := storedTable(g, db, "a", "x")
	tb := storedTable(g, db, "b", "x")
	tc := storedTable(g, db, "c", "x")
	ab := innerJoinOn(g, ta, tb, [2]sql.NodeID{ta, tb})
	abc := innerJoinOn(g, ab, tc, [2]sql.NodeID{tb, tc})

	// a is the root of the join tree; c only learns about it through b
	applyRule(t, an, dipsPruning, g, abc)
	require.Empty(prunedChunks(g, ta))
	require.Equal([]sql.ChunkID{0}, prunedChunks(g, tb))
	require.Equal([]sql.ChunkID{0}, prunedChunks(g, tc))
}

func TestDipsPruningSkipped(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *plan.Graph, cat sql.Catalog) (root sql.NodeID, tables []sql.NodeID)
	}{
		{
			name: "cycle",
			build: func(g *plan.Graph, cat sql.Catalog) (sql.NodeID, []sql.NodeID) {
				ta := storedTable(g, cat, "a", "x")
				tb := storedTable(g, cat, "b", "x")
				tc := storedTable(g, cat, "c", "x")
				ab := innerJoinOn(g, ta, tb, [2]sql.NodeID{ta, tb})
				abc := innerJoinOn(g, ab, tc, [2]sql.NodeID{tb, tc}, [2]sql.NodeID{ta, tc})
				return abc, []sql.NodeID{ta, tb, tc}
			},
		},
		{
			name: "shared table",
			build: func(g *plan.Graph, cat sql.Catalog) (sql.NodeID, []sql.NodeID) {
				ta := storedTable(g, cat, "a", "x")
				tb := storedTable(g, cat, "b", "x")
				ab := innerJoinOn(g, ta, tb, [2]sql.NodeID{ta, tb})
				return g.NewJoin(plan.CrossJoin, nil, ab, ta), []sql.NodeID{ta, tb}
			},
		},
		{
			name: "left join",
			build: func(g *plan.Graph, cat sql.Catalog) (sql.NodeID, []sql.NodeID) {
				ta := storedTable(g, cat, "a", "x")
				tb := storedTable(g, cat, "b", "x")
				return g.NewJoin(plan.LeftJoin, []sql.Expression{eq(column(g, ta, "x"), column(g, tb, "x"))}, ta, tb),
					[]sql.NodeID{ta, tb}
			},
		},
		{
			name: "aggregate below the join",
			build: func(g *plan.Graph, cat sql.Catalog) (sql.NodeID, []sql.NodeID) {
				ta := storedTable(g, cat, "a", "x")
				tb := storedTable(g, cat, "b", "x")
				agg := g.NewAggregate([]sql.Expression{column(g, tb, "x")}, nil, tb)
				return g.NewJoin(plan.InnerJoin, []sql.Expression{eq(column(g, ta, "x"), column(g, tb, "x"))}, ta, agg),
					[]sql.NodeID{ta, tb}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			db := memory.NewDatabase("mydb")
			intTable(t, db, "a", 1, 2, 5, 6)
			intTable(t, db, "b", 5, 6, 9, 10)
			intTable(t, db, "c", 1, 2, 9, 10)
			a := NewDefault(db)

			g := plan.NewGraph()
			root, tables := tt.build(g, db)
			applyRule(t, a, dipsPruning, g, root)
			for _, table := range tables {
				require.Empty(prunedChunks(g, table))
			}
		})
	}
}

func TestDipsPruningUnsupportedPartner(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("mydb")
	intTable(t, db, "base", 1, 2)
	partnerTable := intTable(t, db, "partner", 5, 6)
	require.NoError(partnerTable.AppendChunk(opaqueSegment(2)))
	a := NewDefault(db)

	g := plan.NewGraph()
	base := storedTable(g, db, "base", "x")
	partner := storedTable(g, db, "partner", "x")
	j := innerJoinOn(g, base, partner, [2]sql.NodeID{base, partner})

	applyRule(t, a, dipsPruning, g, j)
	// the opaque chunk may hold any value
	require.Empty(prunedChunks(g, base))
	require.Equal([]sql.ChunkID{0}, prunedChunks(g, partner))
}
