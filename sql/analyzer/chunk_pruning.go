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
	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
	"github.com/dolthub/go-mysql-optimizer/sql/stats"
	"github.com/dolthub/go-mysql-optimizer/sql/transform"
)

// pruneChunksByPredicate prunes the chunks of a stored table that can't hold
// a row satisfying a `column <op> constant` predicate placed above it.
func pruneChunksByPredicate(ctx *sql.Context, a *Analyzer, g *plan.Graph, root sql.NodeID) error {
	span, ctx := ctx.Span("chunk_pruning")
	defer span.Finish()

	transform.Visit(g, root, func(id sql.NodeID, n plan.Node) transform.Visitation {
		p, ok := n.(*plan.Predicate)
		if !ok {
			return transform.VisitInputs
		}
		bp, ok := p.Predicate.(*expression.BinaryPredicate)
		if !ok {
			return transform.VisitInputs
		}
		col, lit, cond, ok := expression.ColumnComparedToValue(bp)
		if !ok || lit.Value() == nil {
			return transform.VisitInputs
		}

		st, ok := g.Node(col.Node()).(*plan.StoredTable)
		if !ok || !exclusivelyFeeds(g, col.Node(), id, isFilter) {
			return transform.VisitInputs
		}
		t, ok := a.Catalog.Table(st.Table)
		if !ok {
			return transform.VisitInputs
		}

		var pruned []sql.ChunkID
		for chunk := sql.ChunkID(0); chunk < t.ChunkCount(); chunk++ {
			if st.IsChunkPruned(chunk) {
				continue
			}
			s := stats.Statistics(t.Chunk(chunk).Segment(col.ColumnID()))
			if s.Supported && s.HasRange && !mayMatch(s.Range, cond, lit.Value()) {
				pruned = append(pruned, chunk)
			}
		}
		if len(pruned) > 0 && st.PruneChunks(pruned...) {
			a.Log("pruned chunks %v of %s by %s", pruned, st.Table, bp)
		}
		return transform.VisitInputs
	})

	return nil
}

// mayMatch returns whether a value of the range may satisfy
// `value <cond> v`. Incomparable values may always match.
func mayMatch(r stats.ValueRange, cond expression.PredicateCondition, v sql.Value) bool {
	switch cond {
	case expression.Equals:
		return r.Contains(v)
	case expression.NotEquals:
		lo, err1 := stats.Compare(r.Min, v)
		hi, err2 := stats.Compare(r.Max, v)
		return err1 != nil || err2 != nil || lo != 0 || hi != 0
	case expression.LessThan:
		c, err := stats.Compare(r.Min, v)
		return err != nil || c < 0
	case expression.LessThanOrEqual:
		c, err := stats.Compare(r.Min, v)
		return err != nil || c <= 0
	case expression.GreaterThan:
		c, err := stats.Compare(r.Max, v)
		return err != nil || c > 0
	case expression.GreaterThanOrEqual:
		c, err := stats.Compare(r.Max, v)
		return err != nil || c >= 0
	default:
		return true
	}
}

func isFilter(n plan.Node) bool {
	switch n.(type) {
	case *plan.Predicate, *plan.Validate:
		return true
	default:
		return false
	}
}

// exclusivelyFeeds returns whether every row read by the stored table
// reaches the target node, walking up through single-output nodes accepted
// by through. Pruning chunks of a table that other parents read as well
// would change their results.
func exclusivelyFeeds(g *plan.Graph, table, target sql.NodeID, through func(plan.Node) bool) bool {
	cur := table
	for cur != target {
		outputs := g.Outputs(cur)
		if len(outputs) != 1 {
			return false
		}
		parent := outputs[0].Node
		if parent != target && !through(g.Node(parent)) {
			return false
		}
		cur = parent
	}
	return true
}
