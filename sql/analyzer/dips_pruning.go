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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
	"github.com/dolthub/go-mysql-optimizer/sql/stats"
	"github.com/dolthub/go-mysql-optimizer/sql/transform"
)

// dipsPruning propagates the chunk value ranges of the stored tables of a
// join graph along its equality predicates and prunes the chunks that can't
// find a join partner. Each connected part of the join graph must be a
// tree; parts with cycles are left alone.
func dipsPruning(ctx *sql.Context, a *Analyzer, g *plan.Graph, root sql.NodeID) error {
	span, ctx := ctx.Span("dips_pruning")
	defer span.Finish()

	jg := buildDipsGraph(g, root)
	for _, component := range jg.components() {
		if !jg.isTree(component) {
			a.Log("join graph over %v is not a tree, skipping", component)
			continue
		}
		// bottom-up, then top-down from the same root
		r := component[0]
		jg.bottomUp(a, g, r, sql.InvalidNodeID)
		jg.topDown(a, g, r, sql.InvalidNodeID)
	}

	return nil
}

// dipsEdge holds the equality predicates between the columns of two stored
// tables. Columns are ordered as the vertices of the edge key.
type dipsEdge struct {
	columns [][2]*expression.Column
}

type edgeKey [2]sql.NodeID

func newEdgeKey(a, b sql.NodeID) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// dipsGraph is the join graph: its vertices are stored table nodes and its
// edges the equality join predicates between their columns.
type dipsGraph struct {
	adjacency map[sql.NodeID][]sql.NodeID
	edges     map[edgeKey]*dipsEdge
}

func buildDipsGraph(g *plan.Graph, root sql.NodeID) *dipsGraph {
	jg := &dipsGraph{
		adjacency: make(map[sql.NodeID][]sql.NodeID),
		edges:     make(map[edgeKey]*dipsEdge),
	}

	transform.Visit(g, root, func(id sql.NodeID, n plan.Node) transform.Visitation {
		j, ok := n.(*plan.Join)
		if !ok || (j.Mode != plan.InnerJoin && j.Mode != plan.SemiJoin) {
			return transform.VisitInputs
		}
		for _, p := range j.EqualityPredicates() {
			l, lok := p.Left.(*expression.Column)
			r, rok := p.Right.(*expression.Column)
			if !lok || !rok || l.Node() == r.Node() {
				continue
			}
			if !isPrunableVertex(g, l.Node(), id) || !isPrunableVertex(g, r.Node(), id) {
				continue
			}
			jg.addEdge(l, r)
		}
		return transform.VisitInputs
	})

	return jg
}

// isPrunableVertex returns whether the node is a stored table whose rows
// only reach the join through nodes that neither add rows nor depend on
// rows the join discards.
func isPrunableVertex(g *plan.Graph, id, join sql.NodeID) bool {
	if _, ok := g.Node(id).(*plan.StoredTable); !ok {
		return false
	}
	return exclusivelyFeeds(g, id, join, func(n plan.Node) bool {
		switch n := n.(type) {
		case *plan.Predicate, *plan.Validate, *plan.Projection, *plan.Sort:
			return true
		case *plan.Join:
			return n.Mode == plan.InnerJoin || n.Mode == plan.SemiJoin
		default:
			return false
		}
	})
}

func (jg *dipsGraph) addEdge(a, b *expression.Column) {
	key := newEdgeKey(a.Node(), b.Node())
	if key[0] != a.Node() {
		a, b = b, a
	}

	e, ok := jg.edges[key]
	if !ok {
		e = &dipsEdge{}
		jg.edges[key] = e
		jg.adjacency[key[0]] = append(jg.adjacency[key[0]], key[1])
		jg.adjacency[key[1]] = append(jg.adjacency[key[1]], key[0])
	}
	e.columns = append(e.columns, [2]*expression.Column{a, b})
}

// components returns the connected components of the graph, each sorted by
// node handle, ordered by their first vertex.
func (jg *dipsGraph) components() [][]sql.NodeID {
	vertices := maps.Keys(jg.adjacency)
	slices.Sort(vertices)

	seen := make(map[sql.NodeID]struct{})
	var result [][]sql.NodeID
	for _, v := range vertices {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		component := []sql.NodeID{v}
		for queue := []sql.NodeID{v}; len(queue) > 0; queue = queue[1:] {
			for _, next := range jg.adjacency[queue[0]] {
				if _, ok := seen[next]; !ok {
					seen[next] = struct{}{}
					component = append(component, next)
					queue = append(queue, next)
				}
			}
		}
		slices.Sort(component)
		result = append(result, component)
	}
	return result
}

// isTree returns whether the connected component has no cycle.
func (jg *dipsGraph) isTree(component []sql.NodeID) bool {
	var degrees int
	for _, v := range component {
		degrees += len(jg.adjacency[v])
	}
	return degrees/2 == len(component)-1
}

func (jg *dipsGraph) bottomUp(a *Analyzer, g *plan.Graph, v, parent sql.NodeID) {
	for _, child := range jg.adjacency[v] {
		if child != parent {
			jg.bottomUp(a, g, child, v)
		}
	}
	if parent.IsValid() {
		jg.pruneBy(a, g, parent, v)
	}
}

func (jg *dipsGraph) topDown(a *Analyzer, g *plan.Graph, v, parent sql.NodeID) {
	for _, child := range jg.adjacency[v] {
		if child != parent {
			jg.pruneBy(a, g, child, v)
			jg.topDown(a, g, child, v)
		}
	}
}

// pruneBy prunes the chunks of base using the ranges of partner over every
// predicate of their edge.
func (jg *dipsGraph) pruneBy(a *Analyzer, g *plan.Graph, base, partner sql.NodeID) {
	key := newEdgeKey(base, partner)
	for _, cols := range jg.edges[key].columns {
		baseCol, partnerCol := cols[0], cols[1]
		if key[0] != base {
			baseCol, partnerCol = partnerCol, baseCol
		}
		extendPrunedChunks(a, g, baseCol, partnerCol)
	}
}

// extendPrunedChunks adds to the pruned chunks of the stored table of
// baseCol every chunk whose range of baseCol intersects no range of
// partnerCol in the chunks of the partner that are not pruned. Chunks
// without statistics are never pruned.
func extendPrunedChunks(a *Analyzer, g *plan.Graph, baseCol, partnerCol *expression.Column) {
	base := g.StoredTableOf(baseCol)
	partner := g.StoredTableOf(partnerCol)
	bt, ok := a.Catalog.Table(base.Table)
	if !ok {
		return
	}
	pt, ok := a.Catalog.Table(partner.Table)
	if !ok {
		return
	}

	partnerRanges, ok := stats.ColumnRanges(pt, partnerCol.ColumnID(), partner.IsChunkPruned)
	if !ok {
		return
	}

	var pruned []sql.ChunkID
	for id := sql.ChunkID(0); id < bt.ChunkCount(); id++ {
		if base.IsChunkPruned(id) {
			continue
		}
		s := stats.Statistics(bt.Chunk(id).Segment(baseCol.ColumnID()))
		if s.Supported && s.HasRange && !stats.IntersectsAny(s.Range, partnerRanges) {
			pruned = append(pruned, id)
		}
	}

	if len(pruned) > 0 && base.PruneChunks(pruned...) {
		a.Log("pruned chunks %v of %s joining %s", pruned, base.Table, partner.Table)
	}
}
