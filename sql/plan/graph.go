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

// Graph is the arena owning the nodes of a logical plan and of all its
// subquery plans. Nodes are addressed by stable handles; a node is owned by
// its parents through input edges and by subquery expressions through their
// root handle. Reclaiming happens in Collect.
type Graph struct {
	nodes []Node
}

// NewGraph creates an empty plan graph.
func NewGraph() *Graph {
	return &Graph{}
}

func (g *Graph) add(n Node, inputs ...sql.NodeID) sql.NodeID {
	id := sql.NodeID(len(g.nodes))
	n.base().id = id
	g.nodes = append(g.nodes, n)
	for i, in := range inputs {
		g.SetInput(id, InputSide(i), in)
	}
	return id
}

// Contains returns whether the handle refers to a live node of the graph.
func (g *Graph) Contains(id sql.NodeID) bool {
	return id.IsValid() && int(id) < len(g.nodes) && g.nodes[id] != nil
}

// Node returns the node with the given handle. Asking for a handle that is
// not live is a programming error.
func (g *Graph) Node(id sql.NodeID) Node {
	if !g.Contains(id) {
		panic(sql.ErrInvalidPlan.New(fmt.Sprintf("node %s does not exist", id)))
	}
	return g.nodes[id]
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	var n int
	for _, node := range g.nodes {
		if node != nil {
			n++
		}
	}
	return n
}

// Input returns the input of the node on the given side.
func (g *Graph) Input(id sql.NodeID, side InputSide) sql.NodeID {
	return g.Node(id).base().inputs[side]
}

// Inputs returns the present inputs of the node, left first.
func (g *Graph) Inputs(id sql.NodeID) []sql.NodeID {
	b := g.Node(id).base()
	var inputs []sql.NodeID
	for _, in := range b.inputs {
		if in.IsValid() {
			inputs = append(inputs, in)
		}
	}
	return inputs
}

// Outputs returns the parents of the node together with the side they use
// the node on. A parent that uses the node on both sides appears twice.
func (g *Graph) Outputs(id sql.NodeID) []Output {
	return append([]Output(nil), g.Node(id).base().outputs...)
}

// OutputCount returns the number of output edges of the node.
func (g *Graph) OutputCount(id sql.NodeID) int {
	return len(g.Node(id).base().outputs)
}

// SetInput sets the input of the node on the given side, updating the output
// edges of the previous and the new input. sql.InvalidNodeID detaches the
// side.
func (g *Graph) SetInput(id sql.NodeID, side InputSide, input sql.NodeID) {
	b := g.Node(id).base()
	old := b.inputs[side]
	if old == input {
		return
	}

	if old.IsValid() {
		ob := g.Node(old).base()
		for i, out := range ob.outputs {
			if out.Node == id && out.Side == side {
				ob.outputs = append(ob.outputs[:i], ob.outputs[i+1:]...)
				break
			}
		}
	}

	b.inputs[side] = input
	if input.IsValid() {
		ib := g.Node(input).base()
		ib.outputs = append(ib.outputs, Output{Node: id, Side: side})
	}
}

// ReplaceNode installs replacement in place of old for every parent of old,
// on the same input side each parent used, and then detaches the inputs of
// old so that its subtree is no longer reachable through it.
func (g *Graph) ReplaceNode(old, replacement sql.NodeID) {
	if old == replacement {
		return
	}
	for _, out := range g.Outputs(old) {
		g.SetInput(out.Node, out.Side, replacement)
	}
	g.SetInput(old, LeftInput, sql.InvalidNodeID)
	g.SetInput(old, RightInput, sql.InvalidNodeID)
}

// Reachable returns the set of nodes reachable from the given roots, through
// inputs and through the plans of subquery expressions.
func (g *Graph) Reachable(roots ...sql.NodeID) map[sql.NodeID]struct{} {
	seen := make(map[sql.NodeID]struct{})
	stack := append([]sql.NodeID(nil), roots...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !id.IsValid() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		n := g.Node(id)
		stack = append(stack, n.Left(), n.Right())
		for _, s := range expression.Subqueries(n.Expressions()...) {
			stack = append(stack, s.Root)
		}
	}
	return seen
}

// Collect reclaims every node that is not reachable from the given roots and
// returns how many nodes were reclaimed. Output edges coming from reclaimed
// parents are removed from the surviving nodes.
func (g *Graph) Collect(roots ...sql.NodeID) int {
	live := g.Reachable(roots...)

	var garbage []sql.NodeID
	for i, n := range g.nodes {
		if n == nil {
			continue
		}
		if _, ok := live[sql.NodeID(i)]; !ok {
			garbage = append(garbage, sql.NodeID(i))
		}
	}

	for _, id := range garbage {
		g.SetInput(id, LeftInput, sql.InvalidNodeID)
		g.SetInput(id, RightInput, sql.InvalidNodeID)
	}
	for _, id := range garbage {
		g.nodes[id] = nil
	}

	return len(garbage)
}

// Clone returns a deep copy of the graph. Handles are preserved, so a root
// handle of g is valid in the copy. Expressions are immutable and shared.
func (g *Graph) Clone() *Graph {
	ng := &Graph{nodes: make([]Node, len(g.nodes))}
	for i, n := range g.nodes {
		if n != nil {
			ng.nodes[i] = n.clone()
		}
	}
	return ng
}
