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
	"strings"

	"github.com/mitchellh/hashstructure"

	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
)

// String returns a tree representation of the plan rooted at root. Shared
// nodes are printed under every parent; subquery plans are printed below the
// node that owns them.
func String(g *Graph, root sql.NodeID) string {
	n := g.Node(root)
	p := sql.NewTreePrinter()
	_ = p.WriteNode("%s", n.Describe())

	var children []string
	for _, in := range g.Inputs(root) {
		children = append(children, String(g, in))
	}
	for _, s := range expression.Subqueries(n.Expressions()...) {
		sp := sql.NewTreePrinter()
		_ = sp.WriteNode("Subquery(%s)", s.Root)
		_ = sp.WriteChildren(String(g, s.Root))
		children = append(children, sp.String())
	}
	if len(children) > 0 {
		_ = p.WriteChildren(children...)
	}
	return p.String()
}

// nodeShape is the structural description of a node hashed by Fingerprint.
// Inputs and subqueries are referenced by their ordinal in the
// fingerprint walk, so that the hash doesn't depend on arena handles.
type nodeShape struct {
	Description string
	Inputs      []int
	Subqueries  []int
}

// Fingerprint returns a structural hash of the plan rooted at root,
// including subquery plans. Two plans with the same shape, expressions and
// pruned chunks have the same fingerprint.
func Fingerprint(g *Graph, root sql.NodeID) (uint64, error) {
	ordinals := make(map[sql.NodeID]int)
	var shapes []nodeShape

	var walk func(id sql.NodeID) int
	walk = func(id sql.NodeID) int {
		if ord, ok := ordinals[id]; ok {
			return ord
		}
		n := g.Node(id)
		ord := len(shapes)
		ordinals[id] = ord
		shapes = append(shapes, nodeShape{})

		shape := nodeShape{Description: fmt.Sprintf("%T:%s", n, describeWithoutHandles(n))}
		for _, in := range g.Inputs(id) {
			shape.Inputs = append(shape.Inputs, walk(in))
		}
		for _, s := range expression.Subqueries(n.Expressions()...) {
			shape.Subqueries = append(shape.Subqueries, walk(s.Root))
		}
		shapes[ord] = shape
		return ord
	}
	walk(root)

	return hashstructure.Hash(shapes, nil)
}

// describeWithoutHandles describes the node with subquery handles blanked
// out; subqueries are accounted for through nodeShape.Subqueries.
func describeWithoutHandles(n Node) string {
	d := n.Describe()
	for _, s := range expression.Subqueries(n.Expressions()...) {
		d = strings.ReplaceAll(d, s.String(), "SUBQUERY")
	}
	return d
}
