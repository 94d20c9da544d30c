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
)

// InputSide identifies one of the two input edges of a node.
type InputSide uint8

const (
	LeftInput InputSide = iota
	RightInput
)

func (s InputSide) String() string {
	if s == LeftInput {
		return "left"
	}
	return "right"
}

// Output is a back-reference from a node to one of its parents. It records
// which input side of the parent the node occupies, so that relinking never
// has to infer the side from positions.
type Output struct {
	Node sql.NodeID
	Side InputSide
}

// Node is a logical plan node. The set of variants is closed: Root,
// StoredTable, Predicate, Join, Aggregate, Projection, Sort, Union, Validate,
// Delete and Limit. Consumers dispatch on them with type switches.
type Node interface {
	// ID returns the handle of the node in its graph.
	ID() sql.NodeID
	// Left returns the left input, or sql.InvalidNodeID.
	Left() sql.NodeID
	// Right returns the right input, or sql.InvalidNodeID.
	Right() sql.NodeID
	// Expressions returns the expressions owned by the node.
	Expressions() []sql.Expression
	// Describe returns a one line description of the node.
	Describe() string
	// inputCount is the number of inputs a well formed node has.
	inputCount() int
	base() *nodeBase
	clone() Node
}

// nodeBase holds the edges of a node. Edges are only modified through the
// graph, which keeps inputs and outputs consistent.
type nodeBase struct {
	id      sql.NodeID
	inputs  [2]sql.NodeID
	outputs []Output
}

func newNodeBase() nodeBase {
	return nodeBase{
		id:     sql.InvalidNodeID,
		inputs: [2]sql.NodeID{sql.InvalidNodeID, sql.InvalidNodeID},
	}
}

// ID implements the Node interface.
func (b *nodeBase) ID() sql.NodeID { return b.id }

// Left implements the Node interface.
func (b *nodeBase) Left() sql.NodeID { return b.inputs[LeftInput] }

// Right implements the Node interface.
func (b *nodeBase) Right() sql.NodeID { return b.inputs[RightInput] }

func (b *nodeBase) base() *nodeBase { return b }

func (b nodeBase) copy() nodeBase {
	b.outputs = append([]Output(nil), b.outputs...)
	return b
}

// unaryNode is embedded by nodes with a single input.
type unaryNode struct {
	nodeBase
}

func (unaryNode) inputCount() int { return 1 }

// binaryNode is embedded by nodes with two inputs.
type binaryNode struct {
	nodeBase
}

func (binaryNode) inputCount() int { return 2 }

func copyExpressions(exprs []sql.Expression) []sql.Expression {
	if exprs == nil {
		return nil
	}
	return append([]sql.Expression(nil), exprs...)
}
