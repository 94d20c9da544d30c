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

package sql

import "fmt"

// NodeID is a stable handle to a node stored in a plan graph arena. Handles
// are never reused within a graph, so a handle stays valid for as long as the
// graph keeps the node alive.
type NodeID int32

// InvalidNodeID marks a missing input.
const InvalidNodeID NodeID = -1

// IsValid returns whether the handle refers to a node.
func (id NodeID) IsValid() bool {
	return id >= 0
}

func (id NodeID) String() string {
	if !id.IsValid() {
		return "<none>"
	}
	return fmt.Sprintf("#%d", int32(id))
}

// ColumnID is the ordinal of a column inside a table schema.
type ColumnID uint16

// ChunkID is the ordinal of a chunk inside a table.
type ChunkID uint32

// Value is a single cell value. A nil Value is NULL. Storage only produces
// int64, float64 and string values.
type Value interface{}

// Expression is implemented by every expression variant held by plan nodes.
// The set of variants is closed and lives in the expression package;
// consumers dispatch with type switches.
type Expression interface {
	fmt.Stringer
	// Children returns the operand expressions. Subquery plans are not
	// children, they are reached through the plan graph.
	Children() []Expression
	// WithChildren returns a copy of the expression with its operands
	// replaced. The number of children must match Children.
	WithChildren(children ...Expression) (Expression, error)
}

// Nameable is something that has a name.
type Nameable interface {
	Name() string
}
