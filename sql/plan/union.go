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

import "github.com/dolthub/go-mysql-optimizer/sql"

// SetOperationMode tells whether a union keeps duplicates.
type SetOperationMode uint8

const (
	UnionAll SetOperationMode = iota
	UnionDistinct
)

// Union is a node that returns every row of its left and right inputs.
type Union struct {
	binaryNode
	Mode SetOperationMode
}

var _ Node = (*Union)(nil)

// NewUnion adds a union of left and right.
func (g *Graph) NewUnion(mode SetOperationMode, left, right sql.NodeID) sql.NodeID {
	return g.add(&Union{binaryNode: binaryNode{newNodeBase()}, Mode: mode}, left, right)
}

// Expressions implements the Node interface.
func (*Union) Expressions() []sql.Expression { return nil }

// Describe implements the Node interface.
func (u *Union) Describe() string {
	if u.Mode == UnionAll {
		return "Union(All)"
	}
	return "Union(Distinct)"
}

func (u *Union) clone() Node {
	nu := *u
	nu.nodeBase = u.nodeBase.copy()
	return &nu
}
