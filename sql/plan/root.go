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

// Root is the sentinel placed above a plan while it is being optimized, so
// that the topmost node always has a parent to be relinked from.
type Root struct {
	unaryNode
}

var _ Node = (*Root)(nil)

// NewRoot adds a root sentinel above the given node.
func (g *Graph) NewRoot(input sql.NodeID) sql.NodeID {
	return g.add(&Root{unaryNode{newNodeBase()}}, input)
}

// Expressions implements the Node interface.
func (*Root) Expressions() []sql.Expression { return nil }

// Describe implements the Node interface.
func (*Root) Describe() string { return "Root" }

func (r *Root) clone() Node {
	nr := *r
	nr.nodeBase = r.nodeBase.copy()
	return &nr
}
