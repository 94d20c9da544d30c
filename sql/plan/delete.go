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

// Delete removes the rows produced by its input from their stored tables.
type Delete struct {
	unaryNode
}

var _ Node = (*Delete)(nil)

// NewDelete adds a delete of the rows produced by input.
func (g *Graph) NewDelete(input sql.NodeID) sql.NodeID {
	return g.add(&Delete{unaryNode{newNodeBase()}}, input)
}

// Expressions implements the Node interface.
func (*Delete) Expressions() []sql.Expression { return nil }

// Describe implements the Node interface.
func (*Delete) Describe() string { return "Delete" }

func (d *Delete) clone() Node {
	nd := *d
	nd.nodeBase = d.nodeBase.copy()
	return &nd
}
