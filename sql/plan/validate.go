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

// Validate filters out the rows that are not visible to the current
// transaction.
type Validate struct {
	unaryNode
}

var _ Node = (*Validate)(nil)

// NewValidate adds a visibility check above input.
func (g *Graph) NewValidate(input sql.NodeID) sql.NodeID {
	return g.add(&Validate{unaryNode{newNodeBase()}}, input)
}

// Expressions implements the Node interface.
func (*Validate) Expressions() []sql.Expression { return nil }

// Describe implements the Node interface.
func (*Validate) Describe() string { return "Validate" }

func (v *Validate) clone() Node {
	nv := *v
	nv.nodeBase = v.nodeBase.copy()
	return &nv
}
