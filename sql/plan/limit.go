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
)

// Limit is a node that only allows up to N rows to be retrieved.
type Limit struct {
	unaryNode
	Limit sql.Expression
}

var _ Node = (*Limit)(nil)

// NewLimit adds a limit above input.
func (g *Graph) NewLimit(limit sql.Expression, input sql.NodeID) sql.NodeID {
	return g.add(&Limit{unaryNode: unaryNode{newNodeBase()}, Limit: limit}, input)
}

// Expressions implements the Node interface.
func (l *Limit) Expressions() []sql.Expression {
	return []sql.Expression{l.Limit}
}

// Describe implements the Node interface.
func (l *Limit) Describe() string {
	return fmt.Sprintf("Limit(%s)", l.Limit)
}

func (l *Limit) clone() Node {
	nl := *l
	nl.nodeBase = l.nodeBase.copy()
	return &nl
}
