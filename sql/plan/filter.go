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

// Predicate skips rows that don't match a certain expression.
type Predicate struct {
	unaryNode
	Predicate sql.Expression
}

var _ Node = (*Predicate)(nil)

// NewPredicate adds a predicate node filtering its input.
func (g *Graph) NewPredicate(predicate sql.Expression, input sql.NodeID) sql.NodeID {
	return g.add(&Predicate{unaryNode: unaryNode{newNodeBase()}, Predicate: predicate}, input)
}

// Expressions implements the Node interface.
func (p *Predicate) Expressions() []sql.Expression {
	return []sql.Expression{p.Predicate}
}

// Describe implements the Node interface.
func (p *Predicate) Describe() string {
	return fmt.Sprintf("Predicate(%s)", p.Predicate)
}

func (p *Predicate) clone() Node {
	np := *p
	np.nodeBase = p.nodeBase.copy()
	return &np
}
