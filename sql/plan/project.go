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

	"github.com/dolthub/go-mysql-optimizer/sql"
)

// Projection is a projection of certain expression from the input node.
type Projection struct {
	unaryNode
	// Projected expressions.
	Projections []sql.Expression
}

var _ Node = (*Projection)(nil)

// NewProjection adds a projection over input.
func (g *Graph) NewProjection(projections []sql.Expression, input sql.NodeID) sql.NodeID {
	return g.add(&Projection{unaryNode: unaryNode{newNodeBase()}, Projections: projections}, input)
}

// Expressions implements the Node interface.
func (p *Projection) Expressions() []sql.Expression {
	return p.Projections
}

// Describe implements the Node interface.
func (p *Projection) Describe() string {
	return fmt.Sprintf("Projection(%s)", joinExpressions(p.Projections))
}

func (p *Projection) clone() Node {
	np := *p
	np.nodeBase = p.nodeBase.copy()
	np.Projections = copyExpressions(p.Projections)
	return &np
}

func joinExpressions(exprs []sql.Expression) string {
	strs := make([]string, len(exprs))
	for i, e := range exprs {
		strs[i] = e.String()
	}
	return strings.Join(strs, ", ")
}
