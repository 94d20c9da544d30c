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

// Aggregate groups the rows of its input by the group-by expressions and
// computes the aggregate expressions for each group.
type Aggregate struct {
	unaryNode
	GroupBy    []sql.Expression
	Aggregates []sql.Expression
}

var _ Node = (*Aggregate)(nil)

// NewAggregate adds an aggregation over input.
func (g *Graph) NewAggregate(groupBy, aggregates []sql.Expression, input sql.NodeID) sql.NodeID {
	a := &Aggregate{
		unaryNode:  unaryNode{newNodeBase()},
		GroupBy:    groupBy,
		Aggregates: aggregates,
	}
	return g.add(a, input)
}

// Expressions implements the Node interface. Group-by expressions come first.
func (a *Aggregate) Expressions() []sql.Expression {
	exprs := make([]sql.Expression, 0, len(a.GroupBy)+len(a.Aggregates))
	exprs = append(exprs, a.GroupBy...)
	return append(exprs, a.Aggregates...)
}

// Describe implements the Node interface.
func (a *Aggregate) Describe() string {
	return fmt.Sprintf("Aggregate(group by: [%s], aggregates: [%s])",
		joinExpressions(a.GroupBy), joinExpressions(a.Aggregates))
}

func (a *Aggregate) clone() Node {
	na := *a
	na.nodeBase = a.nodeBase.copy()
	na.GroupBy = copyExpressions(a.GroupBy)
	na.Aggregates = copyExpressions(a.Aggregates)
	return &na
}
