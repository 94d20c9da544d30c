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
	"github.com/dolthub/go-mysql-optimizer/sql/expression"
)

// JoinMode is the kind of join performed by a Join node.
type JoinMode uint8

const (
	InnerJoin JoinMode = iota
	LeftJoin
	RightJoin
	FullOuterJoin
	CrossJoin
	SemiJoin
	AntiSemiJoin
)

func (m JoinMode) String() string {
	switch m {
	case InnerJoin:
		return "Inner"
	case LeftJoin:
		return "Left"
	case RightJoin:
		return "Right"
	case FullOuterJoin:
		return "FullOuter"
	case CrossJoin:
		return "Cross"
	case SemiJoin:
		return "Semi"
	case AntiSemiJoin:
		return "AntiSemi"
	default:
		return "Unknown"
	}
}

// Join combines the rows of its two inputs.
type Join struct {
	binaryNode
	Mode JoinMode
	// Predicates are the join conditions, all of which must hold.
	Predicates []sql.Expression
}

var _ Node = (*Join)(nil)

// NewJoin adds a join between left and right.
func (g *Graph) NewJoin(mode JoinMode, predicates []sql.Expression, left, right sql.NodeID) sql.NodeID {
	j := &Join{
		binaryNode: binaryNode{newNodeBase()},
		Mode:       mode,
		Predicates: predicates,
	}
	return g.add(j, left, right)
}

// EqualityPredicates returns the join predicates comparing two operands for
// equality.
func (j *Join) EqualityPredicates() []*expression.BinaryPredicate {
	var preds []*expression.BinaryPredicate
	for _, p := range j.Predicates {
		if bp, ok := p.(*expression.BinaryPredicate); ok && bp.Condition == expression.Equals {
			preds = append(preds, bp)
		}
	}
	return preds
}

// Expressions implements the Node interface.
func (j *Join) Expressions() []sql.Expression {
	return j.Predicates
}

// Describe implements the Node interface.
func (j *Join) Describe() string {
	if len(j.Predicates) == 0 {
		return fmt.Sprintf("Join(%s)", j.Mode)
	}
	preds := make([]string, len(j.Predicates))
	for i, p := range j.Predicates {
		preds[i] = p.String()
	}
	return fmt.Sprintf("Join(%s, %s)", j.Mode, strings.Join(preds, " AND "))
}

func (j *Join) clone() Node {
	nj := *j
	nj.nodeBase = j.nodeBase.copy()
	nj.Predicates = copyExpressions(j.Predicates)
	return &nj
}
