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

package expression

import (
	"fmt"

	"github.com/dolthub/go-mysql-optimizer/sql"
)

// PredicateCondition is the comparison performed by a binary predicate.
type PredicateCondition uint8

const (
	Equals PredicateCondition = iota
	NotEquals
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

func (c PredicateCondition) String() string {
	switch c {
	case Equals:
		return "="
	case NotEquals:
		return "!="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	default:
		return "?"
	}
}

// Flip returns the condition to use when the operands are swapped.
func (c PredicateCondition) Flip() PredicateCondition {
	switch c {
	case LessThan:
		return GreaterThan
	case LessThanOrEqual:
		return GreaterThanOrEqual
	case GreaterThan:
		return LessThan
	case GreaterThanOrEqual:
		return LessThanOrEqual
	default:
		return c
	}
}

// BinaryPredicate compares two operand expressions.
type BinaryPredicate struct {
	Condition PredicateCondition
	Left      sql.Expression
	Right     sql.Expression
}

var _ sql.Expression = (*BinaryPredicate)(nil)

// NewBinaryPredicate creates a new comparison between two expressions.
func NewBinaryPredicate(cond PredicateCondition, left, right sql.Expression) *BinaryPredicate {
	return &BinaryPredicate{Condition: cond, Left: left, Right: right}
}

// NewEquals returns a new equality predicate.
func NewEquals(left, right sql.Expression) *BinaryPredicate {
	return NewBinaryPredicate(Equals, left, right)
}

// NewLessThan returns a new < predicate.
func NewLessThan(left, right sql.Expression) *BinaryPredicate {
	return NewBinaryPredicate(LessThan, left, right)
}

// NewGreaterThan returns a new > predicate.
func NewGreaterThan(left, right sql.Expression) *BinaryPredicate {
	return NewBinaryPredicate(GreaterThan, left, right)
}

// Children implements the Expression interface.
func (p *BinaryPredicate) Children() []sql.Expression {
	return []sql.Expression{p.Left, p.Right}
}

// WithChildren implements the Expression interface.
func (p *BinaryPredicate) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 2)
	}
	return NewBinaryPredicate(p.Condition, children[0], children[1]), nil
}

func (p *BinaryPredicate) String() string {
	return fmt.Sprintf("%s %s %s", p.Left, p.Condition, p.Right)
}

// ColumnEqualsValue matches predicates of the form `column = literal`, in
// either operand order.
func ColumnEqualsValue(e sql.Expression) (*Column, *Literal, bool) {
	p, ok := e.(*BinaryPredicate)
	if !ok || p.Condition != Equals {
		return nil, nil, false
	}
	col, lit, _, ok := ColumnComparedToValue(p)
	return col, lit, ok
}

// ColumnComparedToValue matches `column <cond> literal` or
// `literal <cond> column`. The returned condition is normalized so that the
// column is the left operand.
func ColumnComparedToValue(p *BinaryPredicate) (*Column, *Literal, PredicateCondition, bool) {
	if col, ok := p.Left.(*Column); ok {
		if lit, ok := p.Right.(*Literal); ok {
			return col, lit, p.Condition, true
		}
	}
	if col, ok := p.Right.(*Column); ok {
		if lit, ok := p.Left.(*Literal); ok {
			return col, lit, p.Condition.Flip(), true
		}
	}
	return nil, nil, p.Condition, false
}
