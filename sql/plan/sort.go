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

// SortOrder is the direction of a sort key.
type SortOrder uint8

const (
	Ascending SortOrder = iota
	Descending
)

func (s SortOrder) String() string {
	if s == Descending {
		return "DESC"
	}
	return "ASC"
}

// Sort orders the rows of its input.
type Sort struct {
	unaryNode
	SortFields []sql.Expression
	Orders     []SortOrder
}

var _ Node = (*Sort)(nil)

// NewSort adds a sort over input. Missing orders default to ascending.
func (g *Graph) NewSort(fields []sql.Expression, orders []SortOrder, input sql.NodeID) sql.NodeID {
	o := make([]SortOrder, len(fields))
	copy(o, orders)
	return g.add(&Sort{unaryNode: unaryNode{newNodeBase()}, SortFields: fields, Orders: o}, input)
}

// Expressions implements the Node interface.
func (s *Sort) Expressions() []sql.Expression {
	return s.SortFields
}

// Describe implements the Node interface.
func (s *Sort) Describe() string {
	var fields string
	for i, f := range s.SortFields {
		if i > 0 {
			fields += ", "
		}
		fields += fmt.Sprintf("%s %s", f, s.Orders[i])
	}
	return fmt.Sprintf("Sort(%s)", fields)
}

func (s *Sort) clone() Node {
	ns := *s
	ns.nodeBase = s.nodeBase.copy()
	ns.SortFields = copyExpressions(s.SortFields)
	ns.Orders = append([]SortOrder(nil), s.Orders...)
	return &ns
}
