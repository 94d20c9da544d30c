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

// Column references a column of a stored table node. The reference to the
// defining node is a handle, not an owner: the node is resolved through the
// plan graph when needed.
type Column struct {
	node   sql.NodeID
	column sql.ColumnID
	name   string
}

var _ sql.Expression = (*Column)(nil)

// NewColumn creates a reference to column col of the stored table node.
func NewColumn(node sql.NodeID, col sql.ColumnID, name string) *Column {
	return &Column{node: node, column: col, name: name}
}

// Node returns the handle of the stored table node defining the column.
func (c *Column) Node() sql.NodeID { return c.node }

// ColumnID returns the ordinal of the column in its table.
func (c *Column) ColumnID() sql.ColumnID { return c.column }

// Name returns the name of the column.
func (c *Column) Name() string { return c.name }

// Equals reports whether both references point to the same column of the
// same stored table node.
func (c *Column) Equals(o *Column) bool {
	return o != nil && c.node == o.node && c.column == o.column
}

// Children implements the Expression interface.
func (*Column) Children() []sql.Expression { return nil }

// WithChildren implements the Expression interface.
func (c *Column) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(c, len(children), 0)
	}
	return c, nil
}

func (c *Column) String() string {
	if c.name == "" {
		return fmt.Sprintf("%s.%d", c.node, c.column)
	}
	return c.name
}
