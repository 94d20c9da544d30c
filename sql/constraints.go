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

package sql

import (
	"fmt"
	"sort"
	"strings"
)

// KeyConstraintType distinguishes declared primary keys from unique keys.
type KeyConstraintType uint8

const (
	PrimaryKey KeyConstraintType = iota
	Unique
)

func (t KeyConstraintType) String() string {
	if t == PrimaryKey {
		return "PRIMARY KEY"
	}
	return "UNIQUE"
}

// TableKeyConstraint declares a set of columns of a table as unique.
type TableKeyConstraint struct {
	// Columns are kept sorted.
	Columns []ColumnID
	Type    KeyConstraintType
	// Discovered constraints were proven from the data rather than declared.
	// They are dropped when the table data changes.
	Discovered bool
}

// NewTableKeyConstraint creates a constraint over the given columns.
func NewTableKeyConstraint(typ KeyConstraintType, discovered bool, columns ...ColumnID) TableKeyConstraint {
	cols := append([]ColumnID(nil), columns...)
	sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })
	return TableKeyConstraint{Columns: cols, Type: typ, Discovered: discovered}
}

// Equals reports whether both constraints cover the same columns with the
// same type.
func (c TableKeyConstraint) Equals(o TableKeyConstraint) bool {
	if c.Type != o.Type || len(c.Columns) != len(o.Columns) {
		return false
	}
	for i := range c.Columns {
		if c.Columns[i] != o.Columns[i] {
			return false
		}
	}
	return true
}

// IsSingleColumn returns whether the constraint covers exactly the given column.
func (c TableKeyConstraint) IsSingleColumn(col ColumnID) bool {
	return len(c.Columns) == 1 && c.Columns[0] == col
}

func (c TableKeyConstraint) String() string {
	cols := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		cols[i] = fmt.Sprint(col)
	}
	return fmt.Sprintf("%s(%s)", c.Type, strings.Join(cols, ", "))
}

// HasUniqueColumn returns whether the table has a single-column key
// constraint on the given column.
func HasUniqueColumn(t KeyConstraintTable, col ColumnID) bool {
	for _, c := range t.KeyConstraints() {
		if c.IsSingleColumn(col) {
			return true
		}
	}
	return false
}
