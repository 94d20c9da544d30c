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

// Catalog gives access to the stored tables. It is the storage collaborator
// consulted by discovery and by rules at rewrite time.
type Catalog interface {
	// Table returns the table with the given name, if any.
	Table(name string) (Table, bool)
	// TableNames returns the names of all the tables, sorted.
	TableNames() []string
}

// Column is a column of a table schema.
type Column struct {
	Name     string
	Type     Type
	Nullable bool
}

// Schema is the ordered list of columns of a table.
type Schema []*Column

// IndexOf returns the ordinal of the column with the given name, or -1.
func (s Schema) IndexOf(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Type is the data type of a column.
type Type uint8

const (
	Int64 Type = iota
	Float64
	Text
)

func (t Type) String() string {
	switch t {
	case Int64:
		return "INT64"
	case Float64:
		return "FLOAT64"
	case Text:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// Table is a stored table split into chunks.
type Table interface {
	Nameable
	Schema() Schema
	// ColumnID resolves a column name.
	ColumnID(name string) (ColumnID, bool)
	// ChunkCount returns the number of chunks. Chunks are append-only and
	// their ids are stable.
	ChunkCount() ChunkID
	// Chunk returns the chunk with the given id.
	Chunk(id ChunkID) Chunk
	KeyConstraintTable
}

// KeyConstraintTable gives read and write access to the key constraints
// registered on a table. Implementations must be safe for concurrent use.
type KeyConstraintTable interface {
	// KeyConstraints returns a snapshot of the registered constraints.
	KeyConstraints() []TableKeyConstraint
	// AddKeyConstraint registers a constraint. Registering a constraint that
	// is already present is a no-op.
	AddKeyConstraint(c TableKeyConstraint)
}

// Chunk is a horizontal partition of a table, holding one segment per column.
type Chunk interface {
	// Size is the number of rows in the chunk.
	Size() int
	// Segment returns the segment of the given column.
	Segment(col ColumnID) Segment
}

// Segment is the storage of one column inside one chunk.
type Segment interface {
	// Len is the number of rows stored in the segment.
	Len() int
}

// DictionarySegment stores a sorted dictionary of distinct values and a
// vector of per-row indexes into it.
type DictionarySegment interface {
	Segment
	// Dictionary returns the distinct non-NULL values, sorted ascending.
	Dictionary() []Value
	// NullCount is the number of rows holding NULL.
	NullCount() int
}

// ValueSegment stores the raw values of each row.
type ValueSegment interface {
	Segment
	// Values returns the values of each row; NULLs are nil.
	Values() []Value
}

// RangedSegment is implemented by segments that keep min/max statistics.
type RangedSegment interface {
	Segment
	// Range returns the minimum and maximum non-NULL values. ok is false if
	// the segment only contains NULLs or is empty.
	Range() (min, max Value, ok bool)
}
