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

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrTableNotFound is returned when the table is not available from the
	// catalog.
	ErrTableNotFound = errors.NewKind("table not found: %s")

	// ErrTableColumnNotFound is thrown when a column named cannot be found in a table.
	ErrTableColumnNotFound = errors.NewKind("table %q does not have column %q")

	// ErrUnexpectedRowLength is thrown when the obtained row has more columns than the schema
	ErrUnexpectedRowLength = errors.NewKind("expected %d values, got %d")

	// ErrTableAlreadyExists is thrown when someone tries to create a
	// table with a name of an existing one
	ErrTableAlreadyExists = errors.NewKind("table with name %s already exists")

	// ErrChunkNotFound is returned when a chunk id is out of range for a table.
	ErrChunkNotFound = errors.NewKind("table %s has no chunk %d")

	// ErrRowNotFound is returned when a row offset is out of range for a chunk.
	ErrRowNotFound = errors.NewKind("row %d does not exist in chunk %d of table %s")

	// ErrInvalidPlan is raised when a plan graph is malformed: a required
	// input is missing, or a handle points to a reclaimed node. It is
	// indicative of a bug in an earlier stage and is never recovered from.
	ErrInvalidPlan = errors.NewKind("invalid plan: %s")

	// ErrUnsupportedSegment is raised when a scan meets a segment that is
	// neither dictionary nor value encoded.
	ErrUnsupportedSegment = errors.NewKind("unsupported segment of type %T for column %d of table %s")

	// ErrInvalidChildrenNumber is returned when the WithChildren method of an
	// expression is called with a wrong number of children.
	ErrInvalidChildrenNumber = errors.NewKind("%T: invalid children number, got %d, expected %d")

	// ErrNodeAlreadyWritten is returned when the node has already been written.
	ErrNodeAlreadyWritten = errors.NewKind("treeprinter: node already written")

	// ErrNodeNotWritten is returned when the children are printed before the node.
	ErrNodeNotWritten = errors.NewKind("treeprinter: a child was written before the node")

	// ErrChildrenAlreadyWritten is returned when the children have already been written.
	ErrChildrenAlreadyWritten = errors.NewKind("treeprinter: children already written")
)
