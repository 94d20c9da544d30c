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

package ucc

import (
	"github.com/dolthub/go-mysql-optimizer/sql"
)

// Outcome is the result of validating a candidate.
type Outcome uint8

const (
	// Accepted candidates were proven unique and registered on their table.
	Accepted Outcome = iota
	// Rejected candidates hold at least one duplicate value.
	Rejected
	// AlreadyUnique candidates were skipped because the table already has a
	// single-column constraint on the column.
	AlreadyUnique
	// TableNotFound candidates reference a table the catalog doesn't have.
	TableNotFound
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case AlreadyUnique:
		return "already unique"
	case TableNotFound:
		return "table not found"
	default:
		return "unknown"
	}
}

// Validate checks whether the candidate column holds distinct values across
// all chunks of its table, and registers a discovered unique constraint on
// the table if it does. NULLs are distinct from every value, including
// other NULLs, so they never make a column non-unique.
//
// A segment that is neither dictionary nor value encoded panics with
// ErrUnsupportedSegment.
func Validate(cat sql.Catalog, c Candidate) Outcome {
	t, ok := cat.Table(c.Table)
	if !ok {
		return TableNotFound
	}

	if sql.HasUniqueColumn(t, c.Column) {
		return AlreadyUnique
	}

	if hasDictionaryDuplicates(t, c.Column) || !distinctAcrossChunks(t, c.Column) {
		return Rejected
	}

	t.AddKeyConstraint(sql.NewTableKeyConstraint(sql.Unique, true, c.Column))
	return Accepted
}

// hasDictionaryDuplicates returns whether some dictionary segment of the
// column holds fewer distinct values than non-NULL rows. It only reads the
// segment sizes.
func hasDictionaryDuplicates(t sql.Table, col sql.ColumnID) bool {
	for id := sql.ChunkID(0); id < t.ChunkCount(); id++ {
		seg, ok := t.Chunk(id).Segment(col).(sql.DictionarySegment)
		if !ok {
			continue
		}
		if len(seg.Dictionary()) < seg.Len()-seg.NullCount() {
			return true
		}
	}
	return false
}

// distinctAcrossChunks scans the distinct values of every chunk into a
// running set and fails as soon as a chunk grows the set by less than the
// number of values it contributed.
func distinctAcrossChunks(t sql.Table, col sql.ColumnID) bool {
	seen := make(map[sql.Value]struct{})
	for id := sql.ChunkID(0); id < t.ChunkCount(); id++ {
		values := segmentValues(t, id, col)
		expected := len(seen) + len(values)
		for _, v := range values {
			seen[v] = struct{}{}
		}
		if len(seen) != expected {
			return false
		}
	}
	return true
}

// segmentValues returns the values of a segment, skipping NULLs. For
// dictionary segments only the dictionary is read.
func segmentValues(t sql.Table, chunk sql.ChunkID, col sql.ColumnID) []sql.Value {
	switch seg := t.Chunk(chunk).Segment(col).(type) {
	case sql.DictionarySegment:
		return seg.Dictionary()
	case sql.ValueSegment:
		values := make([]sql.Value, 0, seg.Len())
		for _, v := range seg.Values() {
			if v != nil {
				values = append(values, v)
			}
		}
		return values
	default:
		panic(sql.ErrUnsupportedSegment.New(seg, col, t.Name()))
	}
}
