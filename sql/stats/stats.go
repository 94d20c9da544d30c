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

package stats

import (
	"github.com/dolthub/go-mysql-optimizer/sql"
)

// SegmentStatistics summarizes one column of one chunk.
type SegmentStatistics struct {
	// Range holds the minimum and maximum non-NULL values. It is only
	// meaningful if HasRange is true.
	Range    ValueRange
	HasRange bool
	// DistinctCount is the dictionary cardinality of dictionary segments,
	// and -1 for segments that don't keep a dictionary.
	DistinctCount int
	// RowCount is the size of the row index vector.
	RowCount int
	// Supported is false for segments whose values can't be inspected; no
	// other field is meaningful then.
	Supported bool
}

// Statistics computes the statistics of a segment. Segments that keep their
// own range are trusted; the rest are scanned.
func Statistics(seg sql.Segment) SegmentStatistics {
	s := SegmentStatistics{DistinctCount: -1, RowCount: seg.Len()}

	if d, ok := seg.(sql.DictionarySegment); ok {
		s.Supported = true
		dict := d.Dictionary()
		s.DistinctCount = len(dict)
		if len(dict) > 0 {
			s.Range = ValueRange{Min: dict[0], Max: dict[len(dict)-1]}
			s.HasRange = true
		}
	}

	if r, ok := seg.(sql.RangedSegment); ok {
		min, max, ok := r.Range()
		s.Range = ValueRange{Min: min, Max: max}
		s.HasRange = ok
		s.Supported = true
		return s
	}

	if v, ok := seg.(sql.ValueSegment); ok {
		s.Supported = true
		if !s.HasRange {
			s.Range, s.HasRange = scanRange(v.Values())
		}
	}

	return s
}

func scanRange(values []sql.Value) (ValueRange, bool) {
	var r ValueRange
	var found bool
	for _, v := range values {
		if v == nil {
			continue
		}
		if !found {
			r = ValueRange{Min: v, Max: v}
			found = true
			continue
		}
		if c, err := Compare(v, r.Min); err == nil && c < 0 {
			r.Min = v
		}
		if c, err := Compare(v, r.Max); err == nil && c > 0 {
			r.Max = v
		}
	}
	return r, found
}

// ColumnRanges returns the value range of the column for every chunk of the
// table that is not skipped. Chunks without a range (empty or all NULL) are
// left out: they can't produce a match for any equality. ok is false if
// some chunk holds a segment without statistics, in which case the ranges
// don't describe the whole column.
func ColumnRanges(t sql.Table, col sql.ColumnID, skip func(sql.ChunkID) bool) (ranges map[sql.ChunkID]ValueRange, ok bool) {
	ranges = make(map[sql.ChunkID]ValueRange)
	for id := sql.ChunkID(0); id < t.ChunkCount(); id++ {
		if skip != nil && skip(id) {
			continue
		}
		s := Statistics(t.Chunk(id).Segment(col))
		if !s.Supported {
			return nil, false
		}
		if s.HasRange {
			ranges[id] = s.Range
		}
	}
	return ranges, true
}

// IntersectsAny returns whether r intersects one of the given ranges.
func IntersectsAny(r ValueRange, others map[sql.ChunkID]ValueRange) bool {
	for _, o := range others {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}
