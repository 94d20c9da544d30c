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

package memory

import (
	"sort"
	"sync"

	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/stats"
)

// Encoding is the representation used to store a column inside a chunk.
type Encoding uint8

const (
	// DictionaryEncoding stores a sorted dictionary and per-row value ids.
	DictionaryEncoding Encoding = iota
	// Unencoded stores the raw value of each row.
	Unencoded
)

// ValueSegment stores the raw values of a column.
type ValueSegment struct {
	values []sql.Value

	once     sync.Once
	min, max sql.Value
	hasRange bool
}

var _ sql.ValueSegment = (*ValueSegment)(nil)
var _ sql.RangedSegment = (*ValueSegment)(nil)

// NewValueSegment creates a segment over the given values.
func NewValueSegment(values []sql.Value) *ValueSegment {
	return &ValueSegment{values: values}
}

// Len implements the sql.Segment interface.
func (s *ValueSegment) Len() int { return len(s.values) }

// Values implements the sql.ValueSegment interface.
func (s *ValueSegment) Values() []sql.Value { return s.values }

// Range implements the sql.RangedSegment interface. It is computed on first
// use; segments are immutable so the result never goes stale.
func (s *ValueSegment) Range() (sql.Value, sql.Value, bool) {
	s.once.Do(func() {
		for _, v := range s.values {
			if v == nil {
				continue
			}
			if !s.hasRange {
				s.min, s.max, s.hasRange = v, v, true
				continue
			}
			if c, err := stats.Compare(v, s.min); err == nil && c < 0 {
				s.min = v
			}
			if c, err := stats.Compare(v, s.max); err == nil && c > 0 {
				s.max = v
			}
		}
	})
	return s.min, s.max, s.hasRange
}

// DictionarySegment stores a sorted dictionary of the distinct non-NULL
// values of a column and, for each row, the id of its value. NULL rows use
// the id len(dictionary).
type DictionarySegment struct {
	dictionary []sql.Value
	ids        []uint32
	nulls      int
}

var _ sql.DictionarySegment = (*DictionarySegment)(nil)

// NewDictionarySegment encodes the given values.
func NewDictionarySegment(values []sql.Value) *DictionarySegment {
	seen := make(map[sql.Value]struct{}, len(values))
	var dict []sql.Value
	for _, v := range values {
		if v == nil {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			dict = append(dict, v)
		}
	}
	sortValues(dict)

	index := make(map[sql.Value]uint32, len(dict))
	for i, v := range dict {
		index[v] = uint32(i)
	}

	ids := make([]uint32, len(values))
	var nulls int
	for i, v := range values {
		if v == nil {
			ids[i] = uint32(len(dict))
			nulls++
			continue
		}
		ids[i] = index[v]
	}

	return &DictionarySegment{dictionary: dict, ids: ids, nulls: nulls}
}

// NewRawDictionarySegment builds a segment from an already encoded
// dictionary and value id vector. The dictionary is used as given.
func NewRawDictionarySegment(dictionary []sql.Value, ids []uint32) *DictionarySegment {
	var nulls int
	for _, id := range ids {
		if int(id) == len(dictionary) {
			nulls++
		}
	}
	return &DictionarySegment{dictionary: dictionary, ids: ids, nulls: nulls}
}

// Len implements the sql.Segment interface.
func (s *DictionarySegment) Len() int { return len(s.ids) }

// Dictionary implements the sql.DictionarySegment interface.
func (s *DictionarySegment) Dictionary() []sql.Value { return s.dictionary }

// NullCount implements the sql.DictionarySegment interface.
func (s *DictionarySegment) NullCount() int { return s.nulls }

// Value returns the value of the given row.
func (s *DictionarySegment) Value(row int) sql.Value {
	id := s.ids[row]
	if int(id) == len(s.dictionary) {
		return nil
	}
	return s.dictionary[id]
}

func sortValues(values []sql.Value) {
	sort.SliceStable(values, func(i, j int) bool {
		c, err := stats.Compare(values[i], values[j])
		return err == nil && c < 0
	})
}

func encode(values []sql.Value, enc Encoding) sql.Segment {
	if enc == DictionaryEncoding {
		return NewDictionarySegment(values)
	}
	return NewValueSegment(values)
}
