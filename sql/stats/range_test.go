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
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/constraints"

	"github.com/dolthub/go-mysql-optimizer/sql"
)

type intersectionTest[T constraints.Ordered] struct {
	a, b     Range[T]
	expected bool
}

func testIntersects[T constraints.Ordered](t *testing.T, tests []intersectionTest[T]) {
	for _, tt := range tests {
		t.Run(tt.a.String()+" "+tt.b.String(), func(t *testing.T) {
			require := require.New(t)
			require.Equal(tt.expected, Intersects(tt.a, tt.b))
			require.Equal(tt.expected, Intersects(tt.b, tt.a))
		})
	}
}

func TestIntersects(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		testIntersects(t, []intersectionTest[int64]{
			{NewRange[int64](1, 2), NewRange[int64](3, 4), false},
			{NewRange[int64](1, 8), NewRange[int64](3, 6), true},
			{NewRange[int64](1, 8), NewRange[int64](0, 1), true},
			{NewRange[int64](5, 5), NewRange[int64](5, 5), true},
		})
	})
	t.Run("float", func(t *testing.T) {
		testIntersects(t, []intersectionTest[float64]{
			{NewRange(1.0, 2.0), NewRange(3.0, 4.0), false},
			{NewRange(1.0, 8.0), NewRange(3.0, 6.0), true},
			{NewRange(1.0, 8.0), NewRange(0.0, 1.0), true},
			{NewRange(1.0, 2.9), NewRange(2.95, 4.0), false},
		})
	})
	t.Run("string", func(t *testing.T) {
		testIntersects(t, []intersectionTest[string]{
			{NewRange("1", "2"), NewRange("3", "4"), false},
			{NewRange("1", "8"), NewRange("3", "6"), true},
			{NewRange("1", "8"), NewRange("0", "1"), true},
			{NewRange("apple", "banana"), NewRange("bananas", "cherry"), false},
		})
	})
}

func TestValueRangeIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     ValueRange
		expected bool
	}{
		{"disjoint ints", ValueRange{int64(1), int64(2)}, ValueRange{int64(3), int64(4)}, false},
		{"overlapping ints", ValueRange{int64(1), int64(8)}, ValueRange{int64(3), int64(6)}, true},
		{"touching ints", ValueRange{int64(1), int64(8)}, ValueRange{int64(0), int64(1)}, true},
		{"int and float", ValueRange{int64(1), int64(2)}, ValueRange{2.5, 3.5}, false},
		{"float inside int", ValueRange{int64(1), int64(3)}, ValueRange{2.5, 3.5}, true},
		{"disjoint strings", ValueRange{"a", "b"}, ValueRange{"c", "d"}, false},
		{"incomparable", ValueRange{int64(1), int64(2)}, ValueRange{"c", "d"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			require.Equal(tt.expected, tt.a.Intersects(tt.b))
			require.Equal(tt.expected, tt.b.Intersects(tt.a))
		})
	}
}

func TestCompare(t *testing.T) {
	require := require.New(t)

	c, err := Compare(int64(1), int32(2))
	require.NoError(err)
	require.Equal(-1, c)

	c, err = Compare(2.5, int64(2))
	require.NoError(err)
	require.Equal(1, c)

	c, err = Compare("b", "b")
	require.NoError(err)
	require.Equal(0, c)

	_, err = Compare("b", int64(1))
	require.True(ErrIncomparable.Is(err))

	_, err = Compare(nil, int64(1))
	require.True(ErrIncomparable.Is(err))
}

func TestValueRangeContains(t *testing.T) {
	require := require.New(t)

	r := ValueRange{Min: int64(3), Max: int64(7)}
	require.True(r.Contains(int64(3)))
	require.True(r.Contains(5.5))
	require.False(r.Contains(int64(8)))
	require.True(r.Contains("x"))
}

type valueSegment []sql.Value

func (s valueSegment) Len() int            { return len(s) }
func (s valueSegment) Values() []sql.Value { return s }

type opaqueSegment int

func (s opaqueSegment) Len() int { return int(s) }

func TestStatistics(t *testing.T) {
	require := require.New(t)

	s := Statistics(valueSegment{int64(4), nil, int64(-2), int64(9)})
	require.True(s.Supported)
	require.True(s.HasRange)
	require.Equal(ValueRange{Min: int64(-2), Max: int64(9)}, s.Range)
	require.Equal(-1, s.DistinctCount)
	require.Equal(4, s.RowCount)

	s = Statistics(valueSegment{nil, nil})
	require.True(s.Supported)
	require.False(s.HasRange)

	s = Statistics(opaqueSegment(3))
	require.False(s.Supported)
}
