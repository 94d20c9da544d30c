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
	"fmt"

	"github.com/spf13/cast"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-mysql-optimizer/sql"
)

// ErrIncomparable is returned when two values have no common ordering.
var ErrIncomparable = errors.NewKind("values %v (%T) and %v (%T) are not comparable")

type valueKind uint8

const (
	kindNull valueKind = iota
	kindInt
	kindFloat
	kindString
	kindOther
)

func kindOf(v sql.Value) valueKind {
	switch v.(type) {
	case nil:
		return kindNull
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return kindInt
	case float32, float64:
		return kindFloat
	case string, []byte:
		return kindString
	default:
		return kindOther
	}
}

// Compare orders two non-NULL values. Integers and floating point numbers are
// comparable with each other; strings compare lexicographically.
func Compare(a, b sql.Value) (int, error) {
	ka, kb := kindOf(a), kindOf(b)
	switch {
	case ka == kindInt && kb == kindInt:
		x, err := cast.ToInt64E(a)
		if err != nil {
			return 0, err
		}
		y, err := cast.ToInt64E(b)
		if err != nil {
			return 0, err
		}
		return compareOrdered(x, y), nil
	case (ka == kindInt || ka == kindFloat) && (kb == kindInt || kb == kindFloat):
		x, err := cast.ToFloat64E(a)
		if err != nil {
			return 0, err
		}
		y, err := cast.ToFloat64E(b)
		if err != nil {
			return 0, err
		}
		return compareOrdered(x, y), nil
	case ka == kindString && kb == kindString:
		return compareOrdered(cast.ToString(a), cast.ToString(b)), nil
	default:
		return 0, ErrIncomparable.New(a, a, b, b)
	}
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ValueRange is a closed interval over dynamically typed values.
type ValueRange struct {
	Min sql.Value
	Max sql.Value
}

// Intersects returns whether both ranges share at least one value. Ranges of
// incomparable types are reported as intersecting, which never allows a
// pruning decision.
func (r ValueRange) Intersects(o ValueRange) bool {
	switch ka, kb := kindOf(r.Min), kindOf(o.Min); {
	case ka == kindInt && kb == kindInt:
		return Intersects(
			NewRange(cast.ToInt64(r.Min), cast.ToInt64(r.Max)),
			NewRange(cast.ToInt64(o.Min), cast.ToInt64(o.Max)))
	case (ka == kindInt || ka == kindFloat) && (kb == kindInt || kb == kindFloat):
		return Intersects(
			NewRange(cast.ToFloat64(r.Min), cast.ToFloat64(r.Max)),
			NewRange(cast.ToFloat64(o.Min), cast.ToFloat64(o.Max)))
	case ka == kindString && kb == kindString:
		return Intersects(
			NewRange(cast.ToString(r.Min), cast.ToString(r.Max)),
			NewRange(cast.ToString(o.Min), cast.ToString(o.Max)))
	default:
		return true
	}
}

// Contains returns whether v lies inside the range. Incomparable values are
// reported as contained.
func (r ValueRange) Contains(v sql.Value) bool {
	lo, err := Compare(r.Min, v)
	if err != nil {
		return true
	}
	hi, err := Compare(v, r.Max)
	if err != nil {
		return true
	}
	return lo <= 0 && hi <= 0
}

func (r ValueRange) String() string {
	return fmt.Sprintf("[%v, %v]", r.Min, r.Max)
}
