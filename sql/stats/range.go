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

	"golang.org/x/exp/constraints"
)

// Range is a closed interval [Min, Max] over a totally ordered type.
type Range[T constraints.Ordered] struct {
	Min T
	Max T
}

// NewRange returns the range [min, max].
func NewRange[T constraints.Ordered](min, max T) Range[T] {
	return Range[T]{Min: min, Max: max}
}

// Intersects returns whether the two closed ranges share at least one value.
// Touching ranges intersect. The relation is symmetric.
func Intersects[T constraints.Ordered](a, b Range[T]) bool {
	return !(a.Max < b.Min || b.Max < a.Min)
}

// Contains returns whether v is inside the range.
func (r Range[T]) Contains(v T) bool {
	return !(v < r.Min || r.Max < v)
}

func (r Range[T]) String() string {
	return fmt.Sprintf("[%v, %v]", r.Min, r.Max)
}
