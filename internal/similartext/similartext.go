// Copyright 2020-2024 Dolthub, Inc.
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

package similartext

import (
	"fmt"
	"sort"
	"strings"
)

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// distanceForStrings returns the Levenshtein distance between source and
// target.
func distanceForStrings(source, target []rune) int {
	if len(source) == 0 {
		return len(target)
	}
	if len(target) == 0 {
		return len(source)
	}

	prev := make([]int, len(target)+1)
	cur := make([]int, len(target)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(source); i++ {
		cur[0] = i
		for j := 1; j <= len(target); j++ {
			cost := 1
			if source[i-1] == target[j-1] {
				cost = 0
			}
			cur[j] = min(min(prev[j]+1, cur[j-1]+1), prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	return prev[len(target)]
}

// maxDistance is the largest distance at which a name is still suggested
// for src.
func maxDistance(src string) int {
	if n := len(src) / 2; n > 2 {
		return n
	}
	return 2
}

// Find returns a string with suggestions for the names closest to src, or
// an empty string if no name is close enough. Ties are listed in the order
// of names.
func Find(names []string, src string) string {
	if len(src) == 0 {
		return ""
	}

	best := -1
	var matches []string
	for _, name := range names {
		dist := distanceForStrings([]rune(name), []rune(src))
		switch {
		case dist > maxDistance(src):
			continue
		case best == -1 || dist < best:
			best = dist
			matches = []string{name}
		case dist == best:
			matches = append(matches, name)
		}
	}

	if len(matches) == 0 {
		return ""
	}
	return fmt.Sprintf(", maybe you mean %s?", strings.Join(matches, " or "))
}

// FindFromMap does the same as Find but takes a map instead of a string
// slice. Keys are considered in sorted order.
func FindFromMap[V any](names map[string]V, src string) string {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Find(keys, src)
}
