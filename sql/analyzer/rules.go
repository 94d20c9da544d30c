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

package analyzer

// Rule names of the default rules.
const (
	JoinToPredicateRule = "join_to_predicate"
	ChunkPruningRule    = "chunk_pruning"
	DipsPruningRule     = "dips_pruning"
)

// DefaultRules to apply when optimizing plans, in order. Predicate chunk
// pruning runs before DIPS so that the tightened ranges are propagated
// across joins.
var DefaultRules = []Rule{
	{JoinToPredicateRule, joinToPredicate},
	{ChunkPruningRule, pruneChunksByPredicate},
	{DipsPruningRule, dipsPruning},
}
