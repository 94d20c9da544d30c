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

package plan

import "github.com/dolthub/go-mysql-optimizer/sql"

// CachedPlan is a plan kept by a plan cache together with the query text it
// was built from.
type CachedPlan struct {
	Query string
	Graph *Graph
	Root  sql.NodeID
}

// Cache is a cache of unoptimized plans keyed by query text.
type Cache interface {
	// Put stores the plan of a query, replacing any previous one.
	Put(query string, g *Graph, root sql.NodeID)
	// Snapshot returns the cached plans at the time of the call.
	Snapshot() []CachedPlan
}
