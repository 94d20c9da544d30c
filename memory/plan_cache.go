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
	lru "github.com/hashicorp/golang-lru"

	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
)

// DefaultPlanCacheSize is the number of plans kept when no size is given.
const DefaultPlanCacheSize = 1024

// PlanCache keeps the most recently used unoptimized plans keyed by their
// query text.
type PlanCache struct {
	cache *lru.Cache
}

var _ plan.Cache = (*PlanCache)(nil)

// NewPlanCache creates a plan cache holding up to size plans.
func NewPlanCache(size int) *PlanCache {
	if size <= 0 {
		size = DefaultPlanCacheSize
	}
	// only fails for non-positive sizes
	c, _ := lru.New(size)
	return &PlanCache{cache: c}
}

// Put implements the plan.Cache interface.
func (c *PlanCache) Put(query string, g *plan.Graph, root sql.NodeID) {
	c.cache.Add(query, plan.CachedPlan{Query: query, Graph: g, Root: root})
}

// Get returns the plan cached for the query.
func (c *PlanCache) Get(query string) (plan.CachedPlan, bool) {
	v, ok := c.cache.Get(query)
	if !ok {
		return plan.CachedPlan{}, false
	}
	return v.(plan.CachedPlan), true
}

// Len returns the number of cached plans.
func (c *PlanCache) Len() int {
	return c.cache.Len()
}

// Snapshot implements the plan.Cache interface. Plans are returned from the
// least to the most recently used; reading them does not change their
// recency.
func (c *PlanCache) Snapshot() []plan.CachedPlan {
	keys := c.cache.Keys()
	plans := make([]plan.CachedPlan, 0, len(keys))
	for _, k := range keys {
		if v, ok := c.cache.Peek(k); ok {
			plans = append(plans, v.(plan.CachedPlan))
		}
	}
	return plans
}
