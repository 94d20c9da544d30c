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

package sqle

import (
	"time"

	"github.com/dolthub/go-mysql-optimizer/memory"
	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/analyzer"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
	"github.com/dolthub/go-mysql-optimizer/sql/ucc"
)

// Engine optimizes logical plans over the tables of a catalog and keeps
// the unoptimized plans it sees for offline constraint discovery.
type Engine struct {
	Catalog  sql.Catalog
	Analyzer *analyzer.Analyzer
	Cache    *memory.PlanCache
	Config   Config
}

// New creates a new Engine with the given configuration.
func New(c sql.Catalog, cfg Config) *Engine {
	configureLogging(cfg)

	b := analyzer.NewBuilder(c).WithoutRules(cfg.DisabledRules...)
	if cfg.Debug {
		b = b.WithDebug()
	}
	if cfg.Verbose {
		b = b.WithVerbose()
	}

	return &Engine{
		Catalog:  c,
		Analyzer: b.Build(),
		Cache:    memory.NewPlanCache(cfg.PlanCacheSize),
		Config:   cfg,
	}
}

// NewDefault creates a new Engine with the default configuration.
func NewDefault(c sql.Catalog) *Engine {
	return New(c, DefaultConfig())
}

// Optimize rewrites the plan of the query rooted at root in place and
// returns the root of the optimized plan. A copy of the unoptimized plan is
// cached under the query text, unless the query is empty.
func (e *Engine) Optimize(ctx *sql.Context, query string, g *plan.Graph, root sql.NodeID) (sql.NodeID, error) {
	ctx = ctx.WithQuery(query)
	start := time.Now()
	before := g.Len()

	if query != "" {
		e.Cache.Put(query, g.Clone(), root)
	}

	result, err := e.Analyzer.Optimize(ctx, g, root)
	if err != nil {
		return sql.InvalidNodeID, err
	}

	logOptimization(ctx, start, before, g.Len(), result != root || before != g.Len())
	return result, nil
}

// DiscoverConstraints validates the unique column candidates suggested by
// the cached plans and registers the proven ones on their tables.
func (e *Engine) DiscoverConstraints(ctx *sql.Context) {
	ucc.Discover(ctx, e.Catalog, e.Cache, e.Config.DiscoveryParallelism)
}
