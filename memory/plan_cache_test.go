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

package memory_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-mysql-optimizer/memory"
	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
)

var xTable = memory.NewTable("t", sql.Schema{{Name: "x", Type: sql.Int64}})

func TestPlanCache(t *testing.T) {
	require := require.New(t)
	cache := memory.NewPlanCache(2)

	put := func(query string) *plan.Graph {
		g := plan.NewGraph()
		cache.Put(query, g, g.NewStoredTableFrom(xTable))
		return g
	}

	q1 := put("SELECT 1")
	put("SELECT 2")

	cp, ok := cache.Get("SELECT 1")
	require.True(ok)
	require.True(q1 == cp.Graph)
	require.Equal(sql.NodeID(0), cp.Root)

	// SELECT 2 is now the least recently used
	put("SELECT 3")
	require.Equal(2, cache.Len())
	_, ok = cache.Get("SELECT 2")
	require.False(ok)

	var queries []string
	for _, cp := range cache.Snapshot() {
		queries = append(queries, cp.Query)
	}
	require.Equal([]string{"SELECT 1", "SELECT 3"}, queries)

	// taking a snapshot doesn't refresh recency
	put("SELECT 4")
	_, ok = cache.Get("SELECT 1")
	require.False(ok)
}

func TestPlanCacheDefaultSize(t *testing.T) {
	require := require.New(t)
	cache := memory.NewPlanCache(0)
	for i := 0; i < memory.DefaultPlanCacheSize+1; i++ {
		g := plan.NewGraph()
		cache.Put(fmt.Sprintf("SELECT %d", i), g, g.NewStoredTableFrom(xTable))
	}
	require.Equal(memory.DefaultPlanCacheSize, cache.Len())
}
