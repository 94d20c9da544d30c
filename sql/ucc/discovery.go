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

package ucc

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
)

// DefaultParallelism is the number of candidates validated concurrently when
// no other value is given.
const DefaultParallelism = 4

// Discover collects unique column candidates from every plan of the cache
// and validates each of them against the data of the catalog. Accepted
// candidates are registered on their tables; nothing is returned. A
// parallelism lower than 1 validates one candidate at a time.
func Discover(ctx *sql.Context, cat sql.Catalog, cache plan.Cache, parallelism int) {
	span, ctx := ctx.Span("ucc.discover")
	defer span.Finish()

	log := ctx.GetLogger().WithField("discovery", uuid.NewV4().String())
	start := time.Now()

	candidates := NewCandidates()
	for _, cp := range cache.Snapshot() {
		candidates.AddFromPlan(cp.Graph, cp.Root)
	}
	log.WithField("candidates", len(candidates)).Debug("unique column discovery started")

	if parallelism < 1 {
		parallelism = 1
	}

	var eg errgroup.Group
	eg.SetLimit(parallelism)

	outcomes := make([]Outcome, len(candidates))
	for i, c := range candidates.Sorted() {
		i, c := i, c
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			outcomes[i] = Validate(cat, c)
			log.WithFields(logrus.Fields{
				"table":   c.Table,
				"column":  c.Column,
				"outcome": outcomes[i],
				"elapsed": time.Since(started),
			}).Debug("validated unique column candidate")
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		log.WithError(err).Warn("unique column discovery was interrupted")
		return
	}

	var accepted int
	for _, o := range outcomes {
		if o == Accepted {
			accepted++
		}
	}
	log.WithFields(logrus.Fields{
		"candidates": len(outcomes),
		"accepted":   accepted,
		"elapsed":    time.Since(start),
	}).Info("unique column discovery finished")
}
