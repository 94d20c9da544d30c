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

import (
	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
)

// RuleFunc is the function to be applied in a rule. It receives the root of
// the plan, always a *plan.Root, and mutates the graph in place.
type RuleFunc func(ctx *sql.Context, a *Analyzer, g *plan.Graph, root sql.NodeID) error

// Rule to transform nodes.
type Rule struct {
	// Name of the rule.
	Name string
	// Apply transforms a plan.
	Apply RuleFunc
}

// Batch executes a set of rules a specific number of times.
// When this number of times is reached, ErrMaxAnalysisIters is returned.
type Batch struct {
	Desc       string
	Iterations int
	Rules      []Rule
}

// Eval executes the rules of the batch until the plan stops changing or the
// number of iterations is reached, in which case ErrMaxAnalysisIters is
// returned. The plan is compared by fingerprint between iterations.
func (b *Batch) Eval(ctx *sql.Context, a *Analyzer, g *plan.Graph, root sql.NodeID) error {
	if b.Iterations == 0 || len(b.Rules) == 0 {
		return nil
	}

	if b.Iterations == 1 {
		return b.evalOnce(ctx, a, g, root)
	}

	prev, err := plan.Fingerprint(g, root)
	if err != nil {
		return err
	}
	if err := b.evalOnce(ctx, a, g, root); err != nil {
		return err
	}
	cur, err := plan.Fingerprint(g, root)
	if err != nil {
		return err
	}

	for i := 1; prev != cur; {
		prev = cur
		if err := b.evalOnce(ctx, a, g, root); err != nil {
			return err
		}
		if cur, err = plan.Fingerprint(g, root); err != nil {
			return err
		}

		i++
		if i >= b.Iterations {
			return ErrMaxAnalysisIters.New(b.Iterations)
		}
	}

	return nil
}

func (b *Batch) evalOnce(ctx *sql.Context, a *Analyzer, g *plan.Graph, root sql.NodeID) error {
	for _, rule := range b.Rules {
		a.PushDebugContext(rule.Name)
		err := a.applyRule(ctx, rule, g, root)
		a.PopDebugContext()
		if err != nil {
			return err
		}

		if n := g.Collect(root); n > 0 {
			a.Log("reclaimed %d nodes", n)
		}
		a.LogPlan(g, root)
	}

	return nil
}
