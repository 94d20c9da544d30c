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
	"fmt"
	"os"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-mysql-optimizer/sql"
	"github.com/dolthub/go-mysql-optimizer/sql/plan"
	"github.com/dolthub/go-mysql-optimizer/sql/transform"
)

const debugOptimizerKey = "DEBUG_OPTIMIZER"

const maxAnalysisIterations = 8

// ErrMaxAnalysisIters is thrown when the analysis iterations are exceeded
var ErrMaxAnalysisIters = errors.NewKind("exceeded max analysis iterations (%d)")

// Builder provides an easy way to generate Analyzer with custom rules and options.
type Builder struct {
	preOptimizationRules  []Rule
	postOptimizationRules []Rule
	disabledRules         map[string]struct{}
	catalog               sql.Catalog
	debug                 bool
	verbose               bool
}

// NewBuilder creates a new Builder from a specific catalog.
// This builder allow us add custom Rules and modify some internal properties.
func NewBuilder(c sql.Catalog) *Builder {
	return &Builder{catalog: c, disabledRules: make(map[string]struct{})}
}

// WithDebug activates debug on the Analyzer.
func (ab *Builder) WithDebug() *Builder {
	ab.debug = true
	return ab
}

// WithVerbose makes the Analyzer log the plan after every rule. It implies
// debug.
func (ab *Builder) WithVerbose() *Builder {
	ab.debug = true
	ab.verbose = true
	return ab
}

// WithoutRules disables the default rules with the given names.
func (ab *Builder) WithoutRules(names ...string) *Builder {
	for _, name := range names {
		ab.disabledRules[name] = struct{}{}
	}
	return ab
}

// AddPreOptimizationRule adds a new rule to the analyzer before the default rules.
func (ab *Builder) AddPreOptimizationRule(name string, fn RuleFunc) *Builder {
	ab.preOptimizationRules = append(ab.preOptimizationRules, Rule{name, fn})
	return ab
}

// AddPostOptimizationRule adds a new rule to the analyzer after the default rules.
func (ab *Builder) AddPostOptimizationRule(name string, fn RuleFunc) *Builder {
	ab.postOptimizationRules = append(ab.postOptimizationRules, Rule{name, fn})
	return ab
}

// Build creates a new Analyzer using all previous data set to the Builder.
func (ab *Builder) Build() *Analyzer {
	_, debug := os.LookupEnv(debugOptimizerKey)

	var defaults []Rule
	for _, r := range DefaultRules {
		if _, ok := ab.disabledRules[r.Name]; !ok {
			defaults = append(defaults, r)
		}
	}

	batches := []*Batch{
		{
			Desc:       "pre-optimization",
			Iterations: maxAnalysisIterations,
			Rules:      ab.preOptimizationRules,
		},
		{
			Desc:       "default-rules",
			Iterations: 1,
			Rules:      defaults,
		},
		{
			Desc:       "post-optimization",
			Iterations: maxAnalysisIterations,
			Rules:      ab.postOptimizationRules,
		},
	}

	return &Analyzer{
		Debug:    debug || ab.debug,
		Verbose:  ab.verbose,
		debugCtx: make([]string, 0),
		Batches:  batches,
		Catalog:  ab.catalog,
	}
}

// Analyzer rewrites logical plans by applying batches of rules to them.
type Analyzer struct {
	// Whether to log various debugging messages
	Debug bool
	// Whether to output the plan after each rule
	Verbose  bool
	debugCtx []string
	// Batches of Rules to apply.
	Batches []*Batch
	// Catalog gives rules access to table data and key constraints.
	Catalog sql.Catalog
}

// NewDefault creates a default Analyzer instance with all default Rules and configuration.
// To add custom rules, the easiest way is use the Builder.
func NewDefault(c sql.Catalog) *Analyzer {
	return NewBuilder(c).Build()
}

// Log prints an INFO message to stdout with the given message and args
// if the analyzer is in debug mode.
func (a *Analyzer) Log(msg string, args ...interface{}) {
	if a != nil && a.Debug {
		if len(a.debugCtx) > 0 {
			ctx := strings.Join(a.debugCtx, "/")
			logrus.Infof("%s: "+msg, append([]interface{}{ctx}, args...)...)
		} else {
			logrus.Infof(msg, args...)
		}
	}
}

// LogPlan prints the plan given if Verbose logging is enabled.
func (a *Analyzer) LogPlan(g *plan.Graph, root sql.NodeID) {
	if a != nil && a.Verbose {
		if len(a.debugCtx) > 0 {
			ctx := strings.Join(a.debugCtx, "/")
			fmt.Printf("%s:\n%s", ctx, plan.String(g, root))
		} else {
			fmt.Printf("%s", plan.String(g, root))
		}
	}
}

// PushDebugContext pushes the given context string onto the context stack, to use when logging debug messages.
func (a *Analyzer) PushDebugContext(msg string) {
	if a != nil {
		a.debugCtx = append(a.debugCtx, msg)
	}
}

// PopDebugContext pops a context message off the context stack.
func (a *Analyzer) PopDebugContext() {
	if a != nil && len(a.debugCtx) > 0 {
		a.debugCtx = a.debugCtx[:len(a.debugCtx)-1]
	}
}

// Optimize runs every batch of rules over the plan rooted at root and
// returns the root of the optimized plan, which may be a different node.
// The plan is rewritten in place; nodes of g that are not reachable from the
// returned root afterwards are reclaimed, so g must not hold other plans.
//
// A malformed plan, or one whose stored tables do not match the catalog, is
// a programming error and panics with sql.ErrInvalidPlan.
func (a *Analyzer) Optimize(ctx *sql.Context, g *plan.Graph, root sql.NodeID) (sql.NodeID, error) {
	span, ctx := ctx.Span("optimize", opentracing.Tags{
		"nodes": g.Len(),
	})
	defer span.Finish()

	if err := plan.Verify(g, root); err != nil {
		panic(err)
	}
	if err := plan.VerifyTables(g, a.Catalog, root); err != nil {
		panic(err)
	}

	top := g.NewRoot(root)
	a.Log("starting optimization of plan rooted at %s", root)
	for _, batch := range a.Batches {
		a.PushDebugContext(batch.Desc)
		err := batch.Eval(ctx, a, g, top)
		a.PopDebugContext()
		if ErrMaxAnalysisIters.Is(err) {
			a.Log(err.Error())
			continue
		}
		if err != nil {
			return sql.InvalidNodeID, err
		}
	}

	result := g.Input(top, plan.LeftInput)
	g.SetInput(top, plan.LeftInput, sql.InvalidNodeID)
	g.Collect(result)

	if err := plan.Verify(g, result); err != nil {
		panic(err)
	}

	span.SetTag("optimized_nodes", g.Len())
	return result, nil
}

// applyRule applies the rule to the plan and then, independently, to every
// subquery plan its expressions reference, including subqueries created by
// the rule itself.
func (a *Analyzer) applyRule(ctx *sql.Context, rule Rule, g *plan.Graph, root sql.NodeID) error {
	a.Log("applying rule to plan rooted at %s", root)
	if err := rule.Apply(ctx, a, g, root); err != nil {
		return err
	}

	for _, sq := range transform.Subqueries(g, root) {
		top := g.NewRoot(sq)
		err := a.applyRule(ctx, rule, g, top)
		replacement := g.Input(top, plan.LeftInput)
		g.SetInput(top, plan.LeftInput, sql.InvalidNodeID)
		if err != nil {
			return err
		}

		if replacement != sq {
			a.Log("subquery root %s replaced by %s", sq, replacement)
			if err := transform.ReplaceSubqueryRoot(g, root, sq, replacement); err != nil {
				return err
			}
		}
	}

	return nil
}
