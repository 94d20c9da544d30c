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
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"

	"github.com/dolthub/go-mysql-optimizer/internal/similartext"
	"github.com/dolthub/go-mysql-optimizer/memory"
	"github.com/dolthub/go-mysql-optimizer/sql/analyzer"
	"github.com/dolthub/go-mysql-optimizer/sql/ucc"
)

const (
	debugOptimizerKey       = "DEBUG_OPTIMIZER"
	discoveryParallelismKey = "OPTIMIZER_DISCOVERY_PARALLELISM"
)

var (
	// ErrInvalidConfig is returned when a configuration can't be used.
	ErrInvalidConfig = errors.NewKind("invalid configuration: %s")

	// ErrUnknownRule is returned when a disabled rule is not a default rule.
	ErrUnknownRule = errors.NewKind("unknown rule %q%s")
)

// Config for the engine.
type Config struct {
	// Debug enables analyzer debug logging.
	Debug bool `yaml:"debug"`
	// Verbose logs the plan after every rule.
	Verbose bool `yaml:"verbose"`
	// LogLevel is the logrus level name, empty to leave it unchanged.
	LogLevel string `yaml:"log_level"`
	// DisabledRules are default rules that won't run.
	DisabledRules []string `yaml:"disabled_rules"`
	// DiscoveryParallelism is the number of unique column candidates
	// validated at the same time.
	DiscoveryParallelism int `yaml:"discovery_parallelism"`
	// PlanCacheSize is the number of unoptimized plans kept for discovery.
	PlanCacheSize int `yaml:"plan_cache_size"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		DiscoveryParallelism: ucc.DefaultParallelism,
		PlanCacheSize:        memory.DefaultPlanCacheSize,
	}
}

// ReadConfig reads a YAML configuration. Missing fields keep their default
// value, and environment variables override the result.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, ErrInvalidConfig.Wrap(err, err.Error())
	}

	if err := cfg.loadEnv(); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// ReadConfigFile reads the YAML configuration at path.
func ReadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	return ReadConfig(f)
}

func (c *Config) loadEnv() error {
	if _, ok := os.LookupEnv(debugOptimizerKey); ok {
		c.Debug = true
	}

	if v, ok := os.LookupEnv(discoveryParallelismKey); ok {
		n, err := cast.ToIntE(strings.TrimSpace(v))
		if err != nil {
			return ErrInvalidConfig.New(discoveryParallelismKey + " must be an integer, got " + v)
		}
		c.DiscoveryParallelism = n
	}

	return nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.DiscoveryParallelism < 1 {
		return ErrInvalidConfig.New("discovery_parallelism must be at least 1")
	}
	if c.PlanCacheSize < 1 {
		return ErrInvalidConfig.New("plan_cache_size must be at least 1")
	}
	for _, name := range c.DisabledRules {
		if !isDefaultRule(name) {
			return ErrUnknownRule.New(name, similartext.Find(defaultRuleNames(), name))
		}
	}
	if c.LogLevel != "" {
		if _, err := parseLogLevel(c.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

func defaultRuleNames() []string {
	names := make([]string, len(analyzer.DefaultRules))
	for i, r := range analyzer.DefaultRules {
		names[i] = r.Name
	}
	return names
}

func isDefaultRule(name string) bool {
	for _, n := range defaultRuleNames() {
		if n == name {
			return true
		}
	}
	return false
}
