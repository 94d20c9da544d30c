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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-mysql-optimizer/memory"
	"github.com/dolthub/go-mysql-optimizer/sql/ucc"
)

func TestReadConfig(t *testing.T) {
	require := require.New(t)

	cfg, err := ReadConfig(strings.NewReader(`
debug: true
log_level: warn
disabled_rules:
  - dips_pruning
discovery_parallelism: 8
`))
	require.NoError(err)
	require.Equal(Config{
		Debug:                true,
		LogLevel:             "warn",
		DisabledRules:        []string{"dips_pruning"},
		DiscoveryParallelism: 8,
		PlanCacheSize:        memory.DefaultPlanCacheSize,
	}, cfg)

	cfg, err = ReadConfig(strings.NewReader(""))
	require.NoError(err)
	require.Equal(DefaultConfig(), cfg)
	require.Equal(ucc.DefaultParallelism, cfg.DiscoveryParallelism)
}

func TestReadConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"malformed", "debug: [true"},
		{"wrong type", "plan_cache_size: many"},
		{"unknown log level", "log_level: loud"},
		{"no parallelism", "discovery_parallelism: 0"},
		{"negative cache size", "plan_cache_size: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			_, err := ReadConfig(strings.NewReader(tt.config))
			require.Error(err)
			require.True(ErrInvalidConfig.Is(err), "unexpected error: %s", err)
		})
	}
}

func TestReadConfigUnknownRule(t *testing.T) {
	require := require.New(t)
	_, err := ReadConfig(strings.NewReader("disabled_rules: [chunk_prunning]"))
	require.True(ErrUnknownRule.Is(err))
	require.EqualError(err, `unknown rule "chunk_prunning", maybe you mean chunk_pruning?`)
}

func TestReadConfigEnv(t *testing.T) {
	require := require.New(t)
	t.Setenv(debugOptimizerKey, "")
	t.Setenv(discoveryParallelismKey, " 2 ")

	cfg, err := ReadConfig(strings.NewReader("discovery_parallelism: 16"))
	require.NoError(err)
	require.True(cfg.Debug)
	require.Equal(2, cfg.DiscoveryParallelism)

	t.Setenv(discoveryParallelismKey, "two")
	_, err = ReadConfig(strings.NewReader(""))
	require.True(ErrInvalidConfig.Is(err))
}

func TestReadConfigFile(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "optimizer.yml")
	require.NoError(os.WriteFile(path, []byte("verbose: true\nplan_cache_size: 16\n"), 0o644))

	cfg, err := ReadConfigFile(path)
	require.NoError(err)
	require.True(cfg.Verbose)
	require.Equal(16, cfg.PlanCacheSize)

	_, err = ReadConfigFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.True(os.IsNotExist(err))
}
