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

	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-mysql-optimizer/sql"
)

const (
	QueryTimeLogKey  = "queryTime"
	PlanNodesLogKey  = "planNodes"
	OptimizedLogKey  = "optimized"
	logLevelFieldKey = "log_level"
)

func parseLogLevel(level string) (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return lvl, ErrInvalidConfig.Wrap(err, logLevelFieldKey+": "+err.Error())
	}
	return lvl, nil
}

// configureLogging sets the level of the standard logger if the
// configuration names one.
func configureLogging(cfg Config) {
	if cfg.LogLevel == "" {
		return
	}
	if lvl, err := parseLogLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}
}

func logOptimization(ctx *sql.Context, start time.Time, before, after int, optimized bool) {
	ctx.GetLogger().WithFields(logrus.Fields{
		QueryTimeLogKey: time.Since(start),
		PlanNodesLogKey: []int{before, after},
		OptimizedLogKey: optimized,
	}).Debug("plan optimized")
}
