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

package expression

import (
	"fmt"

	"github.com/dolthub/go-mysql-optimizer/sql"
)

// Subquery is an expression whose value is computed by a nested plan. The
// plan lives in the same graph as the node holding the expression and is
// owned by this expression.
type Subquery struct {
	Root sql.NodeID
}

var _ sql.Expression = (*Subquery)(nil)

// NewSubquery returns a new subquery expression over the plan rooted at root.
func NewSubquery(root sql.NodeID) *Subquery {
	return &Subquery{Root: root}
}

// Children implements the Expression interface.
func (*Subquery) Children() []sql.Expression { return nil }

// WithChildren implements the Expression interface.
func (s *Subquery) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 0)
	}
	return s, nil
}

func (s *Subquery) String() string {
	return fmt.Sprintf("SUBQUERY(%s)", s.Root)
}
