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
	"strings"

	"github.com/dolthub/go-mysql-optimizer/sql"
)

// Function is a logical connective, a scalar function or an aggregate call.
type Function struct {
	Name string
	Args []sql.Expression
}

var _ sql.Expression = (*Function)(nil)

// NewFunction creates a call of the named function.
func NewFunction(name string, args ...sql.Expression) *Function {
	return &Function{Name: strings.ToUpper(name), Args: args}
}

// NewAnd creates a new AND expression.
func NewAnd(left, right sql.Expression) *Function {
	return NewFunction("AND", left, right)
}

// NewOr creates a new OR expression.
func NewOr(left, right sql.Expression) *Function {
	return NewFunction("OR", left, right)
}

// NewNot returns a new NOT expression.
func NewNot(child sql.Expression) *Function {
	return NewFunction("NOT", child)
}

// Children implements the Expression interface.
func (f *Function) Children() []sql.Expression { return f.Args }

// WithChildren implements the Expression interface.
func (f *Function) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(f.Args) {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), len(f.Args))
	}
	return &Function{Name: f.Name, Args: children}, nil
}

func (f *Function) String() string {
	switch {
	case (f.Name == "AND" || f.Name == "OR") && len(f.Args) == 2:
		return fmt.Sprintf("(%s %s %s)", f.Args[0], f.Name, f.Args[1])
	}
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(args, ", "))
}
