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

import "github.com/dolthub/go-mysql-optimizer/sql"

// Visitor visits exprs in the plan.
type Visitor interface {
	// Visit method is invoked for each expr encountered by Walk.
	// If the result Visitor is not nil, Walk visits each of the children
	// of the expr with that visitor.
	Visit(expr sql.Expression) Visitor
}

// Walk traverses the expression tree in depth-first order. It starts by calling
// v.Visit(expr); expr must not be nil. If the visitor returned by
// v.Visit(expr) is not nil, Walk is invoked recursively with the returned
// visitor for each children of the expr.
func Walk(v Visitor, expr sql.Expression) {
	if v = v.Visit(expr); v == nil {
		return
	}

	for _, child := range expr.Children() {
		Walk(v, child)
	}
}

type inspector func(sql.Expression) bool

func (f inspector) Visit(expr sql.Expression) Visitor {
	if f(expr) {
		return f
	}
	return nil
}

// Inspect traverses the expression in depth-first order: It starts by calling
// f(expr); expr must not be nil. If f returns true, Inspect invokes f
// recursively for each of the children of expr.
func Inspect(expr sql.Expression, f func(sql.Expression) bool) {
	Walk(inspector(f), expr)
}

// Columns returns every column referenced by the given expressions, in
// order of appearance. Subquery plans are not entered.
func Columns(exprs ...sql.Expression) []*Column {
	var cols []*Column
	for _, e := range exprs {
		Inspect(e, func(e sql.Expression) bool {
			if c, ok := e.(*Column); ok {
				cols = append(cols, c)
			}
			return true
		})
	}
	return cols
}

// Subqueries returns every subquery expression found in the given
// expressions, without entering their plans.
func Subqueries(exprs ...sql.Expression) []*Subquery {
	var subqueries []*Subquery
	for _, e := range exprs {
		Inspect(e, func(e sql.Expression) bool {
			if s, ok := e.(*Subquery); ok {
				subqueries = append(subqueries, s)
			}
			return true
		})
	}
	return subqueries
}
