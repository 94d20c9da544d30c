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

package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const expectedTree = `Projection(a, b)
 ├─ Join(Inner)
 │   ├─ StoredTable(a)
 │   └─ StoredTable(b)
 └─ Subquery(#4)
     └─ StoredTable(c)
`

func TestTreePrinter(t *testing.T) {
	require := require.New(t)
	p := NewTreePrinter()
	require.NoError(p.WriteNode("Projection(%s, %s)", "a", "b"))

	p2 := NewTreePrinter()
	require.NoError(p2.WriteNode("Join(Inner)"))
	require.NoError(p2.WriteChildren("StoredTable(a)", "StoredTable(b)"))

	p3 := NewTreePrinter()
	require.NoError(p3.WriteNode("Subquery(%s)", NodeID(4)))
	require.NoError(p3.WriteChildren("StoredTable(c)\n"))

	require.NoError(p.WriteChildren(p2.String(), p3.String()))
	require.Equal(expectedTree, p.String())
}

func TestTreePrinterErrors(t *testing.T) {
	require := require.New(t)

	p := NewTreePrinter()
	require.True(ErrNodeNotWritten.Is(p.WriteChildren("StoredTable(a)")))

	require.NoError(p.WriteNode("Root"))
	require.True(ErrNodeAlreadyWritten.Is(p.WriteNode("Root")))

	require.NoError(p.WriteChildren("StoredTable(a)"))
	require.True(ErrChildrenAlreadyWritten.Is(p.WriteChildren("StoredTable(b)")))
}
