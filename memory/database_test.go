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

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-mysql-optimizer/memory"
	"github.com/dolthub/go-mysql-optimizer/sql"
)

func TestDatabase(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("mydb")
	require.Equal("mydb", db.Name())

	_, err := db.CreateTable("Orders", nil)
	require.NoError(err)
	_, err = db.CreateTable("customers", nil)
	require.NoError(err)

	_, err = db.CreateTable("orders", nil)
	require.True(sql.ErrTableAlreadyExists.Is(err))

	require.Equal([]string{"Orders", "customers"}, db.TableNames())

	table, ok := db.Table("ORDERS")
	require.True(ok)
	require.Equal("Orders", table.Name())

	require.NoError(db.DropTable("orders"))
	_, ok = db.Table("orders")
	require.False(ok)

	err = db.DropTable("customer")
	require.True(sql.ErrTableNotFound.Is(err))
	require.EqualError(err, "table not found: customer, maybe you mean customers?")

	db.AddTable(memory.NewTable("products", nil))
	require.Equal([]string{"customers", "products"}, db.TableNames())
}
