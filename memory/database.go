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

package memory

import (
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/dolthub/go-mysql-optimizer/internal/similartext"
	"github.com/dolthub/go-mysql-optimizer/sql"
)

// Database is an in-memory database. It is the storage collaborator handed to
// the optimizer and to constraint discovery.
type Database struct {
	name   string
	mu     sync.RWMutex
	tables map[string]*Table
}

var _ sql.Catalog = (*Database)(nil)

// NewDatabase creates a new database with the given name.
func NewDatabase(name string) *Database {
	return &Database{
		name:   name,
		tables: map[string]*Table{},
	}
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.name
}

// Table implements the sql.Catalog interface. Lookups are case-insensitive.
func (d *Database) Table(name string) (sql.Table, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.tables[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return t, true
}

// TableNames implements the sql.Catalog interface.
func (d *Database) TableNames() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.tables))
	for _, t := range maps.Values(d.tables) {
		names = append(names, t.Name())
	}
	slices.Sort(names)
	return names
}

// AddTable adds a new table to the database.
func (d *Database) AddTable(t *Table) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[strings.ToLower(t.Name())] = t
}

// CreateTable creates a table with the given name and schema
func (d *Database) CreateTable(name string, schema sql.Schema, opts ...TableOption) (*Table, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.tables[strings.ToLower(name)]; ok {
		return nil, sql.ErrTableAlreadyExists.New(name)
	}

	t := NewTable(name, schema, opts...)
	d.tables[strings.ToLower(name)] = t
	return t, nil
}

// DropTable drops the table with the given name
func (d *Database) DropTable(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.tables[strings.ToLower(name)]; !ok {
		similar := similartext.FindFromMap(d.tables, strings.ToLower(name))
		return sql.ErrTableNotFound.New(name + similar)
	}

	delete(d.tables, strings.ToLower(name))
	return nil
}
