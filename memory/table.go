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
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-mysql-optimizer/sql"
)

const defaultChunkSize = 65535

// Table represents an in-memory table stored in append-only chunks.
type Table struct {
	name      string
	schema    sql.Schema
	chunkSize int
	encodings []Encoding

	mu          sync.RWMutex
	chunks      []*Chunk
	constraints []sql.TableKeyConstraint
}

var _ sql.Table = (*Table)(nil)

// TableOption configures a table.
type TableOption func(*Table)

// WithChunkSize sets the maximum number of rows per chunk created by Insert.
func WithChunkSize(size int) TableOption {
	return func(t *Table) {
		if size > 0 {
			t.chunkSize = size
		}
	}
}

// WithEncoding sets the encoding of the column with the given name for the
// chunks created by Insert.
func WithEncoding(column string, enc Encoding) TableOption {
	return func(t *Table) {
		if i := t.schema.IndexOf(column); i >= 0 {
			t.encodings[i] = enc
		}
	}
}

// WithKeyConstraint declares a key constraint on the table.
func WithKeyConstraint(c sql.TableKeyConstraint) TableOption {
	return func(t *Table) {
		t.constraints = append(t.constraints, c)
	}
}

// NewTable creates a new Table with the given name and schema. Columns are
// dictionary encoded unless configured otherwise.
func NewTable(name string, schema sql.Schema, opts ...TableOption) *Table {
	t := &Table{
		name:      name,
		schema:    schema,
		chunkSize: defaultChunkSize,
		encodings: make([]Encoding, len(schema)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name implements the sql.Table interface.
func (t *Table) Name() string {
	return t.name
}

// Schema implements the sql.Table interface.
func (t *Table) Schema() sql.Schema {
	return t.schema
}

// ColumnID implements the sql.Table interface.
func (t *Table) ColumnID(name string) (sql.ColumnID, bool) {
	i := t.schema.IndexOf(name)
	if i < 0 {
		return 0, false
	}
	return sql.ColumnID(i), true
}

// ChunkCount implements the sql.Table interface.
func (t *Table) ChunkCount() sql.ChunkID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return sql.ChunkID(len(t.chunks))
}

// Chunk implements the sql.Table interface.
func (t *Table) Chunk(id sql.ChunkID) sql.Chunk {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) >= len(t.chunks) {
		panic(sql.ErrChunkNotFound.New(t.name, id))
	}
	return t.chunks[id]
}

// Insert appends the given rows, filling new chunks of at most the
// configured chunk size. Existing chunks are never modified.
func (t *Table) Insert(rows ...[]sql.Value) error {
	for _, row := range rows {
		if len(row) != len(t.schema) {
			return sql.ErrUnexpectedRowLength.New(len(t.schema), len(row))
		}
	}

	var chunks []*Chunk
	for start := 0; start < len(rows); start += t.chunkSize {
		end := start + t.chunkSize
		if end > len(rows) {
			end = len(rows)
		}

		segments := make([]sql.Segment, len(t.schema))
		for col := range t.schema {
			values := make([]sql.Value, end-start)
			for i, row := range rows[start:end] {
				values[i] = row[col]
			}
			segments[col] = encode(values, t.encodings[col])
		}
		chunks = append(chunks, NewChunk(segments...))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.chunks = append(t.chunks, chunks...)
	t.invalidate()
	return nil
}

// AppendChunk appends a chunk built from the given segments, one per column.
func (t *Table) AppendChunk(segments ...sql.Segment) error {
	if len(segments) != len(t.schema) {
		return sql.ErrUnexpectedRowLength.New(len(t.schema), len(segments))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.chunks = append(t.chunks, NewChunk(segments...))
	t.invalidate()
	return nil
}

// Delete sets a tombstone on the given row.
func (t *Table) Delete(chunk sql.ChunkID, row int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if int(chunk) >= len(t.chunks) {
		return sql.ErrChunkNotFound.New(t.name, chunk)
	}
	if row < 0 || row >= t.chunks[chunk].Size() {
		return sql.ErrRowNotFound.New(row, chunk, t.name)
	}
	if err := t.chunks[chunk].markDeleted(row); err != nil {
		return err
	}
	t.invalidate()
	return nil
}

// invalidate drops the constraints that were proven from the data, since the
// proof no longer holds once rows change. Must be called with the lock held.
func (t *Table) invalidate() {
	kept := t.constraints[:0]
	var dropped int
	for _, c := range t.constraints {
		if c.Discovered {
			dropped++
			continue
		}
		kept = append(kept, c)
	}
	t.constraints = kept

	if dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"table":       t.name,
			"constraints": dropped,
		}).Debug("dropped discovered key constraints after table change")
	}
}

// KeyConstraints implements the sql.KeyConstraintTable interface.
func (t *Table) KeyConstraints() []sql.TableKeyConstraint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]sql.TableKeyConstraint(nil), t.constraints...)
}

// AddKeyConstraint implements the sql.KeyConstraintTable interface.
func (t *Table) AddKeyConstraint(c sql.TableKeyConstraint) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.constraints {
		if existing.Equals(c) {
			return
		}
	}
	t.constraints = append(t.constraints, c)
}
