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

	"github.com/pilosa/pilosa/roaring"

	"github.com/dolthub/go-mysql-optimizer/sql"
)

// Chunk is an immutable horizontal partition of a table. Rows are never
// modified in place; deletes only set a tombstone.
type Chunk struct {
	size     int
	segments []sql.Segment

	mu      sync.RWMutex
	deleted *roaring.Bitmap
}

var _ sql.Chunk = (*Chunk)(nil)

// NewChunk creates a chunk from one segment per column. All segments must
// have the same length.
func NewChunk(segments ...sql.Segment) *Chunk {
	var size int
	if len(segments) > 0 {
		size = segments[0].Len()
	}
	return &Chunk{size: size, segments: segments, deleted: roaring.NewBitmap()}
}

// Size implements the sql.Chunk interface.
func (c *Chunk) Size() int { return c.size }

// Segment implements the sql.Chunk interface.
func (c *Chunk) Segment(col sql.ColumnID) sql.Segment {
	return c.segments[col]
}

// IsDeleted returns whether the row carries a tombstone.
func (c *Chunk) IsDeleted(row int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deleted.Contains(uint64(row))
}

// DeletedCount returns the number of rows carrying a tombstone.
func (c *Chunk) DeletedCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int(c.deleted.Count())
}

func (c *Chunk) markDeleted(row int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.deleted.Add(uint64(row))
	return err
}
