// Package codegen lowers ir1.Program into an ir2.Module, laying out
// header/body/end blocks with balanced-vs-unbalanced parameter passing,
// combined with a per-block register-caching discipline that avoids
// redundant Load/Store pairs across straight-line code.
package codegen

import (
	"sort"

	"bfcc/ir2"
)

// cacheContext tracks, for the block currently being emitted into, the
// live tape-index register, derived per-offset address registers, cached
// cell values, and which of those values have not yet been committed to
// the tape with a StoreCell.
type cacheContext struct {
	index   ir2.RegisterID
	indices map[int]ir2.RegisterID
	cells   map[int]ir2.LeafExpr
	written map[int]bool
}

func newCacheContext(index ir2.RegisterID) *cacheContext {
	return &cacheContext{
		index:   index,
		indices: map[int]ir2.RegisterID{},
		cells:   map[int]ir2.LeafExpr{},
		written: map[int]bool{},
	}
}

// snapshot returns an independent copy of the current cache state, saved
// before lowering a loop/if body and restored afterward.
func (c *cacheContext) snapshot() cacheContext {
	s := cacheContext{
		index:   c.index,
		indices: make(map[int]ir2.RegisterID, len(c.indices)),
		cells:   make(map[int]ir2.LeafExpr, len(c.cells)),
		written: make(map[int]bool, len(c.written)),
	}
	for k, v := range c.indices {
		s.indices[k] = v
	}
	for k, v := range c.cells {
		s.cells[k] = v
	}
	for k, v := range c.written {
		s.written[k] = v
	}
	return s
}

// restore reinstalls the index and address registers of a snapshot
// taken before a balanced loop/if, copied so further mutation doesn't
// alias the snapshot. Cached cell values and the dirty set are dropped:
// the body may have overwritten any of those cells, and every dirty
// value was stored on each path into the join.
func (c *cacheContext) restore(s cacheContext) {
	c.index = s.index
	c.indices = make(map[int]ir2.RegisterID, len(s.indices))
	for k, v := range s.indices {
		c.indices[k] = v
	}
	c.cells = map[int]ir2.LeafExpr{}
	c.written = map[int]bool{}
}

// reset clears every per-offset cache entry without touching index,
// used when entering a fresh block where the old registers may no
// longer be the right ones to reuse.
func (c *cacheContext) reset() {
	c.indices = map[int]ir2.RegisterID{}
	c.cells = map[int]ir2.LeafExpr{}
	c.written = map[int]bool{}
}

// getIndexReg returns the register holding index+offset, computing and
// caching it on first use.
func (c *cacheContext) getIndexReg(b *ir2.Builder, offset int) ir2.RegisterID {
	if r, ok := c.indices[offset]; ok {
		return r
	}
	r := b.Add(ir2.Reg(c.index), constI64(offset))
	c.indices[offset] = r
	return r
}

// cellValue returns the current known value of cell[offset], loading it
// from the tape on first reference.
func (c *cacheContext) cellValue(b *ir2.Builder, offset int) ir2.LeafExpr {
	if v, ok := c.cells[offset]; ok {
		return v
	}
	idx := c.getIndexReg(b, offset)
	reg := b.LoadCell(ir2.Reg(idx))
	v := ir2.Reg(reg)
	c.cells[offset] = v
	return v
}

// storeCellValue installs v as the known value of cell[offset] and marks
// it dirty.
func (c *cacheContext) storeCellValue(offset int, v ir2.LeafExpr) {
	c.cells[offset] = v
	c.written[offset] = true
}

// move shifts the live index register by d and re-keys every cached
// entry so offset k (relative to the old index) becomes offset k-d
// (relative to the new index), since the underlying physical cell is
// unchanged.
func (c *cacheContext) move(b *ir2.Builder, d int) {
	c.index = b.Add(ir2.Reg(c.index), constI64(d))

	shift := func(k int) int { return k - d }

	indices := make(map[int]ir2.RegisterID, len(c.indices))
	for k, v := range c.indices {
		indices[shift(k)] = v
	}
	c.indices = indices

	cells := make(map[int]ir2.LeafExpr, len(c.cells))
	for k, v := range c.cells {
		cells[shift(k)] = v
	}
	c.cells = cells

	written := make(map[int]bool, len(c.written))
	for k, v := range c.written {
		written[shift(k)] = v
	}
	c.written = written
}

// spillValues emits a StoreCell for every dirty cached cell, in
// ascending offset order for deterministic output, then clears the
// dirty set. Cached values remain known afterward.
func (c *cacheContext) spillValues(b *ir2.Builder) {
	offsets := make([]int, 0, len(c.written))
	for off := range c.written {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)

	for _, off := range offsets {
		idx := c.getIndexReg(b, off)
		b.StoreCell(ir2.Reg(idx), c.cells[off])
	}
	c.written = map[int]bool{}
}

// spillIndices drops every cached pointer register: they were computed
// relative to a block whose identity ends at a transfer.
func (c *cacheContext) spillIndices() {
	c.indices = map[int]ir2.RegisterID{}
}

// spillAll commits dirty values and drops cached pointers and values,
// the discipline required before any unbalanced transfer. Dropping
// cached values in addition to indices (see DESIGN.md) is deliberately
// conservative: an unbalanced join may be reached with a different
// index per predecessor, so a value cached under one incoming index
// cannot safely be assumed valid under another.
func (c *cacheContext) spillAll(b *ir2.Builder) {
	c.spillValues(b)
	c.spillIndices()
	c.cells = map[int]ir2.LeafExpr{}
}

func constI64(v int) ir2.LeafExpr {
	return ir2.ConstI64(uint64(int64(v)))
}
