// Copyright 2017-25 the original author or authors.
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

// Package arena implements the packed entity buffer (C1): an append-only
// arena that holds variable-sized, length-prefixed entity and sub-entity
// regions with strict commit/rollback discipline, in the spirit of the
// pooled byte buffers the surrounding toolchain hands off between its
// decode stages.
package arena

import (
	"encoding/binary"
	"errors"
)

// align is the byte boundary every region start and every string payload
// is padded to (spec §4.1).
const align = 8

// headerSize is the width of a region header: one kind byte, three pad
// bytes, then a little-endian uint32 body length.
const headerSize = 8

// Overflow is returned by BeginRegion and the Write* methods when the Buffer has no
// room left for the request. The caller flushes the buffer and retries in
// a fresh one (spec §4.1, §7 BufferOverflow).
var Overflow = errors.New("arena: buffer overflow")

// errOpenRegion is returned by Commit when a region is still open.
var errOpenRegion = errors.New("arena: commit called with an open region")

// Kind tags the payload of a top-level or nested region so a traversal can
// interpret it without an auxiliary index.
type Kind byte

const (
	KindNode Kind = iota + 1
	KindWay
	KindRelation
	KindChangeset
	KindTagList
	KindWayNodeList
	KindRelationMemberList
	KindDiscussion
	KindComment
)

// Region is a handle to an open, length-prefixed span in a Buffer. It is
// sealed by EndRegion, which patches the length recorded in its header.
type Region struct {
	headerOffset int
	bodyOffset   int
}

// Buffer is a contiguous, fixed-capacity byte arena with two cursors:
// written (the uncommitted high-water mark) and committed (the durable
// high-water mark, committed <= written). It is written by one builder
// chain at a time.
type Buffer struct {
	data      []byte
	written   int
	committed int
	depth     int // number of open regions; Commit refuses while > 0
}

// New allocates a Buffer with the given fixed capacity.
func New(capacity int) *Buffer {
	return &Buffer{data: make([]byte, capacity)}
}

// Capacity returns the Buffer's fixed byte capacity.
func (b *Buffer) Capacity() int { return len(b.data) }

// Written returns the current uncommitted high-water mark.
func (b *Buffer) Written() int { return b.written }

// Committed returns the current durable high-water mark.
func (b *Buffer) Committed() int { return b.committed }

// Watermark reports whether the committed high-water mark has reached the
// given fraction (0, 1] of capacity, the flush trigger spec §3 describes.
func (b *Buffer) Watermark(fraction float64) bool {
	return float64(b.committed) >= fraction*float64(len(b.data))
}

func alignUp(n int) int {
	return (n + align - 1) &^ (align - 1)
}

// reserve advances written by exactly n bytes and returns a mutable slice
// over the reserved span. It does not align; region starts and string
// ends are aligned separately by padToAlign.
func (b *Buffer) reserve(n int) ([]byte, error) {
	start := b.written
	end := start + n
	if end > len(b.data) {
		return nil, Overflow
	}
	b.written = end
	return b.data[start:end], nil
}

// padToAlign advances written to the next 8-byte boundary without
// returning the padding bytes to the caller.
func (b *Buffer) padToAlign() error {
	target := alignUp(b.written)
	if target > len(b.data) {
		return Overflow
	}
	for i := b.written; i < target; i++ {
		b.data[i] = 0
	}
	b.written = target
	return nil
}

// BeginRegion opens a new length-prefixed region tagged kind. The region
// start is first padded to an 8-byte boundary. The returned Region must be
// closed with EndRegion before Commit is callable.
func (b *Buffer) BeginRegion(kind Kind) (Region, error) {
	if err := b.padToAlign(); err != nil {
		return Region{}, err
	}
	hdr, err := b.reserve(headerSize)
	if err != nil {
		return Region{}, err
	}
	hdr[0] = byte(kind)
	hdr[1], hdr[2], hdr[3] = 0, 0, 0
	binary.LittleEndian.PutUint32(hdr[4:8], 0)
	r := Region{headerOffset: b.written - headerSize, bodyOffset: b.written}
	b.depth++
	return r, nil
}

// EndRegion seals r, patching its header with the number of body bytes
// written since BeginRegion. Regions must be closed in LIFO order.
func (b *Buffer) EndRegion(r Region) {
	length := uint32(b.written - r.bodyOffset)
	binary.LittleEndian.PutUint32(b.data[r.headerOffset+4:r.headerOffset+8], length)
	b.depth--
}

// Kind reports the kind tag recorded in r's header.
func (b *Buffer) Kind(r Region) Kind {
	return Kind(b.data[r.headerOffset])
}

// WriteBytes copies p into the buffer verbatim, without alignment or a
// length prefix. Used for fixed-width scalar encodings inside a region.
func (b *Buffer) WriteBytes(p []byte) error {
	dst, err := b.reserve(len(p))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(v byte) error {
	return b.WriteBytes([]byte{v})
}

// WriteBool appends a byte, 1 for true.
func (b *Buffer) WriteBool(v bool) error {
	if v {
		return b.WriteByte(1)
	}
	return b.WriteByte(0)
}

// WriteUint32 appends v little-endian.
func (b *Buffer) WriteUint32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return b.WriteBytes(buf[:])
}

// WriteInt64 appends v little-endian.
func (b *Buffer) WriteInt64(v int64) error {
	return b.WriteUint64(uint64(v))
}

// WriteUint64 appends v little-endian.
func (b *Buffer) WriteUint64(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return b.WriteBytes(buf[:])
}

// WriteString appends a uint32 length prefix followed by s's bytes, padded
// with zeroes to the next 8-byte boundary (spec §4.1: strings are
// length-prefixed, not NUL-terminated, and 8-byte padded).
func (b *Buffer) WriteString(s string) error {
	if err := b.WriteUint32(uint32(len(s))); err != nil {
		return err
	}
	if err := b.WriteBytes([]byte(s)); err != nil {
		return err
	}
	return b.padToAlign()
}

// Commit advances the durable high-water mark to the current write
// cursor. It is only callable when no region is open (spec §4.1: commit
// only at entity boundaries).
func (b *Buffer) Commit() error {
	if b.depth != 0 {
		return errOpenRegion
	}
	b.committed = b.written
	return nil
}

// Rollback discards everything written since the last commit, used when a
// parse failure leaves an entity partially built.
func (b *Buffer) Rollback() {
	b.written = b.committed
	b.depth = 0
}

// Take moves the committed portion of the Buffer out, returning it as an
// immutable Snapshot and leaving a freshly allocated Buffer of the same
// capacity in the receiver's place. Any uncommitted tail (there should be
// none at a flush point, since flush only happens at entity boundaries)
// is discarded.
func (b *Buffer) Take() Snapshot {
	snap := Snapshot{data: b.data[:b.committed:b.committed]}
	b.data = make([]byte, len(b.data))
	b.written = 0
	b.committed = 0
	b.depth = 0
	return snap
}

// Snapshot is an immutable, committed span of a Buffer handed off to a
// consumer. It supports read-only traversal of the top-level regions it
// contains.
type Snapshot struct {
	data []byte
}

// Len reports the number of committed bytes in the snapshot.
func (s Snapshot) Len() int { return len(s.data) }

// Cursor walks the top-level regions of a Snapshot in order.
type Cursor struct {
	data   []byte
	offset int
}

// Cursor returns a fresh Cursor positioned at the start of the snapshot.
func (s Snapshot) Cursor() *Cursor {
	return &Cursor{data: s.data}
}

// Next returns the kind and body bytes of the next top-level region, or
// ok=false when the cursor is exhausted.
func (c *Cursor) Next() (kind Kind, body []byte, ok bool) {
	off := alignUp(c.offset)
	if off+headerSize > len(c.data) {
		return 0, nil, false
	}
	k := Kind(c.data[off])
	length := binary.LittleEndian.Uint32(c.data[off+4 : off+8])
	start := off + headerSize
	end := start + int(length)
	if end > len(c.data) {
		return 0, nil, false
	}
	c.offset = end
	return k, c.data[start:end], true
}

// Reader is a small cursor over a region's body, used by decoders in
// internal/builder to pull fields back out in the order they were
// written.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps body for sequential decoding.
func NewReader(body []byte) *Reader {
	return &Reader{data: body}
}

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Byte reads a single byte.
func (r *Reader) Byte() byte {
	v := r.data[r.pos]
	r.pos++
	return v
}

// Bool reads a single byte as a boolean.
func (r *Reader) Bool() bool { return r.Byte() != 0 }

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() uint32 {
	v := binary.LittleEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v
}

// Int64 reads a little-endian int64.
func (r *Reader) Int64() int64 { return int64(r.Uint64()) }

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() uint64 {
	v := binary.LittleEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return v
}

// String reads a length-prefixed, 8-byte padded string written by
// Buffer.WriteString.
func (r *Reader) String() string {
	n := int(r.Uint32())
	s := string(r.data[r.pos : r.pos+n])
	r.pos += n
	r.pos = alignUp(r.pos)
	return s
}

// Regions returns a Cursor-like helper for decoding a nested,
// length-prefixed sub-region list out of the remaining bytes, starting at
// the next 8-byte boundary: repeatedly call Next until ok is false.
func (r *Reader) Regions() *Cursor {
	start := alignUp(r.pos)
	if start > len(r.data) {
		start = len(r.data)
	}
	c := &Cursor{data: r.data[start:]}
	r.pos = len(r.data)
	return c
}
