// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import "io"

// Whence selects the reference point for ResourceItem.Seek, mirroring
// io.Seeker's constants so callers familiar with the standard library
// need no new vocabulary.
type Whence int

// Seek reference points.
const (
	SeekStart   Whence = io.SeekStart
	SeekCurrent Whence = io.SeekCurrent
	SeekEnd     Whence = io.SeekEnd
)

// ResourceItem is a seek/read cursor over a single leaf's payload
// bytes (spec.md §4.5, C5). Its zero value is not usable; obtain one
// via Resource.Item or ResourceItem.SubItem.
type ResourceItem struct {
	r      Reader
	baseVA uint32
	entry  *NodeEntry
	offset int64 // relative to the payload start, not the file
}

// newResourceItem builds a cursor over entry. For a leaf the cursor
// reads its payload; for a directory entry (Data left zero) Size is 0
// and the children are reached through SubItem.
func newResourceItem(r Reader, baseVA uint32, entry *NodeEntry) *ResourceItem {
	return &ResourceItem{r: r, baseVA: baseVA, entry: entry}
}

// fileOffset converts the descriptor's virtual address to an absolute
// offset into the Reader, per spec.md §4.5: VA - base_virtual_address.
func (it *ResourceItem) fileOffset() uint64 {
	return uint64(it.entry.Data.VirtualAddress - it.baseVA)
}

// Size returns the payload size in bytes.
func (it *ResourceItem) Size() uint32 { return it.entry.Data.Size }

// Tell returns the current offset relative to the payload start.
func (it *ResourceItem) Tell() int64 { return it.offset }

// Seek repositions the cursor. A negative resulting offset fails with
// KindIoSeekFailed; seeking past the end is allowed and simply yields
// 0-byte reads afterwards, matching typical POSIX semantics (spec.md §4.5).
func (it *ResourceItem) Seek(offset int64, whence Whence) (int64, error) {
	var target int64
	switch whence {
	case SeekStart:
		target = offset
	case SeekCurrent:
		target = it.offset + offset
	case SeekEnd:
		target = int64(it.entry.Data.Size) + offset
	default:
		return 0, newErr("ResourceItem.Seek", KindInvalidArgument, nil)
	}
	if target < 0 {
		return 0, newErr("ResourceItem.Seek", KindIoSeekFailed, ErrNegativeSeek)
	}
	it.offset = target
	return target, nil
}

// Read reads up to len(buf) bytes starting at the current offset,
// returning the number of bytes read. It returns (0, nil) at EOF
// rather than io.EOF, since the core has no streaming-EOF convention
// elsewhere (spec.md §4.5).
func (it *ResourceItem) Read(buf []byte) (int, error) {
	size := int64(it.entry.Data.Size)
	if it.offset >= size {
		return 0, nil
	}
	remaining := size - it.offset
	n := int64(len(buf))
	if n > remaining {
		n = remaining
	}
	if n <= 0 {
		return 0, nil
	}
	read, err := it.r.ReadAt(it.fileOffset()+uint64(it.offset), buf[:n])
	if err != nil {
		return read, newErr("ResourceItem.Read", KindIoShortRead, err)
	}
	it.offset += int64(read)
	return read, nil
}

// ReadAt is equivalent to Seek(offset, SeekStart) followed by Read,
// per spec.md §4.5.
func (it *ResourceItem) ReadAt(buf []byte, offset int64) (int, error) {
	if _, err := it.Seek(offset, SeekStart); err != nil {
		return 0, err
	}
	return it.Read(buf)
}

// Bytes reads the entire payload into a freshly allocated slice,
// leaving the cursor positioned at the end. This is the common case
// for typed decoders (C7..C11), which always consume a leaf whole.
func (it *ResourceItem) Bytes() ([]byte, error) {
	buf := make([]byte, it.entry.Data.Size)
	if _, err := it.ReadAt(buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

// SubItemCount returns the number of directory children this item has
// when it is itself a directory node rather than a leaf (0 for a leaf).
func (it *ResourceItem) SubItemCount() int {
	if it.entry.Directory == nil {
		return 0
	}
	return len(it.entry.Directory.Entries)
}

// SubItem returns a cursor over the i'th child when this item is a
// directory node. It returns nil if i is out of range or the entry
// has no further directory.
func (it *ResourceItem) SubItem(i int) *ResourceItem {
	if it.entry.Directory == nil || i < 0 || i >= len(it.entry.Directory.Entries) {
		return nil
	}
	return newResourceItem(it.r, it.baseVA, &it.entry.Directory.Entries[i])
}
