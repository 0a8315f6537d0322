// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import "encoding/binary"

// nodeEntrySize is the on-disk size of a NodeEntry, two u32 fields.
const nodeEntrySize = 8

// highBit marks, in a NodeEntry's Key, that the low 31 bits are an
// offset to a name string rather than a numeric identifier; in Child,
// that the low 31 bits are an offset to a child directory rather than
// a DataDescriptor (spec.md §4.3).
const highBit = 0x80000000

// NodeEntry is one 8-byte slot in a directory node, plus the fields
// the tree reader resolves while walking it (spec.md §3, §4.3).
type NodeEntry struct {
	// Key is the raw on-disk value: a numeric id, or (highBit | name
	// offset) when IsNamed is true.
	Key uint32
	// Child is the raw on-disk value: a DataDescriptor offset, or
	// (highBit | subdirectory offset) when IsDirectory is true.
	Child uint32

	// IsNamed reports whether Key.MSB was set.
	IsNamed bool
	// Name holds the entry's UTF-16LE name bytes when IsNamed is true.
	// The trailing NUL is not guaranteed to be present (spec.md §4.3).
	Name []byte
	// Identifier holds the entry's numeric id when IsNamed is false.
	Identifier uint32

	// Kind is populated only for level-1 entries (spec.md §4.4).
	Kind ResourceKind

	// IsDirectory reports whether Child.MSB was set.
	IsDirectory bool
	// Directory is populated when IsDirectory is true.
	Directory *Node
	// Data is populated when IsDirectory is false.
	Data DataDescriptor
}

// NameUTF8 decodes Name as UTF-16LE into a UTF-8 string. It returns
// ("", false) for an unnamed entry, matching the two-call
// size-then-fill shape described in spec.md §4.3 collapsed into a
// single call, as the design notes (§9) recommend for an internal API.
func (e *NodeEntry) NameUTF8() (string, bool, error) {
	if !e.IsNamed {
		return "", false, nil
	}
	s, err := rawUTF16LEToUTF8(e.Name)
	if err != nil {
		return "", true, err
	}
	return s, true, nil
}

// parseNodeEntry decodes a NodeEntry's raw Key/Child fields from
// exactly 8 little-endian bytes. Name/Identifier/Kind/Directory/Data
// are filled in by the tree reader, not here.
func parseNodeEntry(b []byte) (NodeEntry, error) {
	if len(b) < nodeEntrySize {
		return NodeEntry{}, newErr("parseNodeEntry", KindIoShortRead, ErrOutsideBoundary)
	}
	key := binary.LittleEndian.Uint32(b[0:4])
	child := binary.LittleEndian.Uint32(b[4:8])
	e := NodeEntry{
		Key:         key,
		Child:       child,
		IsNamed:     key&highBit != 0,
		IsDirectory: child&highBit != 0,
	}
	if e.IsNamed {
		// Name is filled in later by the caller, which has the reader
		// and base offset needed to follow the name pointer.
	} else {
		e.Identifier = key
	}
	return e, nil
}

// readNodeEntryAt reads a NodeEntry at the given absolute offset.
func readNodeEntryAt(r Reader, offset uint64) (NodeEntry, error) {
	buf := make([]byte, nodeEntrySize)
	if _, err := r.ReadAt(offset, buf); err != nil {
		return NodeEntry{}, newErr("readNodeEntryAt", KindIoShortRead, err)
	}
	return parseNodeEntry(buf)
}

// readEntryName reads the UTF-16 counted name string pointed to by a
// named entry's Key, per spec.md §4.3's protocol: a u16 length in UTF-16
// code units at the offset, followed by exactly 2*length bytes, with no
// guarantee of a trailing NUL.
func readEntryName(r Reader, baseOffset uint64, key uint32) ([]byte, error) {
	nameOffset := baseOffset + uint64(key&^highBit)
	lenBuf := make([]byte, 2)
	if _, err := r.ReadAt(nameOffset, lenBuf); err != nil {
		return nil, newErr("readEntryName", KindIoShortRead, err)
	}
	length := binary.LittleEndian.Uint16(lenBuf)
	nameBuf := make([]byte, 2*int(length))
	if length > 0 {
		if _, err := r.ReadAt(nameOffset+2, nameBuf); err != nil {
			return nil, newErr("readEntryName", KindIoShortRead, err)
		}
	}
	return nameBuf, nil
}
