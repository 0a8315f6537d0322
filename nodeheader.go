// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import "encoding/binary"

// nodeHeaderSize is the on-disk size of a NodeHeader.
const nodeHeaderSize = 16

// NodeHeader is the 16-byte prefix of a directory node (spec.md §4.2).
type NodeHeader struct {
	// Flags is reserved for future use and must be 0.
	Flags uint32
	// CreationTime is informational only.
	CreationTime uint32
	// MajorVersion is informational only.
	MajorVersion uint16
	// MinorVersion is informational only.
	MinorVersion uint16
	// NamedEntries is the count of name-keyed entries, which precede
	// the id-keyed entries on disk.
	NamedEntries uint16
	// IDEntries is the count of id-keyed entries.
	IDEntries uint16
}

// TotalEntries returns NamedEntries+IDEntries computed in u32 to avoid
// overflow once both counts approach 65535 (spec.md §3).
func (h NodeHeader) TotalEntries() uint32 {
	return uint32(h.NamedEntries) + uint32(h.IDEntries)
}

// parseNodeHeader decodes a NodeHeader from exactly 16 little-endian
// bytes, rejecting a non-zero Flags field per spec.md §4.2.
func parseNodeHeader(b []byte) (NodeHeader, error) {
	if len(b) < nodeHeaderSize {
		return NodeHeader{}, newErr("parseNodeHeader", KindIoShortRead, ErrOutsideBoundary)
	}
	h := NodeHeader{
		Flags:        binary.LittleEndian.Uint32(b[0:4]),
		CreationTime: binary.LittleEndian.Uint32(b[4:8]),
		MajorVersion: binary.LittleEndian.Uint16(b[8:10]),
		MinorVersion: binary.LittleEndian.Uint16(b[10:12]),
		NamedEntries: binary.LittleEndian.Uint16(b[12:14]),
		IDEntries:    binary.LittleEndian.Uint16(b[14:16]),
	}
	if h.Flags != 0 {
		return NodeHeader{}, newErr("parseNodeHeader", KindUnsupported, ErrUnsupportedFlags)
	}
	return h, nil
}

// readNodeHeaderAt reads a NodeHeader at the given absolute offset.
func readNodeHeaderAt(r Reader, offset uint64) (NodeHeader, error) {
	buf := make([]byte, nodeHeaderSize)
	if _, err := r.ReadAt(offset, buf); err != nil {
		return NodeHeader{}, newErr("readNodeHeaderAt", KindIoShortRead, err)
	}
	return parseNodeHeader(buf)
}
