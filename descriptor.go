// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import "encoding/binary"

// dataDescriptorSize is the on-disk size of a DataDescriptor, 4 u32 fields.
const dataDescriptorSize = 16

// DataDescriptor locates a leaf's payload bytes: its virtual address
// within the enclosing PE image, its size, and two fields the core
// never validates (spec.md §4.1, §9).
type DataDescriptor struct {
	// VirtualAddress is the RVA of the resource datum.
	VirtualAddress uint32
	// Size is the length of the payload in bytes.
	Size uint32
	// CodePage is reserved/rarely used; the core does not validate it.
	CodePage uint32
	// Reserved must be 0 on well-formed input but is not enforced.
	Reserved uint32
}

// parseDataDescriptor decodes a DataDescriptor from exactly 16
// little-endian bytes. It performs no validation beyond requiring the
// slice be long enough.
func parseDataDescriptor(b []byte) (DataDescriptor, error) {
	if len(b) < dataDescriptorSize {
		return DataDescriptor{}, newErr("parseDataDescriptor", KindIoShortRead, ErrOutsideBoundary)
	}
	return DataDescriptor{
		VirtualAddress: binary.LittleEndian.Uint32(b[0:4]),
		Size:           binary.LittleEndian.Uint32(b[4:8]),
		CodePage:       binary.LittleEndian.Uint32(b[8:12]),
		Reserved:       binary.LittleEndian.Uint32(b[12:16]),
	}, nil
}

// readDataDescriptorAt reads a DataDescriptor at the given absolute
// offset, failing with KindIoShortRead on a short read.
func readDataDescriptorAt(r Reader, offset uint64) (DataDescriptor, error) {
	buf := make([]byte, dataDescriptorSize)
	if _, err := r.ReadAt(offset, buf); err != nil {
		return DataDescriptor{}, newErr("readDataDescriptorAt", KindIoShortRead, err)
	}
	return parseDataDescriptor(buf)
}
