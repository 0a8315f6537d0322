// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import "encoding/binary"

// muiHeaderSize is the fixed size of a MUI leaf's header, per spec.md
// §4.11: a signature, a size, a file type, 64 bytes of checksum and
// reserved fields, and six (offset, size) pairs starting at offset 80.
const muiHeaderSize = 80 + 6*8

// muiSignature identifies a well-formed MUI resource.
const muiSignature uint32 = 0xfecdfecd

// MuiStringKind selects one of the six strings a MUI leaf carries.
type MuiStringKind int

// MUI string slots, in on-disk header order.
const (
	MuiMainNameUTF8 MuiStringKind = iota
	MuiMUIName
	MuiLanguage
	MuiFallbackLanguage
	MuiUltimateFallbackLanguage
	MuiChecksum
)

// Mui decodes a MUI resource leaf (spec.md §4.11, C10): a fixed
// 80-byte header validated by signature and carrying a size and a
// file type, followed by six (offset, size) pairs pointing at
// UTF-16LE strings within the same leaf.
type Mui struct {
	SizeValue     uint32
	FileTypeValue uint32
	strings       [6]string
}

// Size returns the MUI structure's size field from the header.
func (m *Mui) Size() uint32 { return m.SizeValue }

// FileType returns the MUI file type field from the header.
func (m *Mui) FileType() uint32 { return m.FileTypeValue }

// Name returns the decoded string for the given slot.
func (m *Mui) Name(kind MuiStringKind) string {
	if kind < 0 || int(kind) >= len(m.strings) {
		return ""
	}
	return m.strings[kind]
}

// decodeMui parses one MUI leaf's raw bytes.
func decodeMui(data []byte) (*Mui, error) {
	if len(data) < muiHeaderSize {
		return nil, newErr("decodeMui", KindIoShortRead, ErrOutsideBoundary)
	}
	sig := binary.LittleEndian.Uint32(data[0:4])
	if sig != muiSignature {
		return nil, newErr("decodeMui", KindInvalidData, ErrBadMuiSignature)
	}
	size := binary.LittleEndian.Uint32(data[4:8])
	fileType := binary.LittleEndian.Uint32(data[12:16])
	// bytes 16:80 are checksum and reserved fields carried on-disk but
	// not currently surfaced.

	m := &Mui{SizeValue: size, FileTypeValue: fileType}
	pairsStart := 80
	for i := 0; i < 6; i++ {
		base := pairsStart + i*8
		off := binary.LittleEndian.Uint32(data[base : base+4])
		pairSize := binary.LittleEndian.Uint32(data[base+4 : base+8])
		if pairSize == 0 {
			continue
		}
		end := uint64(off) + uint64(pairSize)
		if end > uint64(len(data)) {
			return nil, newErr("decodeMui", KindOutOfBounds, nil)
		}
		s, err := utf16LEToUTF8(data[off:end])
		if err != nil {
			return nil, err
		}
		m.strings[i] = s
	}
	return m, nil
}
