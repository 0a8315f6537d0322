// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// versionBlockBuilder assembles a generic version block: a u16 length
// (patched once the block is complete), u16 value length, u16 type, a
// NUL-terminated UTF-16LE key, 32-bit aligned value bytes, and 32-bit
// aligned child blocks.
type versionBlockBuilder struct {
	buf         []byte
	lengthPos   int
	valueLenPos int
}

func newVersionBlock(key string, isText bool, value []byte) *versionBlockBuilder {
	b := &versionBlockBuilder{}
	b.lengthPos = len(b.buf)
	b.buf = append(b.buf, 0, 0) // length placeholder
	b.valueLenPos = len(b.buf)
	valueLen := uint16(len(value))
	if isText {
		valueLen = uint16(len(value) / 2)
	}
	b.put16(valueLen)
	if isText {
		b.put16(1)
	} else {
		b.put16(0)
	}
	keyUTF16, _ := utf8ToUTF16LE(key)
	b.buf = append(b.buf, keyUTF16...)
	b.buf = append(b.buf, 0, 0) // NUL terminator
	b.align()
	b.buf = append(b.buf, value...)
	return b
}

func (b *versionBlockBuilder) put16(v uint16) {
	tmp := make([]byte, 2)
	binary.LittleEndian.PutUint16(tmp, v)
	b.buf = append(b.buf, tmp...)
}

func (b *versionBlockBuilder) align() {
	for len(b.buf)%4 != 0 {
		b.buf = append(b.buf, 0)
	}
}

func (b *versionBlockBuilder) addChild(child *versionBlockBuilder) {
	b.align()
	b.buf = append(b.buf, child.bytes()...)
}

func (b *versionBlockBuilder) bytes() []byte {
	b.align()
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	binary.LittleEndian.PutUint16(out[b.lengthPos:], uint16(len(out)))
	return out
}

func fixedFileInfoBytes() []byte {
	buf := make([]byte, versionFixedInfoSize)
	binary.LittleEndian.PutUint32(buf[0:4], versionFixedSignature)
	binary.LittleEndian.PutUint32(buf[4:8], 0x10000)
	return buf
}

func TestDecodeVersionStringsAndTranslation(t *testing.T) {
	str := newVersionBlock("ProductName", true, func() []byte {
		b, _ := utf8ToUTF16LE("Example\x00")
		return b
	}())

	table := newVersionBlock("040904B0", false, nil)
	table.addChild(str)

	sfi := newVersionBlock("StringFileInfo", false, nil)
	sfi.addChild(table)

	translation := newVersionBlock("Translation", false, []byte{0x09, 0x04, 0xB0, 0x04})
	vfi := newVersionBlock("VarFileInfo", false, nil)
	vfi.addChild(translation)

	root := newVersionBlock("VS_VERSION_INFO", false, fixedFileInfoBytes())
	root.addChild(sfi)
	root.addChild(vfi)

	v, err := decodeVersion(root.bytes())
	require.NoError(t, err)
	require.NotNil(t, v.Fixed)
	assert.Equal(t, uint32(versionFixedSignature), v.Fixed.Signature)

	strings := v.Strings(0x409)
	require.NotNil(t, strings)
	assert.Equal(t, "Example\x00", strings["ProductName"])

	assert.Contains(t, v.Translations(), uint32(0x409))
}

func TestDecodeVersionRejectsBadRootKey(t *testing.T) {
	root := newVersionBlock("NOT_VERSION_INFO", false, fixedFileInfoBytes())
	_, err := decodeVersion(root.bytes())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestParseVersionLangID(t *testing.T) {
	lcid, err := parseVersionLangID("040904B0")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x409), lcid)
}

func TestParseVersionLangIDRejectsBadLength(t *testing.T) {
	_, err := parseVersionLangID("0409")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidData)
}
