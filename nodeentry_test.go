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

func encodeNodeEntry(key, child uint32) []byte {
	b := make([]byte, nodeEntrySize)
	binary.LittleEndian.PutUint32(b[0:4], key)
	binary.LittleEndian.PutUint32(b[4:8], child)
	return b
}

func TestParseNodeEntryNumericLeaf(t *testing.T) {
	e, err := parseNodeEntry(encodeNodeEntry(6, 0x40))
	require.NoError(t, err)
	assert.False(t, e.IsNamed)
	assert.False(t, e.IsDirectory)
	assert.Equal(t, uint32(6), e.Identifier)
}

func TestParseNodeEntryNamedDirectory(t *testing.T) {
	e, err := parseNodeEntry(encodeNodeEntry(highBit|0x20, highBit|0x80))
	require.NoError(t, err)
	assert.True(t, e.IsNamed)
	assert.True(t, e.IsDirectory)
	assert.Equal(t, uint32(0x20), e.Key&^highBit)
	assert.Equal(t, uint32(0x80), e.Child&^highBit)
}

func TestParseNodeEntryShortRead(t *testing.T) {
	_, err := parseNodeEntry(make([]byte, nodeEntrySize-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoShortRead)
}

func TestNameUTF8Unnamed(t *testing.T) {
	e := NodeEntry{IsNamed: false}
	name, isNamed, err := e.NameUTF8()
	require.NoError(t, err)
	assert.False(t, isNamed)
	assert.Empty(t, name)
}

func TestNameUTF8Named(t *testing.T) {
	raw, err := utf8ToUTF16LE("HELLO")
	require.NoError(t, err)
	e := NodeEntry{IsNamed: true, Name: raw}
	name, isNamed, err := e.NameUTF8()
	require.NoError(t, err)
	assert.True(t, isNamed)
	assert.Equal(t, "HELLO", name)
}

func TestReadEntryName(t *testing.T) {
	nameUTF16, err := utf8ToUTF16LE("OK")
	require.NoError(t, err)

	var buf []byte
	lenBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBuf, uint16(len(nameUTF16)/2))
	buf = append(buf, lenBuf...)
	buf = append(buf, nameUTF16...)

	r := NewBytesReader(buf)
	name, err := readEntryName(r, 0, 0)
	require.NoError(t, err)
	s, err := rawUTF16LEToUTF8(name)
	require.NoError(t, err)
	assert.Equal(t, "OK", s)
}
