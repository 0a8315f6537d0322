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

// buildMessageEntry encodes one MESSAGE_RESOURCE_DATA entry: a u16
// total length (header + text), a u16 flags, and the text bytes.
func buildMessageEntry(flags uint16, text []byte) []byte {
	entry := make([]byte, 4+len(text))
	binary.LittleEndian.PutUint16(entry[0:2], uint16(len(entry)))
	binary.LittleEndian.PutUint16(entry[2:4], flags)
	copy(entry[4:], text)
	return entry
}

func buildMessageTableLeaf(low, high uint32, entries []byte) []byte {
	var buf []byte
	put32 := func(v uint32) {
		tmp := make([]byte, 4)
		binary.LittleEndian.PutUint32(tmp, v)
		buf = append(buf, tmp...)
	}
	put32(1) // one block
	put32(low)
	put32(high)
	put32(16) // offset of entries, right after this 16-byte header
	buf = append(buf, entries...)
	return buf
}

func TestMessageTableUnicodeEntry(t *testing.T) {
	unicodeText, err := utf8ToUTF16LE("hi\x00")
	require.NoError(t, err)
	entries := buildMessageEntry(messageFlagUnicode, unicodeText)
	leaf := buildMessageTableLeaf(1, 1, entries)

	mt := newMessageTable()
	require.NoError(t, mt.addLeaf(0x409, leaf, CodepageASCII))

	text, flags, ok := mt.Message(0x409, 1)
	require.True(t, ok)
	assert.Equal(t, uint16(messageFlagUnicode), flags)
	assert.Equal(t, "hi\x00", text)
}

func TestMessageTableAnsiEntry(t *testing.T) {
	text := []byte("hi\x00")
	entries := buildMessageEntry(0, text)
	leaf := buildMessageTableLeaf(5, 5, entries)

	mt := newMessageTable()
	require.NoError(t, mt.addLeaf(0x409, leaf, CodepageWindows1252))

	got, flags, ok := mt.Message(0x409, 5)
	require.True(t, ok)
	assert.Equal(t, uint16(0), flags)
	assert.Equal(t, "hi\x00", got)
}

func TestMessageTableRejectsOverlappingRanges(t *testing.T) {
	text, _ := utf8ToUTF16LE("x\x00")
	entry := buildMessageEntry(messageFlagUnicode, text)

	var buf []byte
	put32 := func(v uint32) {
		tmp := make([]byte, 4)
		binary.LittleEndian.PutUint32(tmp, v)
		buf = append(buf, tmp...)
	}
	put32(2)
	put32(1)
	put32(10)
	put32(24)
	put32(5) // overlaps [1,10]
	put32(15)
	put32(24 + uint32(len(entry)))
	buf = append(buf, entry...)
	buf = append(buf, entry...)

	mt := newMessageTable()
	err := mt.addLeaf(0x409, buf, CodepageASCII)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidData)
}
