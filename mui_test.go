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

func buildMuiLeaf(mainName string) []byte {
	strBytes, _ := utf8ToUTF16LE(mainName + "\x00")
	stringsStart := uint32(muiHeaderSize)

	buf := make([]byte, muiHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], muiSignature)
	binary.LittleEndian.PutUint32(buf[4:8], stringsStart+uint32(len(strBytes))) // size
	binary.LittleEndian.PutUint32(buf[12:16], 1)                                // file type

	base := 80
	binary.LittleEndian.PutUint32(buf[base:base+4], stringsStart)
	binary.LittleEndian.PutUint32(buf[base+4:base+8], uint32(len(strBytes)))

	buf = append(buf, strBytes...)
	return buf
}

func TestDecodeMui(t *testing.T) {
	leaf := buildMuiLeaf("app.exe.mui")
	m, err := decodeMui(leaf)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), m.FileType())
	assert.Equal(t, "app.exe.mui", m.Name(MuiMainNameUTF8))
	assert.Empty(t, m.Name(MuiMUIName))
}

func TestDecodeMuiRejectsBadSignature(t *testing.T) {
	leaf := buildMuiLeaf("x")
	binary.LittleEndian.PutUint32(leaf[0:4], 0)
	_, err := decodeMui(leaf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestDecodeMuiShortHeader(t *testing.T) {
	_, err := decodeMui(make([]byte, muiHeaderSize-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoShortRead)
}
