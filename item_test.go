// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, payload []byte) (*ResourceItem, Reader) {
	t.Helper()
	buf := append(make([]byte, 16), payload...)
	r := NewBytesReader(buf)
	entry := &NodeEntry{Data: DataDescriptor{VirtualAddress: 16, Size: uint32(len(payload))}}
	return newResourceItem(r, 0, entry), r
}

func TestResourceItemReadAndSeek(t *testing.T) {
	it, _ := newTestItem(t, []byte("hello world"))
	assert.Equal(t, uint32(11), it.Size())

	buf := make([]byte, 5)
	n, err := it.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))
	assert.Equal(t, int64(5), it.Tell())

	pos, err := it.Seek(-5, SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func TestResourceItemReadEOFYieldsZero(t *testing.T) {
	it, _ := newTestItem(t, []byte("ab"))
	_, _ = it.Seek(2, SeekStart)
	buf := make([]byte, 4)
	n, err := it.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestResourceItemSeekNegativeFails(t *testing.T) {
	it, _ := newTestItem(t, []byte("ab"))
	_, err := it.Seek(-1, SeekStart)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoSeekFailed)
}

func TestResourceItemBytes(t *testing.T) {
	it, _ := newTestItem(t, []byte("payload"))
	b, err := it.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "payload", string(b))
}

func TestResourceItemReadAt(t *testing.T) {
	it, _ := newTestItem(t, []byte("0123456789"))
	buf := make([]byte, 3)
	n, err := it.ReadAt(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "456", string(buf))
}

func TestResourceItemSubItems(t *testing.T) {
	leaf := NodeEntry{Data: DataDescriptor{VirtualAddress: 0, Size: 4}}
	dir := &Node{Entries: []NodeEntry{leaf}}
	parent := &NodeEntry{IsDirectory: true, Directory: dir}
	it := newResourceItem(NewBytesReader(make([]byte, 16)), 0, parent)

	assert.Equal(t, 1, it.SubItemCount())
	assert.NotNil(t, it.SubItem(0))
	assert.Nil(t, it.SubItem(1))
}
