// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringTableAddBundle(t *testing.T) {
	st := newStringTable()
	data := stringBundleBytes("Hello")
	require.NoError(t, st.addBundle(0x409, 1, data))

	got := st.Strings(0x409)
	assert.Equal(t, "Hello", got[0])
	for id := uint32(1); id < stringBundleSlots; id++ {
		_, ok := got[id]
		assert.False(t, ok, "empty slot %d should not be recorded", id)
	}

	s, ok := st.String(0x409, 0)
	assert.True(t, ok)
	assert.Equal(t, "Hello", s)
}

func TestStringTableRejectsBundleIDZero(t *testing.T) {
	st := newStringTable()
	data := stringBundleBytes("x")
	err := st.addBundle(0x409, 0, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestStringTableRejectsSlotCollision(t *testing.T) {
	st := newStringTable()
	data := stringBundleBytes("x")
	require.NoError(t, st.addBundle(0x409, 1, data))
	err := st.addBundle(0x409, 1, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestStringTableSecondBundleOffsetsIDs(t *testing.T) {
	st := newStringTable()
	require.NoError(t, st.addBundle(0x409, 1, stringBundleBytes("first")))
	require.NoError(t, st.addBundle(0x409, 2, stringBundleBytes("second")))

	s, ok := st.String(0x409, 16)
	require.True(t, ok)
	assert.Equal(t, "second", s)
}

func TestStringTableShortReadRejected(t *testing.T) {
	st := newStringTable()
	err := st.addBundle(0x409, 1, []byte{0x05, 0x00})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoShortRead)
}
