// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifestPassesThroughVerbatim(t *testing.T) {
	xml := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><assembly/>`)
	m, err := decodeManifest(xml)
	require.NoError(t, err)
	assert.Equal(t, string(xml), m.XML)
}

func TestDecodeManifestEmpty(t *testing.T) {
	m, err := decodeManifest(nil)
	require.NoError(t, err)
	assert.Empty(t, m.XML)
}
