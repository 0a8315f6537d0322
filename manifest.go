// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

// Manifest holds a MANIFEST leaf's raw XML text (spec.md §4.12, C11).
// Unlike the other typed decoders, the payload is opaque UTF-8 XML and
// is passed through unmodified; no codepage or UTF-16 transcoding
// applies.
type Manifest struct {
	XML string
}

// decodeManifest wraps a MANIFEST leaf's raw bytes without
// transformation, per spec.md §4.12's verbatim-passthrough contract.
func decodeManifest(data []byte) (*Manifest, error) {
	return &Manifest{XML: string(data)}, nil
}
