// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import "bytes"

// ResourceKind classifies a level-1 directory entry, derived either from
// its numeric identifier or, for a handful of well-known resources, from
// its UTF-16LE name (spec.md §3/§4.4).
type ResourceKind int

// Numeric resource kinds, matching the predefined RT_* values of the
// Windows resource compiler. Carried over from the teacher's
// resource.go ResourceType enumeration.
const (
	KindUnknown ResourceKind = iota
	KindCursor               = 1
	KindBitmap               = 2
	KindIcon                 = 3
	KindMenu                 = 4
	KindDialog               = 5
	KindString               = 6
	KindFontDir              = 7
	KindFont                 = 8
	KindAccelerator          = 9
	KindRawData              = 10
	KindMessageTable         = 11
	KindGroupCursor          = KindCursor + 11
	KindGroupIcon            = KindIcon + 11
	KindVersion              = 16
	KindDialogInclude        = 17
	KindPlugAndPlay          = 19
	KindVxD                  = 20
	KindAnimatedCursor       = 21
	KindAnimatedIcon         = 22
	KindHTML                 = 23
	KindManifest             = 24

	// Name-based kinds, matched by UTF-16LE name rather than numeric id.
	// Given explicit values well outside the RT_* range above so they
	// never collide with it; they're distinguished from it anyway by
	// NodeEntry.IsNamed.
	KindMUI          ResourceKind = 1000
	KindWevtTemplate ResourceKind = 1001
)

var resourceKindNames = map[ResourceKind]string{
	KindCursor:         "Cursor",
	KindBitmap:         "Bitmap",
	KindIcon:           "Icon",
	KindMenu:           "Menu",
	KindDialog:         "Dialog",
	KindString:         "String",
	KindFontDir:        "FontDir",
	KindFont:           "Font",
	KindAccelerator:    "Accelerator",
	KindRawData:        "RCData",
	KindMessageTable:   "MessageTable",
	KindGroupCursor:    "GroupCursor",
	KindGroupIcon:      "GroupIcon",
	KindVersion:        "Version",
	KindDialogInclude:  "DialogInclude",
	KindPlugAndPlay:    "PlugAndPlay",
	KindVxD:            "VxD",
	KindAnimatedCursor: "AnimatedCursor",
	KindAnimatedIcon:   "AnimatedIcon",
	KindHTML:           "Html",
	KindManifest:       "Manifest",
	KindMUI:            "MUI",
	KindWevtTemplate:   "WevtTemplate",
	KindUnknown:        "Unknown",
}

// String stringifies the resource kind, in the same spirit as the
// teacher's ResourceType.String().
func (k ResourceKind) String() string {
	if s, ok := resourceKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// muiNameUTF16 and wevtTemplateNameUTF16 are the raw UTF-16LE byte
// patterns that identify the two name-based resource kinds, per
// spec.md §3. Matching is done on raw bytes rather than decoded text
// so it works even for malformed/truncated names the decoder would
// otherwise reject.
var (
	muiNameUTF16          = []byte{'M', 0, 'U', 0, 'I', 0}
	wevtTemplateNameUTF16 = []byte{'W', 0, 'E', 0, 'V', 0, 'T', 0, '_', 0, 'T', 0, 'E', 0, 'M', 0, 'P', 0, 'L', 0, 'A', 0, 'T', 0, 'E', 0}
)

// classifyKind derives the ResourceKind of a level-1 entry per
// spec.md §4.4 step 2d.
func classifyKind(isNamed bool, id uint32, nameUTF16 []byte) ResourceKind {
	if !isNamed {
		if k, ok := numericKind(id); ok {
			return k
		}
		return KindUnknown
	}
	if bytes.Equal(nameUTF16, muiNameUTF16) {
		return KindMUI
	}
	if bytes.Equal(nameUTF16, wevtTemplateNameUTF16) {
		return KindWevtTemplate
	}
	return KindUnknown
}

func numericKind(id uint32) (ResourceKind, bool) {
	switch ResourceKind(id) {
	case KindCursor, KindBitmap, KindIcon, KindMenu, KindDialog, KindString,
		KindFontDir, KindFont, KindAccelerator, KindRawData, KindMessageTable,
		KindGroupCursor, KindGroupIcon, KindVersion, KindDialogInclude,
		KindPlugAndPlay, KindVxD, KindAnimatedCursor, KindAnimatedIcon,
		KindHTML, KindManifest:
		return ResourceKind(id), true
	default:
		return KindUnknown, false
	}
}
