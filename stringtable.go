// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import "encoding/binary"

// stringBundleSlots is the fixed number of strings packed into one
// STRING_TABLE leaf, per spec.md §4.8.
const stringBundleSlots = 16

// stringBundleEntry holds one decoded slot of a bundle. Empty slots
// (length 0) still occupy their id, matching resource compiler output.
type stringBundleEntry struct {
	ID    uint32
	Value string
}

// StringTable decodes STRING_TABLE leaves (spec.md §4.8, C7): each
// leaf packs up to 16 length-prefixed UTF-16LE strings, and a
// resource's full string set is assembled bundle by bundle, keyed by
// LCID, matching the teacher's StringFileInfo tables in spirit but
// sourced from the generic resource tree instead of PE sections.
type StringTable struct {
	lang *LanguageTable
}

// newStringTable returns an empty StringTable.
func newStringTable() *StringTable {
	return &StringTable{lang: newLanguageTable()}
}

// addBundle decodes one leaf's raw bytes as a string bundle identified
// by bundleID (the numeric resource name under STRING_TABLE, 1-based
// per spec.md §4.8) and files its entries under lcid.
func (t *StringTable) addBundle(lcid uint32, bundleID uint32, data []byte) error {
	if bundleID < 1 {
		return newErr("StringTable.addBundle", KindInvalidData, ErrInvalidBundleID)
	}
	base := (bundleID - 1) * stringBundleSlots

	existing, _ := t.lang.GetByLCID(lcid)
	seen := make(map[uint32]bool, len(existing.Values))
	for _, v := range existing.Values {
		if sb, ok := v.(stringBundleEntry); ok {
			seen[sb.ID] = true
		}
	}

	off := 0
	for slot := uint32(0); slot < stringBundleSlots; slot++ {
		if off+2 > len(data) {
			return newErr("StringTable.addBundle", KindIoShortRead, ErrOutsideBoundary)
		}
		length := int(binary.LittleEndian.Uint16(data[off : off+2]))
		off += 2
		id := base + slot

		if length == 0 {
			continue
		}
		if off+2*length > len(data) {
			return newErr("StringTable.addBundle", KindIoShortRead, ErrOutsideBoundary)
		}
		if seen[id] {
			return newErr("StringTable.addBundle", KindInvalidData, ErrSlotAlreadySet)
		}
		s, err := rawUTF16LEToUTF8(data[off : off+2*length])
		if err != nil {
			return err
		}
		off += 2 * length
		seen[id] = true
		t.lang.appendValue(lcid, stringBundleEntry{ID: id, Value: s})
	}
	return nil
}

// Strings returns every decoded id/value pair for lcid as a map keyed
// by absolute string id (so iteration order is not defined), per
// spec.md §4's supplemented StringTable.Strings(lcid) accessor.
func (t *StringTable) Strings(lcid uint32) map[uint32]string {
	entry, ok := t.lang.GetByLCID(lcid)
	if !ok {
		return nil
	}
	out := make(map[uint32]string, len(entry.Values))
	for _, v := range entry.Values {
		if sb, ok := v.(stringBundleEntry); ok {
			out[sb.ID] = sb.Value
		}
	}
	return out
}

// String returns a single string by its absolute id (spec.md §4.8:
// id = (bundle_id-1)*16 + slot) for lcid.
func (t *StringTable) String(lcid uint32, id uint32) (string, bool) {
	entry, ok := t.lang.GetByLCID(lcid)
	if !ok {
		return "", false
	}
	for _, v := range entry.Values {
		if sb, ok := v.(stringBundleEntry); ok && sb.ID == id {
			return sb.Value, true
		}
	}
	return "", false
}

// Languages returns every LCID this table has bundles for.
func (t *StringTable) Languages() []uint32 {
	entries := t.lang.Entries()
	out := make([]uint32, len(entries))
	for i, e := range entries {
		out[i] = e.LCID
	}
	return out
}

// decodeStringTable walks a STRING_TABLE resource's id/language tree
// (two levels below the STRING_TABLE type node: bundle id, then LCID)
// and assembles a StringTable from every leaf found, per spec.md §4.8.
// r and baseVA are the Stream's underlying Reader and configured base
// virtual address, needed to fetch each leaf's payload bytes.
func decodeStringTable(r Reader, baseVA uint32, typeEntry *NodeEntry) (*StringTable, error) {
	st := newStringTable()
	if typeEntry.Directory == nil {
		return st, nil
	}
	for i := range typeEntry.Directory.Entries {
		nameEntry := &typeEntry.Directory.Entries[i]
		if !nameEntry.IsDirectory || nameEntry.Directory == nil {
			continue
		}
		bundleID := nameEntry.Identifier
		for j := range nameEntry.Directory.Entries {
			langEntry := &nameEntry.Directory.Entries[j]
			if langEntry.IsDirectory {
				continue
			}
			lcid := langEntry.Identifier
			item := newResourceItem(r, baseVA, langEntry)
			data, err := item.Bytes()
			if err != nil {
				return nil, err
			}
			if err := st.addBundle(lcid, bundleID, data); err != nil {
				return nil, err
			}
		}
	}
	return st, nil
}
