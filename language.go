// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

// LanguageEntry groups every decoded value found under one LCID leaf
// for a given resource (spec.md §3's LanguageEntry). Values holds
// decoder-specific payloads; the decoders that use a LanguageTable
// (StringTable, MessageTable) type-assert their own concrete element
// type out of it rather than exposing the raw slice.
type LanguageEntry struct {
	LCID   uint32
	Values []interface{}
}

// PrimaryLanguage returns the primary language id packed into the low
// 10 bits of the LCID, matching the teacher's ResourceDataEntry.Lang
// derivation (resource.go: `res.Name & 0x3ff`).
func (e LanguageEntry) PrimaryLanguage() uint32 { return e.LCID & 0x3ff }

// SubLanguage returns the sub-language id packed into the remaining
// bits of the LCID, matching the teacher's ResourceDataEntry.SubLang
// derivation (resource.go: `res.Name >> 10`).
func (e LanguageEntry) SubLanguage() uint32 { return e.LCID >> 10 }

// LanguageTable is an ordered collection of LanguageEntry keyed by
// LCID (spec.md §3/§4.6, C6). Order matches the order leaves were
// encountered during decoding.
type LanguageTable struct {
	entries []LanguageEntry
	index   map[uint32]int
}

// newLanguageTable returns an empty LanguageTable.
func newLanguageTable() *LanguageTable {
	return &LanguageTable{index: make(map[uint32]int)}
}

// GetByLCID returns the entry for lcid and true, or a zero entry and
// false if no such entry exists yet.
func (t *LanguageTable) GetByLCID(lcid uint32) (LanguageEntry, bool) {
	i, ok := t.index[lcid]
	if !ok {
		return LanguageEntry{}, false
	}
	return t.entries[i], true
}

// entryIndex returns the index of lcid's entry, creating one if absent,
// per spec.md §4.6 step 1 ("find or create a LanguageEntry for its LCID").
func (t *LanguageTable) entryIndex(lcid uint32) int {
	if i, ok := t.index[lcid]; ok {
		return i
	}
	t.entries = append(t.entries, LanguageEntry{LCID: lcid})
	i := len(t.entries) - 1
	t.index[lcid] = i
	return i
}

// appendValue appends v to lcid's entry, per spec.md §4.6 steps 3-4.
func (t *LanguageTable) appendValue(lcid uint32, v interface{}) {
	i := t.entryIndex(lcid)
	t.entries[i].Values = append(t.entries[i].Values, v)
}

// Entries returns every language entry in on-disk order.
func (t *LanguageTable) Entries() []LanguageEntry {
	return t.entries
}

// Len returns the number of distinct LCIDs held.
func (t *LanguageTable) Len() int { return len(t.entries) }
