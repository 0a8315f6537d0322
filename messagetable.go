// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import "encoding/binary"

// messageFlagUnicode marks a message entry's text as UTF-16LE rather
// than the table's configured ASCII codepage, per spec.md §4.9.
const messageFlagUnicode = 0x0001

// messageEntry is one decoded message within a range.
type messageEntry struct {
	ID    uint32
	Flags uint16
	Text  string
}

// messageRange mirrors the on-disk MESSAGE_RESOURCE_BLOCK: a contiguous
// [lowID, highID] range of message ids, decoded eagerly into messageEntry
// values.
type messageRange struct {
	LowID, HighID uint32
	Entries       []messageEntry
}

// MessageTable decodes MESSAGE_TABLE leaves (spec.md §4.9, C8): a u32
// count of ranges, each naming a contiguous id span, followed by
// variable-length entries whose low bit of Flags selects ANSI-via-
// configured-codepage versus UTF-16LE text.
type MessageTable struct {
	lang *LanguageTable
}

func newMessageTable() *MessageTable {
	return &MessageTable{lang: newLanguageTable()}
}

// addLeaf decodes one leaf's raw bytes under lcid, per spec.md §4.9's
// MESSAGE_RESOURCE_DATA layout.
func (t *MessageTable) addLeaf(lcid uint32, data []byte, cp Codepage) error {
	if len(data) < 4 {
		return newErr("MessageTable.addLeaf", KindIoShortRead, ErrOutsideBoundary)
	}
	count := binary.LittleEndian.Uint32(data[0:4])
	off := 4

	type rawBlock struct {
		low, high, offset uint32
	}
	blocks := make([]rawBlock, 0, count)
	for i := uint32(0); i < count; i++ {
		if off+12 > len(data) {
			return newErr("MessageTable.addLeaf", KindIoShortRead, ErrOutsideBoundary)
		}
		b := rawBlock{
			low:    binary.LittleEndian.Uint32(data[off : off+4]),
			high:   binary.LittleEndian.Uint32(data[off+4 : off+8]),
			offset: binary.LittleEndian.Uint32(data[off+8 : off+12]),
		}
		off += 12
		if b.low > b.high {
			return newErr("MessageTable.addLeaf", KindInvalidData, nil)
		}
		for _, prior := range blocks {
			if b.low <= prior.high && prior.low <= b.high {
				return newErr("MessageTable.addLeaf", KindInvalidData, ErrRangeOverlap)
			}
		}
		blocks = append(blocks, b)
	}

	for _, b := range blocks {
		r := messageRange{LowID: b.low, HighID: b.high}
		pos := int(b.offset)
		for id := b.low; id <= b.high; id++ {
			if pos+4 > len(data) {
				return newErr("MessageTable.addLeaf", KindIoShortRead, ErrOutsideBoundary)
			}
			entryLen := int(binary.LittleEndian.Uint16(data[pos : pos+2]))
			flags := binary.LittleEndian.Uint16(data[pos+2 : pos+4])
			textEnd := pos + entryLen
			if entryLen < 4 || textEnd > len(data) {
				return newErr("MessageTable.addLeaf", KindIoShortRead, ErrOutsideBoundary)
			}
			textBytes := data[pos+4 : textEnd]

			var text string
			var err error
			if flags&messageFlagUnicode != 0 {
				text, err = rawUTF16LEToUTF8(textBytes)
			} else {
				text, err = codepageToUTF8(cp, textBytes)
			}
			if err != nil {
				return err
			}
			r.Entries = append(r.Entries, messageEntry{ID: id, Flags: flags, Text: text})
			pos = textEnd
		}
		t.lang.appendValue(lcid, r)
	}
	return nil
}

// Message returns the decoded text for id under lcid, and the flags it
// was stored with, per spec.md §4's supplemented ANSI/Unicode exposure.
func (t *MessageTable) Message(lcid uint32, id uint32) (text string, flags uint16, ok bool) {
	entry, found := t.lang.GetByLCID(lcid)
	if !found {
		return "", 0, false
	}
	for _, v := range entry.Values {
		r, isRange := v.(messageRange)
		if !isRange || id < r.LowID || id > r.HighID {
			continue
		}
		for _, m := range r.Entries {
			if m.ID == id {
				return m.Text, m.Flags, true
			}
		}
	}
	return "", 0, false
}

// Languages returns every LCID this table has ranges for.
func (t *MessageTable) Languages() []uint32 {
	entries := t.lang.Entries()
	out := make([]uint32, len(entries))
	for i, e := range entries {
		out[i] = e.LCID
	}
	return out
}

// decodeMessageTable walks a MESSAGE_TABLE resource's id/language tree
// (numeric name node, then LCID) and assembles a MessageTable from
// every leaf found, decoding ANSI text with cp.
func decodeMessageTable(r Reader, baseVA uint32, typeEntry *NodeEntry, cp Codepage) (*MessageTable, error) {
	mt := newMessageTable()
	if typeEntry.Directory == nil {
		return mt, nil
	}
	for i := range typeEntry.Directory.Entries {
		nameEntry := &typeEntry.Directory.Entries[i]
		if !nameEntry.IsDirectory || nameEntry.Directory == nil {
			continue
		}
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
			if err := mt.addLeaf(lcid, data, cp); err != nil {
				return nil, err
			}
		}
	}
	return mt, nil
}
