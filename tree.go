// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

// maxAllowedEntries caps the number of entries a single directory node
// may declare, carried over from the teacher's resource.go constant of
// the same name and value, to bound parse time on corrupt/hostile input.
const maxAllowedEntries = 0x1000

// defaultMaxDepth is the recursion cap applied when Options.MaxDepth is
// left at zero. spec.md §3 only requires MAX_DEPTH >= 3; 16 gives ample
// headroom over the canonical 3-level type/name/language shape while
// still bounding pathological input.
const defaultMaxDepth = 16

// Node is one directory node in the resource tree: a header plus its
// ordered child entries (spec.md §3's "Tree").
type Node struct {
	Header  NodeHeader
	Entries []NodeEntry
	// Offset is this node's absolute offset, kept for diagnostics.
	Offset uint64
}

// treeReader holds the state threaded through the recursive directory
// walk (spec.md §4.4's TreeReader, C4).
type treeReader struct {
	r          Reader
	baseVA     uint32
	streamSize uint64
	maxDepth   int
	maxEntries int
	abort      *bool
}

// readTree walks the directory rooted at offset 0 and returns the
// fully populated tree. Any bounds violation, unsupported flags, I/O
// short read, excess recursion, or cooperative abort fails the whole
// parse; partial trees are never returned (spec.md §4.4's failure
// semantics — Go's GC makes the "release every allocation on the
// error path" requirement automatic, so there is no explicit free path
// to write, unlike the teacher's C ancestor).
func (tr *treeReader) readTree() (*Node, error) {
	return tr.readNode(0, 1)
}

// readNode implements spec.md §4.4's algorithm: parse the header and
// entry array in one forward pass (resolving names and bounds-checking
// child offsets as it goes), then make a second pass to recurse into
// subdirectories or resolve leaf DataDescriptors. The two passes keep
// parser state linear, per the design rationale in spec.md §4.4.
func (tr *treeReader) readNode(offset uint64, level int) (*Node, error) {
	if level > tr.maxDepth {
		return nil, newErr("readNode", KindRecursionDepthExceeded, nil)
	}
	if tr.checkAbort() {
		return nil, newErr("readNode", KindAbortRequested, ErrAbortRequested)
	}

	header, err := readNodeHeaderAt(tr.r, offset)
	if err != nil {
		return nil, err
	}

	total := header.TotalEntries()
	if total > maxAllowedEntries || (tr.maxEntries > 0 && int(total) > tr.maxEntries) {
		return nil, newErr("readNode", KindOutOfBounds, nil)
	}

	entriesEnd := offset + nodeHeaderSize + uint64(total)*nodeEntrySize
	if entriesEnd > tr.streamSize {
		return nil, newErr("readNode", KindOutOfBounds, nil)
	}

	node := &Node{Header: header, Offset: offset, Entries: make([]NodeEntry, total)}

	// First pass: populate every slot, resolving names and validating
	// child offsets early, per spec.md §4.4 step 2.
	for i := uint32(0); i < total; i++ {
		if tr.checkAbort() {
			return nil, newErr("readNode", KindAbortRequested, ErrAbortRequested)
		}
		entryOffset := offset + nodeHeaderSize + uint64(i)*nodeEntrySize
		entry, err := readNodeEntryAt(tr.r, entryOffset)
		if err != nil {
			return nil, err
		}

		if entry.IsNamed {
			name, err := readEntryName(tr.r, uint64(tr.rootOffset()), entry.Key)
			if err != nil {
				return nil, err
			}
			entry.Name = name
		}

		childOffset := uint64(entry.Child &^ highBit)
		if childOffset < entriesEnd || childOffset >= tr.streamSize {
			return nil, newErr("readNode", KindOutOfBounds, nil)
		}

		if level == 1 {
			entry.Kind = classifyKind(entry.IsNamed, entry.Identifier, entry.Name)
		}

		node.Entries[i] = entry
	}

	// Second pass: recurse into subdirectories or resolve leaf data
	// descriptors, per spec.md §4.4 step 3.
	for i := range node.Entries {
		e := &node.Entries[i]
		childOffset := uint64(e.Child &^ highBit)
		if e.IsDirectory {
			child, err := tr.readNode(childOffset, level+1)
			if err != nil {
				return nil, err
			}
			e.Directory = child
			continue
		}
		desc, err := readDataDescriptorAt(tr.r, childOffset)
		if err != nil {
			return nil, err
		}
		if err := tr.validateDescriptor(desc); err != nil {
			return nil, err
		}
		e.Data = desc
	}

	return node, nil
}

// rootOffset returns the byte offset names are relative to. Per
// spec.md §4.3 names are read relative to the start of the resource
// directory, i.e. absolute offset 0 within the Reader handed to the
// Stream, matching the teacher's baseRVA-relative name resolution in
// resource.go's doParseResourceDirectory.
func (tr *treeReader) rootOffset() uint64 { return 0 }

// validateDescriptor enforces spec.md §3's invariant: a leaf's payload
// must lie entirely within [baseVA, baseVA+streamSize).
func (tr *treeReader) validateDescriptor(d DataDescriptor) error {
	base := uint64(tr.baseVA)
	end := base + tr.streamSize
	if uint64(d.VirtualAddress) < base || uint64(d.VirtualAddress)+uint64(d.Size) > end {
		return newErr("validateDescriptor", KindOutOfBounds, nil)
	}
	return nil
}

func (tr *treeReader) checkAbort() bool {
	return tr.abort != nil && *tr.abort
}
