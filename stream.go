// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import "github.com/saferwall/wrc/log"

// Options configures a Stream, the public façade over the resource
// core (spec.md §6, C12). The zero value is usable: BaseVirtualAddress
// defaults to 0, AsciiCodepage to CodepageASCII, and MaxDepth/
// MaxDirectoryEntries to the package's defaults.
type Options struct {
	// BaseVirtualAddress is the RVA the Reader's offset 0 corresponds
	// to, used to translate DataDescriptor.VirtualAddress into an
	// offset into the Reader (spec.md §4.5).
	BaseVirtualAddress uint32
	// AsciiCodepage selects the codepage MESSAGE_TABLE entries lacking
	// the Unicode flag are decoded with. Defaults to CodepageASCII.
	AsciiCodepage Codepage
	// MaxDepth caps directory recursion. Defaults to defaultMaxDepth.
	MaxDepth int
	// MaxDirectoryEntries caps entries per node, in addition to the
	// package-wide maxAllowedEntries ceiling. Zero disables this extra
	// cap.
	MaxDirectoryEntries int
	// Logger receives structured diagnostics during Open. A nil Logger
	// uses log.Default().
	Logger *log.Helper
}

func (o Options) normalized() Options {
	if o.AsciiCodepage == 0 {
		o.AsciiCodepage = CodepageASCII
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = defaultMaxDepth
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Stream is the entry point into a resource directory (spec.md §6): it
// owns the Reader, parses the tree once on Open, and exposes the
// level-1 resource types as Resource values.
type Stream struct {
	r      Reader
	closer func() error
	opts   Options
	tree   *Node
	abort  bool
}

// Open parses the resource directory readable through r. r is expected
// to already be scoped to the .rsrc section's byte range, per spec.md
// §6's external-collaborator boundary.
func Open(r Reader, opts Options) (*Stream, error) {
	opts = opts.normalized()
	if !isValidCodepage(opts.AsciiCodepage) {
		return nil, newErr("Stream.Open", KindUnsupported, ErrUnknownCodepage)
	}
	s := &Stream{r: r, opts: opts}

	tr := &treeReader{
		r:          r,
		baseVA:     opts.BaseVirtualAddress,
		streamSize: r.Size(),
		maxDepth:   opts.MaxDepth,
		maxEntries: opts.MaxDirectoryEntries,
		abort:      &s.abort,
	}
	tree, err := tr.readTree()
	if err != nil {
		opts.Logger.Errorf("open: %v", err)
		return nil, err
	}
	s.tree = tree
	opts.Logger.Debugf("open: parsed %d top-level entries", len(tree.Entries))
	return s, nil
}

// OpenFile memory-maps name and opens a Stream over its full contents.
// The returned Stream's Close also unmaps the file.
func OpenFile(name string, opts Options) (*Stream, error) {
	r, closer, err := OpenFileReader(name)
	if err != nil {
		return nil, err
	}
	s, err := Open(r, opts)
	if err != nil {
		_ = closer()
		return nil, err
	}
	s.closer = closer
	return s, nil
}

// Close releases any resources Open acquired (e.g. an mmap from
// OpenFile). It is a no-op for a Stream built over a caller-owned
// Reader.
func (s *Stream) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

// SignalAbort sets the Stream's abort flag. Open parses the whole tree
// before it returns the Stream, so the flag can only be set after that
// parse has finished, and no parse in this package reads it afterwards:
// calling SignalAbort does not stop or change any parse.
func (s *Stream) SignalAbort() {
	s.abort = true
}

// Resource is one level-1 resource type entry together with the
// Stream needed to resolve its leaves (spec.md §6).
type Resource struct {
	s     *Stream
	entry *NodeEntry
}

// Resources returns every top-level resource type found in the
// directory, in on-disk order.
func (s *Stream) Resources() []*Resource {
	if s.tree == nil {
		return nil
	}
	out := make([]*Resource, len(s.tree.Entries))
	for i := range s.tree.Entries {
		out[i] = &Resource{s: s, entry: &s.tree.Entries[i]}
	}
	return out
}

// ResourceByKind returns the first top-level resource of the given
// numeric kind, or nil if none is present.
func (s *Stream) ResourceByKind(kind ResourceKind) *Resource {
	for _, r := range s.Resources() {
		if r.Kind() == kind {
			return r
		}
	}
	return nil
}

// ResourceByIdentifier returns the first top-level resource with the
// given numeric identifier, or nil if none matches or the entry is
// named rather than numeric.
func (s *Stream) ResourceByIdentifier(id uint32) *Resource {
	for _, r := range s.Resources() {
		if !r.entry.IsNamed && r.entry.Identifier == id {
			return r
		}
	}
	return nil
}

// ResourceByName returns the first top-level resource whose decoded
// name equals name, or nil if none matches.
func (s *Stream) ResourceByName(name string) (*Resource, error) {
	for _, r := range s.Resources() {
		n, isNamed, err := r.entry.NameUTF8()
		if err != nil {
			return nil, err
		}
		if isNamed && n == name {
			return r, nil
		}
	}
	return nil, nil
}

// Kind returns the resource's classified type.
func (r *Resource) Kind() ResourceKind { return r.entry.Kind }

// IsNamed reports whether the resource is keyed by name rather than id.
func (r *Resource) IsNamed() bool { return r.entry.IsNamed }

// Identifier returns the resource's numeric id, valid when !IsNamed().
func (r *Resource) Identifier() uint32 { return r.entry.Identifier }

// Name decodes the resource's name, valid when IsNamed().
func (r *Resource) Name() (string, error) {
	name, _, err := r.entry.NameUTF8()
	return name, err
}

// Item returns a seek/read cursor over the resource's subtree, for
// resource kinds the core has no typed decoder for.
func (r *Resource) Item() *ResourceItem {
	return newResourceItem(r.s.r, r.s.opts.BaseVirtualAddress, r.entry)
}

// StringTable decodes the resource as a STRING_TABLE (spec.md §4.8). It
// is only meaningful when Kind() == KindString.
func (r *Resource) StringTable() (*StringTable, error) {
	return decodeStringTable(r.s.r, r.s.opts.BaseVirtualAddress, r.entry)
}

// MessageTable decodes the resource as a MESSAGE_TABLE (spec.md §4.9).
// It is only meaningful when Kind() == KindMessageTable.
func (r *Resource) MessageTable() (*MessageTable, error) {
	return decodeMessageTable(r.s.r, r.s.opts.BaseVirtualAddress, r.entry, r.s.opts.AsciiCodepage)
}

// Version decodes the resource's first language leaf as VERSION_INFORMATION
// (spec.md §4.10). It is only meaningful when Kind() == KindVersion.
func (r *Resource) Version() (*Version, error) {
	leaf := firstLeaf(r.entry)
	if leaf == nil {
		return nil, newErr("Resource.Version", KindInvalidData, nil)
	}
	if leaf.Data.VirtualAddress%4 != 0 {
		return nil, newErr("Resource.Version", KindInvalidData, ErrMisalignedVersion)
	}
	item := newResourceItem(r.s.r, r.s.opts.BaseVirtualAddress, leaf)
	data, err := item.Bytes()
	if err != nil {
		return nil, err
	}
	return decodeVersion(data)
}

// Mui decodes the resource's first language leaf as a MUI resource
// (spec.md §4.11). It is only meaningful when Kind() == KindMUI.
func (r *Resource) Mui() (*Mui, error) {
	leaf := firstLeaf(r.entry)
	if leaf == nil {
		return nil, newErr("Resource.Mui", KindInvalidData, nil)
	}
	item := newResourceItem(r.s.r, r.s.opts.BaseVirtualAddress, leaf)
	data, err := item.Bytes()
	if err != nil {
		return nil, err
	}
	return decodeMui(data)
}

// Manifest decodes the resource's first language leaf as a MANIFEST
// resource (spec.md §4.12). It is only meaningful when
// Kind() == KindManifest.
func (r *Resource) Manifest() (*Manifest, error) {
	leaf := firstLeaf(r.entry)
	if leaf == nil {
		return nil, newErr("Resource.Manifest", KindInvalidData, nil)
	}
	item := newResourceItem(r.s.r, r.s.opts.BaseVirtualAddress, leaf)
	data, err := item.Bytes()
	if err != nil {
		return nil, err
	}
	return decodeManifest(data)
}

// firstLeaf walks down the first child at each level until it finds a
// leaf entry, following the type/name/language shape most resources
// other than STRING_TABLE/MESSAGE_TABLE use (a single name node with a
// single language leaf beneath it).
func firstLeaf(e *NodeEntry) *NodeEntry {
	for e.IsDirectory {
		if e.Directory == nil || len(e.Directory.Entries) == 0 {
			return nil
		}
		e = &e.Directory.Entries[0]
	}
	return e
}
