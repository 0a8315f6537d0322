// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrc

import (
	"errors"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// ErrOutsideBoundary is returned when a read or bounds check would cross
// the edge of the addressable range, carried over verbatim from the
// teacher's helper.go sentinel of the same name and message.
var ErrOutsideBoundary = errors.New("reading data outside boundary")

// Reader is the random-access byte source the core consumes. It is the
// external collaborator described in spec.md §6: the PE/COFF container
// parser (out of scope here) is expected to hand the Stream a Reader
// already scoped to the .rsrc section's byte range.
type Reader interface {
	// Size returns the total number of addressable bytes.
	Size() uint64
	// ReadAt fills buf completely from offset, or returns an error. It
	// follows io.ReaderAt's contract (short reads are errors, not EOF
	// unless they truly hit the end).
	ReadAt(offset uint64, buf []byte) (int, error)
}

// bytesReader is a Reader backed by an in-memory byte slice.
type bytesReader struct {
	data []byte
}

// NewBytesReader wraps a byte slice as a Reader. This is the simplest
// Reader implementation, used heavily by the test suite and by callers
// that already have the .rsrc section buffered in memory.
func NewBytesReader(data []byte) Reader {
	return &bytesReader{data: data}
}

func (r *bytesReader) Size() uint64 { return uint64(len(r.data)) }

func (r *bytesReader) ReadAt(offset uint64, buf []byte) (int, error) {
	if offset > uint64(len(r.data)) {
		return 0, newErr("bytesReader.ReadAt", KindIoShortRead, ErrOutsideBoundary)
	}
	n := copy(buf, r.data[offset:])
	if n < len(buf) {
		return n, newErr("bytesReader.ReadAt", KindIoShortRead, ErrOutsideBoundary)
	}
	return n, nil
}

// fileReader memory-maps a file on disk, the way the teacher's File.New
// memory-maps the whole PE image with edsrzf/mmap-go instead of issuing
// read(2) calls per access.
type fileReader struct {
	f    *os.File
	data mmap.MMap
}

// OpenFileReader memory-maps name and returns a Reader over its full
// contents, plus a closer to release the mapping and the underlying
// file descriptor.
func OpenFileReader(name string) (Reader, func() error, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	fr := &fileReader{f: f, data: data}
	return fr, fr.close, nil
}

func (r *fileReader) Size() uint64 { return uint64(len(r.data)) }

func (r *fileReader) ReadAt(offset uint64, buf []byte) (int, error) {
	if offset > uint64(len(r.data)) {
		return 0, newErr("fileReader.ReadAt", KindIoShortRead, ErrOutsideBoundary)
	}
	n := copy(buf, r.data[offset:])
	if n < len(buf) {
		return n, newErr("fileReader.ReadAt", KindIoShortRead, ErrOutsideBoundary)
	}
	return n, nil
}

func (r *fileReader) close() error {
	if r.data != nil {
		_ = r.data.Unmap()
	}
	if r.f != nil {
		return r.f.Close()
	}
	return nil
}
