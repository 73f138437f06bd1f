// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package datafile

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// PagedFile is the external backing contract consumed by DataFile (spec
// §6). A PagedFile presents a logical, page-header-free byte stream
// addressed by PageRef: reads and appends step through fixed-size pages,
// skipping each page's header transparently, so callers only ever see a
// contiguous envelope stream. Page size and per-page payload size are
// backing-defined constants (PageSize / PagePayloadSize here).
type PagedFile interface {
	// Len returns the raw on-disk byte length of the backing file. It is
	// always a multiple of PageSize.
	Len() (uint64, error)

	// Position returns the PageRef the next Append will start writing
	// at, without mutating anything.
	Position() PageRef

	// Read reads byteCount logical bytes starting at pref into buffer,
	// skipping page headers as it crosses page boundaries, and returns
	// the PageRef immediately following the read region.
	Read(pref PageRef, buffer []byte, byteCount int) (PageRef, error)

	// Append writes data starting at the current append cursor and
	// returns the cursor's new (post-append) position.
	Append(data []byte) (PageRef, error)

	// Update overwrites byte-identical-length data at an existing ref.
	// It must not grow the file.
	Update(pref PageRef, data []byte) error

	// Truncate shrinks the backing file to cover exactly up to
	// bytePosition (rounded up to the enclosing page), clears the bytes
	// of that page after bytePosition, and resets the append cursor to
	// bytePosition.
	Truncate(bytePosition PageRef) error

	// Flush ensures buffered writes are visible to subsequent reads.
	Flush() error

	// Sync fsyncs the backing file to stable storage.
	Sync() error
}

// FilePagedFile is a PagedFile backed by a single *os.File. Pages are
// pre-allocated in full (PageSize bytes) as soon as any byte of their
// payload is touched, which keeps the on-disk length a multiple of
// PageSize at all times and lets DataFile.Open resume appending simply
// by trusting the raw file length as the next append cursor (spec
// §4.1's "positions the write cursor at max(backing_len, 0)").
type FilePagedFile struct {
	mu   sync.Mutex
	file *os.File
	// cursor is the logical append position, expressed as
	// pageIndex*PageSize + payloadOffsetWithinPage (0 <= offset < PagePayloadSize).
	cursor PageRef
}

// OpenFilePagedFile opens (creating if necessary) the file at path as a
// PagedFile.
func OpenFilePagedFile(path string) (*FilePagedFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("datafile: open backing file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("datafile: stat backing file: %w", err)
	}

	length := info.Size()
	var cursor PageRef
	if length > 0 {
		cursor = PageRef(length)
	}

	return &FilePagedFile{file: f, cursor: cursor}, nil
}

// Position implements PagedFile.
func (f *FilePagedFile) Position() PageRef {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor
}

// Len implements PagedFile.
func (f *FilePagedFile) Len() (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, err := f.file.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// splitRef decomposes a PageRef into a page index and an offset within
// that page's payload region.
func splitRef(pref PageRef) (pageIndex uint64, payloadOffset uint64) {
	pageIndex = uint64(pref) / PageSize
	payloadOffset = uint64(pref) % PageSize
	if payloadOffset > PagePayloadSize {
		// A PageRef must never point inside a page header; callers are
		// expected to only ever produce refs via Append/Read/Truncate.
		payloadOffset = PagePayloadSize
	}
	return pageIndex, payloadOffset
}

func physicalOffset(pageIndex, payloadOffset uint64) int64 {
	return int64(pageIndex)*PageSize + pageHeaderSize + int64(payloadOffset)
}

// Read implements PagedFile.
func (f *FilePagedFile) Read(pref PageRef, buffer []byte, byteCount int) (PageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pageIndex, payloadOffset := splitRef(pref)
	read := 0
	for read < byteCount {
		avail := int(PagePayloadSize - payloadOffset)
		want := byteCount - read
		if want > avail {
			want = avail
		}
		phys := physicalOffset(pageIndex, payloadOffset)
		n, err := f.file.ReadAt(buffer[read:read+want], phys)
		if err != nil && !(err == io.EOF && n == want) {
			return 0, err
		}
		read += want
		payloadOffset += uint64(want)
		if payloadOffset >= PagePayloadSize {
			payloadOffset = 0
			pageIndex++
		}
	}

	return PageRef(pageIndex*PageSize + payloadOffset), nil
}

// ensureAllocated grows the backing file so that page pageIndex is fully
// present on disk (zero-filled), keeping the file length a multiple of
// PageSize.
func (f *FilePagedFile) ensureAllocated(pageIndex uint64) error {
	info, err := f.file.Stat()
	if err != nil {
		return err
	}
	needed := int64(pageIndex+1) * PageSize
	if info.Size() >= needed {
		return nil
	}
	return f.file.Truncate(needed)
}

// Append implements PagedFile.
func (f *FilePagedFile) Append(data []byte) (PageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pageIndex, payloadOffset := splitRef(f.cursor)
	written := 0
	for written < len(data) {
		if err := f.ensureAllocated(pageIndex); err != nil {
			return 0, err
		}
		avail := int(PagePayloadSize - payloadOffset)
		want := len(data) - written
		if want > avail {
			want = avail
		}
		phys := physicalOffset(pageIndex, payloadOffset)
		if _, err := f.file.WriteAt(data[written:written+want], phys); err != nil {
			return 0, err
		}
		written += want
		payloadOffset += uint64(want)
		if payloadOffset >= PagePayloadSize {
			payloadOffset = 0
			pageIndex++
		}
	}

	f.cursor = PageRef(pageIndex*PageSize + payloadOffset)
	return f.cursor, nil
}

// Update implements PagedFile. It writes into already-allocated pages
// only; it never grows the file.
func (f *FilePagedFile) Update(pref PageRef, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	pageIndex, payloadOffset := splitRef(pref)
	written := 0
	for written < len(data) {
		avail := int(PagePayloadSize - payloadOffset)
		want := len(data) - written
		if want > avail {
			want = avail
		}
		phys := physicalOffset(pageIndex, payloadOffset)
		if _, err := f.file.WriteAt(data[written:written+want], phys); err != nil {
			return err
		}
		written += want
		payloadOffset += uint64(want)
		if payloadOffset >= PagePayloadSize {
			payloadOffset = 0
			pageIndex++
		}
	}
	return nil
}

// Truncate implements PagedFile.
func (f *FilePagedFile) Truncate(bytePosition PageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	pageIndex, payloadOffset := splitRef(bytePosition)
	newLen := int64(pageIndex) * PageSize
	if payloadOffset > 0 {
		newLen = int64(pageIndex+1) * PageSize
	}
	if err := f.file.Truncate(newLen); err != nil {
		return err
	}
	// Zero the rest of the kept page so envelopes stored past
	// bytePosition cannot be read back.
	if payloadOffset > 0 && payloadOffset < PagePayloadSize {
		zeros := make([]byte, PagePayloadSize-payloadOffset)
		if _, err := f.file.WriteAt(zeros, physicalOffset(pageIndex, payloadOffset)); err != nil {
			return err
		}
	}
	f.cursor = bytePosition
	return nil
}

// Flush implements PagedFile. Writes go through WriteAt directly, so
// there is no in-process buffer to drain.
func (f *FilePagedFile) Flush() error {
	return nil
}

// Sync implements PagedFile.
func (f *FilePagedFile) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Sync()
}

// Close closes the underlying file.
func (f *FilePagedFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Close()
}
