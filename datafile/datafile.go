// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package datafile

import "fmt"

// DataFile is the append-only, page-framed envelope log. It owns a
// PagedFile backing and exposes random-access reads by PageRef alongside
// sequential appends and length-preserving in-place updates.
type DataFile struct {
	backing PagedFile
}

// Open validates the backing's length against the page size and returns
// a DataFile positioned to resume appending where the backing left off.
func Open(backing PagedFile) (*DataFile, error) {
	length, err := backing.Len()
	if err != nil {
		return nil, err
	}
	if length%PageSize != 0 {
		return nil, &CorruptedError{Reason: fmt.Sprintf("backing length %d is not a multiple of page size %d", length, PageSize)}
	}
	return &DataFile{backing: backing}, nil
}

func (df *DataFile) append(p Payload) (PageRef, error) {
	env := Envelope{Payload: p}
	raw, err := env.marshal()
	if err != nil {
		return InvalidPageRef, err
	}
	pre := df.backing.Position()
	if _, err := df.backing.Append(raw); err != nil {
		return InvalidPageRef, err
	}
	return pre, nil
}

// AppendLink stores a Link payload and returns its PageRef.
func (df *DataFile) AppendLink(content []byte) (PageRef, error) {
	return df.append(LinkData(content))
}

// AppendIndexed stores an IndexedData payload and returns its PageRef.
func (df *DataFile) AppendIndexed(key, data []byte) (PageRef, error) {
	return df.append(IndexedData(key, data))
}

// AppendReferred stores a ReferredData payload and returns its PageRef.
func (df *DataFile) AppendReferred(data []byte) (PageRef, error) {
	return df.append(ReferredData(data))
}

// GetEnvelope reads the length-prefixed envelope stored at pref.
//
// The 3-byte length is read first, then exactly that many payload bytes
// are read (spec §9 OQ1): FilePagedFile.Append allocates only the pages
// it writes into, so reading past the payload's actual length can run
// off the end of the last allocated page into one that does not exist
// yet and surface a spurious io.EOF.
func (df *DataFile) GetEnvelope(pref PageRef) (Envelope, error) {
	env, _, err := df.readEnvelopeAt(pref)
	return env, err
}

// readEnvelopeAt is GetEnvelope's implementation, additionally returning
// the PageRef immediately following the envelope so callers that walk
// the file sequentially (ScanFromZero) don't need to re-derive it.
func (df *DataFile) readEnvelopeAt(pref PageRef) (Envelope, PageRef, error) {
	var lenBuf [lengthPrefixSize]byte
	next, err := df.backing.Read(pref, lenBuf[:], lengthPrefixSize)
	if err != nil {
		return Envelope{}, InvalidPageRef, err
	}
	length := int(uint24(lenBuf[:]))
	if length < 1 {
		return Envelope{}, InvalidPageRef, &CorruptedError{Reason: "zero-length envelope"}
	}

	buf := make([]byte, length)
	advanced, err := df.backing.Read(next, buf, length)
	if err != nil {
		return Envelope{}, InvalidPageRef, err
	}

	payload, err := unmarshalPayload(buf)
	if err != nil {
		return Envelope{}, InvalidPageRef, err
	}

	return Envelope{Payload: payload}, advanced, nil
}

// SetData replaces the data carried by the envelope at pref with
// newData, keeping the same Kind and Key (for IndexedData). The
// replacement must serialize to exactly the same byte length as the
// stored payload; otherwise ErrValueTooLong is returned and nothing is
// written. Link payloads cannot be updated: that is ErrInvalidUsage.
func (df *DataFile) SetData(pref PageRef, newData []byte) (PageRef, error) {
	env, err := df.GetEnvelope(pref)
	if err != nil {
		return InvalidPageRef, err
	}
	if env.Payload.Kind == KindLink {
		return InvalidPageRef, ErrInvalidUsage
	}

	replacement := env.Payload
	replacement.Data = newData
	newEnv := Envelope{Payload: replacement}
	raw, err := newEnv.marshal()
	if err != nil {
		return InvalidPageRef, err
	}

	oldEnv := Envelope{Payload: env.Payload}
	oldRaw, err := oldEnv.marshal()
	if err != nil {
		return InvalidPageRef, err
	}
	if len(raw) != len(oldRaw) {
		return InvalidPageRef, ErrValueTooLong
	}

	if err := df.backing.Update(pref, raw); err != nil {
		return InvalidPageRef, err
	}
	return pref, nil
}

// Truncate shrinks the backing store so that no data beyond pref
// remains reachable.
func (df *DataFile) Truncate(pref PageRef) error {
	return df.backing.Truncate(pref)
}

// Flush delegates to the backing.
func (df *DataFile) Flush() error {
	return df.backing.Flush()
}

// Sync delegates to the backing.
func (df *DataFile) Sync() error {
	return df.backing.Sync()
}

// Len delegates to the backing's raw on-disk length.
func (df *DataFile) Len() (uint64, error) {
	return df.backing.Len()
}

// EnvelopeEntry pairs a stored envelope with the PageRef it lives at.
type EnvelopeEntry struct {
	Ref      PageRef
	Envelope Envelope
}

// ScanFromZero performs a single, non-restartable forward scan over all
// envelopes starting at PageRef 0, stopping at the first unreadable or
// zero-length position. It is meant for recovery scans over an existing
// file, not for steady-state iteration during normal operation.
func (df *DataFile) ScanFromZero() ([]EnvelopeEntry, error) {
	var entries []EnvelopeEntry
	var cursor PageRef
	for {
		env, next, err := df.readEnvelopeAt(cursor)
		if err != nil {
			break
		}
		entries = append(entries, EnvelopeEntry{Ref: cursor, Envelope: env})
		cursor = next
	}
	return entries, nil
}
