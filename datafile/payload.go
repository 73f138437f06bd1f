// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package datafile

import (
	"encoding/binary"
	"fmt"
)

// Kind discriminates the three payload variants a data file envelope can
// carry.
type Kind byte

const (
	// KindIndexed marks content addressed by an externally supplied key.
	KindIndexed Kind = iota
	// KindReferred marks content addressed only by its PageRef.
	KindReferred
	// KindLink marks a structural node of an on-disk index built above
	// the data file; its content is opaque to this package.
	KindLink
)

// Payload is the tagged union stored inside every envelope.
type Payload struct {
	Kind Kind
	Key  []byte // set only for KindIndexed
	Data []byte // the addressed content (KindIndexed/KindReferred) or raw link bytes (KindLink)
}

// IndexedData builds an IndexedData payload.
func IndexedData(key, data []byte) Payload {
	return Payload{Kind: KindIndexed, Key: key, Data: data}
}

// ReferredData builds a ReferredData payload.
func ReferredData(data []byte) Payload {
	return Payload{Kind: KindReferred, Data: data}
}

// LinkData builds a Link payload.
func LinkData(content []byte) Payload {
	return Payload{Kind: KindLink, Data: content}
}

// marshal serializes the payload as a leading discriminator byte followed
// by variant-specific bytes. Indexed payloads additionally carry a 2-byte
// big-endian key length so key and data can be told apart on read.
func (p Payload) marshal() []byte {
	switch p.Kind {
	case KindIndexed:
		buf := make([]byte, 1+2+len(p.Key)+len(p.Data))
		buf[0] = byte(KindIndexed)
		binary.BigEndian.PutUint16(buf[1:3], uint16(len(p.Key)))
		copy(buf[3:], p.Key)
		copy(buf[3+len(p.Key):], p.Data)
		return buf
	case KindReferred:
		buf := make([]byte, 1+len(p.Data))
		buf[0] = byte(KindReferred)
		copy(buf[1:], p.Data)
		return buf
	case KindLink:
		buf := make([]byte, 1+len(p.Data))
		buf[0] = byte(KindLink)
		copy(buf[1:], p.Data)
		return buf
	default:
		panic(fmt.Sprintf("datafile: unknown payload kind %d", p.Kind))
	}
}

// unmarshalPayload is the inverse of marshal.
func unmarshalPayload(raw []byte) (Payload, error) {
	if len(raw) < 1 {
		return Payload{}, &CorruptedError{Reason: "empty payload"}
	}
	switch Kind(raw[0]) {
	case KindIndexed:
		if len(raw) < 3 {
			return Payload{}, &CorruptedError{Reason: "truncated indexed payload header"}
		}
		keyLen := int(binary.BigEndian.Uint16(raw[1:3]))
		if len(raw) < 3+keyLen {
			return Payload{}, &CorruptedError{Reason: "truncated indexed payload key"}
		}
		key := append([]byte(nil), raw[3:3+keyLen]...)
		data := append([]byte(nil), raw[3+keyLen:]...)
		return Payload{Kind: KindIndexed, Key: key, Data: data}, nil
	case KindReferred:
		data := append([]byte(nil), raw[1:]...)
		return Payload{Kind: KindReferred, Data: data}, nil
	case KindLink:
		data := append([]byte(nil), raw[1:]...)
		return Payload{Kind: KindLink, Data: data}, nil
	default:
		return Payload{}, &CorruptedError{Reason: fmt.Sprintf("unknown payload discriminator %d", raw[0])}
	}
}
