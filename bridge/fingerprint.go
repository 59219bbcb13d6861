// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// fingerprint is a 32-byte BLAKE3 digest identifying one message as
// pushed to one session. The bridge keeps only the digest of the last
// pushed message per session — never the content — so a hook that
// fires twice for the same message does not double-append it.
type fingerprint [32]byte

// messageDomainKey is the BLAKE3 keyed-hash domain for message
// fingerprints. A fixed constant: changing it makes every in-flight
// digest miss, which only costs one duplicate append. The byte values
// are the ASCII encoding of the domain name, zero-padded to 32 bytes,
// so the key is readable in a debugger.
var messageDomainKey = [32]byte{
	'h', 'o', 'n', 'c', 'h', 'o', '.', 'b', 'r', 'i', 'd', 'g', 'e', '.',
	'm', 'e', 's', 's', 'a', 'g', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// fingerprintEncMode encodes fingerprint inputs with Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding. Same logical message always produces identical
// bytes, so digest equality is content equality.
var fingerprintEncMode cbor.EncMode

func init() {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bridge: CBOR encoder initialization failed: " + err.Error())
	}
	fingerprintEncMode = encMode
}

// fingerprintInput is the canonical shape hashed for deduplication.
// Session and role participate so the same text in a different chat,
// or echoed back by the other party, still counts as a new message.
type fingerprintInput struct {
	Session string `cbor:"session"`
	Role    string `cbor:"role"`
	Content string `cbor:"content"`
}

// fingerprintMessage computes the dedup digest for one message.
func fingerprintMessage(sessionRef string, role Role, content string) fingerprint {
	encoded, err := fingerprintEncMode.Marshal(fingerprintInput{
		Session: sessionRef,
		Role:    string(role),
		Content: content,
	})
	if err != nil {
		// Three string fields cannot fail deterministic encoding.
		panic("bridge: fingerprint encoding failed: " + err.Error())
	}

	hasher, err := blake3.NewKeyed(messageDomainKey[:])
	if err != nil {
		panic("bridge: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(encoded)

	var digest fingerprint
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the hex form, used in debug logs.
func (f fingerprint) String() string {
	return hex.EncodeToString(f[:])
}
