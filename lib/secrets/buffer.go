// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds credential material in memory that is locked against
// swapping, excluded from core dumps, and zeroed on close. The backing
// memory is allocated via mmap outside the Go heap, so the garbage
// collector never copies or relocates it.
//
// A Buffer must not be copied after creation. Call Close as soon as
// the request that needed the credential completes; after Close, any
// access to the contents panics.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	length int
	closed bool
}

// NewBuffer allocates a protected buffer and copies source into it.
// The source bytes are zeroed in place, so the caller's slice no
// longer holds the credential.
func NewBuffer(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secrets: cannot create buffer from empty source")
	}

	data, err := mapProtected(len(source))
	if err != nil {
		return nil, err
	}
	copy(data, source)
	for index := range source {
		source[index] = 0
	}

	return &Buffer{data: data, length: len(source)}, nil
}

// NewBufferFromString copies s into a protected buffer. Go strings are
// immutable, so the heap copy in s cannot be zeroed; use NewBuffer
// with a byte slice where the call site allows it.
func NewBufferFromString(s string) (*Buffer, error) {
	if s == "" {
		return nil, fmt.Errorf("secrets: cannot create buffer from empty string")
	}

	data, err := mapProtected(len(s))
	if err != nil {
		return nil, err
	}
	copy(data, s)

	return &Buffer{data: data, length: len(s)}, nil
}

// mapProtected allocates size bytes of anonymous memory outside the Go
// heap, locked into physical RAM (mlock) and excluded from core dumps
// (MADV_DONTDUMP).
func mapProtected(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secrets: mmap failed: %w", err)
	}
	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secrets: mlock failed: %w", err)
	}
	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, fmt.Errorf("secrets: madvise(MADV_DONTDUMP) failed: %w", err)
	}
	return data, nil
}

// Bytes returns the credential bytes. The returned slice points
// directly into the mmap region; do not hold references to it beyond
// the lifetime of the Buffer. Panics if the buffer has been closed.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secrets: read from closed buffer")
	}
	return b.data[:b.length]
}

// String returns the credential as a string. The result is a
// heap-allocated copy (Go strings are immutable), so call this only at
// API boundaries that require a string, such as setting an
// Authorization header. Prefer Bytes elsewhere.
//
// Panics if the buffer has been closed.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secrets: read from closed buffer")
	}
	return string(b.data[:b.length])
}

// Len returns the credential length in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.length
}

// Close zeros the contents, then unlocks and unmaps the memory.
// Idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for index := range b.data {
		b.data[index] = 0
	}

	var firstError error
	if err := unix.Munlock(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secrets: munlock failed: %w", err)
	}
	if err := unix.Munmap(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secrets: munmap failed: %w", err)
	}

	b.data = nil
	return firstError
}
