// Package mmbuf provides backing buffers for fixarena.
//
// # Overview
//
// The arenas in fixarena never acquire memory themselves; the caller passes
// a []byte in. This package offers two ready-made sources:
//
//	b, err := mmbuf.Map(1 << 20)
//	if err != nil { ... }
//	defer b.Close()
//
//	c := fixarena.NewSafeRestartable(b.Bytes())
//
// Map returns an anonymous read-write mapping outside the Go heap. It is
// page aligned, so every alignment up to the page size holds for absolute
// addresses as well as for offsets.
//
// Aligned returns an ordinary heap slice whose first byte sits on a given
// power-of-two boundary.
//
// # Platform Support
//
//   - Unix: mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT
//   - Elsewhere: a page-aligned heap slice
package mmbuf
