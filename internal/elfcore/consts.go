// Package elfcore parses the ELF64 container format far enough to hand a
// core-dump decoder its program headers and notes: the file header, the
// program header table, and the note records packed into PT_NOTE segments.
// It knows nothing about what a core dump's notes mean; that's the job of
// the root corescope package.
package elfcore

// ELF identification/header field values this package enforces. Any file
// that doesn't match exactly one of these is rejected; see header.go.
const (
	elfClass64   = 2 // 64-bit objects
	elfData2LSB  = 1 // little-endian
	elfVersion   = 1 // EV_CURRENT
	elfOSABISysV = 0

	etCore   = 4  // ET_CORE
	emX86_64 = 62 // EM_X86_64

	ehdrSize      = 64
	phdrSize      = 56
	shentsizeCore = 64 // e_shentsize as written by a core-dumping kernel
)

// Program header types relevant to core dumps.
const (
	PT_LOAD uint32 = 1
	PT_NOTE uint32 = 4
)

// NoteType identifies the kind of payload a note carries.
type NoteType uint32

// Note types the core-dump layer cares about. Others are walked past but
// never interpreted (spec Non-goal: no auxiliary note types beyond these).
const (
	NT_PRSTATUS  NoteType = 1
	NT_PRPSINFO  NoteType = 3
	NT_FILE      NoteType = 0x4649_4c45 // "FILE" little-endian
)
