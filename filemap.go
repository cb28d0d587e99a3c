package corescope

import (
	"bytes"
	"fmt"

	"github.com/coredump/corescope/internal/elfcore"
)

// NT_FILE description framing, all little-endian:
//
//	count     : u64
//	page_size : u64
//	entries   : count x { vm_start:u64, vm_end:u64, page_idx:u64 }
//	paths     : count x NUL-terminated byte strings, in the same order
func extractFileMap(elf *elfcore.Elf) ([]FileMapping, error) {
	desc, ok := elf.GetNote("CORE", elfcore.NT_FILE)
	if !ok {
		return nil, fmt.Errorf("missing note: CORE/NT_FILE")
	}

	return decodeFileNote(desc)
}

// wrapFileNoteFraming wraps errors reading the note's fixed count/page_size
// header and its count entries — the part that corresponds to
// original_source/src/core.rs's wrap_error-scoped read_u64 calls. The
// business-rule "too few paths" error below that point is already final
// and is returned unwrapped.
func wrapFileNoteFraming(err error) error {
	return fmt.Errorf("NT_FILE note: %w", err)
}

func decodeFileNote(desc []byte) ([]FileMapping, error) {
	if len(desc) < 16 {
		return nil, wrapFileNoteFraming(fmt.Errorf("not enough data"))
	}

	u64At := func(b []byte, off int) uint64 {
		v := b[off : off+8]
		return uint64(v[0]) | uint64(v[1])<<8 | uint64(v[2])<<16 | uint64(v[3])<<24 |
			uint64(v[4])<<32 | uint64(v[5])<<40 | uint64(v[6])<<48 | uint64(v[7])<<56
	}

	count := u64At(desc, 0)
	pageSize := u64At(desc, 8)

	const entrySize = 24
	entriesOff := 16
	entriesLen := count * entrySize
	if uint64(len(desc)-entriesOff) < entriesLen {
		return nil, wrapFileNoteFraming(fmt.Errorf("not enough data"))
	}
	entries := desc[entriesOff : uint64(entriesOff)+entriesLen]
	paths := desc[uint64(entriesOff)+entriesLen:]

	pathTokens := bytes.Split(paths, []byte{0})
	if uint64(len(pathTokens)) < count {
		return nil, fmt.Errorf("NT_FILE note contains too few paths")
	}

	mappings := make([]FileMapping, count)
	for i := uint64(0); i < count; i++ {
		e := entries[i*entrySize : i*entrySize+entrySize]
		vmStart := u64At(e, 0)
		vmEnd := u64At(e, 8)
		pageIdx := u64At(e, 16)

		mappings[i] = FileMapping{
			VMStart:    vmStart,
			VMEnd:      vmEnd,
			FileOffset: pageIdx * pageSize,
			FilePath:   pathTokens[i],
		}
	}
	return mappings, nil
}
