package elfcore

import (
	"fmt"

	"github.com/coredump/corescope/internal/bytecursor"
)

// ProgramHeader is a normalized ELF64 program header table entry.
type ProgramHeader struct {
	Type          uint32
	FileOffset    uint64
	FileSize      uint64
	MemoryAddress uint64
	MemorySize    uint64
}

// Data returns the program header's file-backed byte range, borrowed from
// buf. It fails if the range escapes buf.
func (ph ProgramHeader) Data(buf []byte) ([]byte, error) {
	start := ph.FileOffset
	end := start + ph.FileSize
	if end > uint64(len(buf)) || end < start {
		return nil, fmt.Errorf("program header has invalid file range: [%#x, %#x)", start, end)
	}
	return buf[start:end], nil
}

// parseProgramHeaders decodes count consecutive 56-byte Elf64_Phdr entries
// starting at the front of data.
func parseProgramHeaders(data []byte, count int) ([]ProgramHeader, error) {
	phs := make([]ProgramHeader, 0, count)
	for i := 0; i < count; i++ {
		ph, rest, err := parseProgramHeader(data)
		if err != nil {
			return nil, err
		}
		phs = append(phs, ph)
		data = rest
	}
	return phs, nil
}

func parseProgramHeader(data []byte) (ProgramHeader, []byte, error) {
	wrap := func(err error) error { return fmt.Errorf("Elf64_Phdr: %w", err) }

	c := bytecursor.New(data)
	pType, err := c.ReadU32()
	if err != nil {
		return ProgramHeader{}, nil, wrap(err)
	}
	if _, err := c.Take(4); err != nil { // p_flags, unused
		return ProgramHeader{}, nil, wrap(err)
	}
	pOffset, err := c.ReadU64()
	if err != nil {
		return ProgramHeader{}, nil, wrap(err)
	}
	pVaddr, err := c.ReadU64()
	if err != nil {
		return ProgramHeader{}, nil, wrap(err)
	}
	pPaddr, err := c.ReadU64()
	if err != nil {
		return ProgramHeader{}, nil, wrap(err)
	}
	pFilesz, err := c.ReadU64()
	if err != nil {
		return ProgramHeader{}, nil, wrap(err)
	}
	pMemsz, err := c.ReadU64()
	if err != nil {
		return ProgramHeader{}, nil, wrap(err)
	}
	pAlign, err := c.ReadU64()
	if err != nil {
		return ProgramHeader{}, nil, wrap(err)
	}

	// A zero alignment would make the modulo check below divide by zero;
	// the kernel never emits this, but pathological input shouldn't panic
	// (see SPEC_FULL.md Open Question decisions).
	if pAlign != 0 {
		if pVaddr%pAlign != 0 {
			return ProgramHeader{}, nil, fmt.Errorf("Elf64_Phdr: unaligned p_vaddr value: %#x", pVaddr)
		}
		if pPaddr%pAlign != 0 {
			return ProgramHeader{}, nil, fmt.Errorf("Elf64_Phdr: unaligned p_paddr value: %#x", pPaddr)
		}
	}

	ph := ProgramHeader{
		Type:          pType,
		FileOffset:    pOffset,
		FileSize:      pFilesz,
		MemoryAddress: pVaddr,
		MemorySize:    pMemsz,
	}
	return ph, data[phdrSize:], nil
}
