// Package corescope decodes Linux ELF64 core dump files for the x86-64
// architecture into an in-memory object model: loaded memory segments,
// per-thread register snapshots, process-level info, and the file-backed
// memory mapping table.
//
// Parse never copies the bulk of a core dump's bytes. Every Segment's
// data, every ProcessInfo/FileMapping byte string, is a sub-slice of the
// buffer passed to Parse; that buffer must outlive the returned Core.
//
// The decoder is strict: any violation of the expected layout is a fatal
// ParseError. There is no support for malformed or partial input, no
// interpretation of note types beyond NT_PRPSINFO/NT_PRSTATUS/NT_FILE, and
// no non-x86-64 or 32-bit ELF support.
package corescope

import (
	"fmt"

	"github.com/coredump/corescope/internal/elfcore"
)

// Core is the fully decoded state of a process that dumped core.
type Core struct {
	Segments []Segment
	Process  ProcessInfo
	Threads  []ThreadInfo
	FileMap  []FileMapping
}

// Parse decodes a core dump from data. data is borrowed by the returned
// Core and every nested type within it; callers must not reuse or free it
// while the Core is alive.
func Parse(data []byte) (*Core, error) {
	core, err := parse(data)
	if err != nil {
		return nil, &ParseError{msg: err.Error()}
	}
	return core, nil
}

func parse(data []byte) (*Core, error) {
	elf, err := elfcore.Parse(data)
	if err != nil {
		return nil, err
	}

	segments, err := extractSegments(elf)
	if err != nil {
		return nil, err
	}

	process, err := extractProcessInfo(elf)
	if err != nil {
		return nil, err
	}

	threads, err := extractThreadInfos(elf)
	if err != nil {
		return nil, err
	}

	fileMap, err := extractFileMap(elf)
	if err != nil {
		return nil, err
	}

	return &Core{
		Segments: segments,
		Process:  process,
		Threads:  threads,
		FileMap:  fileMap,
	}, nil
}

func extractSegments(elf *elfcore.Elf) ([]Segment, error) {
	var segments []Segment
	for _, ph := range elf.ProgramHeadersOfType(elfcore.PT_LOAD) {
		if ph.FileSize != ph.MemorySize {
			return nil, fmt.Errorf("segment file size (%#x) differs from memory size (%#x)", ph.FileSize, ph.MemorySize)
		}

		data, err := elf.ReadSegment(ph)
		if err != nil {
			return nil, err
		}

		segments = append(segments, Segment{
			VMStart: ph.MemoryAddress,
			VMEnd:   ph.MemoryAddress + ph.MemorySize,
			Data:    data,
		})
	}
	return segments, nil
}
