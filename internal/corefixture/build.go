// Package corefixture synthesizes well-formed (and deliberately
// malformed) ELF64 core dump byte buffers for use by this module's own
// tests. It is the mirror image of internal/elfcore: where that package
// reads the format, this one writes it, grounded on the teacher's ELF
// encoder (internal/elfcore/writer.go and notes.go in bradfitz/livecore).
package corefixture

import (
	"encoding/binary"
)

const (
	ehdrSize = 64
	phdrSize = 56

	ptLoad uint32 = 1
	ptNote uint32 = 4
)

// Segment is one PT_LOAD region to embed in a built core dump. Build
// writes MemSize as p_memsz unchanged; AddSegment sets it to len(Data)
// (p_memsz == p_filesz), and AddSegmentWithMemSize sets it explicitly to
// construct a mismatched segment for boundary testing.
type Segment struct {
	VAddr   uint64
	Data    []byte
	MemSize uint64
}

// Note is one raw (name, type, description) record to pack into the
// PT_NOTE segment.
type Note struct {
	Name string
	Type uint32
	Desc []byte
}

// Builder assembles an in-memory ELF64 core dump from a set of segments
// and notes, laying them out the way a core-dumping kernel would: ELF
// header, program header table, PT_NOTE segment, then PT_LOAD segments
// in order.
type Builder struct {
	Segments []Segment
	Notes    []Note
}

// AddSegment appends a PT_LOAD region with p_memsz == p_filesz.
func (b *Builder) AddSegment(vaddr uint64, data []byte) *Builder {
	b.Segments = append(b.Segments, Segment{VAddr: vaddr, Data: data, MemSize: uint64(len(data))})
	return b
}

// AddSegmentWithMemSize appends a PT_LOAD region whose p_memsz is set
// independently of len(data), to construct a p_filesz != p_memsz boundary
// case.
func (b *Builder) AddSegmentWithMemSize(vaddr uint64, data []byte, memSize uint64) *Builder {
	b.Segments = append(b.Segments, Segment{VAddr: vaddr, Data: data, MemSize: memSize})
	return b
}

// AddNote appends a raw note record.
func (b *Builder) AddNote(name string, typ uint32, desc []byte) *Builder {
	b.Notes = append(b.Notes, Note{Name: name, Type: typ, Desc: desc})
	return b
}

func pad4(n int) int {
	return (4 - n%4) % 4
}

func encodeNote(n Note) []byte {
	nameField := n.Name + "\x00"
	namePad := pad4(len(nameField))
	descPad := pad4(len(n.Desc))

	out := make([]byte, 12+len(nameField)+namePad+len(n.Desc)+descPad)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(nameField)))
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(n.Desc)))
	binary.LittleEndian.PutUint32(out[8:12], n.Type)

	off := 12
	off += copy(out[off:], nameField)
	off += namePad
	off += copy(out[off:], n.Desc)
	off += descPad
	return out
}

// Build lays out and serializes the full core dump.
func (b *Builder) Build() []byte {
	var noteBytes []byte
	for _, n := range b.Notes {
		noteBytes = append(noteBytes, encodeNote(n)...)
	}

	phCount := len(b.Segments)
	if len(b.Notes) > 0 {
		phCount++
	}
	phOff := uint64(ehdrSize)
	dataOff := phOff + uint64(phCount)*phdrSize

	noteOff := dataOff
	segOffs := make([]uint64, len(b.Segments))
	cursor := dataOff
	if len(b.Notes) > 0 {
		cursor += uint64(len(noteBytes))
	}
	for i, s := range b.Segments {
		segOffs[i] = cursor
		cursor += uint64(len(s.Data))
	}

	buf := make([]byte, cursor)
	writeHeader(buf, phOff, uint16(phCount))

	phEntry := phOff
	if len(b.Notes) > 0 {
		writeProgramHeader(buf[phEntry:phEntry+phdrSize], ptNote, noteOff, uint64(len(noteBytes)), uint64(len(noteBytes)), 0, 0, 0)
		phEntry += phdrSize
		copy(buf[noteOff:], noteBytes)
	}
	for i, s := range b.Segments {
		writeProgramHeader(buf[phEntry:phEntry+phdrSize], ptLoad, segOffs[i], uint64(len(s.Data)), s.MemSize, s.VAddr, s.VAddr, 0x1000)
		phEntry += phdrSize
		copy(buf[segOffs[i]:], s.Data)
	}

	return buf
}

func writeHeader(buf []byte, phOff uint64, phCount uint16) {
	copy(buf[0:4], []byte{0x7f, 'E', 'L', 'F'})
	buf[4] = 2 // ELFCLASS64
	buf[5] = 1 // ELFDATA2LSB
	buf[6] = 1 // EV_CURRENT
	buf[7] = 0 // ELFOSABI_NONE
	binary.LittleEndian.PutUint16(buf[16:18], 4)  // ET_CORE
	binary.LittleEndian.PutUint16(buf[18:20], 62) // EM_X86_64
	binary.LittleEndian.PutUint32(buf[20:24], 1)  // EV_CURRENT
	binary.LittleEndian.PutUint64(buf[32:40], phOff)
	binary.LittleEndian.PutUint16(buf[52:54], ehdrSize)
	binary.LittleEndian.PutUint16(buf[54:56], phdrSize)
	binary.LittleEndian.PutUint16(buf[56:58], phCount)
	binary.LittleEndian.PutUint16(buf[58:60], 64) // e_shentsize
}

func writeProgramHeader(buf []byte, typ uint32, offset, filesz, memsz, vaddr, paddr, align uint64) {
	binary.LittleEndian.PutUint32(buf[0:4], typ)
	binary.LittleEndian.PutUint32(buf[4:8], 0) // p_flags
	binary.LittleEndian.PutUint64(buf[8:16], offset)
	binary.LittleEndian.PutUint64(buf[16:24], vaddr)
	binary.LittleEndian.PutUint64(buf[24:32], paddr)
	binary.LittleEndian.PutUint64(buf[32:40], filesz)
	binary.LittleEndian.PutUint64(buf[40:48], memsz)
	binary.LittleEndian.PutUint64(buf[48:56], align)
}

// PutU64 writes v little-endian at data[off:off+8]; a convenience for
// callers building raw note descriptions byte-by-byte.
func PutU64(data []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(data[off:off+8], v)
}

// PutU32 writes v little-endian at data[off:off+4].
func PutU32(data []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(data[off:off+4], v)
}

// BuildPRPSInfo encodes a 136-byte elf_prpsinfo description.
func BuildPRPSInfo(state int8, stateName byte, zombie bool, nice int8, flags uint64, uid, gid, pid, ppid, pgrp, sid int32, fileName, command string) []byte {
	out := make([]byte, 136)
	out[0] = byte(state)
	out[1] = stateName
	if zombie {
		out[2] = 1
	}
	out[3] = byte(nice)
	PutU64(out, 8, flags)
	PutU32(out, 16, uint32(uid))
	PutU32(out, 20, uint32(gid))
	PutU32(out, 24, uint32(pid))
	PutU32(out, 28, uint32(ppid))
	PutU32(out, 32, uint32(pgrp))
	PutU32(out, 36, uint32(sid))
	copy(out[40:56], fileName)
	copy(out[56:136], command)
	return out
}

// BuildPRStatus encodes a 328-byte elf_prstatus description carrying pid
// at its kernel offset and the 27-register on-disk gregset.
func BuildPRStatus(pid int32, gregs [27]uint64) []byte {
	out := make([]byte, 112+27*8)
	PutU32(out, 32, uint32(pid))
	for i, v := range gregs {
		PutU64(out, 112+i*8, v)
	}
	return out
}

// FileEntry is one NT_FILE mapping to encode via BuildFileNote.
type FileEntry struct {
	VMStart, VMEnd, PageIdx uint64
	Path                    string
}

// BuildFileNote encodes an NT_FILE description from entries, in order.
func BuildFileNote(pageSize uint64, entries []FileEntry) []byte {
	out := make([]byte, 16+len(entries)*24)
	PutU64(out, 0, uint64(len(entries)))
	PutU64(out, 8, pageSize)
	for i, e := range entries {
		off := 16 + i*24
		PutU64(out, off, e.VMStart)
		PutU64(out, off+8, e.VMEnd)
		PutU64(out, off+16, e.PageIdx)
	}
	for _, e := range entries {
		out = append(out, []byte(e.Path)...)
		out = append(out, 0)
	}
	return out
}
