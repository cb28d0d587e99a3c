package elfcore

import "fmt"

// Elf is a parsed ELF64 container: its program header table and the notes
// flattened out of every PT_NOTE segment, plus the buffer everything in it
// borrows from.
type Elf struct {
	programHeaders []ProgramHeader
	notes          []Note
	data           []byte
}

// Parse walks the ELF64 file header and program header table in data and
// extracts every note from every PT_NOTE segment. It does not interpret
// PT_LOAD segments or note payloads; that's the core-dump decoder's job.
func Parse(data []byte) (*Elf, error) {
	hdr, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	if hdr.phOffset > uint64(len(data)) {
		return nil, fmt.Errorf("program header table offset is out of bounds: %#x", hdr.phOffset)
	}
	phData := data[hdr.phOffset:]
	if uint64(len(phData)) < uint64(hdr.phCount)*phdrSize {
		return nil, fmt.Errorf("Elf64_Phdr: not enough data")
	}

	phs, err := parseProgramHeaders(phData, int(hdr.phCount))
	if err != nil {
		return nil, err
	}

	notes, err := parseNotesFromSegments(phs, data)
	if err != nil {
		return nil, err
	}

	return &Elf{programHeaders: phs, notes: notes, data: data}, nil
}

// IterProgramHeaders calls yield for every program header of the given
// type, in program-header-table order. Iteration stops early if yield
// returns false.
func (e *Elf) IterProgramHeaders(typ uint32, yield func(ProgramHeader) bool) {
	for _, ph := range e.programHeaders {
		if ph.Type != typ {
			continue
		}
		if !yield(ph) {
			return
		}
	}
}

// ProgramHeadersOfType returns every program header of the given type, in
// table order.
func (e *Elf) ProgramHeadersOfType(typ uint32) []ProgramHeader {
	var out []ProgramHeader
	e.IterProgramHeaders(typ, func(ph ProgramHeader) bool {
		out = append(out, ph)
		return true
	})
	return out
}

// ReadSegment returns the borrowed bytes of ph's file range within the
// buffer this Elf was parsed from.
func (e *Elf) ReadSegment(ph ProgramHeader) ([]byte, error) {
	return ph.Data(e.data)
}

// IterNotes calls yield with the description of every note matching
// (name, typ), in encounter order. Iteration stops early if yield returns
// false.
func (e *Elf) IterNotes(name string, typ NoteType, yield func(desc []byte) bool) {
	for _, n := range e.notes {
		if n.Name != name || n.Type != typ {
			continue
		}
		if !yield(n.Desc) {
			return
		}
	}
}

// NotesOfType returns the description of every note matching (name, typ),
// in encounter order.
func (e *Elf) NotesOfType(name string, typ NoteType) [][]byte {
	var out [][]byte
	e.IterNotes(name, typ, func(desc []byte) bool {
		out = append(out, desc)
		return true
	})
	return out
}

// GetNote returns the description of the first note matching (name, typ),
// or false if none match.
func (e *Elf) GetNote(name string, typ NoteType) ([]byte, bool) {
	var found []byte
	ok := false
	e.IterNotes(name, typ, func(desc []byte) bool {
		found = desc
		ok = true
		return false
	})
	return found, ok
}
