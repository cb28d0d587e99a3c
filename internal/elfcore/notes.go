package elfcore

import (
	"bytes"
	"fmt"

	"github.com/coredump/corescope/internal/bytecursor"
)

// Note is a single decoded (name, type, description) record extracted from
// a PT_NOTE segment. Name has already been NUL-trimmed; Desc is a borrowed
// sub-slice of the note segment's bytes.
type Note struct {
	Name string
	Type NoteType
	Desc []byte
}

// parseNotesFromSegments walks every PT_NOTE segment in phs, in table
// order, and flattens their note streams into one ordered list.
func parseNotesFromSegments(phs []ProgramHeader, buf []byte) ([]Note, error) {
	var notes []Note
	for _, ph := range phs {
		if ph.Type != PT_NOTE {
			continue
		}
		data, err := ph.Data(buf)
		if err != nil {
			return nil, err
		}
		for len(data) > 0 {
			note, rest, err := parseNote(data)
			if err != nil {
				return nil, err
			}
			notes = append(notes, note)
			data = rest
		}
	}
	return notes, nil
}

func pad4(n uint32) uint32 {
	return (4 - n%4) % 4
}

// parseNote decodes one framed note record from the front of data and
// returns it along with whatever bytes follow it in the note stream.
func parseNote(data []byte) (Note, []byte, error) {
	wrap := func(err error) error { return fmt.Errorf("note: %w", err) }

	c := bytecursor.New(data)
	nameSize, err := c.ReadU32()
	if err != nil {
		return Note{}, nil, wrap(err)
	}
	descSize, err := c.ReadU32()
	if err != nil {
		return Note{}, nil, wrap(err)
	}
	noteType, err := c.ReadU32()
	if err != nil {
		return Note{}, nil, wrap(err)
	}

	name, err := c.Take(int(nameSize))
	if err != nil {
		return Note{}, nil, wrap(err)
	}
	if _, err := c.Take(int(pad4(nameSize))); err != nil {
		return Note{}, nil, wrap(err)
	}

	desc, err := c.Take(int(descSize))
	if err != nil {
		return Note{}, nil, wrap(err)
	}
	if _, err := c.Take(int(pad4(descSize))); err != nil {
		return Note{}, nil, wrap(err)
	}

	rest := c.Remaining()

	note := Note{
		Name: string(trimCString(name)),
		Type: NoteType(noteType),
		Desc: desc,
	}
	return note, rest, nil
}

// trimCString returns the NUL-terminated prefix of b, not including the
// terminator. If b has no NUL, all of b is returned.
func trimCString(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
