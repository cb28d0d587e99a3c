package elfcore

import (
	"reflect"
	"testing"
)

func encodeNote(name string, typ NoteType, desc []byte) []byte {
	nameField := append([]byte(name), 0)
	namePad := make([]byte, pad4(uint32(len(nameField))))
	descPad := make([]byte, pad4(uint32(len(desc))))

	hdr := make([]byte, 12)
	putU32(hdr[0:4], uint32(len(nameField)))
	putU32(hdr[4:8], uint32(len(desc)))
	putU32(hdr[8:12], uint32(typ))

	var out []byte
	out = append(out, hdr...)
	out = append(out, nameField...)
	out = append(out, namePad...)
	out = append(out, desc...)
	out = append(out, descPad...)
	return out
}

func TestParseNote_RoundTrip(t *testing.T) {
	raw := encodeNote("CORE", NT_PRPSINFO, []byte{1, 2, 3})
	note, rest, err := parseNote(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining bytes, got %d", len(rest))
	}
	if note.Name != "CORE" || note.Type != NT_PRPSINFO || !reflect.DeepEqual(note.Desc, []byte{1, 2, 3}) {
		t.Errorf("got %+v", note)
	}
}

func TestParseNote_MultipleInStream(t *testing.T) {
	var stream []byte
	stream = append(stream, encodeNote("CORE", NT_PRSTATUS, []byte{0xaa})...)
	stream = append(stream, encodeNote("CORE", NT_PRPSINFO, []byte{0xbb, 0xcc})...)

	notes, err := parseNotesFromSegments([]ProgramHeader{{Type: PT_NOTE, FileOffset: 0, FileSize: uint64(len(stream))}}, stream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(notes))
	}
	if notes[0].Type != NT_PRSTATUS || notes[1].Type != NT_PRPSINFO {
		t.Errorf("notes out of order: %+v", notes)
	}
}

func TestParseNote_Truncated(t *testing.T) {
	raw := encodeNote("CORE", NT_FILE, []byte{1, 2, 3, 4})
	_, _, err := parseNote(raw[:len(raw)-2])
	if err == nil {
		t.Fatal("expected error for truncated note")
	}
}

func TestPad4(t *testing.T) {
	cases := map[uint32]uint32{0: 0, 1: 3, 2: 2, 3: 1, 4: 0, 5: 3}
	for n, want := range cases {
		if got := pad4(n); got != want {
			t.Errorf("pad4(%d) = %d, want %d", n, got, want)
		}
	}
}
