package elfcore_test

import (
	"testing"

	"github.com/coredump/corescope/internal/corefixture"
	"github.com/coredump/corescope/internal/elfcore"
)

func TestParse_SegmentsAndNotes(t *testing.T) {
	b := &corefixture.Builder{}
	b.AddNote("CORE", uint32(elfcore.NT_PRPSINFO), []byte{0x01, 0x02})
	b.AddSegment(0x400000, []byte("segment-a"))
	b.AddSegment(0x500000, []byte("segment-b"))

	elf, err := elfcore.Parse(b.Build())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loads := elf.ProgramHeadersOfType(elfcore.PT_LOAD)
	if len(loads) != 2 {
		t.Fatalf("got %d PT_LOAD headers, want 2", len(loads))
	}
	if loads[0].MemoryAddress != 0x400000 || loads[1].MemoryAddress != 0x500000 {
		t.Errorf("segments out of order: %+v", loads)
	}

	data, err := elf.ReadSegment(loads[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "segment-a" {
		t.Errorf("got %q", data)
	}

	desc, ok := elf.GetNote("CORE", elfcore.NT_PRPSINFO)
	if !ok {
		t.Fatal("expected NT_PRPSINFO note")
	}
	if len(desc) != 2 || desc[0] != 0x01 || desc[1] != 0x02 {
		t.Errorf("got desc %v", desc)
	}
}

func TestParse_TruncatedHeader(t *testing.T) {
	b := &corefixture.Builder{}
	data := b.Build()[:10]
	if _, err := elfcore.Parse(data); err == nil {
		t.Fatal("expected error for truncated input")
	}
}

func TestParse_EmptyCore(t *testing.T) {
	b := &corefixture.Builder{}
	elf, err := elfcore.Parse(b.Build())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elf.ProgramHeadersOfType(elfcore.PT_LOAD)) != 0 {
		t.Error("expected no PT_LOAD headers")
	}
	if _, ok := elf.GetNote("CORE", elfcore.NT_PRPSINFO); ok {
		t.Error("expected no notes")
	}
}
