package corescope

import (
	"testing"

	"github.com/coredump/corescope/internal/corefixture"
)

func TestDecodePRStatus(t *testing.T) {
	var gregs [27]uint64
	gregs[10] = 0x1000 // rax
	gregs[16] = 0x2000 // rip

	desc := corefixture.BuildPRStatus(77, gregs)
	got, err := decodePRStatus(desc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PID != 77 {
		t.Errorf("pid = %d, want 77", got.PID)
	}
	if got.Registers.RAX != 0x1000 || got.Registers.RIP != 0x2000 {
		t.Errorf("got registers %+v", got.Registers)
	}
}

func TestDecodePRStatus_Truncated(t *testing.T) {
	_, err := decodePRStatus(make([]byte, 50))
	if err == nil {
		t.Fatal("expected error for truncated elf_prstatus")
	}
}
