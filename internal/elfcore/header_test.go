package elfcore

import (
	"strings"
	"testing"
)

// validHeader returns a minimal well-formed 64-byte ELF64 core header with
// phOffset/phCount set as given.
func validHeader(phOffset uint64, phCount uint16) []byte {
	h := make([]byte, ehdrSize)
	copy(h[0:4], []byte{0x7f, 'E', 'L', 'F'})
	h[4] = elfClass64
	h[5] = elfData2LSB
	h[6] = elfVersion
	h[7] = elfOSABISysV
	putU16(h[16:18], etCore)
	putU16(h[18:20], emX86_64)
	putU32(h[20:24], elfVersion)
	putU64(h[32:40], phOffset)
	putU16(h[52:54], ehdrSize)
	putU16(h[54:56], phdrSize)
	putU16(h[56:58], phCount)
	putU16(h[58:60], shentsizeCore)
	return h
}

func putU16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func putU32(b []byte, v uint32) {
	for i := 0; i < 4; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
func putU64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func TestParseHeader_Valid(t *testing.T) {
	h := validHeader(64, 2)
	got, err := parseHeader(h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.phOffset != 64 || got.phCount != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestParseHeader_Truncated(t *testing.T) {
	h := validHeader(64, 2)
	_, err := parseHeader(h[:10])
	if err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestParseHeader_RejectsBadIdentity(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]byte)
		wantErr string
	}{
		{"bad magic", func(h []byte) { h[0] = 0x00 }, "e_ident.magic"},
		{"32-bit class", func(h []byte) { h[4] = 1 }, "e_ident.class"},
		{"big-endian data", func(h []byte) { h[5] = 2 }, "e_ident.data"},
		{"bad osabi", func(h []byte) { h[7] = 3 }, "e_ident.osabi"},
		{"not ET_CORE", func(h []byte) { putU16(h[16:18], 2) }, "e_type"},
		{"not EM_X86_64", func(h []byte) { putU16(h[18:20], 3) }, "e_machine"},
		{"bad ehsize", func(h []byte) { putU16(h[52:54], 52) }, "e_ehsize"},
		{"bad phentsize", func(h []byte) { putU16(h[54:56], 32) }, "e_phentsize"},
		{"bad shentsize", func(h []byte) { putU16(h[58:60], 40) }, "e_shentsize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHeader(64, 1)
			tt.mutate(h)
			_, err := parseHeader(h)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
