package corescope

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// Registers is an x86-64 general-purpose register snapshot, normalized to
// the semantic field order (as opposed to the kernel's on-disk
// elf_gregset_t order; see decodeGregset).
type Registers struct {
	RAX uint64
	RBX uint64
	RCX uint64
	RDX uint64
	RBP uint64
	RSP uint64
	RSI uint64
	RDI uint64
	R8  uint64
	R9  uint64
	R10 uint64
	R11 uint64
	R12 uint64
	R13 uint64
	R14 uint64
	R15 uint64

	RIP    uint64
	RFlags uint64

	CS uint64
	DS uint64
	SS uint64
	ES uint64
	FS uint64
	GS uint64

	FSBase uint64
	GSBase uint64
}

func (r Registers) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Registers{rip: %#016x, rsp: %#016x, rflags: %#016x}", r.RIP, r.RSP, r.RFlags)
	return b.String()
}

// elf_gregset_t is 27 little-endian u64 values; decodeGregset lists them
// by on-disk index. This is the exact order internal/proc/threads.go (the teacher's
// register writer) encodes into a NT_PRSTATUS note; decodeGregset is its
// inverse.
const gregsetSize = 27 * 8

// decodeGregset maps the 216-byte on-disk elf_gregset_t at the front of
// reg onto the semantic Registers fields. orig_rax (index 15) carries no
// semantic register and is discarded, matching the base spec.
func decodeGregset(reg []byte) Registers {
	u64 := func(i int) uint64 {
		off := i * 8
		b := reg[off : off+8]
		return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
	}

	return Registers{
		R15:    u64(0),
		R14:    u64(1),
		R13:    u64(2),
		R12:    u64(3),
		RBP:    u64(4),
		RBX:    u64(5),
		R11:    u64(6),
		R10:    u64(7),
		R9:     u64(8),
		R8:     u64(9),
		RAX:    u64(10),
		RCX:    u64(11),
		RDX:    u64(12),
		RSI:    u64(13),
		RDI:    u64(14),
		// index 15: orig_rax, discarded
		RIP:    u64(16),
		CS:     u64(17),
		RFlags: u64(18),
		RSP:    u64(19),
		SS:     u64(20),
		FSBase: u64(21),
		GSBase: u64(22),
		DS:     u64(23),
		ES:     u64(24),
		FS:     u64(25),
		GS:     u64(26),
	}
}

// ToPtraceRegsAmd64 converts r to the struct golang.org/x/sys/unix uses for
// PTRACE_GETREGS/PTRACE_SETREGS on amd64. This lets a live-process tool
// built on corescope (a debugger restoring register state, for instance)
// hand a decoded thread's registers straight to unix.PtraceSetRegsAmd64
// without re-deriving the field order; corescope itself never calls
// ptrace.
func (r Registers) ToPtraceRegsAmd64() unix.PtraceRegsAmd64 {
	return unix.PtraceRegsAmd64{
		R15:      r.R15,
		R14:      r.R14,
		R13:      r.R13,
		R12:      r.R12,
		Rbp:      r.RBP,
		Rbx:      r.RBX,
		R11:      r.R11,
		R10:      r.R10,
		R9:       r.R9,
		R8:       r.R8,
		Rax:      r.RAX,
		Rcx:      r.RCX,
		Rdx:      r.RDX,
		Rsi:      r.RSI,
		Rdi:      r.RDI,
		Orig_rax: 0,
		Rip:      r.RIP,
		Cs:       r.CS,
		Eflags:   r.RFlags,
		Rsp:      r.RSP,
		Ss:       r.SS,
		Fs_base:  r.FSBase,
		Gs_base:  r.GSBase,
		Ds:       r.DS,
		Es:       r.ES,
		Fs:       r.FS,
		Gs:       r.GS,
	}
}
