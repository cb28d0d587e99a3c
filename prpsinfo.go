package corescope

import (
	"fmt"

	"github.com/coredump/corescope/internal/elfcore"
)

// elf_prpsinfo layout (136 bytes on disk, matching struct elf_prpsinfo in
// ctypes.rs / <linux/elfcore.h>):
//
//	pr_state    int8     offset 0
//	pr_sname    char     offset 1
//	pr_zomb     int8     offset 2
//	pr_nice     int8     offset 3
//	pr_flag     uint64   offset 8   (padded to 8-byte alignment)
//	pr_uid      uint32   offset 16
//	pr_gid      uint32   offset 20
//	pr_pid      int32    offset 24
//	pr_ppid     int32    offset 28
//	pr_pgrp     int32    offset 32
//	pr_sid      int32    offset 36
//	pr_fname    [16]byte offset 40
//	pr_psargs   [80]byte offset 56
//
// total size 136 bytes.
const prpsinfoSize = 136

func extractProcessInfo(elf *elfcore.Elf) (ProcessInfo, error) {
	desc, ok := elf.GetNote("CORE", elfcore.NT_PRPSINFO)
	if !ok {
		return ProcessInfo{}, fmt.Errorf("missing note: CORE/NT_PRPSINFO")
	}
	return decodePRPSInfo(desc)
}

func decodePRPSInfo(desc []byte) (ProcessInfo, error) {
	if len(desc) < prpsinfoSize {
		return ProcessInfo{}, fmt.Errorf("elf_prpsinfo: not enough data")
	}

	u32 := func(off int) uint32 {
		b := desc[off : off+4]
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
	u64 := func(off int) uint64 {
		b := desc[off : off+8]
		return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
	}

	return ProcessInfo{
		State:     int8(desc[0]),
		StateName: desc[1],
		Zombie:    desc[2] != 0,
		Nice:      int8(desc[3]),
		Flags:     u64(8),
		UID:       int32(u32(16)),
		GID:       int32(u32(20)),
		PID:       int32(u32(24)),
		PPID:      int32(u32(28)),
		PGrp:      int32(u32(32)),
		SID:       int32(u32(36)),
		FileName:  trimNulString(desc[40:56]),
		Command:   trimNulString(desc[56:136]),
	}, nil
}

// trimNulString returns the prefix of b up to (and excluding) its first NUL
// byte, or all of b if it's unterminated.
func trimNulString(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
