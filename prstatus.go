package corescope

import (
	"fmt"

	"github.com/coredump/corescope/internal/elfcore"
)

// elf_prstatus layout (336 bytes on disk, matching struct elf_prstatus in
// ctypes.rs / <linux/elfcore.h>):
//
//	elf_prstatus_common (offset 0, 112 bytes): signal info, pending/held
//	  signal masks, pr_pid/pr_ppid/pr_pgrp/pr_sid at offsets 32/36/40/44,
//	  and four timevals we don't decode.
//	pr_reg    elf_gregset_t  offset 112, 216 bytes (27 x uint64)
//	pr_fpvalid int32         offset 328
//
// Only pr_pid and pr_reg are exposed through ThreadInfo; the rest of
// elf_prstatus_common has no representation in the base spec.
const (
	prstatusPrPidOffset = 32
	prstatusPrRegOffset = 112
	prstatusSize        = prstatusPrRegOffset + gregsetSize
)

func extractThreadInfos(elf *elfcore.Elf) ([]ThreadInfo, error) {
	var threads []ThreadInfo
	for _, desc := range elf.NotesOfType("CORE", elfcore.NT_PRSTATUS) {
		t, err := decodePRStatus(desc)
		if err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	return threads, nil
}

func decodePRStatus(desc []byte) (ThreadInfo, error) {
	if len(desc) < prstatusSize {
		return ThreadInfo{}, fmt.Errorf("elf_prstatus: not enough data")
	}

	b := desc[prstatusPrPidOffset : prstatusPrPidOffset+4]
	pid := int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)

	reg := desc[prstatusPrRegOffset : prstatusPrRegOffset+gregsetSize]
	return ThreadInfo{
		PID:       pid,
		Registers: decodeGregset(reg),
	}, nil
}
