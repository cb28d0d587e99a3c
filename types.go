package corescope

import "fmt"

// Segment is a loaded memory region recovered from a PT_LOAD program
// header. Data is a borrowed sub-range of the core dump's input buffer;
// it is never copied or zero-extended (Parse rejects any PT_LOAD segment
// whose file size differs from its memory size).
type Segment struct {
	VMStart uint64
	VMEnd   uint64
	Data    []byte
}

// String renders the segment without its (possibly huge) payload.
func (s Segment) String() string {
	return fmt.Sprintf("Segment{vm_start: %#x, vm_end: %#x, data: …(%d bytes)}", s.VMStart, s.VMEnd, len(s.Data))
}

// ProcessInfo is decoded from the core dump's NT_PRPSINFO note.
type ProcessInfo struct {
	State     int8
	StateName byte // single byte reinterpreted as a character
	Zombie    bool
	Nice      int8
	Flags     uint64
	UID       int32
	GID       int32
	PID       int32
	PPID      int32
	PGrp      int32
	SID       int32
	FileName  []byte // NUL-terminated prefix of a fixed 16-byte field
	Command   []byte // NUL-terminated prefix of a fixed 80-byte field
}

func (p ProcessInfo) String() string {
	return fmt.Sprintf(
		"ProcessInfo{state: %d, state_name: %q, zombie: %v, nice: %d, flags: %#x, uid: %d, gid: %d, pid: %d, ppid: %d, pgrp: %d, sid: %d, file_name: %q, command: %q}",
		p.State, string(p.StateName), p.Zombie, p.Nice, p.Flags, p.UID, p.GID, p.PID, p.PPID, p.PGrp, p.SID, p.FileName, p.Command,
	)
}

// ThreadInfo is decoded from one NT_PRSTATUS note.
type ThreadInfo struct {
	PID       int32
	Registers Registers
}

func (t ThreadInfo) String() string {
	return fmt.Sprintf("ThreadInfo{pid: %d, registers: %s}", t.PID, t.Registers)
}

// FileMapping is one entry of the core dump's NT_FILE note.
type FileMapping struct {
	VMStart    uint64
	VMEnd      uint64
	FileOffset uint64
	FilePath   []byte // NUL-terminated path extracted from the note's path block
}

func (m FileMapping) String() string {
	return fmt.Sprintf("FileMapping{vm_start: %#x, vm_end: %#x, file_offset: %#x, file_path: %q}", m.VMStart, m.VMEnd, m.FileOffset, m.FilePath)
}
