package elfcore

import (
	"fmt"

	"github.com/coredump/corescope/internal/bytecursor"
)

// header is the subset of the ELF64 file header the rest of this package
// consults. Every other field is validated for identity in parseHeader and
// then discarded.
type header struct {
	phOffset uint64
	phCount  uint16
}

// parseHeader decodes and validates the 64-byte ELF64 file header at the
// start of data. Every mismatch against the fixed identity this package
// supports (64-bit, little-endian, ET_CORE, EM_X86_64, ...) is a fatal
// parse error naming the offending field.
func parseHeader(data []byte) (header, error) {
	wrap := func(err error) error { return fmt.Errorf("Elf64_Ehdr: %w", err) }

	c := bytecursor.New(data)
	ident, err := c.Take(16)
	if err != nil {
		return header{}, wrap(err)
	}
	if string(ident[:4]) != "\x7fELF" {
		return header{}, fmt.Errorf("Elf64_Ehdr: invalid e_ident.magic value: got %v, expected %v", ident[:4], []byte("\x7fELF"))
	}
	if err := expectByte("e_ident.class", ident[4], elfClass64); err != nil {
		return header{}, err
	}
	if err := expectByte("e_ident.data", ident[5], elfData2LSB); err != nil {
		return header{}, err
	}
	if err := expectByte("e_ident.version", ident[6], elfVersion); err != nil {
		return header{}, err
	}
	if err := expectByte("e_ident.osabi", ident[7], elfOSABISysV); err != nil {
		return header{}, err
	}

	eType, err := c.ReadU16()
	if err != nil {
		return header{}, wrap(err)
	}
	if err := expectU16("e_type", eType, etCore); err != nil {
		return header{}, err
	}

	eMachine, err := c.ReadU16()
	if err != nil {
		return header{}, wrap(err)
	}
	if err := expectU16("e_machine", eMachine, emX86_64); err != nil {
		return header{}, err
	}

	eVersion, err := c.ReadU32()
	if err != nil {
		return header{}, wrap(err)
	}
	if err := expectU32("e_version", eVersion, elfVersion); err != nil {
		return header{}, err
	}

	if _, err := c.Take(8); err != nil { // e_entry, unused
		return header{}, wrap(err)
	}

	phOffset, err := c.ReadU64()
	if err != nil {
		return header{}, wrap(err)
	}

	if _, err := c.Take(8); err != nil { // e_shoff, unused
		return header{}, wrap(err)
	}
	if _, err := c.Take(4); err != nil { // e_flags, unused
		return header{}, wrap(err)
	}

	eEhsize, err := c.ReadU16()
	if err != nil {
		return header{}, wrap(err)
	}
	if err := expectU16("e_ehsize", eEhsize, ehdrSize); err != nil {
		return header{}, err
	}

	ePhentsize, err := c.ReadU16()
	if err != nil {
		return header{}, wrap(err)
	}
	if err := expectU16("e_phentsize", ePhentsize, phdrSize); err != nil {
		return header{}, err
	}

	ePhnum, err := c.ReadU16()
	if err != nil {
		return header{}, wrap(err)
	}

	eShentsize, err := c.ReadU16()
	if err != nil {
		return header{}, wrap(err)
	}
	if err := expectU16("e_shentsize", eShentsize, shentsizeCore); err != nil {
		return header{}, err
	}

	if _, err := c.Take(2); err != nil { // e_shnum, unused
		return header{}, wrap(err)
	}
	if _, err := c.Take(2); err != nil { // e_shstrndx, unused
		return header{}, wrap(err)
	}

	return header{phOffset: phOffset, phCount: ePhnum}, nil
}

func expectByte(field string, got, want byte) error {
	if got != want {
		return fmt.Errorf("Elf64_Ehdr: invalid %s value: got %#x, expected %#x", field, got, want)
	}
	return nil
}

func expectU16(field string, got, want uint16) error {
	if got != want {
		return fmt.Errorf("Elf64_Ehdr: invalid %s value: got %d, expected %d", field, got, want)
	}
	return nil
}

func expectU32(field string, got, want uint32) error {
	if got != want {
		return fmt.Errorf("Elf64_Ehdr: invalid %s value: got %d, expected %d", field, got, want)
	}
	return nil
}
