// Package bytecursor provides a bounds-checked cursor over an immutable
// byte buffer. It never allocates and never copies the bytes it returns:
// every Take call borrows a sub-slice of the buffer the Cursor was
// created with.
//
// There is no generic TakeArray: Go generics can't parametrize a
// function over an array's length, only over a fixed concrete type, so a
// single fixed-size-array variant of Take would need unsafe or reflect
// to size itself — neither appears anywhere else in this codebase.
// Callers that need a fixed-size view take the matching number of bytes
// with Take and index into it directly.
package bytecursor

import (
	"encoding/binary"
	"errors"
)

// ErrShortBuffer is returned whenever a read would run past the end of
// the underlying buffer. It is the single error signal this package
// produces; callers that need a more specific message wrap it themselves.
var ErrShortBuffer = errors.New("not enough data")

// Cursor reads fixed-width values and sub-slices from an immutable byte
// buffer, advancing as it goes. The zero value is not usable; use New.
type Cursor struct {
	data []byte
}

// New returns a Cursor positioned at the start of data. data is borrowed,
// not copied, and must outlive every slice the Cursor hands out.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Len returns the number of unread bytes remaining.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Remaining borrows every byte not yet consumed, without advancing (there
// is nothing left to advance past).
func (c *Cursor) Remaining() []byte {
	return c.data
}

// Take borrows the next n bytes and advances the cursor past them.
func (c *Cursor) Take(n int) ([]byte, error) {
	if len(c.data) < n {
		return nil, ErrShortBuffer
	}
	b := c.data[:n:n]
	c.data = c.data[n:]
	return b, nil
}

func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.Take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.Take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.Take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

func (c *Cursor) ReadU64() (uint64, error) {
	b, err := c.Take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *Cursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}
