package match

import "fmt"

// Cursor is a bidirectional position in an input.
//
// Match recovery walks backwards from a known match end, so a cursor must be
// able to step in both directions and jump to any offset it has already
// passed.
type Cursor interface {
	// Next returns the byte at Offset and advances past it.
	Next() byte

	// Prev steps back one byte and returns the byte now at Offset.
	Prev() byte

	// Offset returns the number of bytes before the cursor.
	Offset() int

	// Move repositions the cursor at offset.
	Move(offset int)

	// Finished reports whether no byte remains after the cursor.
	Finished() bool

	// FinishedWithin reports whether fewer than n bytes remain.
	FinishedWithin(n int) bool

	// Slice returns the input between start and end.
	Slice(start, end int) []byte
}

// BytesCursor is a Cursor over an in-memory byte slice.
type BytesCursor struct {
	data []byte
	pos  int
}

// NewBytesCursor returns a cursor at the start of data. The slice is not
// copied.
func NewBytesCursor(data []byte) *BytesCursor {
	return &BytesCursor{data: data}
}

// Next implements Cursor.
func (c *BytesCursor) Next() byte {
	b := c.data[c.pos]
	c.pos++
	return b
}

// Prev implements Cursor.
func (c *BytesCursor) Prev() byte {
	c.pos--
	return c.data[c.pos]
}

// Offset implements Cursor.
func (c *BytesCursor) Offset() int {
	return c.pos
}

// Move implements Cursor. It panics if offset lies outside the input.
func (c *BytesCursor) Move(offset int) {
	if offset < 0 || offset > len(c.data) {
		panic(fmt.Sprintf("match: cursor offset %d out of range [0, %d]", offset, len(c.data)))
	}
	c.pos = offset
}

// Finished implements Cursor.
func (c *BytesCursor) Finished() bool {
	return c.pos >= len(c.data)
}

// FinishedWithin implements Cursor.
func (c *BytesCursor) FinishedWithin(n int) bool {
	return len(c.data)-c.pos < n
}

// Slice implements Cursor.
func (c *BytesCursor) Slice(start, end int) []byte {
	return c.data[start:end]
}

// Len returns the input length.
func (c *BytesCursor) Len() int {
	return len(c.data)
}
