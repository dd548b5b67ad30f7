package buffer

import (
	"errors"
	"io"
)

// readChunk is the minimum free space offered to each Read call.
const readChunk = 512

// initialCapacity is the capacity allocated by the first append.
const initialCapacity = 4

// Buffer is an append-only byte accumulator. Capacity doubles whenever an
// append does not fit and never shrinks.
type Buffer struct {
	content []byte
}

func New() *Buffer {
	return &Buffer{}
}

// NewWithCapacity avoids the doubling steps when the output size is known.
func NewWithCapacity(capacity int) *Buffer {
	return &Buffer{
		content: make([]byte, 0, capacity),
	}
}

func (b *Buffer) grow(n int) {
	need := len(b.content) + n
	if need <= cap(b.content) {
		return
	}

	size := cap(b.content)
	if size == 0 {
		size = initialCapacity
	}
	for size < need {
		size *= 2
	}

	grown := make([]byte, len(b.content), size)
	copy(grown, b.content)
	b.content = grown
}

func (b *Buffer) Append(p []byte) {
	b.grow(len(p))
	b.content = append(b.content, p...)
}

func (b *Buffer) AppendString(s string) {
	b.grow(len(s))
	b.content = append(b.content, s...)
}

func (b *Buffer) AppendByte(c byte) {
	b.grow(1)
	b.content = append(b.content, c)
}

// Write implements io.Writer and never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

// Bytes aliases the buffer content until the next append.
func (b *Buffer) Bytes() []byte {
	return b.content
}

func (b *Buffer) String() string {
	return string(b.content)
}

func (b *Buffer) Len() int {
	return len(b.content)
}

func (b *Buffer) Cap() int {
	return cap(b.content)
}

// Reset empties the buffer but keeps its capacity.
func (b *Buffer) Reset() {
	b.content = b.content[:0]
}

// WriteTo implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.content)
	return int64(n), err
}

// ReadFrom implements io.ReaderFrom. It reads until EOF, doubling the
// capacity as needed.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		b.grow(readChunk)
		free := b.content[len(b.content):cap(b.content)]

		n, err := r.Read(free)
		if n < 0 || n > len(free) {
			return total, errors.New("buffer: reader returned invalid count")
		}
		b.content = b.content[:len(b.content)+n]
		total += int64(n)

		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
