package buffer

// Buffer is a bounded byte accumulator. It never grows past maxSize: whatever doesn't
// fit is cut off, so an overflowing write can't spill into anything else.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) Buffer {
	if initialSize > maxSize {
		initialSize = maxSize
	}

	return Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes as much of elements as fits. It returns false if anything was cut off.
func (b *Buffer) Append(elements []byte) (ok bool) {
	free := b.maxSize - len(b.memory)
	if len(elements) > free {
		b.memory = append(b.memory, elements[:free]...)
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// AppendString does the same as Append does.
func (b *Buffer) AppendString(s string) (ok bool) {
	free := b.maxSize - len(b.memory)
	if len(s) > free {
		b.memory = append(b.memory, s[:free]...)
		return false
	}

	b.memory = append(b.memory, s...)
	return true
}

// AppendByte writes a single byte, checking whether it won't exceed the limit.
func (b *Buffer) AppendByte(c byte) (ok bool) {
	if len(b.memory)+1 > b.maxSize {
		return false
	}

	b.memory = append(b.memory, c)
	return true
}

// Fits reports whether n more bytes can be written without cutting them.
func (b *Buffer) Fits(n int) bool {
	return len(b.memory)+n <= b.maxSize
}

func (b *Buffer) Len() int {
	return len(b.memory)
}

// Bytes returns the accumulated data. It stays valid until the next Clear.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

// String returns a copy of the accumulated data.
func (b *Buffer) String() string {
	return string(b.memory)
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
