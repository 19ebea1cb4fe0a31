package lines

import "github.com/grapenut/pennhttp/internal/buffer"

// Splitter cuts a stream of chunks into logical lines. Either of '\r', '\n' terminates
// a line, and "\r\n" counts as a single terminator. Only terminated lines are returned,
// an unterminated tail is kept until the next chunk completes it. A '\r' ending the
// chunk is kept too, otherwise a "\n" opening the next chunk would produce a spurious
// empty line.
type Splitter struct {
	pending buffer.Buffer
	held    bool
	// cut is the number of bytes of the kept tail which didn't fit, lastCut is the same
	// for the line returned last.
	cut, lastCut int
}

func New(initialSize, maxSize int) Splitter {
	return Splitter{
		pending: buffer.New(initialSize, maxSize),
	}
}

// Next returns the first complete line out of the kept tail followed by data, and the
// rest of data. If no line is complete, data is kept and ok is false. The returned line
// is valid until the next call.
func (s *Splitter) Next(data []byte) (line, rest []byte, ok bool) {
	if s.held {
		if len(data) == 0 {
			return nil, nil, false
		}

		s.held = false
		if data[0] == '\n' {
			data = data[1:]
		}

		return s.flush(), data, true
	}

	i := terminator(data)
	if i == -1 {
		s.keep(data)
		return nil, nil, false
	}

	if data[i] == '\r' && i+1 == len(data) {
		s.keep(data[:i])
		s.held = true
		return nil, nil, false
	}

	rest = data[i+1:]
	if data[i] == '\r' && rest[0] == '\n' {
		rest = rest[1:]
	}

	if s.pending.Len() == 0 && s.cut == 0 {
		s.lastCut = 0
		return data[:i], rest, true
	}

	s.keep(data[:i])
	return s.flush(), rest, true
}

// Pending returns the number of bytes of the unterminated tail received so far,
// including those which didn't fit.
func (s *Splitter) Pending() int {
	return s.pending.Len() + s.cut
}

// Cut returns the number of bytes which were cut off the line returned last.
func (s *Splitter) Cut() int {
	return s.lastCut
}

// Drain returns the kept unterminated tail and forgets about it. The returned slice is
// valid until the next call to Next.
func (s *Splitter) Drain() []byte {
	s.held = false
	return s.flush()
}

func (s *Splitter) keep(data []byte) {
	before := s.pending.Len()
	if !s.pending.Append(data) {
		s.cut += len(data) - (s.pending.Len() - before)
	}
}

func (s *Splitter) flush() []byte {
	line := s.pending.Bytes()
	s.pending.Clear()
	s.lastCut, s.cut = s.cut, 0
	return line
}

func terminator(data []byte) int {
	for i, c := range data {
		if c == '\r' || c == '\n' {
			return i
		}
	}

	return -1
}
