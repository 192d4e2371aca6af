package combo

// Endianness controls how ReadBits assembles values. Bit order and byte
// order are independent.
type Endianness uint8

// Endianness flags. DefaultEndianness is big-endian for both bits and bytes.
const (
	BitBigEndian      Endianness = 0x1
	ByteBigEndian     Endianness = 0x2
	DefaultEndianness            = BitBigEndian | ByteBigEndian
)

// InputStream is a cursor over a byte buffer, with bit granularity.
// It is a small value type: assigning it takes a snapshot, and assigning
// the snapshot back restores the position.
type InputStream struct {
	input      []byte
	Index      uint64 // byte position
	BitOffset  uint8  // bits consumed in the current byte
	Endianness Endianness
	Overrun    bool // a read went beyond the available input
	LastChunk  bool // no more input will follow this buffer
}

// NewInputStream creates a stream over a complete input.
func NewInputStream(input []byte) InputStream {
	return InputStream{
		input:      input,
		Endianness: DefaultEndianness,
		LastChunk:  true,
	}
}

// NewChunkStream creates a stream over a chunk of input; more chunks may follow.
func NewChunkStream(chunk []byte, last bool) InputStream {
	s := NewInputStream(chunk)
	s.LastChunk = last
	return s
}

// Len returns the length of the underlying buffer in bytes.
func (s *InputStream) Len() uint64 {
	return uint64(len(s.input))
}

// Pos returns the current position in bits.
func (s *InputStream) Pos() uint64 {
	return s.Index*8 + uint64(s.BitOffset)
}

// Remaining returns the number of unread bits.
func (s *InputStream) Remaining() uint64 {
	total := uint64(len(s.input)) * 8
	if p := s.Pos(); p < total {
		return total - p
	}
	return 0
}

// AtEnd is true if every byte of the buffer has been consumed.
func (s *InputStream) AtEnd() bool {
	return s.Index >= uint64(len(s.input))
}

// Before is true if s is positioned strictly before other.
func (s *InputStream) Before(other *InputStream) bool {
	return s.Pos() < other.Pos()
}

// ReadBits reads n bits (n ≤ 64) and assembles them to a value according
// to the stream's endianness. If signed is set, the result is sign-extended
// from bit n-1. Reading beyond the end of the input sets Overrun, returns 0
// and leaves the position untouched.
func (s *InputStream) ReadBits(n int, signed bool) uint64 {
	if n <= 0 {
		return 0
	}
	if n > 64 {
		n = 64
	}
	if uint64(n) > s.Remaining() {
		s.Overrun = true
		return 0
	}
	var v uint64
	last := (n - 1) / 8
	for i := 0; i < n; i++ {
		k := i / 8
		w := 8
		if k == last {
			w = n - 8*k
		}
		j := i % 8
		sig := j
		if s.Endianness&BitBigEndian != 0 {
			sig = w - 1 - j
		}
		shift := 8 * k
		if s.Endianness&ByteBigEndian != 0 {
			shift = n - 8*k - w
		}
		v |= uint64(s.nextBit()) << uint(shift+sig)
	}
	if signed && n < 64 && v&(1<<uint(n-1)) != 0 {
		v |= ^uint64(0) << uint(n)
	}
	return v
}

func (s *InputStream) nextBit() uint8 {
	b := s.input[s.Index]
	var bit uint8
	if s.Endianness&BitBigEndian != 0 {
		bit = (b >> (7 - s.BitOffset)) & 1
	} else {
		bit = (b >> s.BitOffset) & 1
	}
	s.BitOffset++
	if s.BitOffset == 8 {
		s.BitOffset = 0
		s.Index++
	}
	return bit
}
