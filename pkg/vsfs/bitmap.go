package vsfs

// Bitmap is a one-bit-per-item allocation map packed LSB-first: bit index 0
// is the least significant bit of byte 0.
type Bitmap []byte

// Get reports whether bit i is set.
func (b Bitmap) Get(i uint32) bool {
	return b[i/8]>>(i%8)&1 == 1
}

// Set sets bit i.
func (b Bitmap) Set(i uint32) {
	b[i/8] |= 1 << (i % 8)
}

// Clear clears bit i.
func (b Bitmap) Clear(i uint32) {
	b[i/8] &^= 1 << (i % 8)
}
