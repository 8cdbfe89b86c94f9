package internal

// DirectIndex converts a byte offset within a file into the index of the
// direct block that covers it. Offsets at or past the final block boundary
// belong to the last direct block, so end-of-file stays addressable.
func DirectIndex(pos, blockSize, direct int) int {
	i := pos / blockSize
	if i >= direct {
		i = direct - 1
	}
	return i
}

// BitPosition returns the byte and mask holding bit n of an LSB-first bit vector.
func BitPosition(n int) (int, byte) {
	return n / 8, byte(1) << uint(n%8)
}
