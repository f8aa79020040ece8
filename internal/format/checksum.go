package format

// Sum8 returns the 8-bit truncating sum of b. The same function seals records
// on write and accepts or rejects candidates on read.
func Sum8(b []byte) uint8 {
	return Sum8Update(0, b)
}

// Sum8Update continues a running Sum8 over another chunk, so a payload can be
// verified through a bounded window without holding it in memory.
func Sum8Update(sum uint8, b []byte) uint8 {
	for _, c := range b {
		sum += c
	}
	return sum
}
