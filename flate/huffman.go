package flate

// maxBits is the longest code length used by any alphabet this package
// decodes: 15 for litlen/distance, 7 for the code-length alphabet.
const maxBits = 15

// huffmanTable is a canonical Huffman decoder built from a code-length
// vector per RFC 1951 §3.2.2: symbols of equal length get consecutive codes
// in symbol order, and the code cursor is left-shifted by one between
// lengths. Decoding walks length by length, comparing the bits received so
// far against the first unassigned code at that length -- equivalent to,
// but cheaper than, scanning every symbol's (code, length) pair.
type huffmanTable struct {
	// firstCode[l], firstSymbol[l]: the lowest code of length l, and the
	// index into symbols where that length's symbols begin. Only lengths
	// with count[l] > 0 are meaningful; codeCount[l] gives how many.
	firstCode   [maxBits + 1]uint32
	firstSymbol [maxBits + 1]int
	codeCount   [maxBits + 1]int

	// symbols lists every symbol with length > 0, ordered first by length
	// (ascending) then by symbol index, matching canonical code assignment.
	symbols []uint16

	minLen, maxLen int
}

// buildHuffmanTable builds a canonical decoder from lengths[i] = code length
// of symbol i (0 meaning absent). It validates Kraft's inequality. An
// all-zero vector is accepted and yields an empty table whose decode always
// fails with BadCode.
func buildHuffmanTable(lengths []int) (*huffmanTable, error) {
	var count [maxBits + 1]int
	minLen, maxLen := 0, 0
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		if l < 0 || l > maxBits {
			return nil, corrupt(0, BadTree)
		}
		count[l]++
		if minLen == 0 || l < minLen {
			minLen = l
		}
		if l > maxLen {
			maxLen = l
		}
	}

	h := &huffmanTable{minLen: minLen, maxLen: maxLen}
	if maxLen == 0 {
		// No symbols used: valid only if the stream never decodes from it.
		return h, nil
	}

	// Kraft's inequality: sum(2^-l) <= 1, scaled by 2^maxBits to stay in
	// integers.
	var kraft uint64
	for l := 1; l <= maxBits; l++ {
		kraft += uint64(count[l]) << uint(maxBits-l)
	}
	if kraft > uint64(1)<<uint(maxBits) {
		return nil, corrupt(0, BadTree)
	}

	code := uint32(0)
	symOff := 0
	for l := 1; l <= maxBits; l++ {
		h.firstCode[l] = code
		h.firstSymbol[l] = symOff
		h.codeCount[l] = count[l]
		code += uint32(count[l])
		symOff += count[l]
		code <<= 1
	}

	h.symbols = make([]uint16, symOff)
	next := h.firstSymbol
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		h.symbols[next[l]] = uint16(sym)
		next[l]++
	}
	return h, nil
}

// hasSymbol reports whether sym appears with a nonzero length in h, used to
// validate that a dynamic litlen table encodes EOB (symbol 256).
func (h *huffmanTable) hasSymbol(sym uint16) bool {
	for l := h.minLen; l <= h.maxLen; l++ {
		start := h.firstSymbol[l]
		for _, s := range h.symbols[start : start+h.codeCount[l]] {
			if s == sym {
				return true
			}
		}
	}
	return false
}

// decode reads one Huffman symbol from r. It walks lengths from the
// shortest used (h.minLen) upward, peeking only as many bits as the
// length under test requires and checking whether that MSB-first prefix
// falls within [firstCode, firstCode+count) -- the canonical-code
// equivalent of "does this prefix match any assigned code of this
// length". It consumes bits only once a match is found, at exactly that
// code's length -- never more than the matched code actually needs, so
// the final symbol of a stream can decode correctly even when fewer
// trailing bits remain than the table's longest code, as long as enough
// remain for the code that is actually there.
func (h *huffmanTable) decode(r *bitReader) (uint16, error) {
	if h.maxLen == 0 {
		return 0, corrupt(r.bitpos, BadCode)
	}

	for l := h.minLen; l <= h.maxLen; l++ {
		if h.codeCount[l] == 0 {
			continue
		}
		bits, err := r.peekHuffmanBits(uint(l))
		if err != nil {
			return 0, err
		}
		lo := h.firstCode[l]
		hi := lo + uint32(h.codeCount[l])
		if bits >= lo && bits < hi {
			if _, err := r.readHuffmanBits(uint(l)); err != nil {
				return 0, err
			}
			idx := h.firstSymbol[l] + int(bits-lo)
			return h.symbols[idx], nil
		}
	}
	return 0, corrupt(r.bitpos, BadCode)
}
