package jsnpg

// UTF-8 validation, encoding and surrogate-pair handling, using explicit
// bit-twiddling over the lead/continuation byte scheme rather than the
// standard library's unicode/utf8 (which does not expose "validate
// exactly this many bytes starting here" with the same error
// granularity the parser needs: overlong vs surrogate vs out-of-range
// are distinguished here even though unicode/utf8 lumps them into a
// single RuneError).

const (
	surrogateMin    = 0xD800
	surrogateMax    = 0xDFFF
	surrogateOffset = 0x10000
	codepointMax    = 0x10FFFF

	oneByteMax   = 0x7F
	twoByteMax   = 0x7FF
	threeByteMax = 0xFFFF

	continuationByte = 0x80
	twoByteLeader    = 0xC0
	threeByteLeader  = 0xE0
	fourByteLeader   = 0xF0
)

func isSurrogate(cp rune) bool {
	return cp >= surrogateMin && cp <= surrogateMax
}

func isHighSurrogate(cp rune) bool {
	return cp >= surrogateMin && cp <= 0xDBFF
}

func isLowSurrogate(cp rune) bool {
	return cp >= 0xDC00 && cp <= surrogateMax
}

func isValidCodepoint(cp rune) bool {
	return cp >= 0 && cp <= codepointMax && !isSurrogate(cp)
}

// combineSurrogates assembles a supplementary-plane codepoint from a high
// and low surrogate pair.
func combineSurrogates(hi, lo rune) rune {
	return ((hi - surrogateMin) << 10) | (lo - 0xDC00) + surrogateOffset
}

// utf8Encode appends the 1-4 byte UTF-8 encoding of cp to dst and returns
// the extended slice. cp must already be valid (isValidCodepoint); the
// caller is expected to have checked that, mirroring utf8_encode's
// "should be valid before calling" contract.
func utf8Encode(dst []byte, cp rune) []byte {
	switch {
	case cp <= oneByteMax:
		return append(dst, byte(cp))
	case cp <= twoByteMax:
		return append(dst,
			byte(twoByteLeader|(cp>>6)&0x1F),
			byte(continuationByte|cp&0x3F),
		)
	case cp <= threeByteMax:
		return append(dst,
			byte(threeByteLeader|(cp>>12)&0x0F),
			byte(continuationByte|(cp>>6)&0x3F),
			byte(continuationByte|cp&0x3F),
		)
	default:
		return append(dst,
			byte(fourByteLeader|(cp>>18)&0x07),
			byte(continuationByte|(cp>>12)&0x3F),
			byte(continuationByte|(cp>>6)&0x3F),
			byte(continuationByte|cp&0x3F),
		)
	}
}

// utf8ValidateSequence inspects the lead byte at bytes[0] and validates a
// full 1-4 byte UTF-8 sequence, rejecting overlong encodings, surrogates,
// and codepoints above U+10FFFF. It returns the sequence length, or -1 if
// invalid or if available is too short for the sequence the lead byte
// implies.
func utf8ValidateSequence(bytes []byte, available int) int {
	if available < 1 {
		return -1
	}
	b := bytes[0]

	var codepoint rune
	var floor rune
	var cont int

	switch {
	case b <= oneByteMax:
		return 1
	case b&0xE0 == twoByteLeader:
		codepoint = rune(b & 0x1F)
		floor = oneByteMax + 1
		cont = 1
	case b&0xF0 == threeByteLeader:
		codepoint = rune(b & 0x0F)
		floor = twoByteMax + 1
		cont = 2
	case b&0xF8 == fourByteLeader:
		codepoint = rune(b & 0x07)
		floor = threeByteMax + 1
		cont = 3
	default:
		return -1
	}

	if available < 1+cont {
		return -1
	}

	for i := 1; i <= cont; i++ {
		c := bytes[i]
		if c&0xC0 != continuationByte {
			return -1
		}
		codepoint = (codepoint << 6) | rune(c&0x3F)
	}

	if codepoint < floor || !isValidCodepoint(codepoint) {
		return -1
	}
	return 1 + cont
}

// detectBOM returns 3 if bytes begins with the UTF-8 byte order mark
// (EF BB BF), else 0.
func detectBOM(bytes []byte) int {
	if len(bytes) >= 3 && bytes[0] == 0xEF && bytes[1] == 0xBB && bytes[2] == 0xBF {
		return 3
	}
	return 0
}
