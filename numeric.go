package jsnpg

import "strconv"

// maxSigDigits is the number of mantissa digits tracked as an unsigned
// 64-bit accumulator before further digits only adjust the decimal
// exponent.
const maxSigDigits = 19

const maxExponentMagnitude = 1000

// scanNumber scans the JSON number grammar starting at the cursor's read
// head (which must be positioned on '-' or a digit) and returns either an
// Integer event or a Real event. It never backs up: every digit consumed
// is consumed for good, keeping the scan single-pass.
//
// A fast binary-exact conversion falling back to a correctly-rounded
// decimal-to-double routine is exactly what strconv.ParseFloat already
// does internally (an Eisel-Lemire fast path with a big.Float fallback) -
// re-implementing it by hand would just be a slower, less-tested copy of
// the same algorithm the standard library ships, so the conversion step
// below defers to strconv directly. See DESIGN.md for why no pack
// dependency is a better fit than strconv here.
func (c *cursor) scanNumber() (Event, error) {
	startPos := c.tell()

	negative := false
	if c.peek() == '-' {
		negative = true
		c.take()
	}

	var sum uint64
	sigDigits := 0
	forceDouble := false

	first := c.peek()
	if first < '0' || first > '9' {
		return Event{}, newErr(ErrNumber, startPos, "expected digit")
	}
	c.take()
	d := first - '0'
	sum = uint64(d)
	if d != 0 {
		sigDigits++
	}

	if d != 0 {
		for {
			p := c.peek()
			if p < '0' || p > '9' {
				break
			}
			c.take()
			digit := uint64(p - '0')
			if sigDigits < maxSigDigits {
				sum = sum*10 + digit
			}
			// Excess digits are not accumulated, but they still count
			// toward sigDigits, which sends the number down the strconv
			// path below.
			sigDigits++
		}
	} else {
		// Leading zero: grammar permits "0" alone, never "01...".
	}

	var exponent int64

	if c.peek() == '.' {
		c.take()
		forceDouble = true
		p := c.peek()
		if p < '0' || p > '9' {
			return Event{}, newErr(ErrNumber, c.tell(), "expected digit after '.'")
		}
		for {
			p = c.peek()
			if p < '0' || p > '9' {
				break
			}
			c.take()
			digit := uint64(p - '0')
			if sigDigits < maxSigDigits {
				sum = sum*10 + digit
				exponent--
				if sum != 0 {
					sigDigits++
				}
			}
		}
	}

	if p := c.peek(); p == 'e' || p == 'E' {
		c.take()
		forceDouble = true
		expSign := int64(1)
		switch c.peek() {
		case '-':
			c.take()
			expSign = -1
		case '+':
			c.take()
		}
		p := c.peek()
		if p < '0' || p > '9' {
			return Event{}, newErr(ErrNumber, c.tell(), "expected digit in exponent")
		}
		var exp int64
		for {
			p = c.peek()
			if p < '0' || p > '9' {
				break
			}
			c.take()
			exp = exp*10 + int64(p-'0')
			if exp > maxExponentMagnitude {
				return Event{}, newErr(ErrNumber, c.tell(), "exponent out of range")
			}
		}
		exponent += expSign * exp
	}

	overflowsInt64 := false
	if negative {
		overflowsInt64 = sum > 1+uint64(maxInt64)
	} else {
		overflowsInt64 = sum > uint64(maxInt64)
	}

	if forceDouble || sigDigits > maxSigDigits || overflowsInt64 {
		span := c.buf[startPos:c.tell()]
		f, err := strconv.ParseFloat(string(span), 64)
		if err != nil {
			return Event{}, newErr(ErrNumber, startPos, "invalid number literal")
		}
		return Event{Type: TypeReal, Pos: startPos, Real: f}, nil
	}

	var v int64
	if negative {
		v = -int64(sum)
	} else {
		v = int64(sum)
	}
	return Event{Type: TypeInteger, Pos: startPos, Integer: v}, nil
}

const maxInt64 = 1<<63 - 1

// formatInteger renders an int64 the way the shared numeric formatters
// do: decimal, leading '-' when negative, no leading zeros.
func formatInteger(dst []byte, v int64) []byte {
	return strconv.AppendInt(dst, v, 10)
}

// formatReal renders a float64 via the shortest-round-trip algorithm
// (strconv's 'g'/-1 precision mode). A bare "2" is syntactically a JSON
// integer, so whenever the shortest form has neither '.' nor 'e' we
// append ".0" to keep it parsing back as TypeReal.
func formatReal(dst []byte, v float64) []byte {
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'g', -1, 64)
	for _, b := range dst[start:] {
		if b == '.' || b == 'e' || b == 'E' || b == 'n' || b == 'i' {
			return dst
		}
	}
	return append(dst, '.', '0')
}
