package answerkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errEmptyCell = errors.New("empty cell")

// Decoder turns base-16 cell text into signed integers.
//
// With BitWidth 0 the text is read as a plain signed base-16 literal.
// With BitWidth n (1..64) the digits are an n-bit two's-complement pattern:
// a set top bit makes the value negative ("FF" at 8 bits is -1). An explicit
// leading '-' is still accepted when the result fits the signed n-bit range.
type Decoder struct {
	BitWidth int
}

// Decode converts one cell.
func (d Decoder) Decode(s string) (int64, error) {
	if d.BitWidth < 0 || d.BitWidth > 64 {
		return 0, fmt.Errorf("unsupported bit width %d", d.BitWidth)
	}

	neg, digits, err := splitHexLiteral(s)
	if err != nil {
		return 0, err
	}

	if d.BitWidth == 0 {
		if neg {
			return strconv.ParseInt("-"+digits, 16, 64)
		}
		return strconv.ParseInt(digits, 16, 64)
	}

	if neg {
		v, err := strconv.ParseInt("-"+digits, 16, 64)
		if err != nil {
			return 0, err
		}
		if d.BitWidth < 64 && v < -(int64(1)<<(d.BitWidth-1)) {
			return 0, fmt.Errorf("-%s does not fit in %d bits", digits, d.BitWidth)
		}
		return v, nil
	}

	u, err := strconv.ParseUint(digits, 16, d.BitWidth)
	if err != nil {
		return 0, err
	}
	return signExtend(u, d.BitWidth), nil
}

// DecodeAll converts every cell, preserving order.
// The first failure is reported with its row index and value.
func (d Decoder) DecodeAll(cells []string) ([]int64, error) {
	values := make([]int64, len(cells))
	for i, cell := range cells {
		v, err := d.Decode(cell)
		if err != nil {
			return nil, decodeError(i, cell, err)
		}
		values[i] = v
	}
	return values, nil
}

// signExtend interprets the low width bits of u as two's complement.
func signExtend(u uint64, width int) int64 {
	if width == 64 {
		return int64(u)
	}
	if u&(uint64(1)<<(width-1)) != 0 {
		return int64(u) - int64(1)<<width
	}
	return int64(u)
}

// splitHexLiteral accepts surrounding whitespace, an optional sign,
// an optional 0x prefix and '_' digit separators.
func splitHexLiteral(s string) (neg bool, digits string, err error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return false, "", errEmptyCell
	}
	switch t[0] {
	case '-':
		neg = true
		t = t[1:]
	case '+':
		t = t[1:]
	}
	if len(t) >= 2 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X') {
		t = t[2:]
	}
	if strings.HasPrefix(t, "_") || strings.HasSuffix(t, "_") || strings.Contains(t, "__") {
		return false, "", fmt.Errorf("misplaced digit separator in %q", s)
	}
	t = strings.ReplaceAll(t, "_", "")
	if t == "" {
		return false, "", fmt.Errorf("no hex digits in %q", s)
	}
	for _, r := range t {
		if !isHexDigit(r) {
			return false, "", fmt.Errorf("invalid hex digit %q in %q", r, s)
		}
	}
	return neg, t, nil
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}
