// Package text implements Knight's string primitives: byte-sequence
// construction, the optional strict charset check, the shared container
// length bound, and the small set of conversions (to integer, to boolean,
// to list) that every Knight string supports.
//
// Knight strings are immutable byte sequences, not Unicode text; "length"
// and "index" operate on bytes. This keeps every operator's cost bound to
// the byte length of its operand, with no rune-decoding surprises.
package text

import "fmt"

// KnightEncoding is the byte set `\t \n \r \x20..\x7E` that strict-charset
// mode restricts string contents to.
func KnightEncoding(b byte) bool {
	switch b {
	case '\t', '\n', '\r':
		return true
	}
	return b >= 0x20 && b <= 0x7E
}

// MaxContainerLength is the largest length a String or List may have under
// the container-length-limit compliance check: lengths must fit in 31 bits.
const MaxContainerLength = 1<<31 - 1

// CharsetError reports a byte outside the Knight encoding under strict mode.
type CharsetError struct {
	Byte   byte
	Offset int
}

func (e *CharsetError) Error() string {
	return fmt.Sprintf("byte 0x%02X at offset %d is outside the Knight encoding", e.Byte, e.Offset)
}

// TooLargeError reports a String or List whose length would exceed
// MaxContainerLength.
type TooLargeError struct {
	Length int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("container length %d exceeds the 31-bit limit", e.Length)
}

// Validate checks s against the Knight encoding, returning a *CharsetError
// for the first disallowed byte. Callers only invoke this under
// strict-charset mode; off, any byte sequence is accepted.
func Validate(s string) error {
	for i := 0; i < len(s); i++ {
		if !KnightEncoding(s[i]) {
			return &CharsetError{Byte: s[i], Offset: i}
		}
	}
	return nil
}

// CheckLength enforces the container-length-limit bound. Callers only
// invoke this under check-container-length mode.
func CheckLength(n int) error {
	if n > MaxContainerLength {
		return &TooLargeError{Length: n}
	}
	return nil
}

// ParseInt implements Knight's string-to-integer coercion: optional leading
// whitespace (space, tab, newline, CR), an optional sign, then a maximal run
// of ASCII digits. An empty digit run parses as 0. overflowed reports whether the
// accumulated value has wrapped past the given bit width (used by callers
// that enforce check-overflow).
func ParseInt(s string, bits int) (value int64, overflowed bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	var mag uint64
	start := i
	limit := uint64(1) << uint(bits-1)
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := uint64(s[i] - '0')
		next := mag*10 + d
		if mag > (next-d)/10 || next/10 != mag {
			overflowed = true
		}
		mag = next
		i++
	}
	if i == start {
		return 0, false
	}

	if neg {
		if mag > limit {
			overflowed = true
		}
		return WrapSigned(-int64(mag), bits), overflowed
	}
	if mag >= limit {
		overflowed = true
	}
	return WrapSigned(int64(mag), bits), overflowed
}

// WrapSigned truncates v to a signed integer of the given bit width, wrapping
// on overflow the way Go's own fixed-width integer types do. bits >= 64 is a
// no-op. Shared by string-to-integer parsing and the evaluator's arithmetic
// operators so both honor the same i32-integer / 64-bit width switch.
func WrapSigned(v int64, bits int) int64 {
	if bits >= 64 {
		return v
	}
	mask := int64(1)<<uint(bits) - 1
	v &= mask
	signBit := int64(1) << uint(bits-1)
	if v&signBit != 0 {
		v -= int64(1) << uint(bits)
	}
	return v
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// ToBoolean implements Knight's string-to-boolean coercion: the empty
// string is false, every other string is true.
func ToBoolean(s string) bool {
	return s != ""
}

// Substring returns the byte slice s[start:start+length]. Callers are
// responsible for bounds checking; this is the mechanical slice used by
// both the `G` and `S` operators once indices have been validated.
func Substring(s string, start, length int) string {
	return s[start : start+length]
}

// Compare returns -1, 0, or 1 according to byte-wise lexicographic order,
// matching Go's strings.Compare but named locally so callers in internal/value
// don't need an extra import for a single call site.
func Compare(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
