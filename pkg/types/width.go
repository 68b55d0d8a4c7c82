package types

import "fmt"

// IntWidth returns the number of bytes needed for a signed value.
func IntWidth(v int32) int {
	m := int64(v)
	if m < 0 {
		m = -m
	}
	if m < 0x80 {
		return 1
	}
	if m < 0x8000 {
		return 2
	}
	return 4
}

// UintWidth returns the number of bytes needed for an unsigned value.
func UintWidth(v uint32) int {
	if v <= 0xFF {
		return 1
	}
	if v <= 0xFFFF {
		return 2
	}
	return 4
}

// NewInt returns the smallest signed immediate holding v.
func NewInt(v int32) Value {
	switch IntWidth(v) {
	case 1:
		return Int8(v)
	case 2:
		return Int16(v)
	}
	return Int32(v)
}

// NewUint returns the smallest immediate holding the bit pattern of v.
func NewUint(v uint32) Value {
	switch UintWidth(v) {
	case 1:
		return Int8(int8(uint8(v)))
	case 2:
		return Int16(int16(uint16(v)))
	}
	return Int32(int32(v))
}

// IntValue returns the numeric value of an integer immediate.
func IntValue(v Value) (int64, bool) {
	switch n := v.(type) {
	case Int8:
		return int64(n), true
	case Int16:
		return int64(n), true
	case Int32:
		return int64(n), true
	}
	return 0, false
}

// Matches reports whether v may be passed in a slot of kind k.
// Integers fit any integer slot at least as wide; floats only fit Float32;
// references must have the same role and exactly the same width.
func Matches(v Value, k Kind) bool {
	switch k.Role() {
	case RoleInt:
		return v.Role() == RoleInt && v.Width() <= k.Width()
	case RoleFloat:
		return v.Role() == RoleFloat
	case RoleLocal, RoleGlobal, RoleString:
		return v.Role() == k.Role() && v.Width() == k.Width()
	}
	return false
}

// Slack is the number of bytes an integer gains when widened into k.
func Slack(v Value, k Kind) int {
	return k.Width() - v.Width()
}

// Widen converts v to the exact width of slot k, sign-extending integers.
func Widen(v Value, k Kind) (Value, error) {
	if !Matches(v, k) {
		return nil, fmt.Errorf("%s %s does not fit %s", v.Type(), v, k)
	}
	if k.Role() != RoleInt || v.Width() == k.Width() {
		return v, nil
	}
	n, _ := IntValue(v)
	switch k.Width() {
	case 2:
		return Int16(n), nil
	case 4:
		return Int32(n), nil
	}
	return Int8(n), nil
}
