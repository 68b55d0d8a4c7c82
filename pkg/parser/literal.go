package parser

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/psilLang/clara/pkg/types"
)

// ParseLiteral converts a numeric literal to the smallest immediate that holds
// it exactly. A '.' forces float32; otherwise signed, unsigned and float parses
// are tried in that order. Integer literals accept Go base prefixes. An integer
// that does not fit 32 bits is rejected rather than rounded to a float.
func ParseLiteral(s string) (types.Value, error) {
	if s == "" {
		return nil, &TokenError{Token: s, Err: ErrInvalidToken}
	}

	if !strings.Contains(s, ".") {
		n, serr := strconv.ParseInt(s, 0, 32)
		if serr == nil {
			return types.NewInt(int32(n)), nil
		}
		u, uerr := strconv.ParseUint(s, 0, 32)
		if uerr == nil {
			return types.NewUint(uint32(u)), nil
		}
		if errors.Is(serr, strconv.ErrRange) || errors.Is(uerr, strconv.ErrRange) {
			return nil, &TokenError{Token: s, Err: errors.Wrap(ErrInvalidToken, "integer out of 32-bit range")}
		}
	}

	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return nil, &TokenError{Token: s, Err: ErrInvalidToken}
	}
	return types.Float(f), nil
}
