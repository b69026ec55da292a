// Package units converts between integer base units and decimal strings.
// Conversions are exact; no floating point is involved.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// EtherDecimals is the number of decimals of one ether in wei.
const EtherDecimals = 18

// ErrInvalidAmount is returned for malformed decimal amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// FormatEther formats wei as a decimal ether string.
func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}

// ParseEther parses a decimal ether string into wei.
func ParseEther(s string) (*big.Int, error) {
	return ParseUnits(s, EtherDecimals)
}

// Ether returns n whole ether in wei.
func Ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(params.Ether))
}

// FormatUnits formats value, expressed in base units, as a decimal string with
// the given number of decimals. Trailing zeros of the fraction are dropped but
// at least one fractional digit is kept, so 10^18 wei formats as "1.0".
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0.0"
	}
	negative := value.Sign() < 0
	digits := new(big.Int).Abs(value).String()

	d := int(decimals)
	if len(digits) <= d {
		digits = strings.Repeat("0", d-len(digits)+1) + digits
	}
	whole, frac := digits[:len(digits)-d], digits[len(digits)-d:]
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		frac = "0"
	}

	out := whole + "." + frac
	if negative {
		out = "-" + out
	}
	return out
}

// ParseUnits parses a decimal string into base units with the given number of
// decimals. A fraction longer than decimals is rejected rather than rounded.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	in := strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(in, "-") {
		negative = true
		in = in[1:]
	}

	whole, frac, _ := strings.Cut(in, ".")
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, s)
	}

	frac = strings.TrimRight(frac, "0")
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, decimals)
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))

	combined := strings.TrimLeft(whole+frac, "0")
	if combined == "" {
		return new(big.Int), nil
	}
	value, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if negative {
		value.Neg(value)
	}
	return value, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
