package units

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFormatEther(t *testing.T) {
	cases := []struct {
		want string
		wei  *big.Int
	}{
		{"1.0", Ether(1)},
		{"0.5", big.NewInt(500000000000000000)},
		{"0.0", big.NewInt(0)},
		{"0.000000000000000001", big.NewInt(1)},
		{"-2.25", new(big.Int).Neg(big.NewInt(2250000000000000000))},
		{"123.0", Ether(123)},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatEther(c.wei))
	}
	assert.Equal(t, "0.0", FormatEther(nil))
}

func TestParseEther(t *testing.T) {
	cases := []struct {
		in   string
		want *big.Int
	}{
		{"1", Ether(1)},
		{"1.0", Ether(1)},
		{"0.5", big.NewInt(500000000000000000)},
		{".5", big.NewInt(500000000000000000)},
		{"2.", Ether(2)},
		{" 0.000000000000000001 ", big.NewInt(1)},
		{"-1.5", new(big.Int).Neg(big.NewInt(1500000000000000000))},
		{"0", big.NewInt(0)},
		{"1.50000000000000000000", big.NewInt(1500000000000000000)},
	}
	for _, c := range cases {
		got, err := ParseEther(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, 0, c.want.Cmp(got), "%s: got %s", c.in, got)
	}
}

func TestParseUnits_Invalid(t *testing.T) {
	for _, in := range []string{"", ".", "-", "abc", "1.2.3", "1e18", "0x10", "0.0000000000000000001", "1,5"} {
		_, err := ParseEther(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}

	_, err := ParseUnits("1.234", 2)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestUnits_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		decimals := rapid.Uint8Range(0, 36).Draw(t, "decimals")
		raw := rapid.SliceOfN(rapid.Byte(), 0, 40).Draw(t, "value")
		value := new(big.Int).SetBytes(raw)
		if rapid.Bool().Draw(t, "negative") {
			value.Neg(value)
		}

		formatted := FormatUnits(value, decimals)
		parsed, err := ParseUnits(formatted, decimals)
		if err != nil {
			t.Fatalf("parse %q: %v", formatted, err)
		}
		if parsed.Cmp(value) != 0 {
			t.Fatalf("round trip of %s with %d decimals gave %s", value, decimals, parsed)
		}
	})
}
