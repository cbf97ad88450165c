package persistence

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitsOf(t *testing.T) {
	tests := []struct {
		in   string
		want Digits
	}{
		{in: "0", want: Digits{0}},
		{in: "7", want: Digits{7}},
		{in: "256", want: Digits{2, 5, 6}},
		{in: "1000", want: Digits{1, 0, 0, 0}},
		{in: "18446744073709551616", want: Digits{1, 8, 4, 4, 6, 7, 4, 4, 0, 7, 3, 7, 0, 9, 5, 5, 1, 6, 1, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := DigitsOf(mustParse(t, tt.in))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
			assert.Equal(t, tt.in, got.Int().String())
		})
	}
}

func TestDigits_LengthMatchesDecimalWidth(t *testing.T) {
	n := new(big.Int).Exp(big.NewInt(10), big.NewInt(500), nil)
	assert.Len(t, DigitsOf(n), 501)
}

func TestDigits_HasZero(t *testing.T) {
	assert.False(t, Digits{}.HasZero())
	assert.False(t, Digits{1, 2, 3}.HasZero())
	assert.True(t, Digits{1, 0, 3}.HasZero())
	assert.True(t, Digits{0}.HasZero())
}

func TestDigits_KeyDistinguishesOrder(t *testing.T) {
	assert.NotEqual(t, Digits{2, 3}.Key(), Digits{3, 2}.Key())
	assert.Equal(t, Digits{2, 3}.Key(), DigitsOf(big.NewInt(23)).Key())
}

func TestDigits_Int_Empty(t *testing.T) {
	assert.Equal(t, "0", Digits{}.Int().String())
}

func TestDigits_OutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { _ = Digits{1, 10}.String() })
	assert.Panics(t, func() { FoldProduct(Digits{3, 11}) })
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "zero", in: "0", want: "0"},
		{name: "leading zeros", in: "007", want: "7"},
		{name: "record", in: "277777788888899", want: "277777788888899"},
		{name: "huge", in: "9" + strings.Repeat("8", 5000), want: "9" + strings.Repeat("8", 5000)},
		{name: "empty", in: "", wantErr: true},
		{name: "negative", in: "-5", wantErr: true},
		{name: "plus sign", in: "+5", wantErr: true},
		{name: "hex prefix", in: "0x10", wantErr: true},
		{name: "space", in: "1 2", wantErr: true},
		{name: "underscore", in: "1_000", wantErr: true},
		{name: "decimal point", in: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumber(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidNumber))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
