package pdf

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"Drain cleaning", 45, "Drain cleaning"},
		{"abcdefghij", 10, "abcdefghij"},
		{"abcdefghijk", 10, "abcdefg..."},
		{"ñandú ñandú ñandú", 8, "ñandú..."},
		{"abcdef", 2, "ab"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, truncate(tc.in, tc.max), tc.in)
	}
}

func TestWrapText_RespetaAnchoYSaltos(t *testing.T) {
	text := "Payment is due within thirty days.\nLate payments accrue interest.\n\n"
	lines := wrapText(text, 20)

	for _, l := range lines {
		assert.LessOrEqual(t, len([]rune(l)), 20, l)
	}
	assert.Equal(t, []string{
		"Payment is due",
		"within thirty days.",
		"Late payments accrue",
		"interest.",
	}, lines)
}

func TestWrapText_PalabraLargaSeCorta(t *testing.T) {
	lines := wrapText(strings.Repeat("x", 25)+" end", 10)
	assert.Equal(t, []string{"xxxxxxxxxx", "xxxxxxxxxx", "xxxxx end"}, lines)
}

func TestWrapText_Vacio(t *testing.T) {
	assert.Empty(t, wrapText("   \n  ", 95))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1234.50", formatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "-$10.00", formatMoney(decimal.NewFromInt(-10)))
}

func TestFitBox_ConservaProporcion(t *testing.T) {
	w, h := fitBox(600, 200, 150, 60)
	assert.InDelta(t, 150, w, 0.001)
	assert.InDelta(t, 50, h, 0.001)

	w, h = fitBox(100, 400, 150, 60)
	assert.InDelta(t, 15, w, 0.001)
	assert.InDelta(t, 60, h, 0.001)
}
