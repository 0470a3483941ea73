package glyph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formos/internal/sexp"
)

func parse(t *testing.T, src string) sexp.Value {
	t.Helper()
	expr, err := sexp.Parse(src)
	require.NoError(t, err)
	return expr
}

func TestBitmap_Deterministic(t *testing.T) {
	expr := parse(t, `(widget (button ok) (textbox name))`)
	a := Bitmap(expr)
	b := Bitmap(expr)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("bitmap not deterministic:\n%s", diff)
	}
}

func TestBitmap_Dimensions(t *testing.T) {
	expr := parse(t, `(widget (button ok) (textbox name))`)
	bitmap := Bitmap(expr)

	// One column per extracted symbol, one row per hash hex digit.
	require.Len(t, bitmap, 32)
	for _, row := range bitmap {
		assert.Len(t, row, 5)
		for _, bit := range row {
			assert.Contains(t, []int{0, 1}, bit)
		}
	}
}

func TestBitmap_EmptyExpressionRendersPlaceholder(t *testing.T) {
	bitmap := Bitmap(sexp.List{})
	require.NotEmpty(t, bitmap)
	assert.Len(t, bitmap[0], 1)
}

func TestBitmap_WidthCap(t *testing.T) {
	big := make(sexp.List, 0, 100)
	for i := 0; i < 100; i++ {
		big = append(big, sexp.Symbol(string(rune('a'+i%26))+string(rune('0'+i/26))))
	}
	bitmap := Bitmap(big)
	require.NotEmpty(t, bitmap)
	assert.LessOrEqual(t, len(bitmap[0]), 64)
	assert.LessOrEqual(t, len(bitmap), 64)
}

func TestConvolve_BoxKernel(t *testing.T) {
	ones := [][]int{
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
	}
	out := Convolve(ones, nil)
	want := [][]int{{9, 9}, {9, 9}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("convolution mismatch:\n%s", diff)
	}
}

func TestConvolve_CustomKernel(t *testing.T) {
	bitmap := [][]int{
		{1, 0, 1},
		{0, 1, 0},
		{1, 0, 1},
	}
	identity := [][]int{{1}}
	if diff := cmp.Diff(bitmap, Convolve(bitmap, identity)); diff != "" {
		t.Errorf("identity kernel altered the bitmap:\n%s", diff)
	}
}

func TestConvolve_Degenerate(t *testing.T) {
	assert.Nil(t, Convolve(nil, nil))
	assert.Empty(t, Convolve([][]int{{1, 1}}, nil), "kernel larger than bitmap")
}
