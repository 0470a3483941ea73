// Package glyph renders expressions into deterministic bit matrices and
// provides a small 2D convolution over them. It sits at the visualizer
// boundary: the designer writes its output to /dev/draw and the core never
// reads it back.
package glyph

import (
	"formos/internal/sexp"
)

// placeholder stands in for an expression with no leaf symbols, so that
// an empty form still renders.
const placeholder = "∅"

// Bitmap renders expr into a 0/1 matrix. Every extracted leaf symbol
// becomes one column whose bits derive from the hex digits of the symbol's
// content hash; rows reflect hash positions. Height and width are capped
// at 64. Output depends only on expr.
func Bitmap(expr sexp.Value) [][]int {
	leaves := sexp.Symbols(expr)
	if len(leaves) == 0 {
		leaves = []string{placeholder}
	}
	columns := make([][]int, 0, len(leaves))
	maxLen := 0
	for _, sym := range leaves {
		h := sexp.Hash(sexp.Symbol(sym))
		bits := make([]int, 0, len(h))
		for _, c := range h {
			if (c >= '8' && c <= '9') || (c >= 'a' && c <= 'f') {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
		if len(bits) > maxLen {
			maxLen = len(bits)
		}
		columns = append(columns, bits)
	}
	for i, col := range columns {
		for len(col) < maxLen {
			col = append(col, 0)
		}
		columns[i] = col
	}
	height := min(64, maxLen)
	width := min(64, len(columns))
	rows := make([][]int, height)
	for r := 0; r < height; r++ {
		row := make([]int, width)
		for c := 0; c < width; c++ {
			row[c] = columns[c][r]
		}
		rows[r] = row
	}
	return rows
}

// BoxKernel returns the default 3x3 all-ones convolution kernel.
func BoxKernel() [][]int {
	return [][]int{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}
}

// Convolve computes a valid-mode (no padding) integer convolution of
// bitmap with kernel. A nil kernel defaults to BoxKernel. Kernels larger
// than the bitmap yield an empty result.
func Convolve(bitmap [][]int, kernel [][]int) [][]int {
	if len(bitmap) == 0 {
		return nil
	}
	if kernel == nil {
		kernel = BoxKernel()
	}
	kh, kw := len(kernel), len(kernel[0])
	h, w := len(bitmap), len(bitmap[0])
	outH := max(0, h-kh+1)
	outW := max(0, w-kw+1)
	out := make([][]int, outH)
	for i := 0; i < outH; i++ {
		row := make([]int, outW)
		for j := 0; j < outW; j++ {
			acc := 0
			for ki := 0; ki < kh; ki++ {
				for kj := 0; kj < kw; kj++ {
					acc += bitmap[i+ki][j+kj] * kernel[ki][kj]
				}
			}
			row[j] = acc
		}
		out[i] = row
	}
	return out
}
