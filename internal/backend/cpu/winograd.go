package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/slate-ml/slate/internal/parallel"
)

// Winograd transform matrices for F(2x2,3x3) and F(6x6,3x3), using the
// interpolation points {0, 1, -1, 2, -2, 1/2, -1/2, inf}. The input
// transform is V = Bt d B, the filter transform U = G g Gt, and the inverse
// transform Y = At (U.V) A.

// F(2x2,3x3): 4x4 input tile, 2x2 output tile.
var (
	bt4 = []float32{
		1, 0, -1, 0,
		0, 1, 1, 0,
		0, -1, 1, 0,
		0, 1, 0, -1,
	}
	g4 = []float32{
		1, 0, 0,
		0.5, 0.5, 0.5,
		0.5, -0.5, 0.5,
		0, 0, 1,
	}
	at4 = []float32{
		1, 1, 1, 0,
		0, 1, -1, -1,
	}
)

// F(6x6,3x3): 8x8 input tile, 6x6 output tile.
var (
	bt8 = []float32{
		1, 0, -5.25, 0, 5.25, 0, -1, 0,
		0, 1, 1, -4.25, -4.25, 1, 1, 0,
		0, -1, 1, 4.25, -4.25, -1, 1, 0,
		0, 0.5, 0.25, -2.5, -1.25, 2, 1, 0,
		0, -0.5, 0.25, 2.5, -1.25, -2, 1, 0,
		0, 2, 4, -2.5, -5, 0.5, 1, 0,
		0, -2, 4, 2.5, -5, -0.5, 1, 0,
		0, -1, 0, 5.25, 0, -5.25, 0, 1,
	}
	g8 = []float32{
		1, 0, 0,
		-2.0 / 9, -2.0 / 9, -2.0 / 9,
		-2.0 / 9, 2.0 / 9, -2.0 / 9,
		1.0 / 90, 1.0 / 45, 2.0 / 45,
		1.0 / 90, -1.0 / 45, 2.0 / 45,
		1.0 / 45, 1.0 / 90, 1.0 / 180,
		1.0 / 45, -1.0 / 90, 1.0 / 180,
		0, 0, 1,
	}
	at8 = []float32{
		1, 1, 1, 1, 1, 32, 32, 0,
		0, 1, -1, 2, -2, 16, -16, 0,
		0, 1, 1, 4, 4, 8, 8, 0,
		0, 1, -1, 8, -8, 4, -4, 0,
		0, 1, 1, 16, 16, 2, 2, 0,
		0, 1, -1, 32, -32, 1, -1, 1,
	}
)

func winogradBT(outTile int) []float32 {
	switch outTile {
	case 2:
		return bt4
	case 6:
		return bt8
	default:
		panic(fmt.Sprintf("winograd: no kernels for output tile size %d", outTile))
	}
}

func winogradG(outTile int) []float32 {
	switch outTile {
	case 2:
		return g4
	case 6:
		return g8
	default:
		panic(fmt.Sprintf("winograd: no filter transform for output tile size %d", outTile))
	}
}

func winogradAT(outTile int) []float32 {
	switch outTile {
	case 2:
		return at4
	case 6:
		return at8
	default:
		panic(fmt.Sprintf("winograd: no inverse transform for output tile size %d", outTile))
	}
}

// sandwich computes out = a * d * transpose(a), where a is rows x cols and d
// is cols x cols. Tile sizes are at most 8, so the temporary fits on the
// stack.
func sandwich(out, a []float32, rows, cols int, d []float32) {
	var tmp [64]float32
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var s float32
			for k := 0; k < cols; k++ {
				s += a[i*cols+k] * d[k*cols+j]
			}
			tmp[i*cols+j] = s
		}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < rows; j++ {
			var s float32
			for k := 0; k < cols; k++ {
				s += tmp[i*cols+k] * a[j*cols+k]
			}
			out[i*rows+j] = s
		}
	}
}

// WinogradFilterTransform converts an OIHW 3x3 filter into the transform
// domain, [tileArea, outC, inC] layout.
func (b *Backend) WinogradFilterTransform(filter []float32, inC, outC, outTile int, transformed []float32) {
	g := winogradG(outTile)
	inTile := outTile + 2
	area := inTile * inTile
	stride := outC * inC

	parallel.For2D(outC, inC, func(m, c int) {
		var u [64]float32
		sandwich(u[:], g, inTile, 3, filter[(m*inC+c)*9:][:9:9])
		for s := 0; s < area; s++ {
			transformed[s*stride+m*inC+c] = u[s]
		}
	}, b.pool)
}

// WinogradConv3x3S1 computes the stride-1 3x3 convolution in the Winograd
// domain. outH and outW are the extended (tile-aligned) output extents; the
// input carries the 2-pixel transform halo beyond them.
func (b *Backend) WinogradConv3x3S1(input, transformedFilter []float32,
	batch, inH, inW, inC, outH, outW, outC, outTile int,
	transformedIn, transformedOut, output []float32) {

	bt := winogradBT(outTile)
	at := winogradAT(outTile)
	inTile := outTile + 2
	area := inTile * inTile
	tileH := outH / outTile
	tileW := outW / outTile
	tiles := tileH * tileW

	// Input transform: scatter each tile into [area, batch, inC, tiles].
	parallel.For2D(batch, inC, func(n, c int) {
		plane := input[(n*inC+c)*inH*inW:]
		var d, v [64]float32
		for th := 0; th < tileH; th++ {
			for tw := 0; tw < tileW; tw++ {
				base := th*outTile*inW + tw*outTile
				for i := 0; i < inTile; i++ {
					copy(d[i*inTile:(i+1)*inTile], plane[base+i*inW:][:inTile])
				}
				sandwich(v[:], bt, inTile, inTile, d[:])
				t := th*tileW + tw
				for s := 0; s < area; s++ {
					transformedIn[((s*batch+n)*inC+c)*tiles+t] = v[s]
				}
			}
		}
	}, b.pool)

	// Element-wise tile multiply, one GEMM per (slot, batch):
	// [outC, inC] x [inC, tiles] -> [outC, tiles].
	parallel.For2D(area, batch, func(s, n int) {
		f := blas32.General{
			Rows:   outC,
			Cols:   inC,
			Stride: inC,
			Data:   transformedFilter[s*outC*inC:][: outC*inC : outC*inC],
		}
		in := blas32.General{
			Rows:   inC,
			Cols:   tiles,
			Stride: tiles,
			Data:   transformedIn[(s*batch+n)*inC*tiles:][: inC*tiles : inC*tiles],
		}
		out := blas32.General{
			Rows:   outC,
			Cols:   tiles,
			Stride: tiles,
			Data:   transformedOut[(s*batch+n)*outC*tiles:][: outC*tiles : outC*tiles],
		}
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, f, in, 0, out)
	}, b.pool)

	// Inverse transform back to the spatial domain.
	parallel.For2D(batch, outC, func(n, m int) {
		plane := output[(n*outC+m)*outH*outW:]
		var mixed, y [64]float32
		for th := 0; th < tileH; th++ {
			for tw := 0; tw < tileW; tw++ {
				t := th*tileW + tw
				for s := 0; s < area; s++ {
					mixed[s] = transformedOut[((s*batch+n)*outC+m)*tiles+t]
				}
				sandwich(y[:], at, outTile, inTile, mixed[:])
				for i := 0; i < outTile; i++ {
					copy(plane[(th*outTile+i)*outW+tw*outTile:][:outTile], y[i*outTile:(i+1)*outTile])
				}
			}
		}
	}, b.pool)
}
