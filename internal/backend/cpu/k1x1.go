package cpu

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/slate-ml/slate/internal/parallel"
)

// Conv1x1S1 computes a 1x1 stride-1 convolution as one GEMM per batch image:
// output[n] = filter[outC,inC] x input[n][inC,H*W].
func (b *Backend) Conv1x1S1(input, filter []float32, batch, height, width, inC, outC int, output []float32) {
	plane := height * width
	f := blas32.General{
		Rows:   outC,
		Cols:   inC,
		Stride: inC,
		Data:   filter[:outC*inC],
	}

	parallel.For(batch, func(n int) {
		in := blas32.General{
			Rows:   inC,
			Cols:   plane,
			Stride: plane,
			Data:   input[n*inC*plane : (n+1)*inC*plane],
		}
		out := blas32.General{
			Rows:   outC,
			Cols:   plane,
			Stride: plane,
			Data:   output[n*outC*plane : (n+1)*outC*plane],
		}
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, f, in, 0, out)
	}, b.pool)
}
