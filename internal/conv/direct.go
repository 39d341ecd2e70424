package conv

import (
	"github.com/slate-ml/slate/internal/parallel"
)

// convDirect is the generic fallback kernel: explicit accumulation over
// batch, output channel, output position, input channel, and filter tap,
// parallelized over the batch x output-channel space.
//
// The output must be zero-initialized by the caller (accumulation, not
// assignment). No bounds checks in the inner loops: the tile plan and the
// padding materializer guarantee every accessed input index is in range.
func convDirect(input, filter []float32,
	batch, inH, inW, inC, outH, outW, outC int,
	filterH, filterW, strideH, strideW, dilationH, dilationW int,
	output []float32, pcfg parallel.Config) {

	parallel.For2D(batch, outC, func(n, m int) {
		out := output[(n*outC+m)*outH*outW:][: outH*outW : outH*outW]
		for c := 0; c < inC; c++ {
			in := input[(n*inC+c)*inH*inW:]
			taps := filter[(m*inC+c)*filterH*filterW:][: filterH*filterW : filterH*filterW]
			for h := 0; h < outH; h++ {
				for w := 0; w < outW; w++ {
					var sum float32
					for kh := 0; kh < filterH; kh++ {
						ih := h*strideH + kh*dilationH
						row := in[ih*inW+w*strideW:]
						for kw := 0; kw < filterW; kw++ {
							sum += row[kw*dilationW] * taps[kh*filterW+kw]
						}
					}
					out[h*outW+w] += sum
				}
			}
		}
	}, pcfg)
}
