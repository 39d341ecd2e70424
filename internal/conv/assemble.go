package conv

import (
	"github.com/slate-ml/slate/internal/parallel"
)

// unpackOutput copies each valid row of the working (extended) output into
// the true output buffer at matching batch/channel/row offsets.
func unpackOutput(dst, src []float32, batch, channels, outH, outW, extraOutH, extraOutW int, pcfg parallel.Config) {
	parallel.For2D(batch, channels, func(n, c int) {
		dplane := dst[(n*channels+c)*outH*outW:]
		splane := src[(n*channels+c)*extraOutH*extraOutW:]
		for h := 0; h < outH; h++ {
			copy(dplane[h*outW:][:outW], splane[h*extraOutW:][:outW])
		}
	}, pcfg)
}

// addBias adds bias[c] to every element of channel c's output plane.
func addBias(output, bias []float32, batch, channels, plane int, pcfg parallel.Config) {
	parallel.For2D(batch, channels, func(n, c int) {
		out := output[(n*channels+c)*plane:][:plane:plane]
		b := bias[c]
		for i := range out {
			out[i] += b
		}
	}, pcfg)
}
