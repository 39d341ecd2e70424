package cpu

import (
	"github.com/slate-ml/slate/internal/parallel"
)

// Conv3x3S1 computes a 3x3 stride-1 convolution with the filter taps
// unrolled. The input carries a 2-pixel halo beyond outH x outW, so row
// pointers never run past the plane.
func (b *Backend) Conv3x3S1(input, filter []float32, batch, inH, inW, inC, outH, outW, outC int, output []float32) {
	parallel.For2D(batch, outC, func(n, m int) {
		out := output[(n*outC+m)*outH*outW:][: outH*outW : outH*outW]
		for i := range out {
			out[i] = 0
		}
		for c := 0; c < inC; c++ {
			f := filter[(m*inC+c)*9:][:9:9]
			in := input[(n*inC+c)*inH*inW:]
			for h := 0; h < outH; h++ {
				row0 := in[h*inW:]
				row1 := in[(h+1)*inW:]
				row2 := in[(h+2)*inW:]
				dst := out[h*outW:][:outW:outW]
				for w := 0; w < outW; w++ {
					dst[w] += row0[w]*f[0] + row0[w+1]*f[1] + row0[w+2]*f[2] +
						row1[w]*f[3] + row1[w+1]*f[4] + row1[w+2]*f[5] +
						row2[w]*f[6] + row2[w+1]*f[7] + row2[w+2]*f[8]
				}
			}
		}
	}, b.pool)
}

// Conv3x3S2 computes a 3x3 stride-2 convolution. The input covers the full
// receptive field (outExtent-1)*2+3 in both dimensions.
func (b *Backend) Conv3x3S2(input, filter []float32, batch, inH, inW, inC, outH, outW, outC int, output []float32) {
	parallel.For2D(batch, outC, func(n, m int) {
		out := output[(n*outC+m)*outH*outW:][: outH*outW : outH*outW]
		for i := range out {
			out[i] = 0
		}
		for c := 0; c < inC; c++ {
			f := filter[(m*inC+c)*9:][:9:9]
			in := input[(n*inC+c)*inH*inW:]
			for h := 0; h < outH; h++ {
				row0 := in[h*2*inW:]
				row1 := in[(h*2+1)*inW:]
				row2 := in[(h*2+2)*inW:]
				dst := out[h*outW:][:outW:outW]
				for w := 0; w < outW; w++ {
					iw := w * 2
					dst[w] += row0[iw]*f[0] + row0[iw+1]*f[1] + row0[iw+2]*f[2] +
						row1[iw]*f[3] + row1[iw+1]*f[4] + row1[iw+2]*f[5] +
						row2[iw]*f[6] + row2[iw+1]*f[7] + row2[iw+2]*f[8]
				}
			}
		}
	}, b.pool)
}
