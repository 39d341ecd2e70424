package conv

import (
	"github.com/slate-ml/slate/internal/parallel"
)

// materializePadding zero-fills dst at the extended extent and copies each
// original input row into its offset position. dst may contain stale arena
// content and is cleared plane by plane.
func materializePadding(dst, src []float32, batch, channels, inH, inW int, p tilePlan, pcfg parallel.Config) {
	extH, extW := p.extraInH, p.extraInW
	parallel.For2D(batch, channels, func(n, c int) {
		dplane := dst[(n*channels+c)*extH*extW:][: extH*extW : extH*extW]
		for i := range dplane {
			dplane[i] = 0
		}
		splane := src[(n*channels+c)*inH*inW:]
		for h := 0; h < inH; h++ {
			copy(dplane[(h+p.padTop)*extW+p.padLeft:][:inW], splane[h*inW:][:inW])
		}
	}, pcfg)
}
