package conv

import (
	"testing"

	"github.com/slate-ml/slate/internal/parallel"
)

func TestMaterializePadding_OddSplit(t *testing.T) {
	// 2x2 input, total padding 3 in both dimensions: 1 leading, 2 trailing.
	src := []float32{1, 2, 3, 4}
	plan := planTiling(GenericDirect, 0, 3, 3, 2, 2, 0, 0)
	dst := make([]float32, plan.extraInH*plan.extraInW)
	for i := range dst {
		dst[i] = -1 // stale arena content
	}

	materializePadding(dst, src, 1, 1, 2, 2, plan, parallel.Serial())

	extW := plan.extraInW // 5
	want := func(h, w int) float32 {
		if h >= 1 && h <= 2 && w >= 1 && w <= 2 {
			return src[(h-1)*2+(w-1)]
		}
		return 0
	}
	for h := 0; h < plan.extraInH; h++ {
		for w := 0; w < extW; w++ {
			if got := dst[h*extW+w]; got != want(h, w) {
				t.Errorf("Padded[%d][%d] = %v, want %v", h, w, got, want(h, w))
			}
		}
	}
}

func TestMaterializePadding_MultiplePlanes(t *testing.T) {
	// 2 channels of 2x2 with symmetric padding 2.
	src := []float32{
		1, 2, 3, 4, // channel 0
		5, 6, 7, 8, // channel 1
	}
	plan := planTiling(GenericDirect, 0, 2, 2, 2, 2, 0, 0)
	dst := make([]float32, 2*plan.extraInH*plan.extraInW)

	materializePadding(dst, src, 1, 2, 2, 2, plan, parallel.Serial())

	extW := plan.extraInW // 4
	plane := plan.extraInH * extW
	for c := 0; c < 2; c++ {
		if got := dst[c*plane+1*extW+1]; got != src[c*4] {
			t.Errorf("Channel %d top-left = %v, want %v", c, got, src[c*4])
		}
		if got := dst[c*plane+2*extW+2]; got != src[c*4+3] {
			t.Errorf("Channel %d bottom-right = %v, want %v", c, got, src[c*4+3])
		}
	}
}
