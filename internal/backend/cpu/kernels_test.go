package cpu

import (
	"math"
	"math/rand"
	"testing"
)

// directConv is the bounds-free reference for kernels that receive
// pre-padded input: every accessed index is in range by construction.
func directConv(input, filter []float32,
	batch, inH, inW, inC, outH, outW, outC, filterH, filterW, stride int) []float32 {

	out := make([]float32, batch*outC*outH*outW)
	for n := 0; n < batch; n++ {
		for m := 0; m < outC; m++ {
			for h := 0; h < outH; h++ {
				for w := 0; w < outW; w++ {
					var sum float32
					for c := 0; c < inC; c++ {
						for kh := 0; kh < filterH; kh++ {
							for kw := 0; kw < filterW; kw++ {
								sum += input[((n*inC+c)*inH+h*stride+kh)*inW+w*stride+kw] *
									filter[((m*inC+c)*filterH+kh)*filterW+kw]
							}
						}
					}
					out[((n*outC+m)*outH+h)*outW+w] = sum
				}
			}
		}
	}
	return out
}

func fill(r *rand.Rand, n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = r.Float32()*2 - 1
	}
	return s
}

func compare(t *testing.T, want, got []float32, tolerance float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("Length mismatch: %d vs %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(float64(want[i]-got[i])) > tolerance {
			t.Fatalf("Element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestConv1x1S1(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	batch, h, w, inC, outC := 2, 5, 7, 9, 4

	input := fill(r, batch*inC*h*w)
	filter := fill(r, outC*inC)
	output := make([]float32, batch*outC*h*w)

	New().Conv1x1S1(input, filter, batch, h, w, inC, outC, output)

	want := directConv(input, filter, batch, h, w, inC, h, w, outC, 1, 1, 1)
	compare(t, want, output, 1e-4)
}

func TestConv3x3S1(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	// Contract extents: outH multiple of 2, outW multiple of 4, halo 2.
	batch, inC, outC := 2, 3, 5
	outH, outW := 6, 8
	inH, inW := outH+2, outW+2

	input := fill(r, batch*inC*inH*inW)
	filter := fill(r, outC*inC*9)
	output := make([]float32, batch*outC*outH*outW)

	New().Conv3x3S1(input, filter, batch, inH, inW, inC, outH, outW, outC, output)

	want := directConv(input, filter, batch, inH, inW, inC, outH, outW, outC, 3, 3, 1)
	compare(t, want, output, 1e-4)
}

func TestConv3x3S2(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	batch, inC, outC := 1, 4, 3
	outH, outW := 5, 8
	inH, inW := (outH-1)*2+3, (outW-1)*2+3

	input := fill(r, batch*inC*inH*inW)
	filter := fill(r, outC*inC*9)
	output := make([]float32, batch*outC*outH*outW)

	New().Conv3x3S2(input, filter, batch, inH, inW, inC, outH, outW, outC, output)

	want := directConv(input, filter, batch, inH, inW, inC, outH, outW, outC, 3, 3, 2)
	compare(t, want, output, 1e-4)
}

func TestConv3x3S1_OverwritesOutput(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	outH, outW := 2, 4
	inH, inW := 4, 6

	input := fill(r, inH*inW)
	filter := fill(r, 9)
	output := make([]float32, outH*outW)
	for i := range output {
		output[i] = 1e6 // stale content the kernel must not accumulate into
	}

	New().Conv3x3S1(input, filter, 1, inH, inW, 1, outH, outW, 1, output)

	want := directConv(input, filter, 1, inH, inW, 1, outH, outW, 1, 3, 3, 1)
	compare(t, want, output, 1e-4)
}
