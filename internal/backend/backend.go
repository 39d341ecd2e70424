// Package backend defines the contract between the convolution engine and its
// pluggable fast-path kernels.
//
// Every kernel receives an input buffer that has already been padded and
// extended by the engine so that no bounds checking is required inside the
// kernel loops, and fully owns writing its output buffer (assignment, not
// accumulation). A malformed shape reaching a kernel is a precondition
// violation by the caller, not a runtime-checked error.
package backend

// Backend provides the fixed-shape convolution kernels and the Winograd
// transform-domain path.
//
// All tensors are contiguous float32 in NCHW layout. Filter layout is OIHW
// except where noted. Spatial extents passed to the kernels are the working
// (extended) extents chosen by the engine, not the externally visible ones.
type Backend interface {
	// Conv1x1S1 computes a 1x1 stride-1 convolution. Output spatial extents
	// equal the input extents.
	Conv1x1S1(input, filter []float32, batch, height, width, inC, outC int, output []float32)

	// Conv3x3S1 computes a 3x3 stride-1 convolution. The caller guarantees
	// outH is a multiple of 2, outW a multiple of 4, and the input carries a
	// 2-pixel halo beyond the output extents.
	Conv3x3S1(input, filter []float32, batch, inH, inW, inC, outH, outW, outC int, output []float32)

	// Conv3x3S2 computes a 3x3 stride-2 convolution. The caller guarantees
	// outW is a multiple of 4 and the input covers the full stride-2
	// receptive field of the output.
	Conv3x3S2(input, filter []float32, batch, inH, inW, inC, outH, outW, outC int, output []float32)

	// WinogradFilterTransform converts an OIHW 3x3 filter into the transform
	// domain for the given output tile size (2 or 6), writing the result in
	// [tileArea, outC, inC] layout. transformed must hold
	// (outTile+2)*(outTile+2)*outC*inC elements. Invoked at most once per
	// filter by the engine, which caches the result.
	WinogradFilterTransform(filter []float32, inC, outC, outTile int, transformed []float32)

	// WinogradConv3x3S1 computes a 3x3 stride-1 convolution in the Winograd
	// transform domain: input transform into transformedIn, element-wise
	// tile multiply with transformedFilter into transformedOut, then inverse
	// transform into output as its last action. transformedIn and
	// transformedOut are scratch buffers sized per the engine's arena plan.
	WinogradConv3x3S1(input, transformedFilter []float32,
		batch, inH, inW, inC, outH, outW, outC, outTile int,
		transformedIn, transformedOut, output []float32)
}
