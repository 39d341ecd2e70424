package conv

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/slate-ml/slate/internal/activation"
	"github.com/slate-ml/slate/internal/backend"
	"github.com/slate-ml/slate/internal/parallel"
	"github.com/slate-ml/slate/internal/scratch"
	"github.com/slate-ml/slate/internal/tensor"
)

// Operator executes 2D convolutions with a fixed parameter set, reusing a
// bounded scratch arena and a transformed-filter cache across invocations.
//
// An operator instance is not safe for concurrent Compute calls: the arena
// and the filter cache are single-writer. Callers running the same operator
// from multiple goroutines must serialize the calls.
type Operator struct {
	params  Params
	backend backend.Backend
	pool    parallel.Config
	arena   *scratch.Arena

	// Transformed-filter cache, keyed on filter identity, content version,
	// and tile size. Outlives a single invocation.
	cachedTransform []float32
	cachedFilter    *tensor.Tensor
	cachedVersion   uint64
	cachedTile      int
}

// NewOperator creates a convolution operator for the given parameters and
// fast-path backend.
func NewOperator(params Params, b backend.Backend) (*Operator, error) {
	if b == nil {
		return nil, errors.New("conv: nil backend")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Operator{
		params:  params,
		backend: b,
		pool:    parallel.DefaultConfig(),
		arena:   scratch.New(),
	}, nil
}

// SetParallelism overrides the parallel-for configuration used by the
// engine's loop nests.
func (op *Operator) SetParallelism(cfg parallel.Config) {
	op.pool = cfg
}

// Params returns the operator's parameters.
func (op *Operator) Params() Params {
	return op.params
}

// ScratchCapacity returns the current byte size of the scratch arena's
// backing buffer. The capacity only grows when an invocation needs more
// scratch than any previous one.
func (op *Operator) ScratchCapacity() int {
	return op.arena.Capacity()
}

// Compute runs one convolution: output = activation(conv(input, filter) + bias).
//
// input is [batch, inC, H, W], filter [outC, inC, fH, fW] (or the transform
// domain layout when Params.FilterPreTransformed is set), bias [outC] or nil.
// The operator resizes output to the resolved shape. All tensors are
// float32.
func (op *Operator) Compute(input, filter, bias, output *tensor.Tensor) error {
	if input == nil || filter == nil || output == nil {
		return errors.New("conv: nil tensor argument")
	}
	if input.DType() != tensor.Float32 || filter.DType() != tensor.Float32 || output.DType() != tensor.Float32 {
		return errors.Errorf("conv: all tensors must be float32")
	}
	if bias != nil && bias.DType() != tensor.Float32 {
		return errors.Errorf("conv: bias must be float32")
	}

	filterShape := filter.Shape()
	if op.params.FilterPreTransformed {
		// Transform-domain layout [tileArea, outC, inC] implies an OIHW
		// 3x3 filter shape.
		if filter.Rank() != 3 {
			return errors.Wrapf(ErrShapeMismatch,
				"pre-transformed filter must be 3D, got %dD", filter.Rank())
		}
		filterShape = tensor.Shape{filter.Dim(1), filter.Dim(2), 3, 3}
	}

	outShape, padH, padW, err := ResolveShape(input.Shape(), filterShape, &op.params)
	if err != nil {
		return err
	}
	batch, outC, outH, outW := outShape[0], outShape[1], outShape[2], outShape[3]
	inC, inH, inW := input.Dim(1), input.Dim(2), input.Dim(3)
	filterH, filterW := filterShape[2], filterShape[3]

	if !output.IsEmpty() && output.Rank() == 4 {
		if output.Dim(0) != batch {
			return errors.Wrapf(ErrShapeMismatch,
				"output batch %d != input batch %d", output.Dim(0), batch)
		}
		if output.Dim(1) != outC {
			return errors.Wrapf(ErrShapeMismatch,
				"output channels %d != filter output channels %d", output.Dim(1), outC)
		}
	}
	if bias != nil && (bias.Rank() != 1 || bias.Dim(0) != outC) {
		return errors.Wrapf(ErrShapeMismatch,
			"bias shape %v, want [%d]", bias.Shape(), outC)
	}
	if err := output.Resize(outShape); err != nil {
		return errors.Wrap(err, "conv: resize output")
	}
	output.Zero()

	strategy := SelectStrategy(filterH, filterW,
		op.params.StrideH, op.params.StrideW,
		op.params.DilationH, op.params.DilationW,
		inC, outC, op.params.FilterPreTransformed)

	outTile := 0
	if strategy == Winograd {
		outTile = WinogradOutTileSize(inH, inW)
	}

	plan := planTiling(strategy, outTile, padH, padW, inH, inW, outH, outW)

	// Strategy-dependent scratch sizing, then one grow and a fixed carve
	// order: transformed input, transformed output, padded input, padded
	// output.
	var transformedInSize, transformedOutSize int
	var tileCount, inTileArea int
	if strategy == Winograd {
		inTileArea = (outTile + 2) * (outTile + 2)
		tileCount = (plan.extraOutH / outTile) * (plan.extraOutW / outTile)
		transformedInSize = inTileArea * batch * inC * tileCount
		transformedOutSize = inTileArea * batch * outC * tileCount
	}
	var paddedInSize, paddedOutSize int
	if plan.needsPaddedInput(inH, inW) {
		paddedInSize = batch * inC * plan.extraInH * plan.extraInW
	}
	if plan.needsPaddedOutput(outH, outW) {
		paddedOutSize = batch * outC * plan.extraOutH * plan.extraOutW
	}
	totalScratch := 4 * (transformedInSize + transformedOutSize + paddedInSize + paddedOutSize)

	op.arena.Rewind()
	if err := op.arena.Grow(totalScratch); err != nil {
		return errors.Wrap(err, "conv: scratch arena")
	}
	transformedIn := op.arena.Float32(transformedInSize)
	transformedOut := op.arena.Float32(transformedOutSize)
	paddedIn := op.arena.Float32(paddedInSize)
	paddedOut := op.arena.Float32(paddedOutSize)

	klog.V(2).Infof("conv2d: strategy=%s tile=%d out=%dx%d work=%dx%d scratch=%dB",
		strategy, outTile, outH, outW, plan.extraOutH, plan.extraOutW, totalScratch)

	// One-time filter transform for the Winograd path.
	var winogradFilter []float32
	if strategy == Winograd {
		if op.params.FilterPreTransformed {
			if filter.Dim(0) != inTileArea {
				return errors.Wrapf(ErrShapeMismatch,
					"pre-transformed filter tile area %d, want %d", filter.Dim(0), inTileArea)
			}
			winogradFilter = filter.AsFloat32()
		} else {
			stale := op.cachedTransform == nil ||
				op.cachedFilter != filter ||
				op.cachedVersion != filter.Version() ||
				op.cachedTile != outTile
			if stale {
				op.cachedTransform = make([]float32, inTileArea*outC*inC)
				op.backend.WinogradFilterTransform(filter.AsFloat32(), inC, outC, outTile, op.cachedTransform)
				op.cachedFilter = filter
				op.cachedVersion = filter.Version()
				op.cachedTile = outTile
				klog.V(2).Infof("conv2d: transformed filter cached (tile=%d, %d elements)",
					outTile, len(op.cachedTransform))
			}
			winogradFilter = op.cachedTransform
		}
	}

	// Pad input and output.
	workInput := input.AsFloat32()
	if paddedInSize > 0 {
		materializePadding(paddedIn, workInput, batch, inC, inH, inW, plan, op.pool)
		workInput = paddedIn
	}
	workOutput := output.AsFloat32()
	if paddedOutSize > 0 {
		clear(paddedOut)
		workOutput = paddedOut
	}

	// Dispatch to the chosen compute strategy.
	switch strategy {
	case Winograd:
		op.backend.WinogradConv3x3S1(workInput, winogradFilter,
			batch, plan.extraInH, plan.extraInW, inC,
			plan.extraOutH, plan.extraOutW, outC, outTile,
			transformedIn, transformedOut, workOutput)
	case Fixed3x3S1:
		op.backend.Conv3x3S1(workInput, filter.AsFloat32(),
			batch, plan.extraInH, plan.extraInW, inC,
			plan.extraOutH, plan.extraOutW, outC, workOutput)
	case Fixed3x3S2:
		op.backend.Conv3x3S2(workInput, filter.AsFloat32(),
			batch, plan.extraInH, plan.extraInW, inC,
			plan.extraOutH, plan.extraOutW, outC, workOutput)
	case Fixed1x1S1:
		op.backend.Conv1x1S1(workInput, filter.AsFloat32(),
			batch, plan.extraInH, plan.extraInW, inC, outC, workOutput)
	case GenericDirect:
		convDirect(workInput, filter.AsFloat32(),
			batch, plan.extraInH, plan.extraInW, inC,
			plan.extraOutH, plan.extraOutW, outC,
			filterH, filterW,
			op.params.StrideH, op.params.StrideW,
			op.params.DilationH, op.params.DilationW,
			workOutput, op.pool)
	}

	// Output assembly: unpack, then bias, then activation, in that order so
	// bias and activation only ever see true-shaped data.
	outData := output.AsFloat32()
	if paddedOutSize > 0 {
		unpackOutput(outData, paddedOut, batch, outC, outH, outW,
			plan.extraOutH, plan.extraOutW, op.pool)
	}
	if bias != nil {
		addBias(outData, bias.AsFloat32(), batch, outC, outH*outW, op.pool)
	}
	activation.Apply(outData, op.params.Activation, op.pool)

	return nil
}
