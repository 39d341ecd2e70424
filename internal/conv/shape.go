package conv

import (
	"github.com/pkg/errors"

	"github.com/slate-ml/slate/internal/tensor"
)

// ErrShapeMismatch reports tensors whose shapes cannot be convolved together.
var ErrShapeMismatch = errors.New("conv: shape mismatch")

// ResolveShape computes the output shape [batch, outC, outH, outW] and the
// total padding amounts for one invocation.
//
// With explicit padding the output extent follows
// floor((in + pad - dilation*(filter-1) - 1) / stride) + 1; with a padding
// policy the total padding is derived first and the same formula applies.
func ResolveShape(input, filter tensor.Shape, p *Params) (out tensor.Shape, padH, padW int, err error) {
	if len(input) != 4 {
		return nil, 0, 0, errors.Wrapf(ErrShapeMismatch, "input must be 4D NCHW, got %dD", len(input))
	}
	if len(filter) != 4 {
		return nil, 0, 0, errors.Wrapf(ErrShapeMismatch, "filter must be 4D OIHW, got %dD", len(filter))
	}
	if filter[1] != input[1] {
		return nil, 0, 0, errors.Wrapf(ErrShapeMismatch,
			"filter input channels %d != input channels %d", filter[1], input[1])
	}

	inH, inW := input[2], input[3]
	effKH := (filter[2]-1)*p.DilationH + 1
	effKW := (filter[3]-1)*p.DilationW + 1

	switch p.Padding.Type {
	case PaddingExplicit:
		padH, padW = p.Padding.H, p.Padding.W
	case PaddingSame:
		outH := (inH + p.StrideH - 1) / p.StrideH
		outW := (inW + p.StrideW - 1) / p.StrideW
		padH = max((outH-1)*p.StrideH+effKH-inH, 0)
		padW = max((outW-1)*p.StrideW+effKW-inW, 0)
	case PaddingValid:
		// No padding.
	default:
		return nil, 0, 0, errors.Errorf("conv: unknown padding policy %d", p.Padding.Type)
	}

	outH := (inH+padH-effKH)/p.StrideH + 1
	outW := (inW+padW-effKW)/p.StrideW + 1
	if outH <= 0 || outW <= 0 {
		return nil, 0, 0, errors.Wrapf(ErrShapeMismatch,
			"non-positive output extent %dx%d for input %dx%d, filter %dx%d",
			outH, outW, inH, inW, filter[2], filter[3])
	}

	return tensor.Shape{input[0], filter[0], outH, outW}, padH, padW, nil
}
