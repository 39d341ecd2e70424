package conv

import (
	"github.com/pkg/errors"

	"github.com/slate-ml/slate/internal/activation"
)

// PaddingType selects how the total zero-padding amount is determined.
type PaddingType int

// Supported padding policies.
const (
	// PaddingValid applies no padding; the filter only visits fully valid
	// input positions.
	PaddingValid PaddingType = iota
	// PaddingSame derives padding so the output extent equals
	// ceil(input extent / stride).
	PaddingSame
	// PaddingExplicit uses caller-provided total pad amounts.
	PaddingExplicit
)

// String returns a human-readable padding policy name.
func (pt PaddingType) String() string {
	switch pt {
	case PaddingValid:
		return "valid"
	case PaddingSame:
		return "same"
	case PaddingExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Padding is a padding policy plus the explicit total amounts used when the
// policy is PaddingExplicit. Totals are split into leading/trailing halves
// with any odd remainder on the trailing side.
type Padding struct {
	Type PaddingType
	H, W int
}

// Params holds the convolution parameters fixed for an operator's lifetime.
type Params struct {
	StrideH, StrideW     int
	DilationH, DilationW int
	Padding              Padding
	Activation           activation.Config

	// FilterPreTransformed marks the filter tensor as already being in the
	// Winograd transform domain, [tileArea, outC, inC]. Forces the Winograd
	// strategy.
	FilterPreTransformed bool
}

// DefaultParams returns stride-1, dilation-1, valid-padding parameters with
// no activation.
func DefaultParams() Params {
	return Params{
		StrideH:   1,
		StrideW:   1,
		DilationH: 1,
		DilationW: 1,
	}
}

// Validate checks the parameters for internal consistency.
func (p *Params) Validate() error {
	if p.StrideH <= 0 || p.StrideW <= 0 {
		return errors.Errorf("conv: invalid stride (%d, %d)", p.StrideH, p.StrideW)
	}
	if p.DilationH <= 0 || p.DilationW <= 0 {
		return errors.Errorf("conv: invalid dilation (%d, %d)", p.DilationH, p.DilationW)
	}
	if p.Padding.Type == PaddingExplicit && (p.Padding.H < 0 || p.Padding.W < 0) {
		return errors.Errorf("conv: invalid padding (%d, %d)", p.Padding.H, p.Padding.W)
	}
	if p.FilterPreTransformed &&
		(p.StrideH != 1 || p.StrideW != 1 || p.DilationH != 1 || p.DilationW != 1) {
		return errors.New("conv: pre-transformed filters require stride 1 and dilation 1")
	}
	return nil
}
