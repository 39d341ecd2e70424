package conv

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/slate-ml/slate/internal/tensor"
)

func TestResolveShape_Valid(t *testing.T) {
	p := DefaultParams()

	out, padH, padW, err := ResolveShape(
		tensor.Shape{1, 3, 7, 9}, tensor.Shape{16, 3, 3, 3}, &p)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(tensor.Shape{1, 16, 5, 7}) {
		t.Errorf("Output shape %v, want [1 16 5 7]", out)
	}
	if padH != 0 || padW != 0 {
		t.Errorf("Padding (%d, %d), want (0, 0)", padH, padW)
	}
}

func TestResolveShape_Explicit(t *testing.T) {
	p := DefaultParams()
	p.StrideH, p.StrideW = 2, 2
	p.Padding = Padding{Type: PaddingExplicit, H: 2, W: 2}

	out, _, _, err := ResolveShape(
		tensor.Shape{2, 3, 10, 10}, tensor.Shape{8, 3, 3, 3}, &p)
	if err != nil {
		t.Fatal(err)
	}
	// (10 + 2 - 3)/2 + 1 = 5
	if !out.Equal(tensor.Shape{2, 8, 5, 5}) {
		t.Errorf("Output shape %v, want [2 8 5 5]", out)
	}
}

func TestResolveShape_Same(t *testing.T) {
	p := DefaultParams()
	p.Padding = Padding{Type: PaddingSame}

	out, padH, padW, err := ResolveShape(
		tensor.Shape{1, 4, 11, 11}, tensor.Shape{4, 4, 3, 3}, &p)
	if err != nil {
		t.Fatal(err)
	}
	// Stride 1: output extent equals input extent.
	if !out.Equal(tensor.Shape{1, 4, 11, 11}) {
		t.Errorf("Output shape %v, want [1 4 11 11]", out)
	}
	if padH != 2 || padW != 2 {
		t.Errorf("Padding (%d, %d), want (2, 2)", padH, padW)
	}
}

func TestResolveShape_SameStride2(t *testing.T) {
	p := DefaultParams()
	p.StrideH, p.StrideW = 2, 2
	p.Padding = Padding{Type: PaddingSame}

	out, _, _, err := ResolveShape(
		tensor.Shape{1, 4, 11, 11}, tensor.Shape{4, 4, 3, 3}, &p)
	if err != nil {
		t.Fatal(err)
	}
	// ceil(11/2) = 6.
	if out[2] != 6 || out[3] != 6 {
		t.Errorf("Output extent %dx%d, want 6x6", out[2], out[3])
	}
}

func TestResolveShape_Dilation(t *testing.T) {
	p := DefaultParams()
	p.DilationH, p.DilationW = 2, 2

	out, _, _, err := ResolveShape(
		tensor.Shape{1, 1, 9, 9}, tensor.Shape{1, 1, 3, 3}, &p)
	if err != nil {
		t.Fatal(err)
	}
	// Effective filter extent 5: (9 - 5)/1 + 1 = 5.
	if out[2] != 5 || out[3] != 5 {
		t.Errorf("Output extent %dx%d, want 5x5", out[2], out[3])
	}
}

func TestResolveShape_ChannelMismatch(t *testing.T) {
	p := DefaultParams()

	_, _, _, err := ResolveShape(
		tensor.Shape{1, 3, 7, 7}, tensor.Shape{8, 4, 3, 3}, &p)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch, got %v", err)
	}
}

func TestResolveShape_FilterLargerThanInput(t *testing.T) {
	p := DefaultParams()

	_, _, _, err := ResolveShape(
		tensor.Shape{1, 1, 2, 2}, tensor.Shape{1, 1, 3, 3}, &p)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch, got %v", err)
	}
}
