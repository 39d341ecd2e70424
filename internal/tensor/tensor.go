package tensor

import (
	"fmt"
	"unsafe"
)

// Tensor is a dense, contiguous, row-major tensor.
//
// The buffer is owned by the tensor and reused across Resize calls when the
// requested size fits the existing capacity. A monotonically increasing
// version counter tracks content mutations performed through the tensor API;
// callers that mutate the data through an AsFloat32/AsFloat64 view must call
// MarkMutated themselves if downstream caches are supposed to notice.
type Tensor struct {
	data    []byte
	shape   Shape
	dtype   DataType
	version uint64
}

// New creates a tensor with the given shape and type. The buffer is
// zero-initialized.
func New(shape Shape, dtype DataType) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor{
		data:  make([]byte, shape.NumElements()*dtype.Size()),
		shape: shape.Clone(),
		dtype: dtype,
	}, nil
}

// Empty creates a tensor with no shape and no storage. Useful as a
// destination for operations that resize their output.
func Empty(dtype DataType) *Tensor {
	return &Tensor{dtype: dtype}
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// DType returns the tensor's data type.
func (t *Tensor) DType() DataType {
	return t.dtype
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// Dim returns the size of dimension i.
func (t *Tensor) Dim(i int) int {
	return t.shape[i]
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	if len(t.shape) == 0 && len(t.data) == 0 {
		return 0
	}
	return t.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (t *Tensor) ByteSize() int {
	return t.NumElements() * t.dtype.Size()
}

// IsEmpty reports whether the tensor has no shape assigned yet.
func (t *Tensor) IsEmpty() bool {
	return len(t.shape) == 0
}

// Resize changes the tensor's shape, reallocating only when the new shape
// needs more bytes than the current buffer capacity. Content after a resize
// is unspecified; callers that need zeros must call Zero.
func (t *Tensor) Resize(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("invalid shape: %w", err)
	}
	byteSize := shape.NumElements() * t.dtype.Size()
	if byteSize <= cap(t.data) {
		t.data = t.data[:byteSize]
	} else {
		t.data = make([]byte, byteSize)
	}
	t.shape = shape.Clone()
	return nil
}

// Zero overwrites the whole buffer with zeros.
func (t *Tensor) Zero() {
	clear(t.data)
}

// Version returns the mutation counter for this tensor's content.
func (t *Tensor) Version() uint64 {
	return t.version
}

// MarkMutated bumps the mutation counter. Call after writing through a view
// returned by AsFloat32/AsFloat64 when caches keyed on this tensor must be
// invalidated.
func (t *Tensor) MarkMutated() {
	t.version++
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (t *Tensor) AsFloat32() []float32 {
	if t.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", t.dtype))
	}
	if len(t.data) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&t.data[0])), t.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (t *Tensor) AsFloat64() []float64 {
	if t.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", t.dtype))
	}
	if len(t.data) == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&t.data[0])), t.NumElements())
}

// SetFloat32 copies values into the tensor and bumps the version counter.
// The value count must match the tensor's element count.
func (t *Tensor) SetFloat32(values []float32) {
	dst := t.AsFloat32()
	if len(values) != len(dst) {
		panic(fmt.Sprintf("tensor: set %d values into %d elements", len(values), len(dst)))
	}
	copy(dst, values)
	t.MarkMutated()
}

// String returns a short description of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(%s, shape=%v)", t.dtype, t.shape)
}
